package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/service/entity"
)

// ResourceOptions customises how records leave a Resource.
type ResourceOptions[T model.Entity[T]] struct {
	// List and Get replace the plain controller reads, typically with
	// views that resolve referenced names.
	List func(ctx context.Context, filter string) (interface{}, error)
	Get  func(ctx context.Context, id string) (interface{}, error)
	// Present shapes a record returned by create and update.
	Present func(T) interface{}
}

// Resource serves list, get, create, update and delete for one entity kind.
// Writes go through an editor session so every submit runs the
// controller's validation and hooks.
type Resource[T model.Entity[T]] struct {
	ctrl *entity.Controller[T]
	opts ResourceOptions[T]
}

func NewResource[T model.Entity[T]](ctrl *entity.Controller[T], opts ResourceOptions[T]) *Resource[T] {
	if opts.Present == nil {
		opts.Present = func(item T) interface{} { return item }
	}
	return &Resource[T]{ctrl: ctrl, opts: opts}
}

// Register mounts the CRUD routes on g.
func (h *Resource[T]) Register(g *gin.RouterGroup) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *Resource[T]) List(c *gin.Context) {
	filter := c.Query("search")
	var (
		data interface{}
		err  error
	)
	if h.opts.List != nil {
		data, err = h.opts.List(c.Request.Context(), filter)
	} else {
		var items []T
		items, err = h.ctrl.List(c.Request.Context(), filter)
		data = h.presentAll(items)
	}
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(data))
}

func (h *Resource[T]) Get(c *gin.Context) {
	id := c.Param("id")
	var (
		data interface{}
		err  error
	)
	if h.opts.Get != nil {
		data, err = h.opts.Get(c.Request.Context(), id)
	} else {
		var item T
		item, err = h.ctrl.Get(c.Request.Context(), id)
		data = h.opts.Present(item)
	}
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(data))
}

func (h *Resource[T]) Create(c *gin.Context) {
	s := h.ctrl.OpenCreate()
	if !BindJSON(c, s.Draft) {
		return
	}
	h.submit(c, s, http.StatusCreated)
}

// Update applies the body over the stored record, so omitted fields keep
// their current values. Lists sent in the body replace the stored lists.
func (h *Resource[T]) Update(c *gin.Context) {
	s, err := h.ctrl.OpenEdit(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	if !BindJSONOver(c, s.Draft) {
		return
	}
	h.submit(c, s, http.StatusOK)
}

func (h *Resource[T]) Delete(c *gin.Context) {
	if err := h.ctrl.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Resource[T]) submit(c *gin.Context, s *entity.Session[T], status int) {
	saved, err := h.ctrl.Submit(c.Request.Context(), s)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(status, NewSuccessResponse(h.opts.Present(saved)))
}

func (h *Resource[T]) presentAll(items []T) []interface{} {
	out := make([]interface{}, 0, len(items))
	for _, item := range items {
		out = append(out, h.opts.Present(item))
	}
	return out
}

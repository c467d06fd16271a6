package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/medclinic-admin/pkg/errors"
)

type Response struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError writes err with the status its AppError code maps to.
// Anything that is not an AppError is reported as an internal error
// without leaking its text.
func RespondError(c *gin.Context, err error) {
	_ = c.Error(err)
	status := apperrors.StatusOf(err)

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
		return
	}

	resp := NewErrorResponse(appErr.Message)
	resp.Errors = appErr.Fields
	c.AbortWithStatusJSON(status, resp)
}

// BindJSON decodes the body into obj, answering 400 when it cannot.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, NewErrorResponse("invalid request body: "+err.Error()))
		return false
	}
	return true
}

// BindJSONOver decodes the body onto an existing record. Top-level arrays
// present in the body replace the stored slice outright; decoding into the
// old backing array would let new elements inherit fields from old ones.
func BindJSONOver(c *gin.Context, obj interface{}) bool {
	body, err := c.GetRawData()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, NewErrorResponse("invalid request body: "+err.Error()))
		return false
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		for key, raw := range fields {
			if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
				clearSlice(reflect.ValueOf(obj), key)
			}
		}
	}
	if err := binding.JSON.BindBody(body, obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, NewErrorResponse("invalid request body: "+err.Error()))
		return false
	}
	return true
}

// clearSlice nils the slice field tagged key, looking through pointers and
// embedded structs.
func clearSlice(v reflect.Value, key string) bool {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			if clearSlice(v.Field(i), key) {
				return true
			}
			continue
		}
		if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != key {
			continue
		}
		if fv := v.Field(i); fv.Kind() == reflect.Slice && fv.CanSet() {
			fv.Set(reflect.Zero(fv.Type()))
			return true
		}
		return false
	}
	return false
}

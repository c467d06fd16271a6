package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/medclinic-admin/internal/handler"
	"github.com/jwalitptl/medclinic-admin/internal/model"
	"github.com/jwalitptl/medclinic-admin/internal/repository/memory"
	"github.com/jwalitptl/medclinic-admin/internal/service/entity"
	"github.com/jwalitptl/medclinic-admin/internal/service/facility"
	"github.com/jwalitptl/medclinic-admin/internal/service/speciality"
	apperrors "github.com/jwalitptl/medclinic-admin/pkg/errors"
)

type envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := speciality.NewService(memory.NewStore[*model.Speciality](), entity.Deps{})
	r := gin.New()
	handler.NewResource(svc.Controller, handler.ResourceOptions[*model.Speciality]{}).Register(r.Group("/specialities"))
	return r
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestResourceLifecycle(t *testing.T) {
	r := setupRouter()

	w, env := do(t, r, http.MethodPost, "/specialities", gin.H{"code": " card ", "name": "Cardiology"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Speciality
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "CARD", created.Code)

	_, _ = do(t, r, http.MethodPost, "/specialities", gin.H{"code": "NEURO", "name": "Neurology"})

	w, env = do(t, r, http.MethodGet, "/specialities?search=neur", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []model.Speciality
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Neurology", listed[0].Name)

	w, env = do(t, r, http.MethodPut, "/specialities/"+created.ID, gin.H{"name": "Cardiac Care"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated model.Speciality
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "CARD", updated.Code)
	assert.Equal(t, "Cardiac Care", updated.Name)

	w, _ = do(t, r, http.MethodDelete, "/specialities/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, env = do(t, r, http.MethodGet, "/specialities/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "error", env.Status)
}

func TestResourceValidationErrors(t *testing.T) {
	r := setupRouter()

	w, env := do(t, r, http.MethodPost, "/specialities", gin.H{"code": "CARD"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation failed", env.Message)
	assert.Contains(t, env.Errors, "name")

	req := httptest.NewRequest(http.MethodPost, "/specialities", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	w, _ = do(t, r, http.MethodPut, "/specialities/missing", gin.H{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", apperrors.NotFound("patient", nil), http.StatusNotFound, "patient not found"},
		{"conflict", apperrors.Conflict("editor session already closed"), http.StatusConflict, "editor session already closed"},
		{"unknown", errors.New("connection refused"), http.StatusInternalServerError, "internal server error"},
		{"internal", apperrors.Internal(errors.New("boom")), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			handler.RespondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var env envelope
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, tt.message, env.Message)
			assert.Len(t, c.Errors, 1)
		})
	}
}

func TestResourceUpdateReplacesLists(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := facility.NewService(memory.NewStore[*model.Facility](), entity.Deps{})
	r := gin.New()
	handler.NewResource(svc.Controller, handler.ResourceOptions[*model.Facility]{}).Register(r.Group("/facilities"))

	w, env := do(t, r, http.MethodPost, "/facilities", gin.H{
		"code": "MCC002",
		"name": "MedClinic South",
		"holidays": []gin.H{
			{"name": "Independence Day", "date": "2024-07-04", "description": "Closed all day"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Facility
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Len(t, created.Holidays, 1)
	oldID := created.Holidays[0].ID
	require.NotEmpty(t, oldID)

	w, env = do(t, r, http.MethodPut, "/facilities/"+created.ID, gin.H{
		"holidays": []gin.H{{"name": "New Year", "date": "2025-01-01"}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated model.Facility
	require.NoError(t, json.Unmarshal(env.Data, &updated))

	require.Len(t, updated.Holidays, 1)
	h := updated.Holidays[0]
	assert.Equal(t, "New Year", h.Name)
	assert.Empty(t, h.Description)
	assert.NotEmpty(t, h.ID)
	assert.NotEqual(t, oldID, h.ID)
	assert.Equal(t, "MedClinic South", updated.Name)
	assert.Len(t, updated.WorkingHours, 7)
}

package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/medclinic-admin/pkg/errors"
	"github.com/jwalitptl/medclinic-admin/pkg/metrics"
)

// ErrorHandler logs the errors handlers attached to the context and counts
// them by status class. Responses are written by the handlers themselves.
func ErrorHandler(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		for _, e := range c.Errors {
			status := apperrors.StatusOf(e.Err)
			ev := log.Debug()
			if status >= 500 {
				ev = log.Error()
			}
			ev.Err(e.Err).
				Str("request_id", c.GetString(ContextRequestID)).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Int("status", status).
				Msg("Request error")

			if m != nil {
				m.ErrorTotal.WithLabelValues(c.Request.Method, routeOf(c), errorType(status)).Inc()
			}
		}
	}
}

func errorType(status int) string {
	if status >= 500 {
		return "server"
	}
	return "client"
}

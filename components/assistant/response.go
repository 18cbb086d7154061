package assistant

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-reportgen/pkg/catalog"
	"github.com/goliatone/go-reportgen/pkg/registry"
	"github.com/goliatone/go-reportgen/pkg/section"
	"github.com/goliatone/go-reportgen/pkg/session"
	"github.com/goliatone/go-reportgen/pkg/timeline"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Mutation is the body of every mutating response.
type Mutation struct {
	Applied bool         `json:"applied"`
	Key     string       `json:"key,omitempty"`
	Session session.View `json:"session"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

// respondDomainError maps sentinel errors to status codes.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		respondError(c, http.StatusNotFound, "session_not_found", err)
	case errors.Is(err, registry.ErrUnknownDefinition), errors.Is(err, catalog.ErrNotFound):
		respondError(c, http.StatusNotFound, "unknown_definition", err)
	case errors.Is(err, registry.ErrUnknownInstance):
		respondError(c, http.StatusNotFound, "unknown_instance", err)
	case errors.Is(err, section.ErrUnknownField):
		respondError(c, http.StatusUnprocessableEntity, "unknown_field", err)
	case errors.Is(err, section.ErrInvalidOption):
		respondError(c, http.StatusUnprocessableEntity, "invalid_option", err)
	case errors.Is(err, section.ErrInvalidNumber):
		respondError(c, http.StatusUnprocessableEntity, "invalid_number", err)
	case errors.Is(err, section.ErrKindMismatch):
		respondError(c, http.StatusUnprocessableEntity, "kind_mismatch", err)
	case errors.Is(err, timeline.ErrSlotOutOfRange):
		respondError(c, http.StatusUnprocessableEntity, "slot_out_of_range", err)
	default:
		respondError(c, http.StatusInternalServerError, "internal", err)
	}
}

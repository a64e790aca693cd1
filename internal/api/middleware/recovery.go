package middleware

import (
	"log/slog"
	"net/http"

	"github.com/arcadely/arcade/internal/api/apierr"
	"github.com/arcadely/arcade/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// Panics become enveloped 500 responses.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/verlow/clientele/internal/logic"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(l *logic.Logic, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(l)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Command pipeline.
	r.Post("/execute", h.Execute)

	// Displayed views.
	r.Get("/contacts", h.ListContacts)
	r.Get("/meetings", h.ListMeetings)
	r.Get("/reminders", h.ListReminders)
	r.Get("/sales", h.ListSales)
	r.Get("/tags", h.ListTags)

	// Statistics.
	r.Get("/stats/monthly", h.MonthlyStats)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}

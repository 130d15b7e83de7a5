package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/verlow/clientele/internal/apperr"
	"github.com/verlow/clientele/internal/logic"
	"github.com/verlow/clientele/internal/stats"
)

// Handler holds API route handlers.
type Handler struct {
	logic *logic.Logic
}

// NewHandler creates a new Handler.
func NewHandler(l *logic.Logic) *Handler {
	return &Handler{logic: l}
}

// Execute handles POST /api/execute: one command line in, one result out.
func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Command == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("command is required"))
		return
	}

	res, err := h.logic.Execute(r.Context(), req.Command)
	if err != nil {
		status, msg := statusFor(err)
		if status == http.StatusInternalServerError {
			slog.Error("execute failed", slog.String("error", err.Error()))
		}
		writeJSON(w, status, errorBody(msg))
		return
	}
	writeJSON(w, http.StatusOK, executeResponse(res))
}

// ListContacts handles GET /api/contacts. The list reflects the
// displayed view's current filter and ordering.
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"contacts": contactDTOs(h.logic.Store().Persons()),
	})
}

// ListMeetings handles GET /api/meetings.
func (h *Handler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"meetings": meetingDTOs(h.logic.Store().Meetings()),
	})
}

// ListReminders handles GET /api/reminders.
func (h *Handler) ListReminders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"reminders": reminderDTOs(h.logic.Store().Reminders()),
	})
}

// ListSales handles GET /api/sales. ?all=true bypasses the displayed
// view's filter and returns every sale in date order.
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	st := h.logic.Store()
	sales := st.Sales()
	if r.URL.Query().Get("all") == "true" {
		sales = st.AllSales()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sales": saleDTOs(sales),
	})
}

// ListTags handles GET /api/tags: both namespaces in one response.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	st := h.logic.Store()
	writeJSON(w, http.StatusOK, TagListResponse{
		ContactTags: tagStrings(st.ContactTags()),
		SaleTags:    tagStrings(st.SaleTags()),
	})
}

// MonthlyStats handles GET /api/stats/monthly?kind=sale|meeting&months=N.
func (h *Handler) MonthlyStats(w http.ResponseWriter, r *http.Request) {
	months, err := strconv.Atoi(r.URL.Query().Get("months"))
	if err != nil || months < stats.MinMonths || months > stats.MaxMonths {
		writeJSON(w, http.StatusBadRequest,
			errorBody("months must be a number between 1 and 12"))
		return
	}

	st := h.logic.Store()
	var set stats.MonthlyCountSet
	switch kind := r.URL.Query().Get("kind"); kind {
	case "", "sale":
		set = stats.CountSales(st.AllSales(), months, time.Now())
	case "meeting":
		set = stats.CountMeetings(st.Meetings(), months, time.Now())
	default:
		writeJSON(w, http.StatusBadRequest, errorBody("kind must be sale or meeting"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"counts": monthlyCountDTOs(set),
	})
}

// statusFor maps domain errors onto HTTP statuses with user-safe
// messages. Parse and validation failures are the caller's fault.
func statusFor(err error) (int, string) {
	var parseErr *apperr.ParseError
	var valErr *apperr.ValidationError
	var cmdErr *apperr.CommandError
	switch {
	case errors.As(err, &parseErr):
		return http.StatusBadRequest, parseErr.Error()
	case errors.As(err, &valErr):
		return http.StatusBadRequest, valErr.Error()
	case errors.As(err, &cmdErr):
		return http.StatusUnprocessableEntity, cmdErr.Error()
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, apperr.ErrDuplicate):
		return http.StatusConflict, "duplicate record"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

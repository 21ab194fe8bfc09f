package formhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/fieldrules/pkg/formstate"
	"github.com/dmitrymomot/fieldrules/pkg/logger"
)

// Submission is the body of the validate endpoint and the signal shape of
// the live endpoint.
type Submission struct {
	Session string         `json:"session"`
	Data    map[string]any `json:"data"`
}

// LiveSignals is the signal patch sent by the live endpoint.
type LiveSignals struct {
	Session   string            `json:"session"`
	Errors    map[string]string `json:"errors"`
	Valid     bool              `json:"valid"`
	Validated bool              `json:"validated"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type formsResponse struct {
	Forms []string `json:"forms"`
}

func (h *Handler) listForms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, formsResponse{Forms: h.forms.Names()})
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	form, ok := h.form(w, r)
	if !ok {
		return
	}

	var sub Submission
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, errors.Join(ErrInvalidBody, err))
		return
	}
	if sub.Session == "" {
		sub.Session = formstate.NewSession()
	}

	st := form.Validate(r.Context(), sub.Session, sub.Data)
	status := http.StatusOK
	if !st.IsValid() {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, st)
}

func (h *Handler) live(w http.ResponseWriter, r *http.Request) {
	form, ok := h.form(w, r)
	if !ok {
		return
	}

	var sub Submission
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := datastar.ReadSignals(r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, errors.Join(ErrInvalidBody, err))
		return
	}
	if sub.Session == "" {
		writeError(w, http.StatusBadRequest, ErrMissingSession)
		return
	}

	st, _ := form.Revalidate(r.Context(), sub.Session, sub.Data)

	// Every field is sent so the merge patch clears messages that no longer apply.
	fields := form.Rules().Fields()
	errs := make(map[string]string, len(fields))
	for _, field := range fields {
		errs[field] = st.Errors[field]
	}

	signals, err := json.Marshal(LiveSignals{
		Session:   st.Session,
		Errors:    errs,
		Valid:     st.IsValid(),
		Validated: st.Validated,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	sse := datastar.NewSSE(w, r)
	if err := sse.PatchSignals(signals); err != nil {
		h.logger.WarnContext(r.Context(), "failed to patch live signals",
			logger.Form(form.Name()),
			logger.Session(sub.Session),
			logger.Error(err),
		)
	}
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	form, ok := h.form(w, r)
	if !ok {
		return
	}

	session := r.URL.Query().Get("session")
	if session == "" {
		writeError(w, http.StatusBadRequest, ErrMissingSession)
		return
	}

	st, err := form.State(r.Context(), session)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to load form state", logger.Form(form.Name()), logger.Error(err))
		writeError(w, http.StatusInternalServerError, errors.New("failed to load form state"))
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) form(w http.ResponseWriter, r *http.Request) (*formstate.Form, bool) {
	name := chi.URLParam(r, "form")
	form, ok := h.forms.Form(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", formstate.ErrUnknownForm, name))
		return nil, false
	}
	return form, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

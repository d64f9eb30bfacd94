package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"review_analyzer/internal/app"
	"review_analyzer/internal/domain"
)

// maxFormBytes caps a submission body.
const maxFormBytes = 1 << 20

const msgMissingFields = "ReviewBody and Location are required fields."

type Handlers struct {
	Q *app.QueryService
	S *app.SubmissionService
}

// MountHandlers serves the review endpoint on every path: GET lists, POST submits.
// writeLimit may be nil.
func (s *Server) MountHandlers(h *Handlers, writeLimit func(http.Handler) http.Handler) {
	if writeLimit == nil {
		writeLimit = RateLimit(nil)
	}
	s.mux.Get("/*", h.listReviews)
	s.mux.With(writeLimit).Post("/*", h.submitReview)
	s.mux.MethodNotAllowed(h.methodNotAllowed)
}

type errorBody struct {
	Error string `json:"error"`
}

// writeJSON sends v as 2-space indented UTF-8 JSON with an exact Content-Length.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Error().Err(err).Msg("encode JSON response failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	body := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// firstValue returns the first non-empty value for key. Empty values are
// treated as if they were never sent.
func firstValue(v url.Values, key string) string {
	for _, s := range v[key] {
		if s != "" {
			return s
		}
	}
	return ""
}

// parseFilter reads location/start_date/end_date. Empty values count as absent.
// On a malformed date it returns the client-facing message.
func parseFilter(q url.Values) (domain.ReviewFilter, string) {
	f := domain.ReviewFilter{Location: firstValue(q, "location")}
	for _, b := range []struct {
		param string
		dst   **time.Time
	}{
		{"start_date", &f.Start},
		{"end_date", &f.End},
	} {
		v := firstValue(q, b.param)
		if v == "" {
			continue
		}
		d, err := domain.ParseDate(v)
		if err != nil {
			return f, fmt.Sprintf("Invalid %s: %s (expected YYYY-MM-DD)", b.param, v)
		}
		*b.dst = &d
	}
	return f, ""
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	f, msg := parseFilter(r.URL.Query())
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	out, err := h.Q.ListReviews(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("list reviews failed")
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) submitReview(w http.ResponseWriter, r *http.Request) {
	// The body is url-encoded form data whatever the declared Content-Type.
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	// Malformed pairs are skipped; whatever parsed is still used.
	form, _ := url.ParseQuery(string(raw))

	body, location := firstValue(form, "ReviewBody"), firstValue(form, "Location")
	rv, err := h.S.Submit(body, location)
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	case errors.Is(err, domain.ErrInvalidLocation):
		writeError(w, http.StatusBadRequest, "Invalid location: "+location)
		return
	case err != nil:
		log.Error().Err(err).Msg("submit review failed")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

func (h *Handlers) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, POST")
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}

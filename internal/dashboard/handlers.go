package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/beauty-advisor/internal/advisor"
	"github.com/ziadkadry99/beauty-advisor/internal/catalog"
	"github.com/ziadkadry99/beauty-advisor/internal/llm"
	"github.com/ziadkadry99/beauty-advisor/internal/transcript"
)

// catalogUnavailable is shown when the product data failed to load.
const catalogUnavailable = "Error loading products. Please try again later."

const (
	defaultSuggestionLimit = 8
	defaultSessionLimit    = 50
)

type catalogResponse struct {
	Products []catalog.Item `json:"products"`
}

type categoryRequest struct {
	Category string `json:"category"`
}

type searchRequest struct {
	Search string `json:"search"`
}

type chatMessageRequest struct {
	Message string `json:"message"`
}

type transcriptResponse struct {
	SessionID string        `json:"session_id"`
	Turns     []llm.Message `json:"turns"`
}

type sessionListResponse struct {
	Total    int                  `json:"total"`
	Sessions []transcript.Session `json:"sessions"`
}

type archivedResponse struct {
	Session  transcript.Session   `json:"session"`
	Messages []transcript.Message `json:"messages"`
}

func (d *Dashboard) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if d.catalogErr != nil {
		writeError(w, http.StatusServiceUnavailable, catalogUnavailable)
		return
	}
	items := d.catalog.Items()
	if items == nil {
		items = []catalog.Item{}
	}
	writeJSON(w, http.StatusOK, catalogResponse{Products: items})
}

func (d *Dashboard) handleCategories(w http.ResponseWriter, r *http.Request) {
	sess := d.session(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"categories": sess.Categories()})
}

// queryLimit reads the optional ?limit= parameter.
func queryLimit(r *http.Request, def int) (int, bool) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func (d *Dashboard) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(r, defaultSuggestionLimit)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	suggestions := d.catalog.Suggestions(limit)
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"suggestions": suggestions})
}

func (d *Dashboard) handleProduct(w http.ResponseWriter, r *http.Request) {
	item, ok := d.catalog.Get(catalog.NewID(chi.URLParam(r, "id")))
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (d *Dashboard) handleView(w http.ResponseWriter, r *http.Request) {
	sess := d.session(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

func (d *Dashboard) handleSetCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess := d.session(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, sess.SetCategory(req.Category))
}

func (d *Dashboard) handleSetSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess := d.session(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, sess.SetSearch(req.Search))
}

func (d *Dashboard) handleSelect(w http.ResponseWriter, r *http.Request) {
	sess := d.session(w, r)
	if sess == nil {
		return
	}
	snap, err := sess.Select(catalog.NewID(chi.URLParam(r, "id")))
	d.logMirrorError(sess, err)
	writeJSON(w, http.StatusOK, snap)
}

func (d *Dashboard) handleDeselect(w http.ResponseWriter, r *http.Request) {
	sess := d.session(w, r)
	if sess == nil {
		return
	}
	snap, err := sess.Deselect(catalog.NewID(chi.URLParam(r, "id")))
	d.logMirrorError(sess, err)
	writeJSON(w, http.StatusOK, snap)
}

func (d *Dashboard) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	sess := d.session(w, r)
	if sess == nil {
		return
	}
	snap, err := sess.ClearSelection()
	d.logMirrorError(sess, err)
	writeJSON(w, http.StatusOK, snap)
}

// logMirrorError logs a failed write of the selection to durable storage.
// The in-memory selection has already changed and is still returned.
func (d *Dashboard) logMirrorError(sess *advisor.Session, err error) {
	if err != nil {
		d.logger.Warn("persisting selection failed", zap.String("session", sess.ID), zap.Error(err))
	}
}

func (d *Dashboard) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess := d.session(w, r)
	if sess == nil {
		return
	}

	reply, err := d.service.Chat(r.Context(), sess, req.Message)
	if errors.Is(err, advisor.ErrInvalidInput) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		d.logger.Error("chat failed", zap.String("session", sess.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "chat failed")
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (d *Dashboard) handleRoutine(w http.ResponseWriter, r *http.Request) {
	sess := d.session(w, r)
	if sess == nil {
		return
	}
	reply, err := d.service.GenerateRoutine(r.Context(), sess)
	if err != nil {
		d.logger.Error("routine failed", zap.String("session", sess.ID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "routine failed")
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (d *Dashboard) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sess := d.session(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, transcriptResponse{SessionID: sess.ID, Turns: sess.Transcript()})
}

// handleListSessions lists archived sessions, most recently active first,
// with the total count.
func (d *Dashboard) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if d.archive == nil {
		writeError(w, http.StatusNotFound, "transcripts are not archived")
		return
	}
	limit, ok := queryLimit(r, defaultSessionLimit)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	ctx := r.Context()

	sessions, err := d.archive.ListSessions(ctx, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	total, err := d.archive.CountSessions(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sessions == nil {
		sessions = []transcript.Session{}
	}
	writeJSON(w, http.StatusOK, sessionListResponse{Total: total, Sessions: sessions})
}

func (d *Dashboard) handleSessionMessages(w http.ResponseWriter, r *http.Request) {
	if d.archive == nil {
		writeError(w, http.StatusNotFound, "transcripts are not archived")
		return
	}
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	sess, err := d.archive.GetSession(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sess == nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	messages, err := d.archive.GetMessages(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if messages == nil {
		messages = []transcript.Message{}
	}
	writeJSON(w, http.StatusOK, archivedResponse{Session: *sess, Messages: messages})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/glossary/internal/domain"
	"github.com/heartmarshall/glossary/internal/render"
	"github.com/heartmarshall/glossary/internal/service/glossary"
	"github.com/heartmarshall/glossary/pkg/ctxutil"
)

// maxQueryRunes bounds a single translation request.
const maxQueryRunes = 4096

const pageTitle = "Glossary"

// glossaryService defines the minimal interface needed by GlossaryHandler.
type glossaryService interface {
	Query(ctx context.Context, text string, dir domain.Direction) (string, error)
	Words(ctx context.Context, side domain.Side) (glossary.WordList, error)
	Stats() glossary.Stats
	Refresh(ctx context.Context) (glossary.RefreshResult, error)
}

// GlossaryHandler serves translation, word-list and refresh endpoints.
type GlossaryHandler struct {
	svc glossaryService
	log *slog.Logger
}

// NewGlossaryHandler creates a GlossaryHandler.
func NewGlossaryHandler(svc glossaryService, logger *slog.Logger) *GlossaryHandler {
	return &GlossaryHandler{svc: svc, log: logger.With("handler", "glossary")}
}

type translateRequest struct {
	Text      string `json:"text"`
	Direction string `json:"direction"`
}

type translateResponse struct {
	Text        string `json:"text"`
	Direction   string `json:"direction"`
	Translation string `json:"translation"`
}

type wordsResponse struct {
	Side  string   `json:"side"`
	Count int      `json:"count"`
	Words []string `json:"words"`
}

type statsResponse struct {
	Entries        int       `json:"entries"`
	SourceWords    int       `json:"sourceWords"`
	TargetWords    int       `json:"targetWords"`
	Generation     string    `json:"generation"`
	LoadedAt       time.Time `json:"loadedAt"`
	Sources        []string  `json:"sources"`
	Updating       bool      `json:"updating"`
	RefreshSources int       `json:"refreshSources"`
}

type refreshResponse struct {
	Generation string   `json:"generation"`
	Entries    int      `json:"entries"`
	Sources    []string `json:"sources"`
	DurationMS int64    `json:"durationMs"`
}

// Translate handles GET /api/translate?text=&direction=&format=json|text|html.
func (h *GlossaryHandler) Translate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.translate(w, r, translateRequest{Text: q.Get("text"), Direction: q.Get("direction")}, q.Get("format"))
}

// TranslateJSON handles POST /api/translate with a JSON body.
func (h *GlossaryHandler) TranslateJSON(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.translate(w, r, req, r.URL.Query().Get("format"))
}

func (h *GlossaryHandler) translate(w http.ResponseWriter, r *http.Request, req translateRequest, format string) {
	dir, err := domain.ParseDirection(req.Direction)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if utf8.RuneCountInString(req.Text) > maxQueryRunes {
		handleError(h.log, w, r, domain.NewValidationError("text", "too long"))
		return
	}

	out, err := h.svc.Query(r.Context(), req.Text, dir)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	switch format {
	case "", "json":
		writeJSON(w, http.StatusOK, translateResponse{Text: req.Text, Direction: dir.String(), Translation: out})
	case "text":
		writeText(w, http.StatusOK, "text/plain; charset=utf-8", out)
	case "html":
		h.writePage(w, r, render.Section{Header: req.Text, Body: out})
	default:
		handleError(h.log, w, r, domain.NewValidationError("format", "must be json, text or html"))
	}
}

// Index handles GET /. Without a text parameter it shows the welcome page,
// otherwise the translation result page.
func (h *GlossaryHandler) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("text") {
		h.writePage(w, r, render.Welcome...)
		return
	}
	h.translate(w, r, translateRequest{Text: q.Get("text"), Direction: q.Get("direction")}, "html")
}

func (h *GlossaryHandler) writePage(w http.ResponseWriter, r *http.Request, sections ...render.Section) {
	page, err := render.Document(pageTitle, sections...)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeText(w, http.StatusOK, "text/html; charset=utf-8", page)
}

// Words handles GET /api/words?side=source|target.
func (h *GlossaryHandler) Words(w http.ResponseWriter, r *http.Request) {
	side, err := domain.ParseSide(r.URL.Query().Get("side"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	list, err := h.svc.Words(r.Context(), side)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	words := list.Words
	if words == nil {
		words = []string{}
	}
	writeJSON(w, http.StatusOK, wordsResponse{Side: list.Side.String(), Count: list.Count, Words: words})
}

// Stats handles GET /api/stats.
func (h *GlossaryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	s := h.svc.Stats()
	writeJSON(w, http.StatusOK, statsResponse{
		Entries:        s.Entries,
		SourceWords:    s.SourceWords,
		TargetWords:    s.TargetWords,
		Generation:     s.Generation,
		LoadedAt:       s.LoadedAt,
		Sources:        s.Sources,
		Updating:       s.Updating,
		RefreshSources: s.RefreshSources,
	})
}

// Refresh handles POST /api/admin/refresh. The refresh outlives a client
// disconnect; the service bounds it with its own fetch timeout.
func (h *GlossaryHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	operator, _ := ctxutil.OperatorFromCtx(r.Context())
	h.log.InfoContext(r.Context(), "refresh requested", slog.String("operator", operator))

	res, err := h.svc.Refresh(context.WithoutCancel(r.Context()))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, refreshResponse{
			Generation: res.Generation,
			Entries:    res.Entries,
			Sources:    res.Sources,
			DurationMS: res.Duration.Milliseconds(),
		})
	case errors.Is(err, glossary.ErrAlreadyUpdating):
		writeError(w, http.StatusConflict, "a refresh is already in progress")
	case errors.Is(err, glossary.ErrNoRefreshSources):
		writeError(w, http.StatusServiceUnavailable, "no refresh sources are configured")
	case errors.Is(err, glossary.ErrRefreshFailed):
		h.log.WarnContext(r.Context(), "refresh failed", slog.String("error", err.Error()))
		writeError(w, http.StatusBadGateway, "refresh failed, the previous word list is still served")
	default:
		handleError(h.log, w, r, err)
	}
}

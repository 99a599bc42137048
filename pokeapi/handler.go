package pokeapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/0xalexb/pokedex"
	"github.com/0xalexb/pokedex/listener/middleware"

	"github.com/cespare/xxhash/v2"
)

// Handler serves the JSON API under /api.
type Handler struct {
	service *Service
	build   pokedex.BuildInfo
	mux     *http.ServeMux
}

// NewHandler routes the API to service.
func NewHandler(service *Service, build pokedex.BuildInfo) *Handler {
	handler := &Handler{service: service, build: build, mux: http.NewServeMux()}

	handler.mux.HandleFunc("GET /api/pokemon", handler.search)
	handler.mux.HandleFunc("GET /api/pokemon/{identifier}", handler.pokemon)
	handler.mux.HandleFunc("GET /api/pokemon/{identifier}/overview", handler.overview)
	handler.mux.HandleFunc("GET /api/pokemon/{identifier}/abilities", handler.abilities)
	handler.mux.HandleFunc("GET /api/pokemon/{identifier}/moves", handler.moves)
	handler.mux.HandleFunc("GET /api/pokemon/{identifier}/forms", handler.forms)
	handler.mux.HandleFunc("GET /api/version", handler.version)

	return handler
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, err := h.service.Search(r.Context(), query.Get("name"), intParam(query.Get("page")), intParam(query.Get("pageSize")))
	if err != nil {
		h.fail(w, r, err)

		return
	}

	h.respond(w, r, page)
}

func (h *Handler) pokemon(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.Pokemon(r.Context(), r.PathValue("identifier"))
	if err != nil {
		h.fail(w, r, err)

		return
	}

	h.respond(w, r, record)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.Overview(r.Context(), r.PathValue("identifier"))
	if err != nil {
		h.fail(w, r, err)

		return
	}

	h.respond(w, r, record)
}

func (h *Handler) abilities(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.Abilities(r.Context(), r.PathValue("identifier"))
	if err != nil {
		h.fail(w, r, err)

		return
	}

	h.respond(w, r, records)
}

func (h *Handler) moves(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.Moves(r.Context(), r.PathValue("identifier"))
	if err != nil {
		h.fail(w, r, err)

		return
	}

	h.respond(w, r, records)
}

func (h *Handler) forms(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.Forms(r.Context(), r.PathValue("identifier"))
	if err != nil {
		h.fail(w, r, err)

		return
	}

	h.respond(w, r, records)
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.build)
}

// intParam parses a query integer; anything unparsable reads as 0 and is
// clamped by the service.
func intParam(value string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}

	return parsed
}

type message struct {
	Message string `json:"message"`
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, message{Message: "Pokemon not found"})
	case r.Context().Err() != nil:
		// The client went away or the handler deadline passed.
		writeJSON(w, http.StatusServiceUnavailable, message{Message: "Request canceled"})
	default:
		slog.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.Any("error", err))
		writeJSON(w, http.StatusBadGateway, message{Message: "Upstream unavailable"})
	}
}

// respond writes body as JSON with a content hash ETag. A matching
// If-None-Match answers 304 without a body.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		h.fail(w, r, err)

		return
	}

	etag := `"` + strconv.FormatUint(xxhash.Sum64(payload), 16) + `"`

	header := w.Header()
	header.Set("ETag", etag)
	header.Set("Cache-Control", "public, max-age="+strconv.Itoa(int(h.service.Config().CacheAge.Seconds())))

	if matchesETag(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)

		return
	}

	header.Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_, _ = w.Write(payload)
}

func matchesETag(ifNoneMatch, etag string) bool {
	for candidate := range strings.SplitSeq(ifNoneMatch, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == etag || candidate == "*" {
			return true
		}
	}

	return false
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

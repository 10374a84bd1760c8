package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/you-humble/spare-parts/internal/model"
)

type InventoryService interface {
	Snapshot(ctx context.Context) *model.Snapshot
	Reload(ctx context.Context) *model.Snapshot
	Query(ctx context.Context, c model.Criteria) model.Page
	Summarize(ctx context.Context) model.Stats
	Categories(ctx context.Context) []string
	PartByID(ctx context.Context, id string) (model.Record, error)
}

type Syncer interface {
	Sync(ctx context.Context) (model.SyncResult, error)
}

type handler struct {
	svc     InventoryService
	syncer  Syncer
	limiter *rate.Limiter
}

// NewInventoryHandler builds the REST handler. limiter throttles POST /api/sync; nil disables throttling.
func NewInventoryHandler(svc InventoryService, syncer Syncer, limiter *rate.Limiter) *handler {
	return &handler{svc: svc, syncer: syncer, limiter: limiter}
}

func (h *handler) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", h.ListParts)
			r.Get("/stats", h.Stats)
			r.Get("/categories", h.Categories)
			r.Post("/reload", h.Reload)
			r.Get("/{id}", h.GetPart)
		})
		r.Get("/search", h.Search)
		r.Get("/snapshot", h.Snapshot)
		r.Post("/sync", h.Sync)
	})
}

func (h *handler) ListParts(w http.ResponseWriter, r *http.Request) {
	c := criteriaFromQuery(r.URL.Query())
	writeJSON(w, r, http.StatusOK, pageToDTO(h.svc.Query(r.Context(), c)))
}

// Search is the dataset-wide variant: q also matches supplier.
func (h *handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c := criteriaFromQuery(q)
	if term := q.Get("q"); term != "" {
		c.Search = term
	}
	c.SearchScope = model.SearchScopeAll

	writeJSON(w, r, http.StatusOK, pageToDTO(h.svc.Query(r.Context(), c)))
}

func (h *handler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, statsToDTO(h.svc.Summarize(r.Context())))
}

func (h *handler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.svc.Categories(r.Context()))
}

func (h *handler) GetPart(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.PartByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, partToDTO(rec))
}

func (h *handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, snapshotToDTO(h.svc.Snapshot(r.Context())))
}

func (h *handler) Reload(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, snapshotToDTO(h.svc.Reload(r.Context())))
}

func (h *handler) Sync(w http.ResponseWriter, r *http.Request) {
	if h.limiter != nil && !h.limiter.Allow() {
		writeError(w, r, fmt.Errorf("sync: %w: try again later", model.ErrRateLimited))
		return
	}

	res, err := h.syncer.Sync(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, syncDTO{
		Downloaded: res.Downloaded,
		Bytes:      res.Bytes,
		Count:      res.Snapshot.Len(),
		LoadedAt:   res.Snapshot.LoadedAt.UTC(),
	})
}

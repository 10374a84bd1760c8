package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"
	"golang.org/x/time/rate"

	"github.com/you-humble/spare-parts/internal/converter"
	"github.com/you-humble/spare-parts/internal/model"
	"github.com/you-humble/spare-parts/internal/repository/snapshot"
	"github.com/you-humble/spare-parts/internal/service/inventory"
	"github.com/you-humble/spare-parts/internal/service/mocks"
)

type staticLoader struct {
	snap *model.Snapshot
}

func (l staticLoader) Load(context.Context) *model.Snapshot { return l.snap }

func scenarioSnapshot() *model.Snapshot {
	n := converter.NewNormalizer(nil)
	loadedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	rows := []model.RawRow{
		{"Part Code": "A1", "Equipment Category": "PCT", "Part Name": "Main Pump Assembly", "Current Stock": 5, "Min Required": 10, "Unit Cost": 2.0, "Last Updated": "2025-05-01"},
		{"Part Code": "", "Equipment Category": "PCT", "Part Name": "Seal Kit", "Current Stock": 0, "Min Required": 1, "Unit Cost": 5.0, "Supplier": "PumpCo"},
		{"Part Code": "B2", "Equipment Category": "COMMON_PARTS", "Part Name": "Bolt", "Current Stock": 30, "Min Required": 5, "Unit Cost": 1.0},
	}
	for i := range 57 {
		rows = append(rows, model.RawRow{"Part Code": fmt.Sprintf("F%02d", i), "Part Name": "Filler", "Current Stock": 1})
	}

	snap := &model.Snapshot{LoadedAt: loadedAt, Source: "inventory.xlsx"}
	for i, r := range rows {
		snap.Records = append(snap.Records, n.RecordFromRow(r, i, loadedAt))
	}
	return snap
}

func decode[T any](resp *http.Response) T {
	defer resp.Body.Close()
	var out T
	body, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	Expect(json.Unmarshal(body, &out)).To(Succeed(), string(body))
	return out
}

var _ = Describe("Inventory HTTP API", func() {
	var (
		srv     *httptest.Server
		syncer  *mocks.MockSyncer
		limiter *rate.Limiter
		snap    *model.Snapshot
	)

	BeforeEach(func() {
		snap = scenarioSnapshot()
		store := snapshot.NewStore("inventory.xlsx")
		store.Swap(snap)

		svc := inventory.NewInventoryService(staticLoader{snap: snap}, store, nil, nil)
		syncer = mocks.NewMockSyncer(GinkgoT())
		limiter = rate.NewLimiter(rate.Every(time.Hour), 1)

		r := chi.NewRouter()
		NewInventoryHandler(svc, syncer, limiter).Register(r)
		srv = httptest.NewServer(r)
		DeferCleanup(srv.Close)
	})

	get := func(path string) *http.Response {
		resp, err := http.Get(srv.URL + path)
		Expect(err).NotTo(HaveOccurred())
		return resp
	}

	post := func(path string) *http.Response {
		resp, err := http.Post(srv.URL+path, "application/json", nil)
		Expect(err).NotTo(HaveOccurred())
		return resp
	}

	Context("GET /api/inventory", func() {
		It("paginates with defaults", func() {
			resp := get("/api/inventory")
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(resp.Header.Get("Content-Type")).To(ContainSubstring("application/json"))

			page := decode[pageDTO](resp)
			Expect(page.Data).To(HaveLen(50))
			Expect(page.Pagination).To(Equal(paginationDTO{Page: 1, Limit: 50, Total: 60, TotalPages: 2}))
		})

		It("returns an empty page past the end", func() {
			page := decode[pageDTO](get("/api/inventory?page=7&limit=25"))
			Expect(page.Data).To(BeEmpty())
			Expect(page.Pagination.Total).To(Equal(60))
			Expect(page.Pagination.TotalPages).To(Equal(3))
		})

		It("filters and sorts", func() {
			page := decode[pageDTO](get("/api/inventory?equipment=PCT&sortBy=totalValue&sortOrder=desc"))
			Expect(page.Pagination.Total).To(Equal(2))
			Expect(page.Data[0].ID).To(Equal("A1"))
			Expect(page.Data[0].StockLevel).To(Equal("LOW_STOCK"))
			Expect(page.Data[0].TotalValue).To(BeNumerically("==", 10))
			Expect(page.Data[1].ID).To(HavePrefix("PCT-"))
		})

		It("searches part name and code only", func() {
			page := decode[pageDTO](get("/api/inventory?search=PUMP"))
			Expect(page.Data).To(HaveLen(1))
			Expect(page.Data[0].PartName).To(Equal("Main Pump Assembly"))
		})

		It("ignores unknown sort fields and malformed paging", func() {
			page := decode[pageDTO](get("/api/inventory?sortBy=colour&page=abc&limit=-3"))
			Expect(page.Pagination.Page).To(Equal(1))
			Expect(page.Pagination.Limit).To(Equal(50))
			Expect(page.Data[0].ID).To(Equal("A1"))
		})
	})

	Context("GET /api/search", func() {
		It("also matches supplier", func() {
			page := decode[pageDTO](get("/api/search?q=pump"))
			Expect(page.Pagination.Total).To(Equal(2))
		})
	})

	Context("GET /api/inventory/stats", func() {
		It("summarizes the snapshot", func() {
			st := decode[statsDTO](get("/api/inventory/stats"))
			Expect(st.TotalParts).To(Equal(60))
			Expect(st.OutOfStock).To(Equal(1))
			Expect(st.StockLevelBreakdown).To(HaveLen(4))
			Expect(st.EquipmentBreakdown).To(HaveKey("PCT"))
			Expect(st.EquipmentBreakdown["PCT"].CriticalParts).To(Equal(2))
			Expect(st.RecentActivity).To(HaveLen(10))
			Expect(st.RecentActivity[0].ID).NotTo(Equal("A1"))
		})
	})

	Context("GET /api/inventory/categories", func() {
		It("lists known categories", func() {
			cats := decode[[]string](get("/api/inventory/categories"))
			Expect(cats).To(Equal([]string{"COMMON_PARTS", "PCT"}))
		})
	})

	Context("GET /api/inventory/{id}", func() {
		It("returns the record", func() {
			part := decode[partDTO](get("/api/inventory/B2"))
			Expect(part.PartName).To(Equal("Bolt"))
			Expect(part.StockLevel).To(Equal("HIGH_STOCK"))
		})

		It("returns 404 for an unknown id", func() {
			resp := get("/api/inventory/NOPE")
			Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
			Expect(decode[errorDTO](resp).Code).To(Equal(http.StatusNotFound))
		})
	})

	Context("snapshot and reload", func() {
		It("reports the visible snapshot", func() {
			info := decode[snapshotDTO](get("/api/snapshot"))
			Expect(info.Count).To(Equal(60))
			Expect(info.Source).To(Equal("inventory.xlsx"))
			Expect(info.LoadedAt).To(BeTemporally("==", snap.LoadedAt))
		})

		It("reloads", func() {
			resp := post("/api/inventory/reload")
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			Expect(decode[snapshotDTO](resp).Count).To(Equal(60))
		})
	})

	Context("POST /api/sync", func() {
		It("syncs once and then throttles", func() {
			syncer.On("Sync", mock.Anything).Return(model.SyncResult{Downloaded: true, Bytes: 42, Snapshot: snap}, nil).Once()

			resp := post("/api/sync")
			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			body := decode[syncDTO](resp)
			Expect(body.Downloaded).To(BeTrue())
			Expect(body.Bytes).To(Equal(int64(42)))
			Expect(body.Count).To(Equal(60))

			resp = post("/api/sync")
			Expect(resp.StatusCode).To(Equal(http.StatusTooManyRequests))
		})

		It("maps sync errors", func() {
			syncer.On("Sync", mock.Anything).Return(model.SyncResult{}, model.ErrSyncInProgress).Once()
			Expect(post("/api/sync").StatusCode).To(Equal(http.StatusConflict))

			limiter.SetBurst(2)
			limiter.SetLimit(rate.Inf)
			syncer.On("Sync", mock.Anything).Return(model.SyncResult{}, fmt.Errorf("x: %w", model.ErrDownloadFailed)).Once()
			Expect(post("/api/sync").StatusCode).To(Equal(http.StatusBadGateway))

			syncer.On("Sync", mock.Anything).Return(model.SyncResult{}, errors.New("disk full")).Once()
			Expect(post("/api/sync").StatusCode).To(Equal(http.StatusInternalServerError))
		})
	})
})

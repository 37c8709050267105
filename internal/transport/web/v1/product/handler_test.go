package product

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path"
	"strconv"
	"testing"
	"time"

	"github.com/EgorLis/go-catalog/internal/cacheops"
	"github.com/EgorLis/go-catalog/internal/domain"
)

// ---- фейки ----

type memCache struct {
	data map[string][]byte
	up   bool
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}, up: true} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, error) {
	b, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return b, nil
}
func (m *memCache) Set(_ context.Context, key string, val []byte, _ int) error {
	m.data[key] = val
	return nil
}
func (m *memCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}
func (m *memCache) DelPattern(_ context.Context, pattern string) error {
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.data, k)
		}
	}
	return nil
}
func (m *memCache) Available() bool { return m.up }

type fakeRepo struct {
	products  map[int64]domain.Product
	nextID    int64
	listCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: map[int64]domain.Product{}, nextID: 1}
}

func (f *fakeRepo) CreateProduct(_ context.Context, d domain.ProductDraft) (domain.Product, error) {
	p := domain.Product{
		ID: f.nextID, CategoryID: d.CategoryID, Name: d.Name, Description: d.Description,
		SKU: d.SKU, PriceCents: d.PriceCents, Stock: d.Stock,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	f.products[p.ID] = p
	f.nextID++
	return p, nil
}

func (f *fakeRepo) ProductByID(_ context.Context, id int64) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) UpdateProduct(_ context.Context, id int64, patch domain.ProductPatch) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.CategoryID != nil {
		p.CategoryID = *patch.CategoryID
	}
	f.products[id] = p
	return p, nil
}

func (f *fakeRepo) DeleteProduct(_ context.Context, id int64) (int64, error) {
	p, ok := f.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	delete(f.products, id)
	return p.CategoryID, nil
}

func (f *fakeRepo) ProductsList(_ context.Context, _ domain.ProductFilter, page domain.ListPage) (domain.Page[domain.Product], error) {
	f.listCalls++
	var items []domain.Product
	for id := f.nextID - 1; id >= 1 && len(items) < page.Limit; id-- {
		if page.Cursor != nil && id >= *page.Cursor {
			continue
		}
		if p, ok := f.products[id]; ok {
			items = append(items, p)
		}
	}
	return domain.Page[domain.Product]{Items: items}, nil
}

type fakeAudit struct {
	records []domain.AuditRecord
}

func (f *fakeAudit) AppendAudit(_ context.Context, rec domain.AuditRecord) (domain.AuditRecord, error) {
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeAudit) AuditList(context.Context, domain.ListPage) (domain.Page[domain.AuditEntry], error) {
	return domain.Page[domain.AuditEntry]{}, nil
}

func newHandler(repo *fakeRepo, mc *memCache) (*Handler, *fakeAudit) {
	l := log.New(io.Discard, "", 0)
	au := &fakeAudit{}
	return &Handler{
		Log: l, Repo: repo, Audit: au,
		Aside:   cacheops.NewAside(mc, l, nil),
		Inval:   cacheops.NewInvalidator(mc, l, nil),
		ListTTL: 60, EntityTTL: 300,
	}, au
}

// ---- тесты ----

func TestListBadCursorIs400(t *testing.T) {
	h, _ := newHandler(newFakeRepo(), newMemCache())

	for _, raw := range []string{"abc", "0", "-1"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/products?cursor="+raw, nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("cursor %q: status %d, want 400", raw, rec.Code)
		}
	}
}

func TestListCachesSecondCall(t *testing.T) {
	repo := newFakeRepo()
	_, _ = repo.CreateProduct(context.Background(), domain.ProductDraft{CategoryID: 1, Name: "a", SKU: "A-1"})
	h, _ := newHandler(repo, newMemCache())

	for i := range 2 {
		req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("call %d: status %d", i, rec.Code)
		}
	}
	if repo.listCalls != 1 {
		t.Fatalf("repo hit %d times, want 1 (second read from cache)", repo.listCalls)
	}
}

func TestCreateInvalidatesListsAndParent(t *testing.T) {
	repo := newFakeRepo()
	mc := newMemCache()
	h, au := newHandler(repo, mc)

	// прогреваем кеши, которые обязан смести create
	mc.data["product:list:all:start:20"] = []byte(`{"items":[]}`)
	mc.data["category:one:5"] = []byte(`{"id":5}`)
	mc.data["category:list:all:start:20"] = []byte(`{"items":[]}`)

	body, _ := json.Marshal(domain.ProductDraft{
		CategoryID: 5, Name: "keyboard", SKU: "KB-101", PriceCents: 4999, Stock: 10,
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/products", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d body %s", rec.Code, rec.Body.String())
	}
	for _, k := range []string{
		"product:list:all:start:20", "category:one:5", "category:list:all:start:20",
	} {
		if _, ok := mc.data[k]; ok {
			t.Fatalf("key %q survived create", k)
		}
	}
	if len(au.records) != 1 || au.records[0].Action != domain.AuditCreate {
		t.Fatalf("audit = %+v", au.records)
	}
}

func TestGetNotFoundIs404(t *testing.T) {
	h, _ := newHandler(newFakeRepo(), newMemCache())

	req := httptest.NewRequest(http.MethodGet, "/v1/products/99", nil)
	req.SetPathValue("id", "99")
	rec := httptest.NewRecorder()
	h.Get(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}

func TestGetServedFromCacheAfterFirstRead(t *testing.T) {
	repo := newFakeRepo()
	p, _ := repo.CreateProduct(context.Background(), domain.ProductDraft{CategoryID: 1, Name: "a", SKU: "A-1"})
	mc := newMemCache()
	h, _ := newHandler(repo, mc)

	req := httptest.NewRequest(http.MethodGet, "/v1/products/"+strconv.FormatInt(p.ID, 10), nil)
	req.SetPathValue("id", strconv.FormatInt(p.ID, 10))
	rec := httptest.NewRecorder()
	h.Get(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}

	// запись ушла в кеш под точечным ключом
	if _, ok := mc.data[domain.CacheKeyEntity(domain.EntityProduct, p.ID)]; !ok {
		t.Fatal("entity not cached after read")
	}

	// теперь репозиторий пуст, но чтение обслуживается кешем
	delete(repo.products, p.ID)
	rec = httptest.NewRecorder()
	h.Get(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("cached read: status %d", rec.Code)
	}
}

func TestCacheOutageDegradesToDirectReads(t *testing.T) {
	repo := newFakeRepo()
	_, _ = repo.CreateProduct(context.Background(), domain.ProductDraft{CategoryID: 1, Name: "a", SKU: "A-1"})
	mc := newMemCache()
	mc.up = false
	h, _ := newHandler(repo, mc)

	for i := range 3 {
		req := httptest.NewRequest(http.MethodGet, "/v1/products", nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("call %d: status %d", i, rec.Code)
		}
	}
	if repo.listCalls != 3 {
		t.Fatalf("repo hit %d times, want 3 (cache down)", repo.listCalls)
	}
}

func TestListEnvelopeShape(t *testing.T) {
	repo := newFakeRepo()
	_, _ = repo.CreateProduct(context.Background(), domain.ProductDraft{CategoryID: 1, Name: "a", SKU: "A-1"})
	h, _ := newHandler(repo, newMemCache())

	req := httptest.NewRequest(http.MethodGet, "/v1/products?limit=10", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	var env struct {
		Success    bool              `json:"success"`
		Data       []domain.Product  `json:"data"`
		Pagination domain.Pagination `json:"pagination"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || len(env.Data) != 1 || env.Pagination.Limit != 10 || env.Pagination.HasMore {
		t.Fatalf("envelope = %+v", env)
	}
}

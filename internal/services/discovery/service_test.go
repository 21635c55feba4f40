package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/affiscout/affiscout/internal/ai"
	"github.com/affiscout/affiscout/internal/models"
	"github.com/affiscout/affiscout/internal/repository"
	"github.com/affiscout/affiscout/internal/scraper"
	"github.com/affiscout/affiscout/internal/services/ingest"
	"github.com/affiscout/affiscout/internal/tasks"
)

// memRepo is a minimal in-memory Repository for pipeline tests.
type memRepo struct {
	stores   []*models.AffiliateStore
	products []*models.Product
	nextID   uint
}

var _ repository.Repository = (*memRepo)(nil)

func (r *memRepo) FindStoreByNaturalKey(name, platform string) (*models.AffiliateStore, error) {
	for _, s := range r.stores {
		if s.Name == name && s.Platform == platform {
			return s, nil
		}
	}
	return nil, nil
}

func (r *memRepo) FindStoreByName(name string) (*models.AffiliateStore, error) {
	for _, s := range r.stores {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}

func (r *memRepo) InsertStore(store *models.AffiliateStore) error {
	r.nextID++
	store.ID = r.nextID
	r.stores = append(r.stores, store)
	return nil
}

func (r *memRepo) UpdateStore(store *models.AffiliateStore) error {
	for i, s := range r.stores {
		if s.ID == store.ID {
			r.stores[i] = store
		}
	}
	return nil
}

func (r *memRepo) ListStores(offset, limit int) ([]models.AffiliateStore, error) {
	out := make([]models.AffiliateStore, 0, len(r.stores))
	for _, s := range r.stores {
		out = append(out, *s)
	}
	return out, nil
}

func (r *memRepo) FindProductByNaturalKey(externalID, title, platform string) (*models.Product, error) {
	for _, p := range r.products {
		if externalID != "" && p.ExternalID == externalID && p.Platform == platform {
			return p, nil
		}
		if externalID == "" && p.Title == title && p.Platform == platform {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memRepo) FindProductByID(id uint) (*models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memRepo) InsertProduct(product *models.Product) error {
	r.nextID++
	product.ID = r.nextID
	r.products = append(r.products, product)
	return nil
}

func (r *memRepo) UpdateProduct(product *models.Product) error {
	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = product
		}
	}
	return nil
}

func (r *memRepo) ListProducts(offset, limit int, onlyApproved bool) ([]models.Product, error) {
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if onlyApproved && (p.Approved == nil || !*p.Approved) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

// scriptedLLM replays canned responses in submission order.
type scriptedLLM struct {
	responses []string
	calls     int
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string) (string, error) {
	if s.calls >= len(s.responses) {
		return "", context.Canceled
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

func newTestService(llm ai.Generator, collectorURL string, repo *memRepo) (*Service, *tasks.Manager) {
	var storeAgent *ai.StoreDiscoveryAgent
	var productAgent *ai.ProductScoringAgent
	if llm != nil {
		storeAgent = ai.NewStoreDiscoveryAgent(llm)
		productAgent = ai.NewProductScoringAgent(llm)
	}
	var collector *scraper.Collector
	if collectorURL != "" {
		collector = scraper.NewCollector(collectorURL)
	}
	ing := ingest.NewService(repo)
	tm := tasks.NewManager()
	return NewService(storeAgent, productAgent, collector, ing, tm), tm
}

func TestDiscoverStoresPersistsCandidates(t *testing.T) {
	llm := &scriptedLLM{responses: []string{
		"market research notes",
		"1. Amazon Brasil - https://amazon.com.br/associados - Maior catálogo\n" +
			"2. Shopee Afiliados - https://shopee.com.br/afiliados - Comissões altas\n",
	}}
	repo := &memRepo{}
	svc, _ := newTestService(llm, "", repo)

	result, err := svc.DiscoverStores(context.Background(), "Brasil", "produtos infantis", "junho de 2024")
	if err != nil {
		t.Fatalf("DiscoverStores: %v", err)
	}
	if result.Unstructured {
		t.Fatal("expected structured result")
	}
	if len(result.Stores) != 2 {
		t.Fatalf("expected 2 stores, got %d", len(result.Stores))
	}
	if result.Stores[0].Platform != "amazon" {
		t.Errorf("expected amazon platform, got %q", result.Stores[0].Platform)
	}
	if len(repo.stores) != 2 {
		t.Fatalf("expected 2 persisted stores, got %d", len(repo.stores))
	}
	if llm.calls != 2 {
		t.Errorf("expected research and selection phases, got %d calls", llm.calls)
	}
}

func TestDiscoverStoresUnstructuredFallback(t *testing.T) {
	llm := &scriptedLLM{responses: []string{
		"research",
		"Não encontrei lojas relevantes para esse nicho no momento.",
	}}
	repo := &memRepo{}
	svc, _ := newTestService(llm, "", repo)

	result, err := svc.DiscoverStores(context.Background(), "Brasil", "nicho vazio", "2024")
	if err != nil {
		t.Fatalf("DiscoverStores: %v", err)
	}
	if !result.Unstructured {
		t.Fatal("expected unstructured flag")
	}
	if result.RawResult == "" {
		t.Error("raw result should carry the agent text")
	}
	if len(repo.stores) != 0 {
		t.Errorf("nothing should be persisted, got %d stores", len(repo.stores))
	}
}

func TestDiscoverStoresWithoutAgent(t *testing.T) {
	svc, _ := newTestService(nil, "", &memRepo{})
	if _, err := svc.DiscoverStores(context.Background(), "Brasil", "infantil", "2024"); err == nil {
		t.Fatal("expected configuration error")
	}
}

func TestDiscoverProductsScoresAndLinks(t *testing.T) {
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("store") != "amazon" {
			t.Errorf("unexpected store query %q", r.URL.Query().Get("store"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"external_id": "B0001", "title": "Carrinho de Bebê Compacto", "price": "R$ 899,90", "product_url": "https://amazon.com.br/dp/B0001"},
			{"external_id": "B0002", "title": "Mobile Musical Berço", "price": "R$ 129,90", "product_url": "https://amazon.com.br/dp/B0002"}
		]`))
	}))
	defer collector.Close()

	llm := &scriptedLLM{responses: []string{
		"analysis of the catalog",
		"1. Mobile Musical Berço\n" +
			"Score: 9.4/10\n" +
			"Strengths: preço acessível, alta recompra\n" +
			"Marketing: vídeos curtos de unboxing\n" +
			"2. Carrinho de Bebê Compacto\n" +
			"Score: 8.1/10\n" +
			"Strengths: ticket alto\n" +
			"Marketing: comparativos\n",
	}}

	repo := &memRepo{}
	repo.InsertStore(&models.AffiliateStore{Name: "Amazon Brasil", Platform: "amazon"})
	svc, _ := newTestService(llm, collector.URL, repo)

	result, err := svc.DiscoverProducts(context.Background(), "Amazon Brasil")
	if err != nil {
		t.Fatalf("DiscoverProducts: %v", err)
	}
	if result.Collected != 2 {
		t.Fatalf("expected 2 collected, got %d", result.Collected)
	}
	if len(result.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(result.Products))
	}
	first := result.Products[0]
	if first.Title != "Mobile Musical Berço" || first.Rank != 1 {
		t.Errorf("expected scored ordering, got %q rank %d", first.Title, first.Rank)
	}
	if first.Score != 9.4 {
		t.Errorf("expected score 9.4, got %v", first.Score)
	}
	if first.AffiliateStoreID == nil {
		t.Error("product should be linked to the store")
	}
	if len(repo.products) != 2 {
		t.Fatalf("expected 2 persisted products, got %d", len(repo.products))
	}
}

func TestDiscoverProductsUnknownStore(t *testing.T) {
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer collector.Close()

	svc, _ := newTestService(&scriptedLLM{}, collector.URL, &memRepo{})
	if _, err := svc.DiscoverProducts(context.Background(), "Loja Inexistente"); err == nil {
		t.Fatal("expected not found error")
	}
}

func TestDiscoverStoresAsyncRecordsTask(t *testing.T) {
	llm := &scriptedLLM{responses: []string{
		"research",
		"1. Amazon Brasil - https://amazon.com.br/associados\n",
	}}
	repo := &memRepo{}
	svc, tm := newTestService(llm, "", repo)

	task := svc.DiscoverStoresAsync("Brasil", "infantil", "2024")
	if task.ID == "" {
		t.Fatal("expected task id")
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		snap, ok := tm.Get(task.ID)
		if !ok {
			t.Fatal("task disappeared")
		}
		if snap.Status == tasks.StatusSucceeded {
			break
		}
		if snap.Status == tasks.StatusFailed {
			t.Fatalf("task failed: %s", snap.Error)
		}
		if time.Now().After(deadline) {
			t.Fatalf("task did not finish, status %s", snap.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if len(repo.stores) != 1 {
		t.Fatalf("expected 1 persisted store, got %d", len(repo.stores))
	}
}

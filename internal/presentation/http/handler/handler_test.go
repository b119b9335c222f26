package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/tillpoint/tillpoint-api/internal/application/service"
	"github.com/tillpoint/tillpoint-api/internal/config"
	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
	"github.com/tillpoint/tillpoint-api/internal/domain/repository"
	"github.com/tillpoint/tillpoint-api/internal/presentation/http/middleware"
	"github.com/tillpoint/tillpoint-api/internal/session"
	"github.com/tillpoint/tillpoint-api/pkg/apperror"
	"github.com/tillpoint/tillpoint-api/pkg/document"
	"github.com/tillpoint/tillpoint-api/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Minimal in-memory stand-ins for the remote collaborators.

type stubCatalog struct {
	products map[string]entity.Product
}

func (s *stubCatalog) SearchProducts(ctx context.Context, query repository.ProductQuery) ([]entity.Product, int64, error) {
	var items []entity.Product
	for _, p := range s.products {
		items = append(items, p)
	}
	return items, int64(len(items)), nil
}

func (s *stubCatalog) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, apperror.NewNotFoundError("product")
	}
	return &p, nil
}

type stubDirectory struct{}

func (s *stubDirectory) LookupByPhone(ctx context.Context, phone string) (*entity.CustomerRecord, error) {
	if phone == "0712345678" {
		return &entity.CustomerRecord{ID: "c1", Name: "John Doe", Phone: phone}, nil
	}
	return nil, nil
}

func (s *stubDirectory) Upsert(ctx context.Context, input *entity.CustomerUpsert) (*entity.CustomerRecord, error) {
	return &entity.CustomerRecord{ID: "c1", Name: input.Name, Phone: input.Phone}, nil
}

type stubInvoices struct {
	mu          sync.Mutex
	submissions int
}

func (s *stubInvoices) SubmitInvoice(ctx context.Context, sub *entity.InvoiceSubmission) (*entity.InvoiceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions++
	return &entity.InvoiceResult{Reference: fmt.Sprintf("ref-%d", s.submissions), InvoiceNo: "INV-0001"}, nil
}

func (s *stubInvoices) RecordPayment(ctx context.Context, payment *entity.PaymentRecord) error {
	return nil
}

func (s *stubInvoices) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submissions
}

type stubArchive struct{}

func (s *stubArchive) Save(ctx context.Context, operatorID string, tab *entity.BillingTab) error {
	return nil
}
func (s *stubArchive) Delete(ctx context.Context, operatorID, tabID string) error { return nil }
func (s *stubArchive) ListByOperator(ctx context.Context, operatorID string) ([]entity.BillingTab, error) {
	return nil, nil
}

type memIdempotency struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{entries: make(map[string][]byte)}
}

func (m *memIdempotency) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[key]
	return data, ok, nil
}

func (m *memIdempotency) Set(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = response
	return nil
}

type testEnv struct {
	router     *gin.Engine
	store      *session.Store
	invoices   *stubInvoices
	jwtManager *utils.JWTManager
	token      string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := session.NewStore()
	catalog := &stubCatalog{products: map[string]entity.Product{
		"p1": {ID: "p1", Name: "Widget", Price: 2000, Stock: 5},
	}}
	invoices := &stubInvoices{}
	directory := &stubDirectory{}
	tabArchive := &stubArchive{}
	log := zerolog.Nop()

	terminal := service.NewTerminalService(store, catalog, tabArchive, log)
	catalogSvc := service.NewCatalogService(catalog, nil, 0, log)
	customers := service.NewCustomerService(directory, log)
	checkout := service.NewCheckoutService(store, invoices, directory, tabArchive, log)
	documents := service.NewDocumentService(store, config.BusinessConfig{StoreName: "Test Store"}, document.NewNullPrinter(), 32, log)

	jwtManager := utils.NewJWTManager("test-secret", "tillpoint-api", time.Hour)
	token, err := jwtManager.GenerateToken("op-1", "jane@store.test", "Jane", []string{"cashier"})
	require.NoError(t, err)

	tabHandler := NewTabHandler(terminal)
	checkoutHandler := NewCheckoutHandler(checkout)
	catalogHandler := NewCatalogHandler(catalogSvc)
	customerHandler := NewCustomerHandler(customers)
	documentHandler := NewDocumentHandler(documents)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(jwtManager))

	v1.GET("/session", tabHandler.GetSession)
	v1.POST("/tabs", tabHandler.CreateTab)
	v1.GET("/tabs/:id", tabHandler.GetTab)
	v1.DELETE("/tabs/:id", tabHandler.CloseTab)
	v1.PATCH("/tabs/:id", tabHandler.UpdateTab)
	v1.POST("/tabs/:id/items", tabHandler.AddItem)
	v1.PATCH("/tabs/:id/items/:itemId/quantity", tabHandler.SetItemQuantity)
	v1.DELETE("/tabs/:id/items/:itemId", tabHandler.RemoveItem)
	v1.GET("/tabs/:id/validate", tabHandler.ValidateTab)
	v1.POST("/tabs/:id/checkout", middleware.IdempotencyRequired(newMemIdempotency()), checkoutHandler.Checkout)
	v1.GET("/tabs/:id/documents/pdf", documentHandler.DownloadPDF)
	v1.GET("/products", catalogHandler.SearchProducts)
	v1.GET("/customers/lookup", customerHandler.LookupByPhone)

	return &testEnv{
		router:     router,
		store:      store,
		invoices:   invoices,
		jwtManager: jwtManager,
		token:      token,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.token)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decode pulls the data field out of the response envelope.
func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	if out != nil && len(envelope.Data) > 0 {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
}

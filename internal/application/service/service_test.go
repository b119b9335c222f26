package service

import (
	"context"
	"sync"

	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
	"github.com/tillpoint/tillpoint-api/internal/domain/repository"
	"github.com/tillpoint/tillpoint-api/pkg/apperror"
)

// In-memory fakes for the remote collaborator services.

type fakeCatalog struct {
	mu       sync.Mutex
	products map[string]entity.Product
	searches int
	gate     chan struct{} // when set, SearchProducts blocks until closed
}

func newFakeCatalog(products ...entity.Product) *fakeCatalog {
	f := &fakeCatalog{products: make(map[string]entity.Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeCatalog) SearchProducts(ctx context.Context, query repository.ProductQuery) ([]entity.Product, int64, error) {
	f.mu.Lock()
	f.searches++
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	var items []entity.Product
	for _, p := range f.products {
		items = append(items, p)
	}
	return items, int64(len(items)), nil
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, apperror.NewNotFoundError("product")
	}
	return &p, nil
}

func (f *fakeCatalog) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searches
}

type fakeDirectory struct {
	mu      sync.Mutex
	byPhone map[string]entity.CustomerRecord
	upserts int
	failing bool
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{byPhone: make(map[string]entity.CustomerRecord)}
}

func (f *fakeDirectory) LookupByPhone(ctx context.Context, phone string) (*entity.CustomerRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if record, ok := f.byPhone[phone]; ok {
		return &record, nil
	}
	return nil, nil
}

func (f *fakeDirectory) Upsert(ctx context.Context, input *entity.CustomerUpsert) (*entity.CustomerRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, apperror.NewUpstreamError("customers", "unavailable")
	}
	f.upserts++
	record := entity.CustomerRecord{
		ID:      "cust-" + input.Phone,
		Name:    input.Name,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
	}
	f.byPhone[input.Phone] = record
	return &record, nil
}

type fakeInvoices struct {
	mu          sync.Mutex
	submissions []entity.InvoiceSubmission
	payments    []entity.PaymentRecord
	failing     bool
}

func (f *fakeInvoices) SubmitInvoice(ctx context.Context, submission *entity.InvoiceSubmission) (*entity.InvoiceResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return nil, apperror.NewUpstreamError("invoices", "unavailable")
	}
	f.submissions = append(f.submissions, *submission)
	return &entity.InvoiceResult{Reference: "inv-ref-1", InvoiceNo: "INV-0001"}, nil
}

func (f *fakeInvoices) RecordPayment(ctx context.Context, payment *entity.PaymentRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments = append(f.payments, *payment)
	return nil
}

type fakeArchive struct {
	mu   sync.Mutex
	tabs map[string]map[string]entity.BillingTab // operator -> tabID -> snapshot
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{tabs: make(map[string]map[string]entity.BillingTab)}
}

func (f *fakeArchive) Save(ctx context.Context, operatorID string, tab *entity.BillingTab) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tabs[operatorID] == nil {
		f.tabs[operatorID] = make(map[string]entity.BillingTab)
	}
	f.tabs[operatorID][tab.ID.String()] = *tab.Clone()
	return nil
}

func (f *fakeArchive) Delete(ctx context.Context, operatorID, tabID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tabs[operatorID], tabID)
	return nil
}

func (f *fakeArchive) ListByOperator(ctx context.Context, operatorID string) ([]entity.BillingTab, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var tabs []entity.BillingTab
	for _, tab := range f.tabs[operatorID] {
		tabs = append(tabs, tab)
	}
	return tabs, nil
}

func (f *fakeArchive) count(operatorID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tabs[operatorID])
}
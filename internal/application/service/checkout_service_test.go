package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
	"github.com/tillpoint/tillpoint-api/internal/domain/enum"
	"github.com/tillpoint/tillpoint-api/internal/session"
	"github.com/tillpoint/tillpoint-api/pkg/apperror"
)

type checkoutFixture struct {
	svc       *CheckoutService
	store     *session.Store
	invoices  *fakeInvoices
	directory *fakeDirectory
	archive   *fakeArchive
}

func newCheckout(t *testing.T) *checkoutFixture {
	t.Helper()
	store := session.NewStore()
	invoices := &fakeInvoices{}
	directory := newFakeDirectory()
	archive := newFakeArchive()
	return &checkoutFixture{
		svc:       NewCheckoutService(store, invoices, directory, archive, zerolog.Nop()),
		store:     store,
		invoices:  invoices,
		directory: directory,
		archive:   archive,
	}
}

// readyTab fills the active tab with one 20.00 item, a named customer and a
// 25.00 payment, then returns its ID.
func (f *checkoutFixture) readyTab(t *testing.T) *entity.BillingTab {
	t.Helper()
	tabID := f.store.View(op).ActiveTabID

	_, err := f.store.AddLineItem(op, tabID, &entity.Product{ID: "p1", Name: "Widget", Price: 2000})
	require.NoError(t, err)

	paid := int64(2500)
	tab, err := f.store.UpdateTab(op, tabID, session.UpdateTabInput{
		Customer:     &entity.CustomerInfo{Name: "John Doe", Phone: "0712345678"},
		CustomerPaid: &paid,
	})
	require.NoError(t, err)
	return tab
}

func TestCheckoutSubmitsInvoiceAndRetiresTab(t *testing.T) {
	f := newCheckout(t)
	tab := f.readyTab(t)

	result, err := f.svc.Checkout(context.Background(), op, tab.ID, CheckoutInput{DocumentType: enum.DocumentTypeBill})
	require.NoError(t, err)
	assert.Equal(t, "INV-0001", result.InvoiceNo)
	assert.Equal(t, "inv-ref-1", result.InvoiceReference)

	require.Len(t, f.invoices.submissions, 1)
	sub := f.invoices.submissions[0]
	assert.Equal(t, 20.0, sub.Amounts.SubTotal)
	assert.Equal(t, 3.6, sub.Amounts.Tax)
	assert.Equal(t, 23.6, sub.Amounts.Total)
	assert.Equal(t, op, sub.OperatorReference)
	require.Len(t, sub.LineItems, 1)
	assert.Equal(t, "Widget", sub.LineItems[0].Name)

	require.Len(t, f.invoices.payments, 1)
	assert.Equal(t, 25.0, f.invoices.payments[0].Amount)
	assert.Equal(t, enum.PaymentMethodCash, f.invoices.payments[0].Method)

	// The completed tab is gone; the operator is back on a fresh one.
	view := f.store.View(op)
	require.Len(t, view.Tabs, 1)
	assert.NotEqual(t, tab.ID, view.Tabs[0].ID)
	assert.Empty(t, view.Tabs[0].Items)
}

func TestCheckoutReturnsFinalizedSnapshot(t *testing.T) {
	f := newCheckout(t)
	tab := f.readyTab(t)

	result, err := f.svc.Checkout(context.Background(), op, tab.ID, CheckoutInput{DocumentType: enum.DocumentTypeBill})
	require.NoError(t, err)

	// The response carries the tab that was billed, not the fresh
	// replacement the operator lands on next.
	completed := result.CompletedTab
	require.NotNil(t, completed)
	assert.Equal(t, tab.ID, completed.ID)
	assert.Equal(t, "INV-0001", completed.InvoiceNo)
	require.Len(t, completed.Items, 1)
	assert.Equal(t, "Widget", completed.Items[0].Name)
	assert.Equal(t, int64(2000), completed.Summary.SubTotal)
	assert.Equal(t, int64(2360), completed.Summary.GrandTotal)
	assert.Equal(t, int64(140), completed.Summary.ChangeDue)
	assert.Equal(t, "John Doe", completed.Customer.Name)
}

func TestCheckoutRejectsInvalidTab(t *testing.T) {
	f := newCheckout(t)
	tabID := f.store.View(op).ActiveTabID

	_, err := f.svc.Checkout(context.Background(), op, tabID, CheckoutInput{})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.NotEmpty(t, appErr.Errors)
	assert.Empty(t, f.invoices.submissions)
}

func TestCheckoutKeepsTabWhenUpstreamFails(t *testing.T) {
	f := newCheckout(t)
	tab := f.readyTab(t)
	f.invoices.failing = true

	_, err := f.svc.Checkout(context.Background(), op, tab.ID, CheckoutInput{})
	require.Error(t, err)

	// Nothing was lost; the tab is still there with its items.
	kept, err := f.store.Tab(op, tab.ID)
	require.NoError(t, err)
	assert.Len(t, kept.Items, 1)
	assert.Equal(t, "John Doe", kept.Customer.Name)
}

func TestCheckoutSaveCustomerLinksDirectoryRecord(t *testing.T) {
	f := newCheckout(t)
	tab := f.readyTab(t)

	_, err := f.svc.Checkout(context.Background(), op, tab.ID, CheckoutInput{
		DocumentType: enum.DocumentTypeBill,
		SaveCustomer: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.directory.upserts)
	require.Len(t, f.invoices.submissions, 1)
	ref := f.invoices.submissions[0].CustomerReference
	require.NotNil(t, ref)
	assert.Equal(t, "cust-0712345678", *ref)
}

func TestCheckoutAbortsWhenCustomerSaveFails(t *testing.T) {
	f := newCheckout(t)
	tab := f.readyTab(t)
	f.directory.failing = true

	_, err := f.svc.Checkout(context.Background(), op, tab.ID, CheckoutInput{SaveCustomer: true})
	require.Error(t, err)
	assert.Empty(t, f.invoices.submissions)

	_, err = f.store.Tab(op, tab.ID)
	assert.NoError(t, err)
}

func TestCheckoutEstimateSkipsPayment(t *testing.T) {
	f := newCheckout(t)
	tab := f.readyTab(t)

	_, err := f.svc.Checkout(context.Background(), op, tab.ID, CheckoutInput{DocumentType: enum.DocumentTypeEstimate})
	require.NoError(t, err)

	require.Len(t, f.invoices.submissions, 1)
	assert.Equal(t, enum.DocumentTypeEstimate, f.invoices.submissions[0].DocumentType)
	assert.Empty(t, f.invoices.payments)
}

func TestCheckoutDropsArchivedSnapshot(t *testing.T) {
	f := newCheckout(t)
	tab := f.readyTab(t)
	require.NoError(t, f.archive.Save(context.Background(), op, tab))

	_, err := f.svc.Checkout(context.Background(), op, tab.ID, CheckoutInput{})
	require.NoError(t, err)
	assert.Equal(t, 0, f.archive.count(op))
}

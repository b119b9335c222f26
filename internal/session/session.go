package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
	"github.com/tillpoint/tillpoint-api/internal/domain/enum"
)

// UpdateTabInput is a partial, shallow-merge update of a tab. Nil fields are
// left untouched; non-nil fields replace the corresponding tab field. Totals
// are recomputed after the merge.
type UpdateTabInput struct {
	Customer      *entity.CustomerInfo
	Items         *[]entity.LineItem
	OrderType     *enum.OrderType
	PaymentMethod *enum.PaymentMethod

	// Summary adjustments, cents.
	Discount        *int64
	DeliveryCharge  *int64
	ContainerCharge *int64
	CustomerPaid    *int64
	Tip             *int64

	// TaxOverride pins the tax to an explicit figure; ClearTaxOverride
	// returns the tab to the derived flat-rate tax.
	TaxOverride      *int64
	ClearTaxOverride bool
}

// operatorSession is one operator's working set of tabs. It is not safe for
// concurrent use; the Store serializes access.
type operatorSession struct {
	operatorID string
	tabs       []*entity.BillingTab // working-set order
	activeID   uuid.UUID
	now        func() time.Time
}

func newOperatorSession(operatorID string, now func() time.Time) *operatorSession {
	s := &operatorSession{operatorID: operatorID, now: now}
	s.createTab()
	return s
}

func newTab(now time.Time) *entity.BillingTab {
	id := uuid.New()
	return &entity.BillingTab{
		ID:            id,
		InvoiceNo:     fmt.Sprintf("INV-%s", id.String()[:8]),
		Items:         []entity.LineItem{},
		OrderType:     enum.OrderTypePickup,
		PaymentMethod: enum.PaymentMethodCash,
		CreatedAt:     now,
		LastActivity:  now,
	}
}

// createTab appends an empty tab and makes it active. The previously active
// tab's timestamps are untouched.
func (s *operatorSession) createTab() *entity.BillingTab {
	tab := newTab(s.now())
	s.tabs = append(s.tabs, tab)
	s.activeID = tab.ID
	return tab
}

func (s *operatorSession) tab(id uuid.UUID) (*entity.BillingTab, error) {
	for _, t := range s.tabs {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, ErrTabNotFound
}

func (s *operatorSession) activeTab() *entity.BillingTab {
	t, _ := s.tab(s.activeID)
	return t
}

// closeTab removes the tab from the working set. The working set must retain
// at least one tab afterwards; closing the only tab is refused. Operator
// confirmation for tabs with content is the caller's precondition, not
// enforced here.
func (s *operatorSession) closeTab(id uuid.UUID) error {
	if _, err := s.tab(id); err != nil {
		return err
	}
	if len(s.tabs) == 1 {
		return ErrLastTab
	}
	s.remove(id)
	return nil
}

// completeTab removes a finalized tab. Unlike closeTab it never refuses:
// when the finalized tab was the only one, a fresh empty tab replaces it so
// the working set stays non-empty.
func (s *operatorSession) completeTab(id uuid.UUID) (*entity.BillingTab, error) {
	if _, err := s.tab(id); err != nil {
		return nil, err
	}
	s.remove(id)
	if len(s.tabs) == 0 {
		return s.createTab(), nil
	}
	return s.activeTab(), nil
}

func (s *operatorSession) remove(id uuid.UUID) {
	for i, t := range s.tabs {
		if t.ID == id {
			s.tabs = append(s.tabs[:i], s.tabs[i+1:]...)
			break
		}
	}
	if s.activeID == id && len(s.tabs) > 0 {
		// Activation falls over to the first remaining tab in working-set order.
		s.activeID = s.tabs[0].ID
		s.tabs[0].LastActivity = s.now()
	}
}

func (s *operatorSession) setActive(id uuid.UUID) (*entity.BillingTab, error) {
	tab, err := s.tab(id)
	if err != nil {
		return nil, err
	}
	s.activeID = id
	tab.LastActivity = s.now()
	return tab, nil
}

// setPaused toggles the hold flag. It does not change which tab is active;
// the hold flow pairs it with createTab.
func (s *operatorSession) setPaused(id uuid.UUID, paused bool) (*entity.BillingTab, error) {
	tab, err := s.tab(id)
	if err != nil {
		return nil, err
	}
	tab.IsPaused = paused
	tab.LastActivity = s.now()
	return tab, nil
}

// updateTab shallow-merges the input into the tab and recomputes totals.
func (s *operatorSession) updateTab(id uuid.UUID, input UpdateTabInput) (*entity.BillingTab, error) {
	tab, err := s.tab(id)
	if err != nil {
		return nil, err
	}

	if input.Customer != nil {
		tab.Customer = *input.Customer
	}
	if input.Items != nil {
		items := make([]entity.LineItem, len(*input.Items))
		copy(items, *input.Items)
		for i := range items {
			if items[i].ID == uuid.Nil {
				items[i].ID = uuid.New()
			}
			if items[i].Quantity < 1 {
				items[i].Quantity = 1
			}
			lineAmount(&items[i])
		}
		tab.Items = items
	}
	if input.OrderType != nil {
		tab.OrderType = *input.OrderType
	}
	if input.PaymentMethod != nil {
		tab.PaymentMethod = *input.PaymentMethod
	}
	if input.Discount != nil {
		tab.Summary.Discount = *input.Discount
	}
	if input.DeliveryCharge != nil {
		tab.Summary.DeliveryCharge = *input.DeliveryCharge
	}
	if input.ContainerCharge != nil {
		tab.Summary.ContainerCharge = *input.ContainerCharge
	}
	if input.CustomerPaid != nil {
		tab.Summary.CustomerPaid = *input.CustomerPaid
	}
	if input.Tip != nil {
		tab.Summary.Tip = *input.Tip
	}
	if input.ClearTaxOverride {
		tab.Summary.TaxOverridden = false
	} else if input.TaxOverride != nil {
		tab.Summary.Tax = *input.TaxOverride
		tab.Summary.TaxOverridden = true
	}

	tab.Summary = Recompute(tab)
	tab.LastActivity = s.now()
	return tab, nil
}

// addLineItem inserts a row copied from the product snapshot. A row already
// referencing the same product merges instead: its quantity is incremented
// by one and no duplicate row appears.
func (s *operatorSession) addLineItem(id uuid.UUID, product *entity.Product) (*entity.BillingTab, error) {
	tab, err := s.tab(id)
	if err != nil {
		return nil, err
	}

	merged := false
	if product.ID != "" {
		for i := range tab.Items {
			if tab.Items[i].ProductID == product.ID {
				tab.Items[i].Quantity++
				lineAmount(&tab.Items[i])
				merged = true
				break
			}
		}
	}
	if !merged {
		item := entity.LineItem{
			ID:        uuid.New(),
			ProductID: product.ID,
			SKU:       product.SKU,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  1,
		}
		lineAmount(&item)
		tab.Items = append(tab.Items, item)
	}

	tab.Summary = Recompute(tab)
	tab.LastActivity = s.now()
	return tab, nil
}

// setItemQuantity clamps the new quantity to a floor of 1. Removal is only
// ever explicit, via removeItem.
func (s *operatorSession) setItemQuantity(id, itemID uuid.UUID, quantity int) (*entity.BillingTab, error) {
	tab, err := s.tab(id)
	if err != nil {
		return nil, err
	}
	if quantity < 1 {
		quantity = 1
	}
	found := false
	for i := range tab.Items {
		if tab.Items[i].ID == itemID {
			tab.Items[i].Quantity = quantity
			lineAmount(&tab.Items[i])
			found = true
			break
		}
	}
	if !found {
		return nil, ErrItemNotFound
	}
	tab.Summary = Recompute(tab)
	tab.LastActivity = s.now()
	return tab, nil
}

func (s *operatorSession) setItemNote(id, itemID uuid.UUID, note string) (*entity.BillingTab, error) {
	tab, err := s.tab(id)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range tab.Items {
		if tab.Items[i].ID == itemID {
			tab.Items[i].Note = note
			found = true
			break
		}
	}
	if !found {
		return nil, ErrItemNotFound
	}
	tab.LastActivity = s.now()
	return tab, nil
}

func (s *operatorSession) removeItem(id, itemID uuid.UUID) (*entity.BillingTab, error) {
	tab, err := s.tab(id)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range tab.Items {
		if tab.Items[i].ID == itemID {
			tab.Items = append(tab.Items[:i], tab.Items[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return nil, ErrItemNotFound
	}
	tab.Summary = Recompute(tab)
	tab.LastActivity = s.now()
	return tab, nil
}

// restoreTab reinstates an archived tab (e.g. a held customer recovered
// after a terminal restart). The tab keeps its identity and contents and is
// appended to the working set without stealing activation.
func (s *operatorSession) restoreTab(tab *entity.BillingTab) (*entity.BillingTab, error) {
	if _, err := s.tab(tab.ID); err == nil {
		return nil, fmt.Errorf("session: tab %s already present", tab.ID)
	}
	restored := tab.Clone()
	restored.Summary = Recompute(restored)
	restored.LastActivity = s.now()
	s.tabs = append(s.tabs, restored)
	return restored, nil
}

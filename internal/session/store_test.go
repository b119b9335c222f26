package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
	"github.com/tillpoint/tillpoint-api/internal/domain/enum"
)

const op = "operator-1"

func cents(v float64) int64 { return int64(v * 100) }

func i64(v int64) *int64 { return &v }

func testProduct(id string, price int64) *entity.Product {
	return &entity.Product{ID: id, Name: "Product " + id, Price: price, SKU: "SKU-" + id}
}

func TestSessionStartsWithOneEmptyActiveTab(t *testing.T) {
	st := NewStore()

	view := st.View(op)
	require.Len(t, view.Tabs, 1)
	assert.Equal(t, view.Tabs[0].ID, view.ActiveTabID)
	assert.Empty(t, view.Tabs[0].Items)
	assert.NotEmpty(t, view.Tabs[0].InvoiceNo)
	assert.False(t, view.Tabs[0].IsPaused)
}

func TestCreateTabMakesNewestActive(t *testing.T) {
	st := NewStore()

	st.CreateTab(op)
	second := st.CreateTab(op)

	view := st.View(op)
	require.Len(t, view.Tabs, 3)
	assert.Equal(t, second.ID, view.ActiveTabID)
}

func TestCloseLastTabRefused(t *testing.T) {
	st := NewStore()

	view := st.View(op)
	err := st.CloseTab(op, view.Tabs[0].ID)
	require.ErrorIs(t, err, ErrLastTab)

	// Exactly one tab remains.
	assert.Len(t, st.View(op).Tabs, 1)
}

func TestCloseActiveTabFallsOverToFirstRemaining(t *testing.T) {
	st := NewStore()

	first := st.View(op).Tabs[0]
	second := st.CreateTab(op)

	require.NoError(t, st.CloseTab(op, second.ID))

	view := st.View(op)
	require.Len(t, view.Tabs, 1)
	assert.Equal(t, first.ID, view.ActiveTabID)
}

func TestCloseUnknownTab(t *testing.T) {
	st := NewStore()

	err := st.CloseTab(op, uuid.New())
	assert.ErrorIs(t, err, ErrTabNotFound)
}

// P2: the active pointer always refers to a present tab, across an arbitrary
// create/close sequence.
func TestActivePointerAlwaysValid(t *testing.T) {
	st := NewStore()

	check := func() {
		view := st.View(op)
		found := false
		for _, tab := range view.Tabs {
			if tab.ID == view.ActiveTabID {
				found = true
			}
		}
		require.True(t, found, "active tab %s missing from working set", view.ActiveTabID)
		require.NotEmpty(t, view.Tabs)
	}

	a := st.View(op).Tabs[0]
	b := st.CreateTab(op)
	check()
	c := st.CreateTab(op)
	check()
	_, err := st.SetActiveTab(op, b.ID)
	require.NoError(t, err)
	check()
	require.NoError(t, st.CloseTab(op, b.ID))
	check()
	require.NoError(t, st.CloseTab(op, c.ID))
	check()
	require.ErrorIs(t, st.CloseTab(op, a.ID), ErrLastTab)
	check()
}

func TestSetActiveUnknownTabIsNoOp(t *testing.T) {
	st := NewStore()
	before := st.View(op)

	_, err := st.SetActiveTab(op, uuid.New())
	require.ErrorIs(t, err, ErrTabNotFound)
	assert.Equal(t, before.ActiveTabID, st.View(op).ActiveTabID)
}

func TestSwitchingTabsDoesNotMutateOthers(t *testing.T) {
	st := NewStore()

	first := st.View(op).Tabs[0]
	_, err := st.AddLineItem(op, first.ID, testProduct("p1", cents(10)))
	require.NoError(t, err)
	withItems, err := st.Tab(op, first.ID)
	require.NoError(t, err)

	second := st.CreateTab(op)
	_, err = st.SetActiveTab(op, first.ID)
	require.NoError(t, err)
	_, err = st.SetActiveTab(op, second.ID)
	require.NoError(t, err)

	after, err := st.Tab(op, first.ID)
	require.NoError(t, err)
	assert.Equal(t, withItems.Items, after.Items)
	assert.Equal(t, withItems.Summary, after.Summary)
	assert.Equal(t, withItems.Customer, after.Customer)
}

// Scenario: pause the active tab, then open a fresh one. The paused tab keeps
// its contents untouched; the new tab is empty and active.
func TestHoldFlow(t *testing.T) {
	st := NewStore()

	first := st.View(op).Tabs[0]
	_, err := st.AddLineItem(op, first.ID, testProduct("p1", cents(12.50)))
	require.NoError(t, err)
	_, err = st.UpdateTab(op, first.ID, UpdateTabInput{
		Customer: &entity.CustomerInfo{Name: "Asha", Phone: "0712000111"},
	})
	require.NoError(t, err)

	held, fresh, err := st.HoldTab(op, first.ID)
	require.NoError(t, err)

	assert.True(t, held.IsPaused)
	assert.Equal(t, "Asha", held.Customer.Name)
	require.Len(t, held.Items, 1)

	view := st.View(op)
	assert.Len(t, view.Tabs, 2)
	assert.Equal(t, fresh.ID, view.ActiveTabID)
	assert.Empty(t, fresh.Items)

	resumed, err := st.ResumeTab(op, held.ID)
	require.NoError(t, err)
	assert.False(t, resumed.IsPaused)
}

// Scenario: the 18% convention. Item 20.00 x1, paid 25.00.
func TestTotalsWithDerivedTaxAndChange(t *testing.T) {
	st := NewStore()
	tabID := st.View(op).Tabs[0].ID

	tab, err := st.AddLineItem(op, tabID, testProduct("p1", cents(20)))
	require.NoError(t, err)
	assert.Equal(t, cents(20), tab.Summary.SubTotal)
	assert.Equal(t, cents(3.60), tab.Summary.Tax)
	assert.Equal(t, cents(23.60), tab.Summary.GrandTotal)

	tab, err = st.UpdateTab(op, tabID, UpdateTabInput{CustomerPaid: i64(cents(25))})
	require.NoError(t, err)
	assert.Equal(t, cents(1.40), tab.Summary.ChangeDue)
}

func TestTaxOverrideWinsUntilCleared(t *testing.T) {
	st := NewStore()
	tabID := st.View(op).Tabs[0].ID

	_, err := st.AddLineItem(op, tabID, testProduct("p1", cents(100)))
	require.NoError(t, err)

	tab, err := st.UpdateTab(op, tabID, UpdateTabInput{TaxOverride: i64(cents(5))})
	require.NoError(t, err)
	assert.Equal(t, cents(5), tab.Summary.Tax)
	assert.True(t, tab.Summary.TaxOverridden)
	assert.Equal(t, cents(105), tab.Summary.GrandTotal)

	// The override survives unrelated mutations.
	tab, err = st.AddLineItem(op, tabID, testProduct("p2", cents(50)))
	require.NoError(t, err)
	assert.Equal(t, cents(5), tab.Summary.Tax)

	tab, err = st.UpdateTab(op, tabID, UpdateTabInput{ClearTaxOverride: true})
	require.NoError(t, err)
	assert.False(t, tab.Summary.TaxOverridden)
	assert.Equal(t, cents(27), tab.Summary.Tax) // 18% of 150.00
}

// P4: grandTotal = subTotal - discount + tax + delivery + container.
func TestGrandTotalComposition(t *testing.T) {
	st := NewStore()
	tabID := st.View(op).Tabs[0].ID

	_, err := st.AddLineItem(op, tabID, testProduct("p1", cents(100)))
	require.NoError(t, err)

	tab, err := st.UpdateTab(op, tabID, UpdateTabInput{
		Discount:        i64(cents(10)),
		DeliveryCharge:  i64(cents(5)),
		ContainerCharge: i64(cents(2)),
	})
	require.NoError(t, err)

	// 100 - 10 + 18 + 5 + 2
	assert.Equal(t, cents(115), tab.Summary.GrandTotal)
}

// P5: change is never negative.
func TestChangeNeverNegative(t *testing.T) {
	st := NewStore()
	tabID := st.View(op).Tabs[0].ID

	_, err := st.AddLineItem(op, tabID, testProduct("p1", cents(100)))
	require.NoError(t, err)

	tab, err := st.UpdateTab(op, tabID, UpdateTabInput{CustomerPaid: i64(cents(50))})
	require.NoError(t, err)
	assert.Equal(t, int64(0), tab.Summary.ChangeDue)
}

// Scenario: adding the same product twice merges into one row with qty 2.
func TestAddLineItemMergesDuplicateProduct(t *testing.T) {
	st := NewStore()
	tabID := st.View(op).Tabs[0].ID

	p := testProduct("p1", cents(20))
	_, err := st.AddLineItem(op, tabID, p)
	require.NoError(t, err)
	tab, err := st.AddLineItem(op, tabID, p)
	require.NoError(t, err)

	require.Len(t, tab.Items, 1)
	assert.Equal(t, 2, tab.Items[0].Quantity)
	assert.Equal(t, cents(40), tab.Items[0].Amount)
	assert.Equal(t, 2, tab.Summary.TotalQuantity)
}

func TestAddLineItemWithoutProductIDAlwaysAppends(t *testing.T) {
	st := NewStore()
	tabID := st.View(op).Tabs[0].ID

	manual := &entity.Product{Name: "Open item", Price: cents(5)}
	_, err := st.AddLineItem(op, tabID, manual)
	require.NoError(t, err)
	tab, err := st.AddLineItem(op, tabID, manual)
	require.NoError(t, err)

	assert.Len(t, tab.Items, 2)
}

// P3 + P7: amounts track unitPrice*quantity and quantity clamps at 1.
func TestSetLineItemQuantityClampsAndRecomputes(t *testing.T) {
	st := NewStore()
	tabID := st.View(op).Tabs[0].ID

	tab, err := st.AddLineItem(op, tabID, testProduct("p1", cents(7.25)))
	require.NoError(t, err)
	itemID := tab.Items[0].ID

	tab, err = st.SetLineItemQuantity(op, tabID, itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, tab.Items[0].Quantity)
	assert.Equal(t, cents(29), tab.Items[0].Amount)

	tab, err = st.SetLineItemQuantity(op, tabID, itemID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, tab.Items[0].Quantity)
	assert.Equal(t, cents(7.25), tab.Items[0].Amount)

	tab, err = st.SetLineItemQuantity(op, tabID, itemID, -3)
	require.NoError(t, err)
	assert.Equal(t, 1, tab.Items[0].Quantity)
}

func TestRemoveLineItemRecomputesSummary(t *testing.T) {
	st := NewStore()
	tabID := st.View(op).Tabs[0].ID

	tab, err := st.AddLineItem(op, tabID, testProduct("p1", cents(20)))
	require.NoError(t, err)
	tab, err = st.AddLineItem(op, tabID, testProduct("p2", cents(30)))
	require.NoError(t, err)

	tab, err = st.RemoveLineItem(op, tabID, tab.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, tab.Items, 1)
	assert.Equal(t, cents(30), tab.Summary.SubTotal)

	_, err = st.RemoveLineItem(op, tabID, uuid.New())
	assert.ErrorIs(t, err, ErrItemNotFound)
}

// P6: a partial update changes only the targeted fields (plus LastActivity);
// other tabs are untouched.
func TestUpdateTabIsShallowMerge(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	st := NewStoreWithClock(func() time.Time { return now })

	firstID := st.View(op).Tabs[0].ID
	_, err := st.AddLineItem(op, firstID, testProduct("p1", cents(20)))
	require.NoError(t, err)
	_, err = st.UpdateTab(op, firstID, UpdateTabInput{
		Customer: &entity.CustomerInfo{Name: "Original", Phone: "0700000000"},
	})
	require.NoError(t, err)

	second := st.CreateTab(op)
	otherBefore, err := st.Tab(op, second.ID)
	require.NoError(t, err)

	before, err := st.Tab(op, firstID)
	require.NoError(t, err)

	updatedCustomer := before.Customer
	updatedCustomer.Name = "Jane"
	now = now.Add(time.Minute)
	after, err := st.UpdateTab(op, firstID, UpdateTabInput{Customer: &updatedCustomer})
	require.NoError(t, err)

	assert.Equal(t, "Jane", after.Customer.Name)
	assert.Equal(t, before.Customer.Phone, after.Customer.Phone)
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.Summary, after.Summary)
	assert.Equal(t, before.OrderType, after.OrderType)
	assert.Equal(t, before.PaymentMethod, after.PaymentMethod)
	assert.True(t, after.LastActivity.After(before.LastActivity))

	otherAfter, err := st.Tab(op, second.ID)
	require.NoError(t, err)
	assert.Equal(t, otherBefore, otherAfter)
}

func TestUpdateTabReplacesItemsWhenProvided(t *testing.T) {
	st := NewStore()
	tabID := st.View(op).Tabs[0].ID

	items := []entity.LineItem{
		{Name: "Custom", UnitPrice: cents(9.99), Quantity: 0},
	}
	tab, err := st.UpdateTab(op, tabID, UpdateTabInput{Items: &items})
	require.NoError(t, err)

	require.Len(t, tab.Items, 1)
	assert.NotEqual(t, uuid.Nil, tab.Items[0].ID)
	assert.Equal(t, 1, tab.Items[0].Quantity) // clamped
	assert.Equal(t, cents(9.99), tab.Items[0].Amount)
	assert.Equal(t, cents(9.99), tab.Summary.SubTotal)
}

func TestCompleteTabReplacesLastTabWithFreshOne(t *testing.T) {
	st := NewStore()
	tabID := st.View(op).Tabs[0].ID

	_, err := st.AddLineItem(op, tabID, testProduct("p1", cents(10)))
	require.NoError(t, err)

	active, err := st.CompleteTab(op, tabID)
	require.NoError(t, err)

	view := st.View(op)
	require.Len(t, view.Tabs, 1)
	assert.Equal(t, active.ID, view.ActiveTabID)
	assert.NotEqual(t, tabID, active.ID)
	assert.Empty(t, active.Items)
}

func TestCompleteTabFallsOverWhenOthersRemain(t *testing.T) {
	st := NewStore()
	first := st.View(op).Tabs[0]
	second := st.CreateTab(op)

	active, err := st.CompleteTab(op, second.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)
	assert.Len(t, st.View(op).Tabs, 1)
}

func TestTabLabelFallbacks(t *testing.T) {
	tab := &entity.BillingTab{ID: uuid.New()}
	assert.Contains(t, tab.Label(), "Tab ")

	tab.Customer.Phone = "0712345678"
	assert.Equal(t, "0712345678", tab.Label())

	tab.Customer.Name = "Jane"
	assert.Equal(t, "Jane", tab.Label())
}

func TestRestoreTab(t *testing.T) {
	st := NewStore()
	tabID := st.View(op).Tabs[0].ID

	held, err := st.AddLineItem(op, tabID, testProduct("p1", cents(10)))
	require.NoError(t, err)

	// Restoring an ID already in the working set is refused.
	_, err = st.RestoreTab(op, held)
	require.Error(t, err)

	archived := held.Clone()
	require.NoError(t, st.CloseTab(op, st.CreateTab(op).ID)) // keep >1 then close
	_, err = st.CompleteTab(op, tabID)
	require.NoError(t, err)

	restored, err := st.RestoreTab(op, archived)
	require.NoError(t, err)
	assert.Equal(t, archived.ID, restored.ID)
	assert.Equal(t, archived.Items, restored.Items)

	// Restore does not steal activation.
	assert.NotEqual(t, restored.ID, st.View(op).ActiveTabID)
}

func TestTabsAreIsolatedPerOperator(t *testing.T) {
	st := NewStore()

	st.CreateTab("op-a")
	viewA := st.View("op-a")
	viewB := st.View("op-b")

	assert.Len(t, viewA.Tabs, 2)
	assert.Len(t, viewB.Tabs, 1)
}

func TestReturnedTabsAreCopies(t *testing.T) {
	st := NewStore()
	tabID := st.View(op).Tabs[0].ID

	tab, err := st.AddLineItem(op, tabID, testProduct("p1", cents(10)))
	require.NoError(t, err)

	tab.Items[0].Quantity = 99
	tab.Customer.Name = "mutated"

	fresh, err := st.Tab(op, tabID)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Items[0].Quantity)
	assert.Empty(t, fresh.Customer.Name)
}

func TestValidateForCheckout(t *testing.T) {
	tab := newTab(time.Now())
	issues := ValidateForCheckout(tab)
	require.NotEmpty(t, issues)

	fields := make(map[string]bool)
	for _, issue := range issues {
		fields[issue.Field] = true
	}
	assert.True(t, fields["customer.name"])
	assert.True(t, fields["items"])

	tab.Customer.Name = "Jane"
	tab.Customer.Zip = "12ab"
	tab.Items = []entity.LineItem{{ID: uuid.New(), Name: "x", UnitPrice: 100, Quantity: 1, Amount: 100}}
	tab.OrderType = enum.OrderTypeDelivery

	issues = ValidateForCheckout(tab)
	fields = make(map[string]bool)
	for _, issue := range issues {
		fields[issue.Field] = true
	}
	assert.True(t, fields["customer.zip"])
	assert.True(t, fields["customer.address"])
	assert.False(t, fields["customer.name"])

	tab.Customer.Zip = "00100"
	tab.Customer.Address = "Main St 1"
	assert.Empty(t, ValidateForCheckout(tab))
}

package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
)

// Store owns every operator's billing session: the working set of in-progress
// tabs and which one is active. All state is in memory; the remote services
// only ever see finalized data.
//
// Handlers run on concurrent goroutines, so the store serializes operations
// with a mutex. Each operation fully applies before returning, preserving
// the caller-visible atomicity of the original single-threaded model. Tabs
// returned to callers are deep copies.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*operatorSession
	now      func() time.Time
}

// NewStore creates an empty session store using wall-clock time.
func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock creates a session store with an injectable clock.
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{
		sessions: make(map[string]*operatorSession),
		now:      now,
	}
}

// session returns the operator's session, creating it with one empty tab on
// first touch so the non-empty invariant holds from the first request.
func (st *Store) session(operatorID string) *operatorSession {
	s, ok := st.sessions[operatorID]
	if !ok {
		s = newOperatorSession(operatorID, st.now)
		st.sessions[operatorID] = s
	}
	return s
}

// SessionView is a read snapshot of one operator's working set.
type SessionView struct {
	Tabs        []entity.BillingTab `json:"tabs"`
	ActiveTabID uuid.UUID           `json:"active_tab_id"`
}

// View returns a deep-copied snapshot of the operator's tabs.
func (st *Store) View(operatorID string) SessionView {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.session(operatorID)
	view := SessionView{
		Tabs:        make([]entity.BillingTab, 0, len(s.tabs)),
		ActiveTabID: s.activeID,
	}
	for _, t := range s.tabs {
		view.Tabs = append(view.Tabs, *t.Clone())
	}
	return view
}

// Tab returns a deep copy of one tab.
func (st *Store) Tab(operatorID string, tabID uuid.UUID) (*entity.BillingTab, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	tab, err := st.session(operatorID).tab(tabID)
	if err != nil {
		return nil, err
	}
	return tab.Clone(), nil
}

// ActiveTab returns a deep copy of the operator's active tab.
func (st *Store) ActiveTab(operatorID string) *entity.BillingTab {
	st.mu.Lock()
	defer st.mu.Unlock()

	return st.session(operatorID).activeTab().Clone()
}

// CreateTab opens a fresh empty tab and makes it active.
func (st *Store) CreateTab(operatorID string) *entity.BillingTab {
	st.mu.Lock()
	defer st.mu.Unlock()

	return st.session(operatorID).createTab().Clone()
}

// CloseTab removes a tab. Closing the only remaining tab returns ErrLastTab
// and leaves the working set untouched.
func (st *Store) CloseTab(operatorID string, tabID uuid.UUID) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	return st.session(operatorID).closeTab(tabID)
}

// CompleteTab removes a finalized tab, replacing it with a fresh empty tab
// when it was the last one. Returns the tab that is active afterwards.
func (st *Store) CompleteTab(operatorID string, tabID uuid.UUID) (*entity.BillingTab, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	active, err := st.session(operatorID).completeTab(tabID)
	if err != nil {
		return nil, err
	}
	return active.Clone(), nil
}

// SetActiveTab switches activation and refreshes the target's last-activity
// timestamp. Other tabs are not mutated.
func (st *Store) SetActiveTab(operatorID string, tabID uuid.UUID) (*entity.BillingTab, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	tab, err := st.session(operatorID).setActive(tabID)
	if err != nil {
		return nil, err
	}
	return tab.Clone(), nil
}

// PauseTab marks a tab held. The tab stays in the working set and remains
// selectable; activation is unchanged.
func (st *Store) PauseTab(operatorID string, tabID uuid.UUID) (*entity.BillingTab, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	tab, err := st.session(operatorID).setPaused(tabID, true)
	if err != nil {
		return nil, err
	}
	return tab.Clone(), nil
}

// ResumeTab clears the hold flag.
func (st *Store) ResumeTab(operatorID string, tabID uuid.UUID) (*entity.BillingTab, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	tab, err := st.session(operatorID).setPaused(tabID, false)
	if err != nil {
		return nil, err
	}
	return tab.Clone(), nil
}

// HoldTab is the "hold this customer, serve the next" flow: pause the tab,
// then open a fresh active one, in a single atomic step.
func (st *Store) HoldTab(operatorID string, tabID uuid.UUID) (held, fresh *entity.BillingTab, err error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.session(operatorID)
	heldTab, err := s.setPaused(tabID, true)
	if err != nil {
		return nil, nil, err
	}
	freshTab := s.createTab()
	return heldTab.Clone(), freshTab.Clone(), nil
}

// UpdateTab shallow-merges a partial update into the tab and recomputes
// totals. Fields absent from the input are preserved.
func (st *Store) UpdateTab(operatorID string, tabID uuid.UUID, input UpdateTabInput) (*entity.BillingTab, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	tab, err := st.session(operatorID).updateTab(tabID, input)
	if err != nil {
		return nil, err
	}
	return tab.Clone(), nil
}

// AddLineItem adds a product snapshot to the tab, merging with an existing
// row for the same product.
func (st *Store) AddLineItem(operatorID string, tabID uuid.UUID, product *entity.Product) (*entity.BillingTab, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	tab, err := st.session(operatorID).addLineItem(tabID, product)
	if err != nil {
		return nil, err
	}
	return tab.Clone(), nil
}

// SetLineItemQuantity updates a row's quantity, clamped to a floor of 1.
func (st *Store) SetLineItemQuantity(operatorID string, tabID, itemID uuid.UUID, quantity int) (*entity.BillingTab, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	tab, err := st.session(operatorID).setItemQuantity(tabID, itemID, quantity)
	if err != nil {
		return nil, err
	}
	return tab.Clone(), nil
}

// SetLineItemNote updates a row's special note.
func (st *Store) SetLineItemNote(operatorID string, tabID, itemID uuid.UUID, note string) (*entity.BillingTab, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	tab, err := st.session(operatorID).setItemNote(tabID, itemID, note)
	if err != nil {
		return nil, err
	}
	return tab.Clone(), nil
}

// RemoveLineItem deletes a row and recomputes the summary.
func (st *Store) RemoveLineItem(operatorID string, tabID, itemID uuid.UUID) (*entity.BillingTab, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	tab, err := st.session(operatorID).removeItem(tabID, itemID)
	if err != nil {
		return nil, err
	}
	return tab.Clone(), nil
}

// RestoreTab reinstates an archived tab into the operator's working set.
func (st *Store) RestoreTab(operatorID string, tab *entity.BillingTab) (*entity.BillingTab, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	restored, err := st.session(operatorID).restoreTab(tab)
	if err != nil {
		return nil, err
	}
	return restored.Clone(), nil
}

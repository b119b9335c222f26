package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
	"github.com/tillpoint/tillpoint-api/internal/domain/repository"
	"github.com/tillpoint/tillpoint-api/internal/session"
	"github.com/tillpoint/tillpoint-api/pkg/apperror"
)

// TerminalService drives an operator's working set of tabs. It wraps the
// in-memory session store and mirrors paused tabs into the archive so a
// terminal restart does not lose held customers.
type TerminalService struct {
	store   *session.Store
	catalog repository.CatalogRepository
	archive repository.TabArchiveRepository
	logger  zerolog.Logger
}

func NewTerminalService(
	store *session.Store,
	catalog repository.CatalogRepository,
	archive repository.TabArchiveRepository,
	logger zerolog.Logger,
) *TerminalService {
	return &TerminalService{
		store:   store,
		catalog: catalog,
		archive: archive,
		logger:  logger.With().Str("component", "terminal").Logger(),
	}
}

func (s *TerminalService) View(ctx context.Context, operatorID string) session.SessionView {
	return s.store.View(operatorID)
}

func (s *TerminalService) Tab(ctx context.Context, operatorID string, tabID uuid.UUID) (*entity.BillingTab, error) {
	return s.store.Tab(operatorID, tabID)
}

func (s *TerminalService) CreateTab(ctx context.Context, operatorID string) *entity.BillingTab {
	tab := s.store.CreateTab(operatorID)
	s.logger.Info().Str("operator_id", operatorID).Str("tab_id", tab.ID.String()).Msg("tab created")
	return tab
}

// CloseTab discards a tab. A tab that still carries items or a named
// customer is only closed when the operator confirmed it.
func (s *TerminalService) CloseTab(ctx context.Context, operatorID string, tabID uuid.UUID, confirmed bool) error {
	tab, err := s.store.Tab(operatorID, tabID)
	if err != nil {
		return err
	}
	if tab.HasContent() && !confirmed {
		return apperror.NewConflictError("Tab has items or customer details; confirm before closing")
	}

	if err := s.store.CloseTab(operatorID, tabID); err != nil {
		return err
	}
	s.dropArchived(ctx, operatorID, tabID)
	s.logger.Info().Str("operator_id", operatorID).Str("tab_id", tabID.String()).Msg("tab closed")
	return nil
}

func (s *TerminalService) SetActiveTab(ctx context.Context, operatorID string, tabID uuid.UUID) (*entity.BillingTab, error) {
	return s.store.SetActiveTab(operatorID, tabID)
}

// PauseTab parks a tab and snapshots it to the archive.
func (s *TerminalService) PauseTab(ctx context.Context, operatorID string, tabID uuid.UUID) (*entity.BillingTab, error) {
	tab, err := s.store.PauseTab(operatorID, tabID)
	if err != nil {
		return nil, err
	}
	s.saveArchived(ctx, operatorID, tab)
	return tab, nil
}

func (s *TerminalService) ResumeTab(ctx context.Context, operatorID string, tabID uuid.UUID) (*entity.BillingTab, error) {
	tab, err := s.store.ResumeTab(operatorID, tabID)
	if err != nil {
		return nil, err
	}
	s.dropArchived(ctx, operatorID, tabID)
	return tab, nil
}

// HoldTab pauses the tab and hands the operator a fresh one in a single
// step, for the walk-up customer interrupting a big order.
func (s *TerminalService) HoldTab(ctx context.Context, operatorID string, tabID uuid.UUID) (held, fresh *entity.BillingTab, err error) {
	held, fresh, err = s.store.HoldTab(operatorID, tabID)
	if err != nil {
		return nil, nil, err
	}
	s.saveArchived(ctx, operatorID, held)
	s.logger.Info().
		Str("operator_id", operatorID).
		Str("held_tab_id", held.ID.String()).
		Str("fresh_tab_id", fresh.ID.String()).
		Msg("tab held")
	return held, fresh, nil
}

func (s *TerminalService) UpdateTab(ctx context.Context, operatorID string, tabID uuid.UUID, input session.UpdateTabInput) (*entity.BillingTab, error) {
	return s.store.UpdateTab(operatorID, tabID, input)
}

// AddProduct resolves a catalog product and adds it to the tab. A row for
// the same product already on the tab gets its quantity bumped instead.
func (s *TerminalService) AddProduct(ctx context.Context, operatorID string, tabID uuid.UUID, productID string) (*entity.BillingTab, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return s.store.AddLineItem(operatorID, tabID, product)
}

// AddManualItem adds a free-form row that is not backed by the catalog.
// Manual rows never merge.
func (s *TerminalService) AddManualItem(ctx context.Context, operatorID string, tabID uuid.UUID, name string, unitPrice int64) (*entity.BillingTab, error) {
	if name == "" {
		return nil, apperror.NewBadRequestError("Item name is required")
	}
	if unitPrice < 0 {
		return nil, apperror.NewBadRequestError("Item price cannot be negative")
	}
	return s.store.AddLineItem(operatorID, tabID, &entity.Product{Name: name, Price: unitPrice})
}

func (s *TerminalService) SetLineItemQuantity(ctx context.Context, operatorID string, tabID, itemID uuid.UUID, quantity int) (*entity.BillingTab, error) {
	return s.store.SetLineItemQuantity(operatorID, tabID, itemID, quantity)
}

func (s *TerminalService) SetLineItemNote(ctx context.Context, operatorID string, tabID, itemID uuid.UUID, note string) (*entity.BillingTab, error) {
	return s.store.SetLineItemNote(operatorID, tabID, itemID, note)
}

func (s *TerminalService) RemoveLineItem(ctx context.Context, operatorID string, tabID, itemID uuid.UUID) (*entity.BillingTab, error) {
	return s.store.RemoveLineItem(operatorID, tabID, itemID)
}

// RecoverTabs reloads archived paused tabs into the operator's session after
// a restart. Tabs already present in the session are left alone.
func (s *TerminalService) RecoverTabs(ctx context.Context, operatorID string) ([]entity.BillingTab, error) {
	archived, err := s.archive.ListByOperator(ctx, operatorID)
	if err != nil {
		return nil, err
	}

	recovered := make([]entity.BillingTab, 0, len(archived))
	for i := range archived {
		tab := archived[i]
		tab.IsPaused = true
		restored, err := s.store.RestoreTab(operatorID, &tab)
		if err != nil {
			// Already in the session; nothing to recover.
			continue
		}
		recovered = append(recovered, *restored)
	}
	if len(recovered) > 0 {
		s.logger.Info().Str("operator_id", operatorID).Int("count", len(recovered)).Msg("tabs recovered from archive")
	}
	return recovered, nil
}

// ValidateTab runs the checkout pre-save check without touching upstreams.
func (s *TerminalService) ValidateTab(ctx context.Context, operatorID string, tabID uuid.UUID) ([]apperror.FieldError, error) {
	tab, err := s.store.Tab(operatorID, tabID)
	if err != nil {
		return nil, err
	}
	return session.ValidateForCheckout(tab), nil
}

func (s *TerminalService) saveArchived(ctx context.Context, operatorID string, tab *entity.BillingTab) {
	if err := s.archive.Save(ctx, operatorID, tab); err != nil {
		s.logger.Warn().Err(err).Str("tab_id", tab.ID.String()).Msg("failed to archive paused tab")
	}
}

func (s *TerminalService) dropArchived(ctx context.Context, operatorID string, tabID uuid.UUID) {
	if err := s.archive.Delete(ctx, operatorID, tabID.String()); err != nil {
		s.logger.Warn().Err(err).Str("tab_id", tabID.String()).Msg("failed to drop archived tab")
	}
}

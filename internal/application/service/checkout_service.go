package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
	"github.com/tillpoint/tillpoint-api/internal/domain/enum"
	"github.com/tillpoint/tillpoint-api/internal/domain/repository"
	"github.com/tillpoint/tillpoint-api/internal/session"
	"github.com/tillpoint/tillpoint-api/pkg/apperror"
)

// CheckoutInput controls how a tab is finalized.
type CheckoutInput struct {
	DocumentType enum.DocumentType
	// SaveCustomer registers the tab's customer details in the directory
	// before submitting, linking the invoice to the directory record.
	SaveCustomer bool
}

// CheckoutResult is what finalizing a tab produces.
type CheckoutResult struct {
	InvoiceReference string             `json:"invoice_reference"`
	InvoiceNo        string             `json:"invoice_no"`
	CompletedTab     *entity.BillingTab `json:"completed_tab"`
}

// CheckoutService finalizes tabs: validate, persist the invoice upstream,
// record the payment, then retire the tab. The tab is only removed from the
// session after the invoice service accepted it, so a failed submission
// leaves the operator's work intact.
type CheckoutService struct {
	store     *session.Store
	invoices  repository.InvoiceRepository
	directory repository.CustomerDirectoryRepository
	archive   repository.TabArchiveRepository
	logger    zerolog.Logger
}

func NewCheckoutService(
	store *session.Store,
	invoices repository.InvoiceRepository,
	directory repository.CustomerDirectoryRepository,
	archive repository.TabArchiveRepository,
	logger zerolog.Logger,
) *CheckoutService {
	return &CheckoutService{
		store:     store,
		invoices:  invoices,
		directory: directory,
		archive:   archive,
		logger:    logger.With().Str("component", "checkout").Logger(),
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, operatorID string, tabID uuid.UUID, input CheckoutInput) (*CheckoutResult, error) {
	if !input.DocumentType.IsValid() {
		input.DocumentType = enum.DocumentTypeBill
	}

	tab, err := s.store.Tab(operatorID, tabID)
	if err != nil {
		return nil, err
	}
	if issues := session.ValidateForCheckout(tab); len(issues) > 0 {
		return nil, apperror.NewValidationError(issues)
	}

	customerRef := tab.Customer.Reference
	if input.SaveCustomer && tab.Customer.Phone != "" {
		record, err := s.directory.Upsert(ctx, &entity.CustomerUpsert{
			Name:  tab.Customer.Name,
			Phone: tab.Customer.Phone,
			Email: tab.Customer.Email,
			Address: entity.CustomerAddress{
				Text:  tab.Customer.Address,
				City:  tab.Customer.City,
				State: tab.Customer.State,
				Zip:   tab.Customer.Zip,
			},
		})
		if err != nil {
			return nil, err
		}
		customerRef = record.ID
	}

	submission := buildSubmission(tab, operatorID, input.DocumentType, customerRef)
	result, err := s.invoices.SubmitInvoice(ctx, submission)
	if err != nil {
		s.logger.Error().Err(err).Str("tab_id", tabID.String()).Msg("invoice submission failed")
		return nil, err
	}

	// Estimates are quotes; only bills carry a payment.
	if input.DocumentType == enum.DocumentTypeBill && tab.Summary.CustomerPaid > 0 {
		payment := &entity.PaymentRecord{
			InvoiceReference: result.Reference,
			Amount:           float64(tab.Summary.CustomerPaid) / 100,
			Method:           tab.PaymentMethod,
		}
		if err := s.invoices.RecordPayment(ctx, payment); err != nil {
			// The invoice is stored; surface the failure but do not
			// leave the tab behind to be submitted twice.
			s.logger.Error().Err(err).Str("invoice", result.Reference).Msg("payment record failed")
		}
	}

	// CompleteTab hands back the tab that is active after removal; the
	// finalized snapshot the client renders is the one fetched above.
	if _, err := s.store.CompleteTab(operatorID, tabID); err != nil {
		return nil, err
	}
	completed := tab
	completed.InvoiceNo = result.InvoiceNo

	if err := s.archive.Delete(ctx, operatorID, tabID.String()); err != nil {
		s.logger.Warn().Err(err).Str("tab_id", tabID.String()).Msg("failed to drop archived tab")
	}

	s.logger.Info().
		Str("operator_id", operatorID).
		Str("invoice_no", result.InvoiceNo).
		Str("document_type", input.DocumentType.String()).
		Int64("grand_total_cents", completed.Summary.GrandTotal).
		Msg("tab completed")

	return &CheckoutResult{
		InvoiceReference: result.Reference,
		InvoiceNo:        result.InvoiceNo,
		CompletedTab:     completed,
	}, nil
}

func buildSubmission(tab *entity.BillingTab, operatorID string, docType enum.DocumentType, customerRef string) *entity.InvoiceSubmission {
	items := make([]entity.InvoiceLineItem, 0, len(tab.Items))
	for i := range tab.Items {
		item := &tab.Items[i]
		items = append(items, entity.InvoiceLineItem{
			Name:     item.Name,
			Price:    float64(item.UnitPrice) / 100,
			Quantity: item.Quantity,
		})
	}

	addressText := tab.Customer.Address
	var ref *string
	if customerRef != "" {
		ref = &customerRef
	}

	return &entity.InvoiceSubmission{
		Amounts: entity.InvoiceAmounts{
			SubTotal: float64(tab.Summary.SubTotal) / 100,
			Tax:      float64(tab.Summary.Tax) / 100,
			Total:    float64(tab.Summary.GrandTotal) / 100,
		},
		BillingAddressText:  addressText,
		ShippingAddressText: addressText,
		LineItems:           items,
		CustomerReference:   ref,
		DocumentType:        docType,
		OperatorReference:   operatorID,
	}
}

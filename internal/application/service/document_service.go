package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tillpoint/tillpoint-api/internal/config"
	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
	"github.com/tillpoint/tillpoint-api/internal/domain/enum"
	"github.com/tillpoint/tillpoint-api/internal/session"
	"github.com/tillpoint/tillpoint-api/pkg/document"
)

// DocumentService renders tabs as printable documents: PDF for download,
// ESC/POS for the receipt printer at the counter.
type DocumentService struct {
	store     *session.Store
	business  config.BusinessConfig
	printer   document.Printer
	charWidth int
	logger    zerolog.Logger
	now       func() time.Time
}

func NewDocumentService(
	store *session.Store,
	business config.BusinessConfig,
	printer document.Printer,
	charWidth int,
	logger zerolog.Logger,
) *DocumentService {
	if charWidth <= 0 {
		charWidth = 32
	}
	return &DocumentService{
		store:     store,
		business:  business,
		printer:   printer,
		charWidth: charWidth,
		logger:    logger.With().Str("component", "documents").Logger(),
		now:       time.Now,
	}
}

// RenderPDF renders the tab as a PDF bill or estimate.
func (s *DocumentService) RenderPDF(ctx context.Context, operatorID string, tabID uuid.UUID, docType enum.DocumentType, operatorName string) ([]byte, error) {
	receipt, err := s.receiptFor(operatorID, tabID, docType, operatorName)
	if err != nil {
		return nil, err
	}
	return document.RenderPDF(receipt)
}

// PrintReceipt encodes the tab for the configured ESC/POS printer and sends
// it. With no printer configured the encode still runs, so a terminal
// without hardware can be exercised end to end.
func (s *DocumentService) PrintReceipt(ctx context.Context, operatorID string, tabID uuid.UUID, docType enum.DocumentType, operatorName string) error {
	receipt, err := s.receiptFor(operatorID, tabID, docType, operatorName)
	if err != nil {
		return err
	}

	data := document.EncodeReceipt(receipt, s.charWidth)
	if err := s.printer.Print(data); err != nil {
		s.logger.Error().Err(err).Str("tab_id", tabID.String()).Msg("receipt print failed")
		return err
	}
	s.logger.Info().Str("tab_id", tabID.String()).Str("document_type", docType.String()).Msg("receipt printed")
	return nil
}

func (s *DocumentService) receiptFor(operatorID string, tabID uuid.UUID, docType enum.DocumentType, operatorName string) (*entity.Receipt, error) {
	tab, err := s.store.Tab(operatorID, tabID)
	if err != nil {
		return nil, err
	}
	if !docType.IsValid() {
		docType = enum.DocumentTypeBill
	}

	items := make([]entity.ReceiptItem, 0, len(tab.Items))
	for i := range tab.Items {
		item := &tab.Items[i]
		items = append(items, entity.ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: float64(item.UnitPrice) / 100,
			Total:     float64(item.Amount) / 100,
			Note:      item.Note,
		})
	}

	return &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: s.business.StoreName,
			Address:   s.business.Address,
			Phone:     s.business.Phone,
			TaxID:     s.business.TaxID,
		},
		DocumentType:    docType.String(),
		InvoiceNo:       tab.InvoiceNo,
		Date:            s.now().Format("2006-01-02 15:04"),
		Operator:        operatorName,
		Customer:        tab.Customer.Name,
		CustomerPhone:   tab.Customer.Phone,
		BillingAddress:  tab.Customer.Address,
		OrderType:       tab.OrderType.String(),
		PaymentMethod:   tab.PaymentMethod.String(),
		Items:           items,
		SubTotal:        float64(tab.Summary.SubTotal) / 100,
		Discount:        float64(tab.Summary.Discount) / 100,
		Tax:             float64(tab.Summary.Tax) / 100,
		DeliveryCharge:  float64(tab.Summary.DeliveryCharge) / 100,
		ContainerCharge: float64(tab.Summary.ContainerCharge) / 100,
		GrandTotal:      float64(tab.Summary.GrandTotal) / 100,
		Paid:            float64(tab.Summary.CustomerPaid) / 100,
		ChangeDue:       float64(tab.Summary.ChangeDue) / 100,
		Tip:             float64(tab.Summary.Tip) / 100,
		Footer:          s.business.Footer,
	}, nil
}

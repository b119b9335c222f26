package repository

import (
	"context"

	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
)

// InvoiceRepository is the remote invoice/transaction service that persists
// finalized bills and records payments against them.
type InvoiceRepository interface {
	SubmitInvoice(ctx context.Context, submission *entity.InvoiceSubmission) (*entity.InvoiceResult, error)
	RecordPayment(ctx context.Context, payment *entity.PaymentRecord) error
}

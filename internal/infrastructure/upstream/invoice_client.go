package upstream

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
	"github.com/tillpoint/tillpoint-api/internal/domain/repository"
)

// InvoiceClient talks to the remote invoice/transaction service.
type InvoiceClient struct {
	*client
}

func NewInvoiceClient(baseURL string, timeout time.Duration) *InvoiceClient {
	return &InvoiceClient{client: newClient(baseURL, timeout, "invoices")}
}

var _ repository.InvoiceRepository = (*InvoiceClient)(nil)

func (c *InvoiceClient) SubmitInvoice(ctx context.Context, submission *entity.InvoiceSubmission) (*entity.InvoiceResult, error) {
	var result entity.InvoiceResult
	if err := c.doJSON(ctx, http.MethodPost, "/invoices", nil, submission, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *InvoiceClient) RecordPayment(ctx context.Context, payment *entity.PaymentRecord) error {
	path := "/invoices/" + url.PathEscape(payment.InvoiceReference) + "/payments"
	return c.doJSON(ctx, http.MethodPost, path, nil, payment, nil)
}

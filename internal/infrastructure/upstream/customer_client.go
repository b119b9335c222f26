package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
	"github.com/tillpoint/tillpoint-api/internal/domain/repository"
)

// CustomerClient talks to the remote customer directory service.
type CustomerClient struct {
	*client
}

func NewCustomerClient(baseURL string, timeout time.Duration) *CustomerClient {
	return &CustomerClient{client: newClient(baseURL, timeout, "customers")}
}

var _ repository.CustomerDirectoryRepository = (*CustomerClient)(nil)

// LookupByPhone finds the customer registered under an exact phone string.
// A miss is not an error; the operator simply types the details in.
func (c *CustomerClient) LookupByPhone(ctx context.Context, phone string) (*entity.CustomerRecord, error) {
	q := url.Values{}
	q.Set("phone", phone)

	var record entity.CustomerRecord
	if err := c.doJSON(ctx, http.MethodGet, "/customers/lookup", q, nil, &record); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (c *CustomerClient) Upsert(ctx context.Context, input *entity.CustomerUpsert) (*entity.CustomerRecord, error) {
	var record entity.CustomerRecord
	if err := c.doJSON(ctx, http.MethodPut, "/customers", nil, input, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

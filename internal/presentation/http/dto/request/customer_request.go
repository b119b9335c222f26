package request

import "github.com/tillpoint/tillpoint-api/internal/domain/entity"

// UpsertCustomerRequest creates or updates a customer directory record.
type UpsertCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

func (r *UpsertCustomerRequest) ToEntity() *entity.CustomerUpsert {
	return &entity.CustomerUpsert{
		Name:  r.Name,
		Phone: r.Phone,
		Email: r.Email,
		Address: entity.CustomerAddress{
			Text:  r.Address,
			City:  r.City,
			State: r.State,
			Zip:   r.Zip,
		},
	}
}

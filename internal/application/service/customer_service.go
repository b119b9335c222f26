package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
	"github.com/tillpoint/tillpoint-api/internal/domain/repository"
	"github.com/tillpoint/tillpoint-api/pkg/apperror"
)

// CustomerService fronts the remote customer directory.
type CustomerService struct {
	directory repository.CustomerDirectoryRepository
	logger    zerolog.Logger
}

func NewCustomerService(directory repository.CustomerDirectoryRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{
		directory: directory,
		logger:    logger.With().Str("component", "customers").Logger(),
	}
}

// LookupByPhone finds the customer registered under an exact phone string.
// A miss returns (nil, nil); the terminal falls back to manual entry.
func (s *CustomerService) LookupByPhone(ctx context.Context, phone string) (*entity.CustomerRecord, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, apperror.NewBadRequestError("Phone number is required")
	}
	return s.directory.LookupByPhone(ctx, phone)
}

func (s *CustomerService) Upsert(ctx context.Context, input *entity.CustomerUpsert) (*entity.CustomerRecord, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)

	var issues []apperror.FieldError
	if input.Name == "" {
		issues = append(issues, apperror.FieldError{Field: "name", Message: "Name is required"})
	}
	if input.Phone == "" {
		issues = append(issues, apperror.FieldError{Field: "phone", Message: "Phone is required"})
	}
	if len(issues) > 0 {
		return nil, apperror.NewValidationError(issues)
	}

	record, err := s.directory.Upsert(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("customer_id", record.ID).Msg("customer upserted")
	return record, nil
}

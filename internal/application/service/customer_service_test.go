package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillpoint/tillpoint-api/internal/domain/entity"
)

func TestLookupByPhoneRequiresPhone(t *testing.T) {
	svc := NewCustomerService(newFakeDirectory(), zerolog.Nop())

	_, err := svc.LookupByPhone(context.Background(), "   ")
	assert.Error(t, err)
}

func TestLookupByPhoneMissIsNotAnError(t *testing.T) {
	svc := NewCustomerService(newFakeDirectory(), zerolog.Nop())

	record, err := svc.LookupByPhone(context.Background(), "0712345678")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestUpsertValidatesAndStores(t *testing.T) {
	directory := newFakeDirectory()
	svc := NewCustomerService(directory, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Upsert(ctx, &entity.CustomerUpsert{Name: "", Phone: ""})
	require.Error(t, err)

	record, err := svc.Upsert(ctx, &entity.CustomerUpsert{Name: " Jane ", Phone: " 0700 "})
	require.NoError(t, err)
	assert.Equal(t, "Jane", record.Name)
	assert.Equal(t, "0700", record.Phone)

	found, err := svc.LookupByPhone(ctx, "0700")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Jane", found.Name)
}

package whatsapp

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubscription(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	s, err := NewSubscription(uuid.New(), SubscriptionDetails{
		PhoneNumber: " +201000000000 ", Plan: "business", Amount: decimal.NewFromInt(99),
		StartDate: &start, EndDate: &end, IsActive: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "+201000000000", s.PhoneNumber)

	_, err = NewSubscription(uuid.New(), SubscriptionDetails{PhoneNumber: "1", StartDate: &end, EndDate: &start})
	assert.Error(t, err)

	_, err = NewSubscription(uuid.New(), SubscriptionDetails{PhoneNumber: ""})
	assert.Error(t, err)
}

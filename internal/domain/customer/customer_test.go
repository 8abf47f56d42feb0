package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"retail-bank/internal/pkg/apperrors"
)

func TestParseTier(t *testing.T) {
	t.Run("should accept the three known tiers", func(t *testing.T) {
		tests := []struct {
			input    string
			expected Tier
		}{
			{"adult", TierAdult},
			{"senior", TierSenior},
			{"student", TierStudent},
			{" Adult ", TierAdult},
			{"STUDENT", TierStudent},
		}
		for _, tt := range tests {
			tier, err := ParseTier(tt.input)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, tier)
		}
	})

	t.Run("should reject unknown tiers", func(t *testing.T) {
		_, err := ParseTier("toddler")
		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})
}

func TestTierConstants(t *testing.T) {
	tests := []struct {
		tier             Tier
		savingsRate      float64
		checkingRate     float64
		checkCharge      float64
		overdraftPenalty float64
	}{
		{TierAdult, 0.03, 0.03, 1.50, 35.00},
		{TierSenior, 0.05, 0.01, 2.00, 25.00},
		{TierStudent, 0.01, 0.05, 1.00, 25.00},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			c := NewCustomer(1001, "Test Person", tt.tier)
			assert.Equal(t, tt.savingsRate, c.SavingsInterestRate())
			assert.Equal(t, tt.checkingRate, c.CheckingInterestRate())
			assert.Equal(t, tt.checkCharge, c.CheckCharge())
			assert.Equal(t, tt.overdraftPenalty, c.OverdraftPenalty())

			sched := c.Schedule()
			assert.Equal(t, tt.savingsRate, sched.SavingsRate)
			assert.Equal(t, tt.overdraftPenalty, sched.OverdraftPenalty)
		})
	}
}

func TestConstantsUnaffectedByProfileEdits(t *testing.T) {
	c := NewCustomer(1001, "Maya", TierSenior)

	c.Name = "Maya Lindqvist"
	c.Address = "12 Harbour Road"
	c.Telephone = "555-0142"
	c.Age = -3 // no validation on profile fields

	assert.Equal(t, 0.05, c.SavingsInterestRate())
	assert.Equal(t, 0.01, c.CheckingInterestRate())
	assert.Equal(t, 2.00, c.CheckCharge())
	assert.Equal(t, 25.00, c.OverdraftPenalty())
}

func TestTierChangeSwitchesSchedule(t *testing.T) {
	c := NewCustomer(1002, "Ben", TierStudent)
	assert.Equal(t, 0.05, c.CheckingInterestRate())

	c.Tier = TierAdult
	assert.Equal(t, 0.03, c.CheckingInterestRate())
	assert.Equal(t, 35.00, c.OverdraftPenalty())
}

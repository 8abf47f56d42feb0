package customer

import (
	"fmt"
	"strings"

	"retail-bank/internal/pkg/apperrors"
)

// Tier classifies a customer and fixes the interest and fee constants
// that apply to every account the customer owns.
type Tier string

const (
	TierAdult   Tier = "adult"
	TierSenior  Tier = "senior"
	TierStudent Tier = "student"
)

// RateSchedule holds the four constants fixed by a customer tier.
// Schedules are immutable per tier, never per customer instance.
type RateSchedule struct {
	SavingsRate      float64
	CheckingRate     float64
	CheckCharge      float64
	OverdraftPenalty float64
}

var rateSchedules = map[Tier]RateSchedule{
	TierAdult:   {SavingsRate: 0.03, CheckingRate: 0.03, CheckCharge: 1.50, OverdraftPenalty: 35.00},
	TierSenior:  {SavingsRate: 0.05, CheckingRate: 0.01, CheckCharge: 2.00, OverdraftPenalty: 25.00},
	TierStudent: {SavingsRate: 0.01, CheckingRate: 0.05, CheckCharge: 1.00, OverdraftPenalty: 25.00},
}

// ParseTier converts an external tier string into a Tier.
func ParseTier(s string) (Tier, error) {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierAdult:
		return TierAdult, nil
	case TierSenior:
		return TierSenior, nil
	case TierStudent:
		return TierStudent, nil
	default:
		return "", fmt.Errorf("%w: unknown customer tier %q", apperrors.ErrInvalidArgument, s)
	}
}

// Customer is an account owner. Profile fields are freely mutable and
// carry no validation; the tier selects the applicable RateSchedule.
type Customer struct {
	CustomerID int64
	Name       string
	Address    string
	Telephone  string
	Age        int
	Tier       Tier
}

func NewCustomer(customerID int64, name string, tier Tier) *Customer {
	return &Customer{
		CustomerID: customerID,
		Name:       name,
		Tier:       tier,
	}
}

// Schedule returns the rate and fee constants for the customer's tier.
func (c *Customer) Schedule() RateSchedule {
	return rateSchedules[c.Tier]
}

func (c *Customer) SavingsInterestRate() float64 {
	return rateSchedules[c.Tier].SavingsRate
}

func (c *Customer) CheckingInterestRate() float64 {
	return rateSchedules[c.Tier].CheckingRate
}

func (c *Customer) CheckCharge() float64 {
	return rateSchedules[c.Tier].CheckCharge
}

func (c *Customer) OverdraftPenalty() float64 {
	return rateSchedules[c.Tier].OverdraftPenalty
}

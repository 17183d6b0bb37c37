package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fractional digits an amount may carry.
const MoneyPlaces = 2

// Kind tags the two entity kinds taking part in investing.
type Kind string

const (
	KindProject  Kind = "charity_project"
	KindDonation Kind = "donation"
)

// Opposite returns the kind a fundable of kind k is matched against.
func (k Kind) Opposite() Kind {
	if k == KindProject {
		return KindDonation
	}
	return KindProject
}

// Fundable is implemented by CharityProject and Donation.
type Fundable interface {
	Kind() Kind
	Funds() *Funding
}

// Funding is the money-tracking shape shared by projects and donations.
type Funding struct {
	ID             int64           `json:"id"`
	FullAmount     decimal.Decimal `json:"full_amount"`
	InvestedAmount decimal.Decimal `json:"invested_amount"`
	FullyInvested  bool            `json:"fully_invested"`
	CreateDate     time.Time       `json:"create_date"`
	CloseDate      *time.Time      `json:"close_date,omitempty"`
	Version        int64           `json:"-"`
}

func newFunding(fullAmount decimal.Decimal, now time.Time) Funding {
	return Funding{
		FullAmount:     fullAmount,
		InvestedAmount: decimal.Zero,
		CreateDate:     now,
	}
}

// Free is the part of the target not allocated yet.
func (f *Funding) Free() decimal.Decimal {
	return f.FullAmount.Sub(f.InvestedAmount)
}

// Invest adds amount to the invested total and closes the entity at now once
// the target is reached. A closed entity keeps its original close date.
func (f *Funding) Invest(amount decimal.Decimal, now time.Time) {
	f.InvestedAmount = f.InvestedAmount.Add(amount)
	f.CloseIfFull(now)
}

// CloseIfFull marks the entity fully invested at now when its target is met.
func (f *Funding) CloseIfFull(now time.Time) {
	if f.FullyInvested || !f.InvestedAmount.Equal(f.FullAmount) {
		return
	}
	closed := now
	f.FullyInvested = true
	f.CloseDate = &closed
}

// Validate checks the invariants every persisted fundable must satisfy.
func (f *Funding) Validate() error {
	if err := ValidateAmount("full_amount", f.FullAmount); err != nil {
		return err
	}
	if f.InvestedAmount.IsNegative() {
		return newValidationError("invested_amount", "invested amount cannot be negative")
	}
	if f.InvestedAmount.GreaterThan(f.FullAmount) {
		return newValidationError("invested_amount", "invested amount cannot exceed full amount")
	}
	if f.FullyInvested != f.InvestedAmount.Equal(f.FullAmount) {
		return newValidationError("fully_invested", fmt.Sprintf(
			"fully_invested=%t does not match %s/%s", f.FullyInvested, f.InvestedAmount, f.FullAmount))
	}
	if f.FullyInvested != (f.CloseDate != nil) {
		return newValidationError("close_date", "close date must be set exactly when fully invested")
	}
	return nil
}

// MaxAmount caps a single project target or donation.
var MaxAmount = decimal.New(1, 12)

// maxScale bounds the exponent of an incoming amount. Rounding or comparing a
// decimal rescales its coefficient, so a huge exponent must be refused first.
const (
	maxScale           = 18
	maxCoefficientBits = 128
)

// ValidateAmount rejects non-positive amounts, amounts above MaxAmount and
// amounts finer than MoneyPlaces.
func ValidateAmount(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return newValidationError(field, field+" must be greater than zero")
	}
	tooLarge := newValidationError(field, fmt.Sprintf("%s must not exceed %s", field, MaxAmount))
	tooFine := newValidationError(field, fmt.Sprintf("%s must have at most %d decimal places", field, MoneyPlaces))

	if amount.Exponent() > maxScale || amount.Coefficient().BitLen() > maxCoefficientBits {
		return tooLarge
	}
	if amount.Exponent() < -maxScale {
		return tooFine
	}
	if amount.GreaterThan(MaxAmount) {
		return tooLarge
	}
	if !amount.Equal(amount.Round(MoneyPlaces)) {
		return tooFine
	}
	return nil
}

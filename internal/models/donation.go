package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Donation is money waiting to be invested into projects. UserID is nil for
// anonymous donations.
type Donation struct {
	Funding
	Comment string     `json:"comment,omitempty"`
	UserID  *uuid.UUID `json:"user_id,omitempty"`
}

func (d *Donation) Kind() Kind       { return KindDonation }
func (d *Donation) Funds() *Funding { return &d.Funding }

type DonationCreate struct {
	FullAmount decimal.Decimal `json:"full_amount"`
	Comment    string          `json:"comment"`
}

func (in *DonationCreate) Validate() error {
	return ValidateAmount("full_amount", in.FullAmount)
}

// NewDonation builds an uninvested donation owned by donor, if any
func NewDonation(in DonationCreate, donor *uuid.UUID, now time.Time) *Donation {
	return &Donation{
		Funding: newFunding(in.FullAmount, now),
		Comment: in.Comment,
		UserID:  donor,
	}
}

package services

import (
	"time"

	"github.com/alimgiray/charityfund/internal/models"
	"github.com/shopspring/decimal"
)

// Invest allocates the free money of target across candidates, which must be
// open fundables of the opposite kind ordered oldest first. Each candidate
// receives min(free, need) until target runs out of free money. Entities that
// reach their target are closed at now.
//
// It returns the candidates whose invested amount changed, in processing
// order. target is mutated in place; it is up to the caller to persist it
// together with the returned candidates.
func Invest(target models.Fundable, candidates []models.Fundable, now time.Time) []models.Fundable {
	funds := target.Funds()
	free := funds.Free()
	if !free.IsPositive() {
		return nil
	}

	var touched []models.Fundable
	for _, candidate := range candidates {
		c := candidate.Funds()
		need := c.Free()
		if c.FullyInvested || !need.IsPositive() {
			continue
		}

		amount := decimal.Min(free, need)
		c.Invest(amount, now)
		funds.InvestedAmount = funds.InvestedAmount.Add(amount)
		free = free.Sub(amount)
		touched = append(touched, candidate)

		if free.IsZero() {
			break
		}
	}

	funds.CloseIfFull(now)
	return touched
}

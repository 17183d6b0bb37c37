package services

import (
	"testing"
	"time"

	"github.com/alimgiray/charityfund/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var engineNow = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func project(id int64, full, invested string) *models.CharityProject {
	p := &models.CharityProject{Name: "p", Description: "d"}
	p.ID = id
	p.FullAmount = amount(full)
	p.InvestedAmount = amount(invested)
	p.CreateDate = engineNow.Add(time.Duration(id) * time.Minute)
	return p
}

func donation(id int64, full, invested string) *models.Donation {
	d := &models.Donation{}
	d.ID = id
	d.FullAmount = amount(full)
	d.InvestedAmount = amount(invested)
	d.CreateDate = engineNow.Add(time.Duration(id) * time.Minute)
	return d
}

func fundables[T models.Fundable](items ...T) []models.Fundable {
	out := make([]models.Fundable, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out
}

func sumInvested(items []models.Fundable) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Funds().InvestedAmount)
	}
	return total
}

func TestInvestScenarioA(t *testing.T) {
	p1 := project(1, "1000", "0")
	d1 := donation(2, "400", "0")

	touched := Invest(d1, fundables(p1), engineNow)

	require.Len(t, touched, 1)
	assert.True(t, p1.InvestedAmount.Equal(amount("400")))
	assert.False(t, p1.FullyInvested)
	assert.Nil(t, p1.CloseDate)

	assert.True(t, d1.InvestedAmount.Equal(amount("400")))
	assert.True(t, d1.FullyInvested)
	require.NotNil(t, d1.CloseDate)
	assert.Equal(t, engineNow, *d1.CloseDate)
}

func TestInvestScenarioB(t *testing.T) {
	p1 := project(1, "1000", "400")
	d2 := donation(3, "700", "0")

	Invest(d2, fundables(p1), engineNow)

	assert.True(t, p1.InvestedAmount.Equal(amount("1000")))
	assert.True(t, p1.FullyInvested)
	require.NotNil(t, p1.CloseDate)

	assert.True(t, d2.InvestedAmount.Equal(amount("600")))
	assert.False(t, d2.FullyInvested)
	assert.Nil(t, d2.CloseDate)
	assert.True(t, d2.Free().Equal(amount("100")))
}

func TestInvestOldestFirstAndStopsWhenExhausted(t *testing.T) {
	d1 := donation(1, "100", "70")
	d2 := donation(2, "50", "0")
	d3 := donation(3, "500", "0")
	p := project(4, "60", "0")

	touched := Invest(p, fundables(d1, d2, d3), engineNow)

	require.Len(t, touched, 2)
	assert.Same(t, d1, touched[0])
	assert.Same(t, d2, touched[1])

	assert.True(t, d1.FullyInvested, "d1 had 30 free and gives all of it")
	assert.True(t, d2.InvestedAmount.Equal(amount("30")))
	assert.True(t, d3.InvestedAmount.IsZero(), "d3 is never reached")
	assert.True(t, p.FullyInvested)
}

func TestInvestConservesMoney(t *testing.T) {
	candidates := fundables(
		project(1, "120.50", "20.25"),
		project(2, "80", "0"),
		project(3, "33.33", "0"),
	)
	before := sumInvested(candidates)

	d := donation(9, "150.10", "0")
	Invest(d, candidates, engineNow)

	projectDelta := sumInvested(candidates).Sub(before)
	assert.True(t, projectDelta.Equal(d.InvestedAmount), "projects got %s, donation gave %s", projectDelta, d.InvestedAmount)
	assert.True(t, d.FullyInvested)

	for _, c := range append(candidates, models.Fundable(d)) {
		assert.NoError(t, c.Funds().Validate())
	}
}

func TestInvestIsDeterministic(t *testing.T) {
	run := func() []string {
		candidates := fundables(donation(1, "10", "0"), donation(2, "25", "5"), donation(3, "40", "0"))
		p := project(7, "55", "0")
		Invest(p, candidates, engineNow)

		var out []string
		for _, c := range candidates {
			out = append(out, c.Funds().InvestedAmount.String())
		}
		return append(out, p.InvestedAmount.String())
	}

	first := run()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, run())
	}
	assert.Equal(t, []string{"10", "25", "25", "55"}, first)
}

func TestInvestLeavesClosedEntitiesAlone(t *testing.T) {
	closedAt := engineNow.Add(-time.Hour)
	closed := project(1, "10", "10")
	closed.FullyInvested = true
	closed.CloseDate = &closedAt

	d := donation(2, "5", "0")
	touched := Invest(d, fundables(closed), engineNow)

	assert.Empty(t, touched)
	assert.Equal(t, closedAt, *closed.CloseDate)
	assert.True(t, d.InvestedAmount.IsZero())

	// a closed target does nothing either
	again := Invest(closed, fundables(donation(3, "5", "0")), engineNow)
	assert.Empty(t, again)
	assert.Equal(t, closedAt, *closed.CloseDate)
	assert.True(t, closed.InvestedAmount.Equal(amount("10")))
}

func TestInvestWithoutCandidates(t *testing.T) {
	d := donation(1, "10", "0")

	touched := Invest(d, nil, engineNow)

	assert.Empty(t, touched)
	assert.False(t, d.FullyInvested)
	assert.True(t, d.InvestedAmount.IsZero())
}

package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestKindOpposite(t *testing.T) {
	assert.Equal(t, KindDonation, KindProject.Opposite())
	assert.Equal(t, KindProject, KindDonation.Opposite())
	assert.Equal(t, KindDonation, (&Donation{}).Kind())
	assert.Equal(t, KindProject, (&CharityProject{}).Kind())
}

func TestFundingInvest(t *testing.T) {
	f := newFunding(dec("100"), testNow)

	f.Invest(dec("40"), testNow.Add(time.Minute))
	assert.True(t, f.InvestedAmount.Equal(dec("40")))
	assert.False(t, f.FullyInvested)
	assert.Nil(t, f.CloseDate)
	assert.True(t, f.Free().Equal(dec("60")))

	closedAt := testNow.Add(time.Hour)
	f.Invest(dec("60"), closedAt)
	assert.True(t, f.FullyInvested)
	require.NotNil(t, f.CloseDate)
	assert.Equal(t, closedAt, *f.CloseDate)
	assert.NoError(t, f.Validate())

	// closing is sticky
	f.Invest(decimal.Zero, closedAt.Add(time.Hour))
	assert.Equal(t, closedAt, *f.CloseDate)
}

func TestFundingInvestExactDecimals(t *testing.T) {
	f := newFunding(dec("0.30"), testNow)
	f.Invest(dec("0.10"), testNow)
	f.Invest(dec("0.20"), testNow)

	assert.True(t, f.FullyInvested, "0.10 + 0.20 must equal 0.30 exactly")
}

func TestFundingValidate(t *testing.T) {
	closed := testNow

	testCases := []struct {
		name    string
		funding Funding
		field   string
	}{
		{"zero target", Funding{FullAmount: decimal.Zero}, "full_amount"},
		{"negative invested", Funding{FullAmount: dec("10"), InvestedAmount: dec("-1")}, "invested_amount"},
		{"overinvested", Funding{FullAmount: dec("10"), InvestedAmount: dec("11")}, "invested_amount"},
		{"full but open", Funding{FullAmount: dec("10"), InvestedAmount: dec("10")}, "fully_invested"},
		{"closed flag without date", Funding{FullAmount: dec("10"), InvestedAmount: dec("10"), FullyInvested: true}, "close_date"},
		{"date without closed flag", Funding{FullAmount: dec("10"), InvestedAmount: dec("5"), CloseDate: &closed}, "close_date"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.funding.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount("full_amount", dec("1")))
	assert.NoError(t, ValidateAmount("full_amount", dec("10.50")))
	assert.NoError(t, ValidateAmount("full_amount", dec("10.500")))
	assert.ErrorIs(t, ValidateAmount("full_amount", dec("10.505")), ErrInvalidInput)
	assert.ErrorIs(t, ValidateAmount("full_amount", decimal.Zero), ErrInvalidInput)
	assert.ErrorIs(t, ValidateAmount("full_amount", dec("-5")), ErrInvalidInput)
	assert.NoError(t, ValidateAmount("full_amount", dec("1000000000000")))
	assert.ErrorIs(t, ValidateAmount("full_amount", dec("1000000000000.01")), ErrInvalidInput)
}

func TestValidateAmountRejectsHugeExponentsQuickly(t *testing.T) {
	for _, raw := range []string{"1e60000000", "1e-60000000", "1e19"} {
		t.Run(raw, func(t *testing.T) {
			var in DonationCreate
			require.NoError(t, json.Unmarshal([]byte(`{"full_amount": `+raw+`}`), &in))

			start := time.Now()
			err := in.Validate()
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Less(t, time.Since(start), time.Second)
		})
	}

	var verr *ValidationError
	require.True(t, errors.As(ValidateAmount("full_amount", dec("1e60000000")), &verr))
	assert.Equal(t, "full_amount must not exceed 1000000000000", verr.Message)
}

func TestCharityProjectCreateValidate(t *testing.T) {
	valid := CharityProjectCreate{Name: "Shelter", Description: "Roof repair", FullAmount: dec("1000")}
	assert.NoError(t, valid.Validate())

	noName := valid
	noName.Name = "   "
	assert.Equal(t, ErrProjectNameRequired, noName.Validate())

	longName := valid
	longName.Name = strings.Repeat("x", MaxProjectNameLength+1)
	assert.Equal(t, ErrProjectNameTooLong, longName.Validate())

	noDescription := valid
	noDescription.Description = ""
	assert.Equal(t, ErrProjectDescriptionRequired, noDescription.Validate())

	noAmount := valid
	noAmount.FullAmount = decimal.Zero
	assert.ErrorIs(t, noAmount.Validate(), ErrInvalidInput)
}

func TestNewCharityProject(t *testing.T) {
	p := NewCharityProject(CharityProjectCreate{Name: " Shelter ", Description: "Roof", FullAmount: dec("1000")}, testNow)

	assert.Equal(t, "Shelter", p.Name)
	assert.True(t, p.InvestedAmount.IsZero())
	assert.False(t, p.FullyInvested)
	assert.Equal(t, testNow, p.CreateDate)
	assert.NoError(t, p.Validate())
}

func TestCharityProjectApply(t *testing.T) {
	p := NewCharityProject(CharityProjectCreate{Name: "Shelter", Description: "Roof", FullAmount: dec("1000")}, testNow)
	p.InvestedAmount = dec("400")

	name := "Shelter 2"
	p.Apply(CharityProjectUpdate{Name: &name}, testNow)
	assert.Equal(t, "Shelter 2", p.Name)
	assert.True(t, p.FullAmount.Equal(dec("1000")))

	amount := dec("400")
	p.Apply(CharityProjectUpdate{FullAmount: &amount}, testNow.Add(time.Hour))
	assert.True(t, p.FullyInvested)
	require.NotNil(t, p.CloseDate)
	assert.Equal(t, testNow.Add(time.Hour), *p.CloseDate)
	assert.NoError(t, p.Validate())
}

func TestCharityProjectUpdateValidate(t *testing.T) {
	empty := ""
	assert.True(t, (&CharityProjectUpdate{}).IsEmpty())
	assert.NoError(t, (&CharityProjectUpdate{}).Validate())
	assert.Equal(t, ErrProjectNameRequired, (&CharityProjectUpdate{Name: &empty}).Validate())
	assert.Equal(t, ErrProjectDescriptionRequired, (&CharityProjectUpdate{Description: &empty}).Validate())

	zero := decimal.Zero
	assert.ErrorIs(t, (&CharityProjectUpdate{FullAmount: &zero}).Validate(), ErrInvalidInput)
}

func TestDonationJSONOmitsUnsetFields(t *testing.T) {
	d := NewDonation(DonationCreate{FullAmount: dec("400")}, nil, testNow)
	d.ID = 3

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.NotContains(t, out, "close_date")
	assert.NotContains(t, out, "comment")
	assert.NotContains(t, out, "user_id")
	assert.NotContains(t, out, "Version")
	assert.Equal(t, float64(3), out["id"])
	assert.Equal(t, false, out["fully_invested"])
}

func TestFormatCollectionTime(t *testing.T) {
	assert.Equal(t, "0:00:05", FormatCollectionTime(5*time.Second))
	assert.Equal(t, "1 day, 2:03:04", FormatCollectionTime(26*time.Hour+3*time.Minute+4*time.Second))
	assert.Equal(t, "3 days, 0:00:00", FormatCollectionTime(72*time.Hour+300*time.Millisecond))
	assert.Equal(t, "0:00:00", FormatCollectionTime(-time.Second))
}

func TestNewCompletionReportRow(t *testing.T) {
	p := NewCharityProject(CharityProjectCreate{Name: "Shelter", Description: "Roof", FullAmount: dec("10")}, testNow)
	p.Invest(dec("10"), testNow.Add(90*time.Minute))

	row := NewCompletionReportRow(p)
	assert.Equal(t, 90*time.Minute, row.Duration)
	assert.Equal(t, "1:30:00", row.CollectionTime)
	assert.Equal(t, "Shelter", row.Name)
}

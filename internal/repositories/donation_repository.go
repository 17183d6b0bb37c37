package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alimgiray/charityfund/internal/models"
	"github.com/google/uuid"
)

const donationColumns = fundingColumns + `, comment, user_id`

type DonationRepository struct{}

func NewDonationRepository() *DonationRepository {
	return &DonationRepository{}
}

func (r *DonationRepository) Kind() models.Kind {
	return models.KindDonation
}

// Create inserts a new donation and fills in its ID
func (r *DonationRepository) Create(ctx context.Context, q Querier, donation *models.Donation) error {
	if err := donation.Funding.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO donations (user_id, comment, full_amount, invested_amount, fully_invested, create_date, close_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var userID sql.NullString
	if donation.UserID != nil {
		userID = sql.NullString{String: donation.UserID.String(), Valid: true}
	}

	result, err := q.ExecContext(ctx, query,
		userID,
		donation.Comment,
		donation.FullAmount,
		donation.InvestedAmount,
		donation.FullyInvested,
		donation.CreateDate.UTC(),
		utcPtr(donation.CloseDate),
	)
	if err != nil {
		return classifyError(err)
	}

	donation.ID, err = result.LastInsertId()
	return err
}

// GetByID retrieves a donation by ID
func (r *DonationRepository) GetByID(ctx context.Context, q Querier, id int64) (*models.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE id = ?`

	donation, err := scanDonation(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("donation %d: %w", id, models.ErrNotFound)
		}
		return nil, classifyError(err)
	}

	return donation, nil
}

// GetAll retrieves every donation in creation order
func (r *DonationRepository) GetAll(ctx context.Context, q Querier) ([]*models.Donation, error) {
	return r.query(ctx, q, `SELECT `+donationColumns+` FROM donations ORDER BY id ASC`)
}

// GetByUserID retrieves the donations made by one user
func (r *DonationRepository) GetByUserID(ctx context.Context, q Querier, userID uuid.UUID) ([]*models.Donation, error) {
	return r.query(ctx, q,
		`SELECT `+donationColumns+` FROM donations WHERE user_id = ? ORDER BY id ASC`,
		userID.String(),
	)
}

// ListUnclosed retrieves donations with free money, oldest first, ties broken by ID
func (r *DonationRepository) ListUnclosed(ctx context.Context, q Querier) ([]*models.Donation, error) {
	return r.query(ctx, q, `
		SELECT `+donationColumns+`
		FROM donations
		WHERE fully_invested = 0
		ORDER BY create_date ASC, id ASC
	`)
}

// ListUnclosedFundables is ListUnclosed seen through the Fundable interface
func (r *DonationRepository) ListUnclosedFundables(ctx context.Context, q Querier) ([]models.Fundable, error) {
	donations, err := r.ListUnclosed(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]models.Fundable, len(donations))
	for i, d := range donations {
		out[i] = d
	}
	return out, nil
}

// UpdateFunding persists the investment state of a donation
func (r *DonationRepository) UpdateFunding(ctx context.Context, q Querier, f *models.Funding) error {
	return updateFunding(ctx, q, "donations", f)
}

func (r *DonationRepository) query(ctx context.Context, q Querier, query string, args ...any) ([]*models.Donation, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	donations := []*models.Donation{}
	for rows.Next() {
		donation, err := scanDonation(rows)
		if err != nil {
			return nil, err
		}
		donations = append(donations, donation)
	}

	return donations, rows.Err()
}

func scanDonation(row rowScanner) (*models.Donation, error) {
	donation := &models.Donation{}
	var closeDate sql.NullTime
	var userID sql.NullString

	dest := append(fundingScanTargets(&donation.Funding, &closeDate), &donation.Comment, &userID)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	finishFundingScan(&donation.Funding, closeDate)

	if userID.Valid {
		id, err := uuid.Parse(userID.String)
		if err != nil {
			return nil, err
		}
		donation.UserID = &id
	}

	return donation, nil
}

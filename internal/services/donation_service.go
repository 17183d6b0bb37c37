package services

import (
	"context"
	"database/sql"

	"github.com/alimgiray/charityfund/internal/models"
	"github.com/alimgiray/charityfund/internal/repositories"
	"github.com/google/uuid"
)

type DonationService struct {
	ledger       *repositories.Ledger
	donationRepo *repositories.DonationRepository
	investing    *InvestingService
}

func NewDonationService(ledger *repositories.Ledger, donationRepo *repositories.DonationRepository, investing *InvestingService) *DonationService {
	return &DonationService{
		ledger:       ledger,
		donationRepo: donationRepo,
		investing:    investing,
	}
}

// CreateDonation stores a donation and invests it into open projects.
// donor is nil for anonymous donations.
func (s *DonationService) CreateDonation(ctx context.Context, in models.DonationCreate, donor *uuid.UUID) (*models.Donation, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var donation *models.Donation
	err := s.investing.Atomically(ctx, func(tx *sql.Tx) error {
		donation = models.NewDonation(in, donor, s.investing.Now())
		if err := s.donationRepo.Create(ctx, tx, donation); err != nil {
			return err
		}
		return s.investing.Run(ctx, tx, donation)
	})
	if err != nil {
		return nil, err
	}

	return donation, nil
}

// ListDonations retrieves every donation
func (s *DonationService) ListDonations(ctx context.Context) ([]*models.Donation, error) {
	return s.donationRepo.GetAll(ctx, s.ledger.DB())
}

// ListUserDonations retrieves the donations of one user
func (s *DonationService) ListUserDonations(ctx context.Context, userID uuid.UUID) ([]*models.Donation, error) {
	return s.donationRepo.GetByUserID(ctx, s.ledger.DB(), userID)
}

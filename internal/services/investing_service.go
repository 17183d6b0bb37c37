package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alimgiray/charityfund/internal/models"
	"github.com/alimgiray/charityfund/internal/repositories"
	"github.com/alimgiray/charityfund/pkg/config"
	"github.com/alimgiray/charityfund/pkg/logger"
	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"
)

// fundableStore is the slice of a repository the investing run needs.
type fundableStore interface {
	Kind() models.Kind
	ListUnclosedFundables(ctx context.Context, q repositories.Querier) ([]models.Fundable, error)
	UpdateFunding(ctx context.Context, q repositories.Querier, f *models.Funding) error
}

// InvestingService runs units of work that create fundables and match them
// against open fundables of the opposite kind.
type InvestingService struct {
	ledger       *repositories.Ledger
	stores       map[models.Kind]fundableStore
	maxRetries   int
	retryBackoff time.Duration
	now          func() time.Time
}

func NewInvestingService(
	ledger *repositories.Ledger,
	projectRepo *repositories.CharityProjectRepository,
	donationRepo *repositories.DonationRepository,
	cfg config.InvestingConfig,
) *InvestingService {
	return &InvestingService{
		ledger: ledger,
		stores: map[models.Kind]fundableStore{
			projectRepo.Kind():  projectRepo,
			donationRepo.Kind(): donationRepo,
		},
		maxRetries:   cfg.MaxRetries,
		retryBackoff: cfg.RetryBackoff,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Now is the clock used for create and close dates.
func (s *InvestingService) Now() time.Time {
	return s.now()
}

// Atomically runs fn in a transaction. When the store reports a conflict the
// transaction is rolled back and fn runs again from scratch, so fn must
// rebuild any state it derives from the database.
func (s *InvestingService) Atomically(ctx context.Context, fn func(tx *sql.Tx) error) error {
	backoff := s.retryBackoff
	if backoff <= 0 {
		backoff = time.Millisecond
	}
	maxRetries := s.maxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	policy := retry.WithMaxRetries(uint64(maxRetries), retry.NewExponential(backoff))

	attempt := 0
	return retry.Do(ctx, policy, func(ctx context.Context) error {
		attempt++
		err := s.ledger.InTx(ctx, fn)
		if errors.Is(err, models.ErrConflict) {
			logger.WithError(err).WithField("attempt", attempt).Warn("Conflicting update, retrying unit of work")
			return retry.RetryableError(err)
		}
		return err
	})
}

// Run matches target against the open fundables of the opposite kind and
// persists every changed row through tx. target must already be stored.
func (s *InvestingService) Run(ctx context.Context, tx repositories.Querier, target models.Fundable) error {
	if !target.Funds().Free().IsPositive() {
		return nil
	}

	opposite := s.stores[target.Kind().Opposite()]
	candidates, err := opposite.ListUnclosedFundables(ctx, tx)
	if err != nil {
		return fmt.Errorf("list open %s: %w", opposite.Kind(), err)
	}

	touched := Invest(target, candidates, s.now())
	if len(touched) == 0 {
		return nil
	}

	for _, candidate := range touched {
		if err := opposite.UpdateFunding(ctx, tx, candidate.Funds()); err != nil {
			return err
		}
	}

	funds := target.Funds()
	if err := s.stores[target.Kind()].UpdateFunding(ctx, tx, funds); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"kind":           target.Kind(),
		"id":             funds.ID,
		"invested":       funds.InvestedAmount.String(),
		"full":           funds.FullAmount.String(),
		"fully_invested": funds.FullyInvested,
		"matched":        len(touched),
	}).Info("Investing run finished")

	return nil
}

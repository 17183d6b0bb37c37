package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/alimgiray/charityfund/internal/models"
	"github.com/alimgiray/charityfund/internal/repositories"
	"github.com/alimgiray/charityfund/pkg/logger"
)

type CharityProjectService struct {
	ledger      *repositories.Ledger
	projectRepo *repositories.CharityProjectRepository
	investing   *InvestingService
}

func NewCharityProjectService(ledger *repositories.Ledger, projectRepo *repositories.CharityProjectRepository, investing *InvestingService) *CharityProjectService {
	return &CharityProjectService{
		ledger:      ledger,
		projectRepo: projectRepo,
		investing:   investing,
	}
}

// CreateProject stores a new project and invests waiting donations into it
func (s *CharityProjectService) CreateProject(ctx context.Context, in models.CharityProjectCreate) (*models.CharityProject, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var project *models.CharityProject
	err := s.investing.Atomically(ctx, func(tx *sql.Tx) error {
		if err := s.checkNameDuplicate(ctx, tx, in.Name); err != nil {
			return err
		}

		project = models.NewCharityProject(in, s.investing.Now())
		if err := s.projectRepo.Create(ctx, tx, project); err != nil {
			return err
		}

		return s.investing.Run(ctx, tx, project)
	})
	if err != nil {
		return nil, err
	}

	logger.WithField("project_id", project.ID).Infof("Created charity project %q", project.Name)
	return project, nil
}

// GetProject retrieves a project by ID
func (s *CharityProjectService) GetProject(ctx context.Context, id int64) (*models.CharityProject, error) {
	return s.projectRepo.GetByID(ctx, s.ledger.DB(), id)
}

// ListProjects retrieves all projects
func (s *CharityProjectService) ListProjects(ctx context.Context) ([]*models.CharityProject, error) {
	return s.projectRepo.GetAll(ctx, s.ledger.DB())
}

// UpdateProject applies a partial update to an open project. Raising the
// target does not trigger a new investing run.
func (s *CharityProjectService) UpdateProject(ctx context.Context, id int64, patch models.CharityProjectUpdate) (*models.CharityProject, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var project *models.CharityProject
	err := s.investing.Atomically(ctx, func(tx *sql.Tx) error {
		var err error
		project, err = s.projectRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}

		if project.FullyInvested {
			return models.ErrClosedProject
		}
		if patch.FullAmount != nil && patch.FullAmount.LessThan(project.InvestedAmount) {
			return models.ErrInvalidAmount
		}
		if patch.Name != nil && strings.TrimSpace(*patch.Name) != project.Name {
			if err := s.checkNameDuplicate(ctx, tx, *patch.Name); err != nil {
				return err
			}
		}

		if patch.IsEmpty() {
			return nil
		}

		project.Apply(patch, s.investing.Now())
		return s.projectRepo.Update(ctx, tx, project)
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

// RemoveProject deletes a project that has not received any money and
// returns it as it was before deletion
func (s *CharityProjectService) RemoveProject(ctx context.Context, id int64) (*models.CharityProject, error) {
	var project *models.CharityProject
	err := s.investing.Atomically(ctx, func(tx *sql.Tx) error {
		var err error
		project, err = s.projectRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}

		if project.InvestedAmount.IsPositive() {
			return models.ErrHasInvestment
		}

		return s.projectRepo.Delete(ctx, tx, project)
	})
	if err != nil {
		return nil, err
	}

	logger.WithField("project_id", id).Info("Removed charity project")
	return project, nil
}

func (s *CharityProjectService) checkNameDuplicate(ctx context.Context, q repositories.Querier, name string) error {
	_, err := s.projectRepo.GetIDByName(ctx, q, strings.TrimSpace(name))
	switch {
	case err == nil:
		return models.ErrDuplicateName
	case errors.Is(err, models.ErrNotFound):
		return nil
	default:
		return err
	}
}

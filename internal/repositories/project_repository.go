package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alimgiray/charityfund/internal/models"
)

const projectColumns = fundingColumns + `, name, description`

type CharityProjectRepository struct{}

func NewCharityProjectRepository() *CharityProjectRepository {
	return &CharityProjectRepository{}
}

func (r *CharityProjectRepository) Kind() models.Kind {
	return models.KindProject
}

// Create inserts a new project and fills in its ID
func (r *CharityProjectRepository) Create(ctx context.Context, q Querier, project *models.CharityProject) error {
	if err := project.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO charity_projects (name, description, full_amount, invested_amount, fully_invested, create_date, close_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := q.ExecContext(ctx, query,
		project.Name,
		project.Description,
		project.FullAmount,
		project.InvestedAmount,
		project.FullyInvested,
		project.CreateDate.UTC(),
		utcPtr(project.CloseDate),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateName
		}
		return classifyError(err)
	}

	project.ID, err = result.LastInsertId()
	return err
}

// GetByID retrieves a project by ID
func (r *CharityProjectRepository) GetByID(ctx context.Context, q Querier, id int64) (*models.CharityProject, error) {
	query := `SELECT ` + projectColumns + ` FROM charity_projects WHERE id = ?`

	project, err := scanProject(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("charity project %d: %w", id, models.ErrNotFound)
		}
		return nil, classifyError(err)
	}

	return project, nil
}

// GetIDByName returns the ID of the project called name, or models.ErrNotFound
func (r *CharityProjectRepository) GetIDByName(ctx context.Context, q Querier, name string) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM charity_projects WHERE name = ?`, name).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, models.ErrNotFound
		}
		return 0, classifyError(err)
	}
	return id, nil
}

// GetAll retrieves every project in creation order
func (r *CharityProjectRepository) GetAll(ctx context.Context, q Querier) ([]*models.CharityProject, error) {
	return r.query(ctx, q, `SELECT `+projectColumns+` FROM charity_projects ORDER BY id ASC`)
}

// ListUnclosed retrieves open projects oldest first, ties broken by ID
func (r *CharityProjectRepository) ListUnclosed(ctx context.Context, q Querier) ([]*models.CharityProject, error) {
	return r.query(ctx, q, `
		SELECT `+projectColumns+`
		FROM charity_projects
		WHERE fully_invested = 0
		ORDER BY create_date ASC, id ASC
	`)
}

// GetClosed retrieves fully invested projects
func (r *CharityProjectRepository) GetClosed(ctx context.Context, q Querier) ([]*models.CharityProject, error) {
	return r.query(ctx, q, `
		SELECT `+projectColumns+`
		FROM charity_projects
		WHERE fully_invested = 1
		ORDER BY close_date ASC, id ASC
	`)
}

// ListUnclosedFundables is ListUnclosed seen through the Fundable interface
func (r *CharityProjectRepository) ListUnclosedFundables(ctx context.Context, q Querier) ([]models.Fundable, error) {
	projects, err := r.ListUnclosed(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]models.Fundable, len(projects))
	for i, p := range projects {
		out[i] = p
	}
	return out, nil
}

// UpdateFunding persists the investment state of a project
func (r *CharityProjectRepository) UpdateFunding(ctx context.Context, q Querier, f *models.Funding) error {
	return updateFunding(ctx, q, "charity_projects", f)
}

// Update writes every mutable column of a project, guarded by its version
func (r *CharityProjectRepository) Update(ctx context.Context, q Querier, project *models.CharityProject) error {
	if err := project.Validate(); err != nil {
		return fmt.Errorf("charity project %d: %w", project.ID, err)
	}

	query := `
		UPDATE charity_projects
		SET name = ?, description = ?, full_amount = ?, invested_amount = ?,
		    fully_invested = ?, close_date = ?, version = version + 1
		WHERE id = ? AND version = ?
	`

	result, err := q.ExecContext(ctx, query,
		project.Name,
		project.Description,
		project.FullAmount,
		project.InvestedAmount,
		project.FullyInvested,
		utcPtr(project.CloseDate),
		project.ID,
		project.Version,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateName
		}
		return classifyError(err)
	}

	if err := checkAffected(result); err != nil {
		return fmt.Errorf("charity project %d: %w", project.ID, err)
	}

	project.Version++
	return nil
}

// Delete removes a project, guarded by its version
func (r *CharityProjectRepository) Delete(ctx context.Context, q Querier, project *models.CharityProject) error {
	result, err := q.ExecContext(ctx,
		`DELETE FROM charity_projects WHERE id = ? AND version = ?`,
		project.ID, project.Version,
	)
	if err != nil {
		return classifyError(err)
	}

	if err := checkAffected(result); err != nil {
		return fmt.Errorf("charity project %d: %w", project.ID, err)
	}
	return nil
}

func (r *CharityProjectRepository) query(ctx context.Context, q Querier, query string, args ...any) ([]*models.CharityProject, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyError(err)
	}
	defer rows.Close()

	projects := []*models.CharityProject{}
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.CharityProject, error) {
	project := &models.CharityProject{}
	var closeDate sql.NullTime

	dest := append(fundingScanTargets(&project.Funding, &closeDate), &project.Name, &project.Description)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	finishFundingScan(&project.Funding, closeDate)
	return project, nil
}

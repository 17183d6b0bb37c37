package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/alimgiray/charityfund/internal/models"
	"github.com/google/uuid"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

const userColumns = `id, name, username, email, profile_picture, github_access_token, is_superuser, created_at`

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID.String(),
		user.Name,
		user.Username,
		user.Email,
		user.ProfilePicture,
		user.GitHubAccessToken,
		user.IsSuperuser,
		user.CreatedAt.UTC(),
	)
	return classifyError(err)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.get(ctx, query, id.String())
}

// GetByUsername retrieves a user by GitHub login
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	return r.get(ctx, query, username)
}

// Update updates a user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = ?, email = ?, profile_picture = ?, github_access_token = ?, is_superuser = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.Email,
		user.ProfilePicture,
		user.GitHubAccessToken,
		user.IsSuperuser,
		user.ID.String(),
	)
	if err != nil {
		return classifyError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *UserRepository) get(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	var userID string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&userID,
		&user.Name,
		&user.Username,
		&user.Email,
		&user.ProfilePicture,
		&user.GitHubAccessToken,
		&user.IsSuperuser,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	user.ID, err = uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	user.CreatedAt = user.CreatedAt.UTC()

	return &user, nil
}

package services

import (
	"context"
	"errors"
	"time"

	"github.com/alimgiray/charityfund/internal/models"
	"github.com/alimgiray/charityfund/internal/repositories"
	"github.com/alimgiray/charityfund/pkg/config"
	"github.com/google/uuid"
)

type UserService struct {
	userRepo *repositories.UserRepository
	admins   config.AdminConfig
	now      func() time.Time
}

func NewUserService(userRepo *repositories.UserRepository, admins config.AdminConfig) *UserService {
	return &UserService{
		userRepo: userRepo,
		admins:   admins,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetUserByID retrieves a user by ID. Superuser rights are re-read from the
// configured administrator list, so removing a login there takes effect on
// the next request.
func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.IsSuperuser = s.admins.IsAdmin(user.Username)
	return user, nil
}

// UpsertGitHubUser creates or refreshes the local account of a GitHub user.
// Superuser rights follow the configured administrator list on every login.
func (s *UserService) UpsertGitHubUser(ctx context.Context, gh *GitHubUser, accessToken string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, gh.Login)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	if user == nil {
		user = &models.User{
			ID:                uuid.New(),
			Name:              gh.Name,
			Username:          gh.Login,
			Email:             gh.Email,
			ProfilePicture:    gh.AvatarURL,
			GitHubAccessToken: accessToken,
			IsSuperuser:       s.admins.IsAdmin(gh.Login),
			CreatedAt:         s.now(),
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	user.Name = gh.Name
	user.Email = gh.Email
	user.ProfilePicture = gh.AvatarURL
	user.GitHubAccessToken = accessToken
	user.IsSuperuser = s.admins.IsAdmin(gh.Login)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

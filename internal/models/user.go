package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name,omitempty"`
	Username          string    `json:"username"`
	Email             string    `json:"email,omitempty"`
	ProfilePicture    string    `json:"profile_picture,omitempty"`
	GitHubAccessToken string    `json:"-"`
	IsSuperuser       bool      `json:"is_superuser"`
	CreatedAt         time.Time `json:"created_at"`
}

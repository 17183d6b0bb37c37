package middleware

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/alimgiray/charityfund/internal/models"
	"github.com/alimgiray/charityfund/pkg/config"
	"github.com/alimgiray/charityfund/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie     = "session"
	sessionContextKey = "session"
)

type SessionData struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	IsSuperuser bool      `json:"is_superuser"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// UserLookup resolves the account behind a session.
type UserLookup interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Sessions signs and verifies the session cookie.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	users  UserLookup
}

// NewSessions builds the cookie codec. When users is set, every request
// reloads the account so removed users and revoked superusers lose access
// immediately instead of at cookie expiry.
func NewSessions(cfg config.SessionConfig, users UserLookup) *Sessions {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Sessions{secret: []byte(cfg.Secret), ttl: ttl, users: users}
}

// Middleware decodes the session cookie, if any, into the request context
func (s *Sessions) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionData := s.fromCookie(c); sessionData != nil && s.refresh(c, sessionData) {
			c.Set(sessionContextKey, sessionData)
		}
		c.Next()
	}
}

// refresh copies the current account state onto the session. It reports
// false when the account no longer exists or cannot be loaded.
func (s *Sessions) refresh(c *gin.Context, sessionData *SessionData) bool {
	if s.users == nil {
		return true
	}

	user, err := s.users.GetUserByID(c.Request.Context(), sessionData.UserID)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			logger.WithError(err).WithField("user_id", sessionData.UserID).Warn("Could not load session user")
		}
		return false
	}

	sessionData.Username = user.Username
	sessionData.IsSuperuser = user.IsSuperuser
	return true
}

// fromCookie extracts and validates session data from cookie
func (s *Sessions) fromCookie(c *gin.Context) *SessionData {
	cookie, err := c.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	return s.Decode(cookie)
}

// Decode verifies a cookie value (signature.data) and returns its session,
// or nil when it is malformed, forged or expired.
func (s *Sessions) Decode(value string) *SessionData {
	parts := strings.Split(value, ".")
	if len(parts) != 2 {
		return nil
	}

	signature, data := parts[0], parts[1]
	if !s.verifySignature(data, signature) {
		return nil
	}

	decodedData, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		return nil
	}

	var sessionData SessionData
	if err := json.Unmarshal(decodedData, &sessionData); err != nil {
		return nil
	}

	if time.Now().After(sessionData.ExpiresAt) {
		return nil
	}

	return &sessionData
}

// Encode signs a session for the given user
func (s *Sessions) Encode(user *models.User) (string, error) {
	sessionData := SessionData{
		UserID:      user.ID,
		Username:    user.Username,
		IsSuperuser: user.IsSuperuser,
		ExpiresAt:   time.Now().Add(s.ttl),
	}

	data, err := json.Marshal(sessionData)
	if err != nil {
		return "", err
	}

	encodedData := base64.URLEncoding.EncodeToString(data)
	return s.createSignature(encodedData) + "." + encodedData, nil
}

// Set creates a new session cookie
func (s *Sessions) Set(c *gin.Context, user *models.User) error {
	value, err := s.Encode(user)
	if err != nil {
		return err
	}
	c.SetCookie(sessionCookie, value, int(s.ttl.Seconds()), "/", "", false, true)
	return nil
}

// Clear removes the session cookie
func (s *Sessions) Clear(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}

func (s *Sessions) createSignature(data string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(data))
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}

func (s *Sessions) verifySignature(data, signature string) bool {
	expectedSignature := s.createSignature(data)
	return hmac.Equal([]byte(signature), []byte(expectedSignature))
}

// GetSession retrieves session data from context
func GetSession(c *gin.Context) *SessionData {
	session, exists := c.Get(sessionContextKey)
	if !exists {
		return nil
	}

	if sessionData, ok := session.(*SessionData); ok {
		return sessionData
	}

	return nil
}

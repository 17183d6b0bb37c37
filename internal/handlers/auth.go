package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"

	"github.com/alimgiray/charityfund/internal/middleware"
	"github.com/alimgiray/charityfund/internal/services"
	"github.com/alimgiray/charityfund/pkg/logger"
	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauth_state"

type AuthHandler struct {
	userService   *services.UserService
	githubService *services.GitHubService
	sessions      *middleware.Sessions
}

func NewAuthHandler(userService *services.UserService, githubService *services.GitHubService, sessions *middleware.Sessions) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		githubService: githubService,
		sessions:      sessions,
	}
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.Status(http.StatusNoContent)
}

// GitHubLogin initiates GitHub OAuth flow
func (h *AuthHandler) GitHubLogin(c *gin.Context) {
	state, err := newOAuthState()
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.githubService.GetAuthURL(state))
}

// GitHubCallback handles GitHub OAuth callback
func (h *AuthHandler) GitHubCallback(c *gin.Context) {
	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Missing authorization code"})
		return
	}

	ctx := c.Request.Context()

	// Exchange code for token
	token, err := h.githubService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.WithError(err).Warn("GitHub token exchange failed")
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"detail": "Token exchange failed"})
		return
	}

	// Get user info from GitHub
	githubUser, err := h.githubService.GetUserInfo(ctx, token)
	if err != nil {
		logger.WithError(err).Warn("GitHub user lookup failed")
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"detail": "Could not read GitHub profile"})
		return
	}

	user, err := h.userService.UpsertGitHubUser(ctx, githubUser, token.AccessToken)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.sessions.Set(c, user); err != nil {
		respondError(c, err)
		return
	}

	logger.WithField("username", user.Username).Info("User logged in")
	c.JSON(http.StatusOK, user)
}

func newOAuthState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

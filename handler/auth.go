// Package handler implements the HTTP API handlers.
package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vibetrip/vibetrip-api/auth"
	"github.com/vibetrip/vibetrip-api/auth/authctx"
	"github.com/vibetrip/vibetrip-api/errors"
	"github.com/vibetrip/vibetrip-api/identity"
	"github.com/vibetrip/vibetrip-api/logger"
	"github.com/vibetrip/vibetrip-api/server"
	"github.com/vibetrip/vibetrip-api/validation"
)

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Username string `json:"username" validate:"omitempty,max=32"`
	FullName string `json:"full_name" validate:"omitempty,max=128"`
}

// LoginRequest is the payload for password sign-in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse carries a first-party access token.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"`
	User        UserResponse `json:"user"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// AuthHandler serves registration, login, and the current-user endpoint.
type AuthHandler struct {
	svc      *auth.Service
	provider identity.Provider
	tokenTTL time.Duration
	log      *logger.Logger
}

// NewAuthHandler creates the handler. tokenTTL <= 0 selects the signer's
// default validity window.
func NewAuthHandler(svc *auth.Service, provider identity.Provider, tokenTTL time.Duration, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		svc:      svc,
		provider: provider,
		tokenTTL: tokenTTL,
		log:      log.WithComponent("handler.auth"),
	}
}

// RegisterRoutes mounts the auth endpoints on the given group. The authn
// middleware guards the endpoints that require a resolved identity.
func (h *AuthHandler) RegisterRoutes(api *gin.RouterGroup, authn gin.HandlerFunc) {
	g := api.Group("/auth")
	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.GET("/me", authn, h.me)
}

// register creates an account at the identity provider and returns a
// first-party token for the new user.
func (h *AuthHandler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.Validation("invalid request body").WithCause(err))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	data := map[string]any{}
	if req.Username != "" {
		data["username"] = req.Username
	}
	if req.FullName != "" {
		data["full_name"] = req.FullName
	}

	sess, err := h.provider.SignUp(c.Request.Context(), identity.SignUpParams{
		Email:    req.Email,
		Password: req.Password,
		Data:     data,
	})
	if err != nil {
		h.log.Warn("registration failed", logger.ErrorFields("register", err))
		server.RespondWithError(c, errors.Validation("Registration failed").WithCause(err))
		return
	}
	if sess == nil || sess.User == nil || sess.User.ID == "" {
		server.RespondWithError(c, errors.Validation("Registration failed"))
		return
	}

	resp, err := h.tokenResponse(sess.User)
	if err != nil {
		server.RespondWithError(c, errors.Internal(err))
		return
	}
	server.RespondCreated(c, resp)
}

// login authenticates an email/password pair against the identity
// provider and returns a first-party token.
func (h *AuthHandler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, errors.Validation("invalid request body").WithCause(err))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	sess, err := h.provider.SignInWithPassword(c.Request.Context(), req.Email, req.Password)
	if err != nil || sess == nil || sess.User == nil || sess.User.ID == "" {
		if err != nil {
			h.log.Debug("login failed", logger.ErrorFields("login", err))
		}
		server.RespondWithError(c, errors.Unauthorized("Incorrect email or password"))
		return
	}

	resp, err := h.tokenResponse(sess.User)
	if err != nil {
		server.RespondWithError(c, errors.Internal(err))
		return
	}
	server.RespondOK(c, resp)
}

// me returns the identity resolved by the auth middleware.
func (h *AuthHandler) me(c *gin.Context) {
	ident, err := authctx.GetOrError[auth.Identity](c.Request.Context())
	if err != nil {
		server.RespondWithError(c, errors.Unauthorized(""))
		return
	}
	server.RespondOK(c, UserResponse{ID: ident.ID})
}

// tokenResponse mints a first-party token for the user.
func (h *AuthHandler) tokenResponse(user *identity.User) (TokenResponse, error) {
	claims := map[string]any{"sub": user.ID}
	if user.Email != "" {
		claims["email"] = user.Email
	}

	ttl := h.tokenTTL
	signed, err := h.svc.IssueToken(claims, ttl)
	if err != nil {
		return TokenResponse{}, err
	}
	if ttl <= 0 {
		ttl = h.svc.DefaultTokenTTL()
	}

	return TokenResponse{
		AccessToken: signed,
		TokenType:   "bearer",
		ExpiresIn:   int(ttl.Seconds()),
		User:        UserResponse{ID: user.ID, Email: user.Email},
	}, nil
}

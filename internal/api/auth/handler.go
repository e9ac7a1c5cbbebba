// Package auth exposes registration, login and the JWT middleware.
package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MEKSAAA/Anti-Fake/internal/api/response"
	"github.com/MEKSAAA/Anti-Fake/internal/model"
	"github.com/MEKSAAA/Anti-Fake/internal/pkg/jwt"
	"github.com/MEKSAAA/Anti-Fake/internal/service"
)

// Handler carries the auth service dependencies.
type Handler struct {
	svc *service.AuthService
}

func NewHandler(svc *service.AuthService) *Handler {
	return &Handler{svc: svc}
}

// SendCode mails a verification code to the given address.
func (h *Handler) SendCode(c *gin.Context) {
	var req model.SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.svc.SendCode(c.ClientIP(), req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrNotQQMail):
			response.Fail(c, http.StatusBadRequest, "only QQ mail addresses are supported")
		case errors.Is(err, service.ErrRateLimited):
			response.Fail(c, http.StatusTooManyRequests, "too many code requests, please try again later")
		case errors.Is(err, service.ErrCodeAlreadySent):
			response.Fail(c, http.StatusBadRequest, "a verification code was already sent, please check your inbox")
		default:
			response.Fail(c, http.StatusInternalServerError, "failed to send verification code")
		}
		return
	}
	response.OK(c, "verification code sent", nil)
}

// Register creates an account with a previously mailed code.
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.svc.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			response.Fail(c, http.StatusBadRequest, "invalid or expired verification code")
		case errors.Is(err, service.ErrUsernameTaken):
			response.Fail(c, http.StatusBadRequest, "username already exists")
		case errors.Is(err, service.ErrEmailTaken):
			response.Fail(c, http.StatusBadRequest, "email already registered")
		default:
			response.Fail(c, http.StatusInternalServerError, "registration failed")
		}
		return
	}
	response.OK(c, "registered successfully", token)
}

// LoginPassword authenticates by username or email plus password.
func (h *Handler) LoginPassword(c *gin.Context) {
	var req model.PasswordLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.svc.LoginPassword(&req)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			response.Fail(c, http.StatusUnauthorized, "incorrect username/email or password")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "login failed")
		return
	}
	response.OK(c, "login successful", token)
}

// LoginCode authenticates an existing account by emailed code.
func (h *Handler) LoginCode(c *gin.Context) {
	var req model.CodeLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.svc.LoginCode(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.Fail(c, http.StatusNotFound, "no account registered for this email")
		case errors.Is(err, service.ErrInvalidCode):
			response.Fail(c, http.StatusBadRequest, "invalid or expired verification code")
		default:
			response.Fail(c, http.StatusInternalServerError, "login failed")
		}
		return
	}
	response.OK(c, "login successful", token)
}

// Middleware validates the bearer token and sets the user identity in
// the request context.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, http.StatusUnauthorized, "authorization header missing")
			c.Abort()
			return
		}

		token, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(token)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.Fail(c, http.StatusUnauthorized, "token has expired")
			} else {
				response.Fail(c, http.StatusUnauthorized, "invalid token")
			}
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

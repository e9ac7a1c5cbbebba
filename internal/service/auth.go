package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/MEKSAAA/Anti-Fake/internal/model"
	"github.com/MEKSAAA/Anti-Fake/internal/pkg/codes"
	"github.com/MEKSAAA/Anti-Fake/internal/pkg/jwt"
	"github.com/MEKSAAA/Anti-Fake/internal/repository"
)

var (
	ErrNotQQMail       = errors.New("only QQ mail addresses are supported")
	ErrRateLimited     = errors.New("too many code requests, please try again later")
	ErrCodeAlreadySent = errors.New("a verification code was already sent, please check your inbox")
	ErrInvalidCode     = errors.New("invalid or expired verification code")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrEmailTaken      = errors.New("email already registered")
	ErrBadCredentials  = errors.New("incorrect username/email or password")
	ErrUserNotFound    = errors.New("no account registered for this email")
	ErrMailUnavailable = errors.New("failed to send verification email")
)

// Mailer is the outbound-mail dependency of the auth service.
type Mailer interface {
	Send(to, subject, body string) error
}

// AuthService implements registration and both login flows.
type AuthService struct {
	codes   codes.Store
	mailer  Mailer
	limiter *RateLimiter
}

func NewAuthService(store codes.Store, mailer Mailer, limiter *RateLimiter) *AuthService {
	return &AuthService{codes: store, mailer: mailer, limiter: limiter}
}

// SendCode mails a fresh 6-digit verification code. Only one code may be
// active per address; a repeat request within the TTL is rejected rather
// than reissued.
func (s *AuthService) SendCode(clientIP, email string) error {
	if !strings.HasSuffix(strings.ToLower(email), "@qq.com") {
		return ErrNotQQMail
	}
	if !s.limiter.Allow(clientIP) {
		return ErrRateLimited
	}

	active, err := s.codes.Active(email)
	if err != nil {
		return fmt.Errorf("failed to check verification code: %w", err)
	}
	if active {
		return ErrCodeAlreadySent
	}

	code := fmt.Sprintf("%06d", rand.Intn(1000000))
	if err := s.codes.Issue(email, code, codes.DefaultTTL); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	body := fmt.Sprintf("您的验证码是：%s，有效期%d分钟。如非本人操作请忽略本邮件。",
		code, int(codes.DefaultTTL/time.Minute))
	if err := s.mailer.Send(email, "Anti-Fake 验证码", body); err != nil {
		// Drop the code so the user is not locked out of retrying for the
		// whole TTL after a delivery failure.
		if dropErr := s.codes.Drop(email); dropErr != nil {
			zap.L().Warn("failed to drop undelivered code", zap.Error(dropErr))
		}
		zap.L().Error("verification mail delivery failed",
			zap.String("email", email), zap.Error(err))
		return ErrMailUnavailable
	}
	return nil
}

// Register creates an account after consuming the verification code.
func (s *AuthService) Register(req *model.RegisterRequest) (*model.TokenResponse, error) {
	ok, err := s.codes.Consume(req.Email, req.VerificationCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check verification code: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCode
	}

	if taken, err := repository.UsernameExists(req.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrUsernameTaken
	}
	if taken, err := repository.EmailExists(req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrEmailTaken
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashPassword(req.Password),
	}
	if err := repository.CreateUser(user); err != nil {
		return nil, err
	}
	return tokenResponse(user)
}

// LoginPassword authenticates by username-or-email plus password.
func (s *AuthService) LoginPassword(req *model.PasswordLoginRequest) (*model.TokenResponse, error) {
	user, err := repository.GetUserByIdentifier(req.Identifier)
	if err != nil {
		return nil, err
	}
	if user == nil || !passwordMatches(user.PasswordHash, req.Password) {
		return nil, ErrBadCredentials
	}
	return tokenResponse(user)
}

// LoginCode authenticates an existing account by emailed code.
func (s *AuthService) LoginCode(req *model.CodeLoginRequest) (*model.TokenResponse, error) {
	user, err := repository.GetUserByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	ok, err := s.codes.Consume(req.Email, req.VerificationCode)
	if err != nil {
		return nil, fmt.Errorf("failed to check verification code: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCode
	}
	return tokenResponse(user)
}

func tokenResponse(user *model.User) (*model.TokenResponse, error) {
	token, err := jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &model.TokenResponse{AccessToken: token, TokenType: "bearer", User: user}, nil
}

func hashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func passwordMatches(storedHash, password string) bool {
	candidate := hashPassword(password)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(candidate)) == 1
}

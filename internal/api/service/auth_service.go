package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/permissions"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/config"
	"reviewhub/internal/mailer"
)

var (
	// ErrUsernameTaken: the username belongs to a user registered with a
	// different email.
	ErrUsernameTaken = errors.New("username already registered with a different email")
	// ErrEmailTaken: the email belongs to a user with a different username.
	ErrEmailTaken = errors.New("email already registered with a different username")
	// ErrInvalidCode covers missing, expired and mismatched confirmation codes.
	ErrInvalidCode  = errors.New("invalid confirmation code")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims carried by the access token.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// Signup creates or refreshes a pending registration and dispatches a
	// fresh confirmation code. Idempotent for a matching username+email pair.
	Signup(ctx context.Context, username, email string) error
	// IssueToken exchanges a confirmation code for a signed access token.
	IssueToken(ctx context.Context, username, code string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo  repository.UserRepository
	codes     repository.ConfirmationStore
	mail      mailer.Mailer
	logger    *slog.Logger
	jwtSecret string
	tokenTTL  time.Duration
	codeTTL   time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	codes repository.ConfirmationStore,
	mail mailer.Mailer,
	logger *slog.Logger,
	cfg *config.Config,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		codes:     codes,
		mail:      mail,
		logger:    logger,
		jwtSecret: cfg.JWTSecret,
		tokenTTL:  cfg.TokenTTL,
		codeTTL:   cfg.ConfirmationCodeTTL,
	}
}

func (s *authService) Signup(ctx context.Context, username, email string) error {
	user, err := s.getOrCreateUser(ctx, username, email)
	if err != nil {
		return err
	}

	// A repeated signup rotates the code: only the newest one stays valid.
	code := uuid.New().String()
	hash, err := HashCode(code)
	if err != nil {
		return err
	}
	if err := s.codes.Set(ctx, user.Username, hash, s.codeTTL); err != nil {
		return err
	}

	// Best effort delivery: the registration stays pending either way.
	if err := s.mail.SendConfirmationCode(ctx, user.Email, code); err != nil {
		s.logger.Error("failed to deliver confirmation code", "email", user.Email, "error", err)
	}
	return nil
}

// getOrCreateUser fetches the user for an exactly matching username+email
// pair, creates one when neither half is taken, and rejects mismatched
// combinations as conflicts before any code is generated.
func (s *authService) getOrCreateUser(ctx context.Context, username, email string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		if user.Email != email {
			return nil, ErrUsernameTaken
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &models.User{
		Username: username,
		Email:    email,
		Role:     string(permissions.RoleUser),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	hash, err := s.codes.Get(ctx, user.Username)
	if err != nil {
		if errors.Is(err, repository.ErrCodeNotFound) {
			return "", ErrInvalidCode
		}
		return "", err
	}
	if err := VerifyCode(hash, code); err != nil {
		return "", ErrInvalidCode
	}

	// The code stays valid until it expires or a new signup rotates it, so
	// exchanging it again keeps working.
	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

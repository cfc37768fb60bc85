package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/crypto/bcrypt"

	"github.com/foodgram-app/backend/config"
	dbmodels "github.com/foodgram-app/backend/database/models"
	"github.com/foodgram-app/backend/models"
	"github.com/foodgram-app/backend/utils"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for unknown or revoked tokens
	ErrInvalidToken = errors.New("invalid token")

	// ErrWrongPassword is returned when the current password check fails
	ErrWrongPassword = errors.New("wrong password")
)

// AuthService handles registration, token issuance and password changes.
type AuthService struct {
	repos      *models.Repositories
	cfg        config.AuthConfig
	tokenCache *lru.Cache
}

// NewAuthService creates a new auth service
func NewAuthService(repos *models.Repositories, cfg config.AuthConfig) (*AuthService, error) {
	cache, err := lru.New(cfg.TokenCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create token cache: %w", err)
	}
	return &AuthService{
		repos:      repos,
		cfg:        cfg,
		tokenCache: cache,
	}, nil
}

// Register validates the signup payload, hashes the password and creates
// the account.
func (s *AuthService) Register(ctx context.Context, req *models.SignupRequest) (*dbmodels.User, error) {
	verr := utils.NewValidationError()

	for _, msg := range utils.ValidateEmail(req.Email) {
		verr.Add("email", msg)
	}
	for _, msg := range utils.ValidateUsername(req.Username) {
		verr.Add("username", msg)
	}
	if req.FirstName == "" {
		verr.Add("first_name", "Обязательное поле.")
	} else if utils.TooLong(req.FirstName, utils.MaxNameLength) {
		verr.Add("first_name", fmt.Sprintf("Убедитесь, что это значение содержит не более %d символов.", utils.MaxNameLength))
	}
	if req.LastName == "" {
		verr.Add("last_name", "Обязательное поле.")
	} else if utils.TooLong(req.LastName, utils.MaxNameLength) {
		verr.Add("last_name", fmt.Sprintf("Убедитесь, что это значение содержит не более %d символов.", utils.MaxNameLength))
	}
	if req.Password == "" {
		verr.Add("password", "Обязательное поле.")
	} else if utils.TooLong(req.Password, utils.MaxPasswordLength) {
		verr.Add("password", fmt.Sprintf("Убедитесь, что это значение содержит не более %d символов.", utils.MaxPasswordLength))
	}

	if len(verr.Fields["email"]) == 0 {
		exists, err := s.repos.User.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			verr.Add("email", "Пользователь с таким email уже существует.")
		}
	}
	if len(verr.Fields["username"]) == 0 {
		exists, err := s.repos.User.ExistsByUsername(ctx, req.Username)
		if err != nil {
			return nil, err
		}
		if exists {
			verr.Add("username", "Пользователь с таким именем уже существует.")
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &dbmodels.User{
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
	}
	if err := s.repos.User.Create(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("User registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))
	return user, nil
}

// Login checks credentials and issues a new auth token.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.repos.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return "", ErrInvalidCredentials
	}

	key, err := newTokenKey()
	if err != nil {
		return "", err
	}
	token := &dbmodels.AuthToken{Key: key, UserID: user.ID}
	if err := s.repos.Token.Create(ctx, token); err != nil {
		return "", err
	}
	s.tokenCache.Add(key, user.ID)

	slog.Info("User logged in", slog.Int64("user_id", user.ID))
	return key, nil
}

// Logout revokes the given token.
func (s *AuthService) Logout(ctx context.Context, key string) error {
	s.tokenCache.Remove(key)
	deleted, err := s.repos.Token.DeleteByKey(ctx, key)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrInvalidToken
	}
	return nil
}

// Authenticate resolves a token key to its user, consulting the cache
// before the database.
func (s *AuthService) Authenticate(ctx context.Context, key string) (*dbmodels.User, error) {
	if key == "" {
		return nil, ErrInvalidToken
	}

	if cached, ok := s.tokenCache.Get(key); ok {
		if userID, ok := cached.(int64); ok {
			user, err := s.repos.User.GetByID(ctx, userID)
			if err == nil {
				return user, nil
			}
			s.tokenCache.Remove(key)
		}
	}

	token, err := s.repos.Token.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	user, err := s.repos.User.GetByID(ctx, token.UserID)
	if err != nil {
		return nil, err
	}
	s.tokenCache.Add(key, user.ID)
	return user, nil
}

// SetPassword changes the user's password after verifying the current
// one.
func (s *AuthService) SetPassword(ctx context.Context, user *dbmodels.User, req *models.SetPasswordRequest) error {
	verr := utils.NewValidationError()
	if req.NewPassword == "" {
		verr.Add("new_password", "Обязательное поле.")
	} else if utils.TooLong(req.NewPassword, utils.MaxPasswordLength) {
		verr.Add("new_password", fmt.Sprintf("Убедитесь, что это значение содержит не более %d символов.", utils.MaxPasswordLength))
	}
	if req.CurrentPassword == "" {
		verr.Add("current_password", "Обязательное поле.")
	}
	if verr.HasErrors() {
		return verr
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.repos.User.UpdatePassword(ctx, user.ID, string(hash))
}

func newTokenKey() (string, error) {
	raw := make([]byte, 20)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

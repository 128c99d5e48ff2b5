package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/config"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/dto"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidSecretCode  = errors.New("invalid secret code")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("all fields are required")
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates an account with the role bound to the supplied secret
// code. The role is fixed here and never mutated afterwards.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Username == "" || req.Password == "" || req.SecretCode == "" {
		return nil, ErrMissingFields
	}

	var role string
	switch req.SecretCode {
	case s.cfg.UserSecretCode:
		role = models.RoleUser
	case s.cfg.AdminSecretCode:
		role = models.RoleAdmin
	default:
		return nil, ErrInvalidSecretCode
	}

	var existing models.User
	if err := s.db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Username: req.Username,
		Password: string(hash),
		Role:     role,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.tokenResponse(&user)
}

func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrMissingFields
	}

	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.tokenResponse(&user)
}

// EnsureDefaultAdmin seeds the default admin account when absent.
func (s *AuthService) EnsureDefaultAdmin() error {
	var existing models.User
	err := s.db.Where("username = ?", s.cfg.AdminUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		ID:       uuid.New(),
		Username: s.cfg.AdminUsername,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return err
	}

	slog.Info("default admin user created", "username", admin.Username)
	return nil
}

func (s *AuthService) tokenResponse(user *models.User) (*dto.AuthResponse, error) {
	claims := jwt.MapClaims{
		"id":       user.ID.String(),
		"username": user.Username,
		"role":     user.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	}, nil
}

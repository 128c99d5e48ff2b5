package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/proxyl3av3r/TelegramIntelligence/internal/config"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/dto"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Channel{},
		&models.Tab{},
		&models.OwnerContent{},
		&models.OverviewBlock{},
		&models.SystemLog{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTExpiry:       time.Hour,
		UserSecretCode:  "user-code",
		AdminSecretCode: "admin-code",
		AdminUsername:   "admin",
		AdminPassword:   "admin123",
	}
}

func TestRegisterRoleBoundToSecretCode(t *testing.T) {
	svc := NewAuthService(setupTestDB(t), testConfig())

	resp, err := svc.Register(&dto.RegisterRequest{
		Username: "reader", Password: "pass1234", SecretCode: "user-code",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, resp.User.Role)
	require.NotEmpty(t, resp.Token)

	resp, err = svc.Register(&dto.RegisterRequest{
		Username: "editor", Password: "pass1234", SecretCode: "admin-code",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, resp.User.Role)
}

func TestRegisterRejectsUnknownSecretCode(t *testing.T) {
	svc := NewAuthService(setupTestDB(t), testConfig())

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "x", Password: "y", SecretCode: "wrong-code",
	})
	require.ErrorIs(t, err, ErrInvalidSecretCode)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	svc := NewAuthService(setupTestDB(t), testConfig())

	_, err := svc.Register(&dto.RegisterRequest{Username: "x", SecretCode: "user-code"})
	require.ErrorIs(t, err, ErrMissingFields)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc := NewAuthService(setupTestDB(t), testConfig())

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "dup", Password: "pass1234", SecretCode: "user-code",
	})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{
		Username: "dup", Password: "other", SecretCode: "admin-code",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	svc := NewAuthService(setupTestDB(t), testConfig())

	_, err := svc.Register(&dto.RegisterRequest{
		Username: "alice", Password: "s3cret99", SecretCode: "user-code",
	})
	require.NoError(t, err)

	resp, err := svc.Login(&dto.LoginRequest{Username: "alice", Password: "s3cret99"})
	require.NoError(t, err)
	require.Equal(t, "alice", resp.User.Username)
	require.NotEmpty(t, resp.Token)

	_, err = svc.Login(&dto.LoginRequest{Username: "alice", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&dto.LoginRequest{Username: "nobody", Password: "s3cret99"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEnsureDefaultAdminIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db, testConfig())

	require.NoError(t, svc.EnsureDefaultAdmin())
	require.NoError(t, svc.EnsureDefaultAdmin())

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "admin").Count(&count).Error)
	require.Equal(t, int64(1), count)

	resp, err := svc.Login(&dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, resp.User.Role)
}

package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/config"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/database"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/handlers"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/models"
	"github.com/proxyl3av3r/TelegramIntelligence/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) (*fiber.App, *config.Config) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.DB = db
	require.NoError(t, database.Migrate())

	cfg := &config.Config{
		JWTSecret:       "test-secret",
		JWTExpiry:       time.Hour,
		UserSecretCode:  "user-code",
		AdminSecretCode: "admin-code",
		AdminUsername:   "admin",
		AdminPassword:   "admin123",
		UploadDir:       t.TempDir(),
		MaxUploadSize:   10 * 1024 * 1024,
	}

	authService := services.NewAuthService(db, cfg)
	channelService := services.NewChannelService(db)
	uploadService := services.NewUploadService(cfg.UploadDir, cfg.MaxUploadSize)

	app := fiber.New()
	Setup(app, cfg,
		handlers.NewAuthHandler(authService),
		handlers.NewChannelHandler(channelService),
		handlers.NewTabHandler(channelService),
		handlers.NewUploadHandler(uploadService),
		handlers.NewHealthHandler(),
	)
	return app, cfg
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	parsed := map[string]json.RawMessage{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func register(t *testing.T, app *fiber.App, username, code string) string {
	t.Helper()
	resp, body := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"username": username, "password": "pass1234", "secretCode": code,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token string
	require.NoError(t, json.Unmarshal(body["token"], &token))
	return token
}

func TestRegisterRejectsBadSecretCode(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/auth/register", "", map[string]string{
		"username": "x", "password": "y", "secretCode": "nope",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChannelMutationRBAC(t *testing.T) {
	app, _ := setupApp(t)

	adminToken := register(t, app, "boss", "admin-code")
	userToken := register(t, app, "reader", "user-code")

	payload := map[string]any{"name": "Test", "username": "@test", "region": "all"}

	resp, _ := doJSON(t, app, "POST", "/api/channels", "", payload)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, app, "POST", "/api/channels", userToken, payload)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/api/channels", adminToken, payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var id string
	require.NoError(t, json.Unmarshal(body["id"], &id))
	require.NotEmpty(t, id)
}

func TestAuthMe(t *testing.T) {
	app, _ := setupApp(t)

	token := register(t, app, "whoami", "user-code")

	resp, _ := doJSON(t, app, "GET", "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := doJSON(t, app, "GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(body["user"], &user))
	require.Equal(t, "whoami", user.Username)
	require.Equal(t, models.RoleUser, user.Role)
}

// End-to-end path from the catalogue's main editing flow: admin registers,
// creates a channel, adds an owner tab, fills the dossier, and the public
// composed read returns the tagged-union tab.
func TestChannelCompositionEndToEnd(t *testing.T) {
	app, _ := setupApp(t)

	token := register(t, app, "curator", "admin-code")

	resp, body := doJSON(t, app, "POST", "/api/channels", token, map[string]any{
		"name": "Test", "username": "@test", "region": "all",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var channelID string
	require.NoError(t, json.Unmarshal(body["id"], &channelID))

	resp, body = doJSON(t, app, "POST", "/api/channels/"+channelID+"/tabs", token, map[string]string{
		"nameUk": "Власник", "nameEn": "Owner", "template": "owner",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tabID string
	require.NoError(t, json.Unmarshal(body["id"], &tabID))

	resp, _ = doJSON(t, app, "PUT", "/api/tabs/"+tabID+"/owner-content", token, map[string]string{
		"fullName": "A B",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, app, "GET", "/api/channels/"+channelID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tabs []struct {
		Template string `json:"template"`
		Content  struct {
			FullName string `json:"fullName"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(body["tabs"], &tabs))
	require.Len(t, tabs, 1)
	require.Equal(t, "owner", tabs[0].Template)
	require.Equal(t, "A B", tabs[0].Content.FullName)
}

func TestDeletedChannelTabsGone(t *testing.T) {
	app, _ := setupApp(t)

	token := register(t, app, "janitor", "admin-code")

	_, body := doJSON(t, app, "POST", "/api/channels", token, map[string]any{
		"name": "Temp", "username": "@temp",
		"tabs": []map[string]string{
			{"nameUk": "a", "nameEn": "a", "template": "owner"},
			{"nameUk": "b", "nameEn": "b", "template": "overview"},
		},
	})
	var channelID string
	require.NoError(t, json.Unmarshal(body["id"], &channelID))

	resp, _ := doJSON(t, app, "DELETE", "/api/channels/"+channelID, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/api/channels/"+channelID, "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUploadImageAndServeBack(t *testing.T) {
	app, _ := setupApp(t)

	token := register(t, app, "uploader", "user-code")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="pic.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG test bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/upload/image", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var upload struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&upload))
	require.NotEmpty(t, upload.URL)

	// The returned URL must 200 on GET via the static prefix
	getReq := httptest.NewRequest("GET", upload.URL, nil)
	getResp, err := app.Test(getReq, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
}

func TestUploadRejectsWrongFieldType(t *testing.T) {
	app, _ := setupApp(t)

	token := register(t, app, "uploader2", "user-code")

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="notes.txt"`)
	header.Set("Content-Type", "text/plain")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("plain text"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/upload/image", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndStats(t *testing.T) {
	app, _ := setupApp(t)

	resp, body := doJSON(t, app, "GET", "/api/health", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status string
	require.NoError(t, json.Unmarshal(body["status"], &status))
	require.Equal(t, "ok", status)

	resp, body = doJSON(t, app, "GET", "/api/stats", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var channels int64
	require.NoError(t, json.Unmarshal(body["channels"], &channels))
	require.Zero(t, channels)
}

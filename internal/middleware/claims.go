package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNoToken = errors.New("no token in request context")

// Claims are the verified token claims of the current request.
type Claims struct {
	UserID   uuid.UUID
	Username string
	Role     string
}

// CurrentUser extracts the verified claims stored by JWTProtected.
func CurrentUser(c *fiber.Ctx) (*Claims, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrNoToken
	}

	idStr, _ := mapClaims["id"].(string)
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return nil, ErrNoToken
	}

	username, _ := mapClaims["username"].(string)
	role, _ := mapClaims["role"].(string)

	return &Claims{UserID: userID, Username: username, Role: role}, nil
}

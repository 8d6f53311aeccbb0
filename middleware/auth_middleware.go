package middleware

import (
	"errors"

	"github.com/anjiri1684/exam_qr_masking/models"
	"github.com/anjiri1684/exam_qr_masking/services"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const TokenCookie = "token"

func Protected(secret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   secret,
		TokenLookup:  "header:Authorization,cookie:" + TokenCookie,
		AuthScheme:   "Bearer",
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"status": "error", "message": "Authentication required", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired token", "data": nil})
}

var errBadClaims = errors.New("malformed token claims")

// CurrentPrincipal decodes the caller set by Protected.
func CurrentPrincipal(c *fiber.Ctx) (services.Principal, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return services.Principal{}, errBadClaims
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return services.Principal{}, errBadClaims
	}
	rawID, _ := claims["user_id"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return services.Principal{}, errBadClaims
	}
	role, _ := claims["role"].(string)
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	return services.Principal{
		UserID: id,
		Name:   name,
		Email:  email,
		Role:   models.Role(role),
	}, nil
}

func RoleRequired(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := CurrentPrincipal(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}
		for _, r := range roles {
			if p.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}

func AdminRequired() fiber.Handler   { return RoleRequired(models.RoleAdmin) }
func StudentRequired() fiber.Handler { return RoleRequired(models.RoleStudent) }
func MarkerRequired() fiber.Handler  { return RoleRequired(models.RoleMarker) }

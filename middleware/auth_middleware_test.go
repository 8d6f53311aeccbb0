package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anjiri1684/exam_qr_masking/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("middleware-secret")

func signToken(t *testing.T, claims jwt.MapClaims, key []byte) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func claimsFor(id uuid.UUID, role models.Role) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id": id.String(),
		"email":   "someone@example.com",
		"name":    "Someone",
		"role":    string(role),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", Protected(secret), func(c *fiber.Ctx) error {
		p, err := CurrentPrincipal(c)
		if err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"id": p.UserID, "role": p.Role, "email": p.Email})
	})
	app.Get("/admin", Protected(secret), AdminRequired(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/staff", Protected(secret), RoleRequired(models.RoleAdmin, models.RoleMarker), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func get(t *testing.T, app *fiber.App, path string, prepare func(*http.Request)) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if prepare != nil {
		prepare(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func TestProtected(t *testing.T) {
	app := newApp()
	id := uuid.New()

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", nil))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", bearer("garbage")))

	forged := signToken(t, claimsFor(id, models.RoleAdmin), []byte("other-secret"))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", bearer(forged)))

	expired := claimsFor(id, models.RoleAdmin)
	expired["exp"] = time.Now().Add(-time.Hour).Unix()
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", bearer(signToken(t, expired, secret))))

	valid := signToken(t, claimsFor(id, models.RoleStudent), secret)
	assert.Equal(t, fiber.StatusOK, get(t, app, "/me", bearer(valid)))
}

func TestProtectedReadsCookie(t *testing.T) {
	app := newApp()
	token := signToken(t, claimsFor(uuid.New(), models.RoleMarker), secret)

	status := get(t, app, "/me", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
	})
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRoleRequired(t *testing.T) {
	app := newApp()
	admin := signToken(t, claimsFor(uuid.New(), models.RoleAdmin), secret)
	marker := signToken(t, claimsFor(uuid.New(), models.RoleMarker), secret)
	student := signToken(t, claimsFor(uuid.New(), models.RoleStudent), secret)

	assert.Equal(t, fiber.StatusOK, get(t, app, "/admin", bearer(admin)))
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/admin", bearer(marker)))
	assert.Equal(t, fiber.StatusOK, get(t, app, "/staff", bearer(marker)))
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/staff", bearer(student)))
}

func TestCurrentPrincipalRejectsBadClaims(t *testing.T) {
	app := newApp()
	claims := claimsFor(uuid.New(), models.RoleAdmin)
	claims["user_id"] = "not-a-uuid"

	assert.Equal(t, fiber.StatusInternalServerError, get(t, app, "/me", bearer(signToken(t, claims, secret))))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/admin", bearer(signToken(t, claims, secret))))
}

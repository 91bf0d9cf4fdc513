package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"feedloop-server/internal/logger"
	"feedloop-server/internal/models"
)

const (
	localsIdentity      = "identity"
	localsWidgetProject = "widgetProject"

	// IntegrationKeyHeader authenticates widget submissions without a user
	// session.
	IntegrationKeyHeader = "X-Integration-Key"
)

// ProjectKeyResolver looks a project up by its integration key.
type ProjectKeyResolver interface {
	GetProjectByIntegrationKey(key string) (*models.Project, error)
}

// RequireUser authenticates dashboard requests via a bearer token.
func RequireUser(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}
		token := strings.TrimPrefix(header, "Bearer ")

		identity, err := verifier.Verify(c.Context(), token)
		if err != nil {
			logger.Warn("Token verification failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "authentication required",
			})
		}
		c.Locals(localsIdentity, identity)
		return c.Next()
	}
}

// IdentityFromCtx returns the authenticated caller set by RequireUser.
func IdentityFromCtx(c *fiber.Ctx) *Identity {
	identity, _ := c.Locals(localsIdentity).(*Identity)
	return identity
}

// RequireIntegrationKey authenticates widget requests via the project
// integration key.
func RequireIntegrationKey(resolver ProjectKeyResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(IntegrationKeyHeader)
		if key == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "integration key required",
			})
		}
		project, err := resolver.GetProjectByIntegrationKey(key)
		if err != nil {
			logger.Warn("Integration key lookup failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid integration key",
			})
		}
		c.Locals(localsWidgetProject, project)
		return c.Next()
	}
}

// WidgetProjectFromCtx returns the project resolved by RequireIntegrationKey.
func WidgetProjectFromCtx(c *fiber.Ctx) *models.Project {
	project, _ := c.Locals(localsWidgetProject).(*models.Project)
	return project
}

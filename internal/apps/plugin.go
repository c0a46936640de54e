package apps

import (
	"github.com/gofiber/fiber/v2"
)

// Plugin is one feature area of the API. Plugins receive their
// dependencies in their constructor.
type Plugin interface {
	// ID names the plugin in logs.
	ID() string

	// Models returns the GORM model pointers for AutoMigrate, parents first.
	Models() []interface{}

	// RegisterRoutes mounts routes on the /api group. protect is the JWT
	// middleware; routes that need an authenticated user add it themselves.
	RegisterRoutes(router fiber.Router, protect fiber.Handler)
}

// AdminPlugin extends Plugin with admin-only routes.
type AdminPlugin interface {
	Plugin

	// RegisterAdminRoutes mounts routes on /api/admin, which already has the
	// JWT and admin middleware applied.
	RegisterAdminRoutes(router fiber.Router)
}

// WebhookPlugin extends Plugin with callback routes for external workflows.
type WebhookPlugin interface {
	Plugin

	// RegisterWebhooks mounts routes on /api/webhooks. The group carries the
	// shared-secret check and no JWT.
	RegisterWebhooks(router fiber.Router)
}

package mockapi

import (
	"tag-reconciler/core/logger"
	"tag-reconciler/core/middleware/auth"
	"tag-reconciler/core/middleware/rayid"
	"tag-reconciler/core/server"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NewApp builds the Fiber application serving the fixture.
func NewApp(cfg server.Config, fx *Fixture, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})

	// RayID first so rejected requests are traced too.
	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(log, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})
	app.Use(auth.New(auth.Config{ClientID: cfg.ClientID, ClientSecret: cfg.ClientSecret}))

	svc := NewService(fx, cfg.EffectivePageSize(), cfg.ReportTTL(), log)
	NewHandler(svc, log).RegisterRoutes(app)
	return app
}

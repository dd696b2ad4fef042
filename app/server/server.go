package server

import (
	"context"
	"errors"
	"strings"
	"time"

	"brandichat/app/config"
	"brandichat/app/service/booking"
	"brandichat/app/service/chat"
	"brandichat/app/service/history"
	"brandichat/app/service/respcache"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/samber/do"
)

var _ do.Shutdownable = (*Server)(nil)

type Server struct {
	cfg        *config.Config
	chatSvc    *chat.Service
	bookingSvc *booking.Service
	historySvc *history.Service
	cacheSvc   *respcache.Service

	app       *fiber.App
	validate  *validator.Validate
	startedAt time.Time
}

func New(di *do.Injector) (*Server, error) {
	s := &Server{
		cfg:        do.MustInvoke[*config.Config](di),
		chatSvc:    do.MustInvoke[*chat.Service](di),
		bookingSvc: do.MustInvoke[*booking.Service](di),
		historySvc: do.MustInvoke[*history.Service](di),
		cacheSvc:   do.MustInvoke[*respcache.Service](di),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		startedAt:  time.Now(),
	}

	s.app = s.buildApp()

	return s, nil
}

func (s *Server) buildApp() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             1024 * 1024,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(s.cfg.Server.CorsOrigins, ","),
		AllowCredentials: true,
	}))

	// Outer per-IP limiter, independent of the orchestrator's own counter.
	app.Use(limiter.New(limiter.Config{
		Max:        s.cfg.RateLimit.MaxRequests,
		Expiration: time.Duration(s.cfg.RateLimit.WindowSeconds) * time.Second,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "Too many requests. Please try again later.",
				"message": "Rate limit exceeded. Please wait before making another request.",
			})
		},
	}))

	app.Get("/health", s.handleHealth)

	api := app.Group("/api")
	api.Post("/chat/message", s.handleChatMessage)
	api.Post("/chat/clear", s.handleChatClear)
	api.Post("/booking/schedule", s.handleBookingSchedule)
	api.Get("/booking/availability", s.handleBookingAvailability)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Endpoint not found",
			"message": "The requested endpoint " + c.Method() + " " + c.OriginalURL() + " was not found.",
		})
	})

	return app
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.app.ShutdownWithTimeout(5 * time.Second)
	}()

	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// errorHandler keeps transport-level failures as JSON. Conversational
// failures never reach here, the orchestrator converts them to normal
// responses.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/arjunsachdeva/lifetrack-backend/internal/auth"
	"github.com/arjunsachdeva/lifetrack-backend/internal/config"
	"github.com/arjunsachdeva/lifetrack-backend/internal/exercise"
	"github.com/arjunsachdeva/lifetrack-backend/internal/finance"
	"github.com/arjunsachdeva/lifetrack-backend/internal/food"
	"github.com/arjunsachdeva/lifetrack-backend/internal/habit"
	"github.com/arjunsachdeva/lifetrack-backend/internal/router"
	"github.com/arjunsachdeva/lifetrack-backend/internal/sleep"
	"github.com/arjunsachdeva/lifetrack-backend/internal/study"
	"github.com/arjunsachdeva/lifetrack-backend/internal/target"
)

func main() {
	log := newLogger(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	log = newLogger(cfg.LogLevel)

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating pgx pool")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("error pinging database")
	}

	app := fiber.New(fiber.Config{
		AppName:      "lifetrack-api",
		ErrorHandler: router.ErrorHandler,
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(requestLogger(log))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	secret := []byte(cfg.JWTSecret)
	authMW := auth.Middleware(secret)

	r := &router.Router{
		AuthHandler: &auth.Handler{
			Store:    auth.NewRepository(pool),
			AuditDB:  pool,
			Secret:   secret,
			TokenTTL: cfg.TokenTTL,
			Secure:   strings.EqualFold(cfg.Env, "production"),
			Log:      log,
		},
		FinanceHandler:  &finance.Handler{Store: finance.NewRepository(pool), AuditDB: pool, ExportDir: cfg.ExportDir},
		FoodHandler:     &food.Handler{Store: food.NewRepository(pool), AuditDB: pool, ExportDir: cfg.ExportDir},
		SleepHandler:    &sleep.Handler{Store: sleep.NewRepository(pool), AuditDB: pool, ExportDir: cfg.ExportDir},
		StudyHandler:    &study.Handler{Store: study.NewRepository(pool), AuditDB: pool, ExportDir: cfg.ExportDir},
		ExerciseHandler: &exercise.Handler{Store: exercise.NewRepository(pool), AuditDB: pool, ExportDir: cfg.ExportDir},
		HabitHandler:    &habit.Handler{Store: habit.NewRepository(pool), AuditDB: pool, ExportDir: cfg.ExportDir},
		TargetHandler:   &target.Handler{Store: target.NewRepository(pool), AuditDB: pool, ExportDir: cfg.ExportDir},
		AuthMW:          authMW,
	}
	r.RegisterRoutes(app)

	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

func requestLogger(log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("took", time.Since(start)).
			Msg("request")
		return err
	}
}

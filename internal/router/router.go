package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arjunsachdeva/lifetrack-backend/internal/auth"
	"github.com/arjunsachdeva/lifetrack-backend/internal/exercise"
	"github.com/arjunsachdeva/lifetrack-backend/internal/finance"
	"github.com/arjunsachdeva/lifetrack-backend/internal/food"
	"github.com/arjunsachdeva/lifetrack-backend/internal/habit"
	"github.com/arjunsachdeva/lifetrack-backend/internal/sleep"
	"github.com/arjunsachdeva/lifetrack-backend/internal/study"
	"github.com/arjunsachdeva/lifetrack-backend/internal/target"
)

type Router struct {
	AuthHandler     *auth.Handler
	FinanceHandler  *finance.Handler
	FoodHandler     *food.Handler
	SleepHandler    *sleep.Handler
	StudyHandler    *study.Handler
	ExerciseHandler *exercise.Handler
	HabitHandler    *habit.Handler
	TargetHandler   *target.Handler
	AuthMW          fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", RateLimitAuth(), r.AuthHandler.Signup)
	authGroup.Post("/login", RateLimitAuth(), r.AuthHandler.Login)
	authGroup.Get("/me", r.AuthMW, r.AuthHandler.Me)
	authGroup.Post("/logout", r.AuthHandler.Logout)
	authGroup.Get("/:id", r.AuthHandler.Profile)

	fin := api.Group("/finance", r.AuthMW)
	fin.Post("/", RateLimitWrite(), r.FinanceHandler.Create)
	fin.Get("/", r.FinanceHandler.List)
	fin.Get("/totals", r.FinanceHandler.Totals)
	fin.Get("/export", r.FinanceHandler.Export)
	fin.Get("/report", r.FinanceHandler.MonthlyReport)
	fin.Get("/:id", r.FinanceHandler.Get)
	fin.Patch("/:id", RateLimitWrite(), r.FinanceHandler.Update)
	fin.Delete("/:id", RateLimitWrite(), r.FinanceHandler.Delete)

	fd := api.Group("/food", r.AuthMW)
	fd.Post("/", RateLimitWrite(), r.FoodHandler.Create)
	fd.Get("/", r.FoodHandler.List)
	fd.Get("/export", r.FoodHandler.Export)
	fd.Get("/:id", r.FoodHandler.Get)
	fd.Patch("/:id", RateLimitWrite(), r.FoodHandler.Update)
	fd.Delete("/:id", RateLimitWrite(), r.FoodHandler.Delete)

	sl := api.Group("/sleep", r.AuthMW)
	sl.Post("/", RateLimitWrite(), r.SleepHandler.Create)
	sl.Get("/", r.SleepHandler.List)
	sl.Get("/export", r.SleepHandler.Export)
	sl.Get("/:id", r.SleepHandler.Get)
	sl.Patch("/:id", RateLimitWrite(), r.SleepHandler.Update)
	sl.Delete("/:id", RateLimitWrite(), r.SleepHandler.Delete)

	st := api.Group("/study", r.AuthMW)
	st.Post("/", RateLimitWrite(), r.StudyHandler.Create)
	st.Get("/", r.StudyHandler.List)
	st.Get("/export", r.StudyHandler.Export)
	st.Get("/:id", r.StudyHandler.Get)
	st.Patch("/:id", RateLimitWrite(), r.StudyHandler.Update)
	st.Delete("/:id", RateLimitWrite(), r.StudyHandler.Delete)

	ex := api.Group("/exercises", r.AuthMW)
	ex.Post("/", RateLimitWrite(), r.ExerciseHandler.Create)
	ex.Get("/", r.ExerciseHandler.List)
	ex.Get("/export", r.ExerciseHandler.Export)
	ex.Get("/:id", r.ExerciseHandler.Get)
	ex.Patch("/:id/toggle", RateLimitWrite(), r.ExerciseHandler.Toggle)
	ex.Patch("/:id", RateLimitWrite(), r.ExerciseHandler.Update)
	ex.Delete("/:id", RateLimitWrite(), r.ExerciseHandler.Delete)

	hb := api.Group("/habits", r.AuthMW)
	hb.Post("/", RateLimitWrite(), r.HabitHandler.Create)
	hb.Get("/", r.HabitHandler.List)
	hb.Get("/export", r.HabitHandler.Export)
	hb.Get("/:id", r.HabitHandler.Get)
	hb.Patch("/:id/toggle", RateLimitWrite(), r.HabitHandler.Toggle)
	hb.Post("/:id/complete", RateLimitWrite(), r.HabitHandler.Complete)
	hb.Patch("/:id", RateLimitWrite(), r.HabitHandler.Update)
	hb.Delete("/:id", RateLimitWrite(), r.HabitHandler.Delete)

	tg := api.Group("/targets", r.AuthMW)
	tg.Post("/", RateLimitWrite(), r.TargetHandler.Create)
	tg.Get("/", r.TargetHandler.List)
	tg.Get("/export", r.TargetHandler.Export)
	tg.Get("/:id", r.TargetHandler.Get)
	tg.Patch("/:id/achieve", RateLimitWrite(), r.TargetHandler.Achieve)
	tg.Patch("/:id", RateLimitWrite(), r.TargetHandler.Update)
	tg.Delete("/:id", RateLimitWrite(), r.TargetHandler.Delete)
}

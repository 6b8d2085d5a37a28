package handler

import (
	"log/slog"
	"net/http"
	"time"

	"primeform/internal/delivery/http/middleware"
	"primeform/internal/delivery/http/response"
	"primeform/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Absence messages the production backend emits for missing plans. Clients
// key their soft-absence handling on these exact strings.
const (
	msgNoDietPlan    = "No active diet plan found"
	msgNoWorkoutPlan = "No active workout plan found"
)

// PlanHandler serves the stub backend's plan endpoints. Generation is
// deterministic from the onboarding profile rather than model-backed.
type PlanHandler struct {
	store  *Store
	logger *slog.Logger
}

// NewPlanHandler is the constructor for PlanHandler, injected by Fx.
func NewPlanHandler(store *Store, logger *slog.Logger) *PlanHandler {
	return &PlanHandler{store: store, logger: logger}
}

// CurrentDietPlan returns the active diet plan or the canonical absence shape.
func (h *PlanHandler) CurrentDietPlan(c echo.Context) error {
	plan := h.store.DietPlan(middleware.UserID(c))
	if plan == nil {
		return response.NotFound(c, "PLAN_NOT_FOUND", msgNoDietPlan)
	}

	return response.Success(c, http.StatusOK, plan, "")
}

// GenerateDietPlan produces a fresh diet plan from the onboarding profile.
func (h *PlanHandler) GenerateDietPlan(c echo.Context) error {
	userID := middleware.UserID(c)
	profile := h.store.Profile(userID)
	if profile == nil {
		return response.BadRequest(c, "ONBOARDING_INCOMPLETE", "Complete onboarding before generating a plan")
	}

	plan := buildDietPlan(userID, profile)
	h.store.SetDietPlan(userID, plan)
	h.logger.Info("Diet plan generated", slog.String("user_id", userID), slog.String("plan_id", plan.ID))

	return response.Success(c, http.StatusOK, plan, "Diet plan generated")
}

// CurrentWorkoutPlan returns the active workout plan or the canonical
// absence shape.
func (h *PlanHandler) CurrentWorkoutPlan(c echo.Context) error {
	plan := h.store.WorkoutPlan(middleware.UserID(c))
	if plan == nil {
		return response.NotFound(c, "PLAN_NOT_FOUND", msgNoWorkoutPlan)
	}

	return response.Success(c, http.StatusOK, plan, "")
}

// GenerateWorkoutPlan produces a fresh workout plan from the onboarding
// profile.
func (h *PlanHandler) GenerateWorkoutPlan(c echo.Context) error {
	userID := middleware.UserID(c)
	profile := h.store.Profile(userID)
	if profile == nil {
		return response.BadRequest(c, "ONBOARDING_INCOMPLETE", "Complete onboarding before generating a plan")
	}

	plan := buildWorkoutPlan(userID, profile)
	h.store.SetWorkoutPlan(userID, plan)
	h.logger.Info("Workout plan generated", slog.String("user_id", userID), slog.String("plan_id", plan.ID))

	return response.Success(c, http.StatusOK, plan, "Workout plan generated")
}

// buildDietPlan derives a plausible plan using the Mifflin-St Jeor estimate
// with a flat activity multiplier.
func buildDietPlan(userID string, profile *entity.UserProfile) *entity.DietPlan {
	bmr := 10*profile.WeightKG + 6.25*profile.HeightCM - 5*float64(profile.Age)
	if profile.Gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	calories := int(bmr * 1.4)
	switch profile.Goal {
	case "lose_weight":
		calories -= 400
	case "build_muscle":
		calories += 300
	}

	protein := profile.WeightKG * 1.8
	fat := float64(calories) * 0.25 / 9
	carbs := (float64(calories) - protein*4 - fat*9) / 4

	now := time.Now().UTC()

	return &entity.DietPlan{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         "Daily nutrition plan",
		DailyCalories: calories,
		ProteinG:      protein,
		CarbsG:        carbs,
		FatG:          fat,
		Meals: []entity.Meal{
			{Name: "Breakfast", Calories: calories * 25 / 100, ProteinG: protein * 0.25},
			{Name: "Lunch", Calories: calories * 35 / 100, ProteinG: protein * 0.35},
			{Name: "Dinner", Calories: calories * 30 / 100, ProteinG: protein * 0.30},
			{Name: "Snack", Calories: calories * 10 / 100, ProteinG: protein * 0.10},
		},
		StartDate:     now,
		DurationWeeks: 4,
		GeneratedAt:   now,
	}
}

func buildWorkoutPlan(userID string, profile *entity.UserProfile) *entity.WorkoutPlan {
	focuses := []string{"Full body", "Upper body", "Lower body", "Cardio", "Push", "Pull", "Core"}

	sets := 3
	if profile.FitnessLevel == "advanced" {
		sets = 4
	}

	days := make([]entity.WorkoutDay, 0, profile.WorkoutsPerWeek)
	for i := 0; i < profile.WorkoutsPerWeek; i++ {
		days = append(days, entity.WorkoutDay{
			DayIndex: i + 1,
			Focus:    focuses[i%len(focuses)],
			Exercises: []entity.Exercise{
				{Name: "Squat", Sets: sets, Reps: 10, RestSeconds: 90},
				{Name: "Bench press", Sets: sets, Reps: 8, RestSeconds: 120},
				{Name: "Plank", Sets: sets, Reps: 1, RestSeconds: 60, Notes: "Hold 45 seconds"},
			},
		})
	}

	now := time.Now().UTC()

	return &entity.WorkoutPlan{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         "Weekly training plan",
		DaysPerWeek:   profile.WorkoutsPerWeek,
		Days:          days,
		StartDate:     now,
		DurationWeeks: 4,
		GeneratedAt:   now,
	}
}

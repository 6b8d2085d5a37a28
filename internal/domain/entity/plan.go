// Package entity contains the core business objects of the project.
package entity

import (
	"time"
)

// DietPlan is an AI-generated nutrition plan for one user.
type DietPlan struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Title          string    `json:"title"`
	DailyCalories  int       `json:"dailyCalories"`
	ProteinG       float64   `json:"proteinG"`
	CarbsG         float64   `json:"carbsG"`
	FatG           float64   `json:"fatG"`
	Meals          []Meal    `json:"meals"`
	StartDate      time.Time `json:"startDate"`
	DurationWeeks  int       `json:"durationWeeks"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

// Meal is a single entry in a diet plan day.
type Meal struct {
	Name     string  `json:"name"`     // e.g. "Breakfast", "Post-workout snack".
	Calories int     `json:"calories"`
	ProteinG float64 `json:"proteinG"`
	CarbsG   float64 `json:"carbsG"`
	FatG     float64 `json:"fatG"`
	Recipe   string  `json:"recipe,omitempty"`
}

// WorkoutPlan is an AI-generated training plan for one user.
type WorkoutPlan struct {
	ID            string       `json:"id"`
	UserID        string       `json:"userId"`
	Title         string       `json:"title"`
	DaysPerWeek   int          `json:"daysPerWeek"`
	Days          []WorkoutDay `json:"days"`
	StartDate     time.Time    `json:"startDate"`
	DurationWeeks int          `json:"durationWeeks"`
	GeneratedAt   time.Time    `json:"generatedAt"`
}

// WorkoutDay groups the exercises scheduled for one training day.
type WorkoutDay struct {
	DayIndex  int        `json:"dayIndex"` // 1-based position inside the week.
	Focus     string     `json:"focus"`    // e.g. "Upper body", "Cardio".
	Exercises []Exercise `json:"exercises"`
}

// Exercise is a single prescribed movement.
type Exercise struct {
	Name        string `json:"name"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
	RestSeconds int    `json:"restSeconds"`
	Notes       string `json:"notes,omitempty"`
}

package progress

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apps/training"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/models"
	"github.com/google/uuid"
)

// WeightHistory is one body-weight entry in kg.
type WeightHistory struct {
	ID         uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID   `gorm:"type:uuid;not null;index:idx_weight_user_recorded" json:"-"`
	User       models.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Weight     float64     `gorm:"not null" json:"weight"`
	Notes      string      `gorm:"size:255" json:"notes"`
	RecordedAt time.Time   `gorm:"not null;index:idx_weight_user_recorded" json:"recorded_at"`
}

func (WeightHistory) TableName() string { return "weight_history" }

// ExercisePersonalRecord is a lift the user logged as a new best.
type ExercisePersonalRecord struct {
	ID         uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID         `gorm:"type:uuid;not null;index:idx_pr_user_exercise" json:"-"`
	User       models.User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ExerciseID uuid.UUID         `gorm:"type:uuid;not null;index:idx_pr_user_exercise" json:"-"`
	Exercise   training.Exercise `gorm:"constraint:OnDelete:CASCADE" json:"exercise"`
	Weight     float64           `gorm:"not null" json:"weight"`
	Reps       int               `gorm:"not null" json:"reps"`
	AchievedAt time.Time         `gorm:"not null;index" json:"achieved_at"`
}

// --- DTOs ---

type LogWeightRequest struct {
	Weight *float64 `json:"weight"`
	Notes  string   `json:"notes"`
}

type LogRecordRequest struct {
	ExerciseID *uuid.UUID `json:"exercise_id"`
	Weight     *float64   `json:"weight"`
	Reps       *int       `json:"reps"`
}

type WorkoutStats struct {
	TotalSessions     int64      `json:"total_sessions"`
	CompletedSessions int64      `json:"completed_sessions"`
	CompletionRate    float64    `json:"completion_rate"`
	LastWorkout       *time.Time `json:"last_workout"`
}

type Dashboard struct {
	User             dto.UserResponse         `json:"user"`
	WorkoutStats     WorkoutStats             `json:"workout_stats"`
	ThisWeekWorkouts int64                    `json:"this_week_workouts"`
	RecentWeight     []WeightHistory          `json:"recent_weight"`
	RecentPRs        []ExercisePersonalRecord `json:"recent_prs"`
}

type StreakResponse struct {
	CurrentStreak int        `json:"current_streak"`
	LongestStreak int        `json:"longest_streak"`
	TotalWorkouts int        `json:"total_workouts"`
	LastWorkout   *time.Time `json:"last_workout"`
	Message       string     `json:"message,omitempty"`
}

type MonthlyStats struct {
	Month             string                    `json:"month"`
	WorkoutsCompleted int                       `json:"workouts_completed"`
	TotalExercises    int                       `json:"total_exercises"`
	TotalSets         int                       `json:"total_sets"`
	Workouts          []training.WorkoutSession `json:"workouts"`
}

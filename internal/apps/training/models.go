package training

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/planner"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Exercise struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	MuscleGroup  string    `gorm:"size:50;not null;index" json:"muscle_group"`
	Equipment    string    `gorm:"size:50" json:"equipment"`
	Difficulty   string    `gorm:"size:20" json:"difficulty"`
	Instructions string    `gorm:"type:text" json:"instructions"`
	CreatedAt    time.Time `json:"created_at"`
}

type WorkoutTemplate struct {
	ID              uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string            `gorm:"size:100;not null" json:"name"`
	Description     string            `gorm:"type:text" json:"description"`
	Goal            string            `gorm:"size:50;index" json:"goal"`
	Level           string            `gorm:"size:20;index" json:"level"`
	DurationMinutes int               `json:"duration_minutes"`
	Exercises       []WorkoutExercise `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"exercises,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// WorkoutExercise is one line of a template's exercise pool.
type WorkoutExercise struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TemplateID  uuid.UUID `gorm:"type:uuid;not null;index" json:"template_id"`
	ExerciseID  uuid.UUID `gorm:"type:uuid;not null" json:"exercise_id"`
	Exercise    Exercise  `gorm:"constraint:OnDelete:RESTRICT" json:"exercise"`
	Sets        int       `gorm:"not null" json:"sets"`
	Reps        int       `gorm:"not null" json:"reps"`
	RestSeconds int       `gorm:"default:60" json:"rest_seconds"`
	Position    int       `gorm:"column:position" json:"order"`
}

// UserWorkout assigns a template to a user. At most one active assignment
// exists per user and template.
type UserWorkout struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_user_workout_active,where:is_active" json:"user_id"`
	User       models.User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	TemplateID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_user_workout_active,where:is_active" json:"template_id"`
	Template   WorkoutTemplate `gorm:"constraint:OnDelete:CASCADE" json:"template"`
	IsActive   bool            `gorm:"default:true" json:"is_active"`
	AssignedAt time.Time       `gorm:"autoCreateTime" json:"assigned_at"`
}

type WorkoutSession struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	User        models.User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	TemplateID  uuid.UUID         `gorm:"type:uuid;not null" json:"template_id"`
	Template    *WorkoutTemplate  `gorm:"constraint:OnDelete:CASCADE" json:"template,omitempty"`
	Exercises   []SessionExercise `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"exercises"`
	Completed   bool              `gorm:"default:false;index" json:"completed"`
	CompletedAt *time.Time        `json:"completed_at"`
	CreatedAt   time.Time         `json:"created_at"`
}

// SessionExercise is a planned exercise of a session plus what the user did.
type SessionExercise struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SessionID   uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	ExerciseID  uuid.UUID `gorm:"type:uuid;not null" json:"exercise_id"`
	Exercise    Exercise  `gorm:"constraint:OnDelete:RESTRICT" json:"exercise"`
	Sets        int       `json:"sets"`
	Reps        int       `json:"reps"`
	RestSeconds int       `json:"rest_seconds"`
	Position    int       `gorm:"column:position" json:"order"`
	Completed   bool      `gorm:"default:false" json:"completed"`
	WeightUsed  *float64  `json:"weight_used"`
	ActualReps  *int      `json:"actual_reps"`
}

// UserSchedule is a generated weekly workout plan and its generation state.
type UserSchedule struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User               models.User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AvailableDays      datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"available_days"`
	AvailableTimeSlots datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"available_time_slots"`
	SessionsPerWeek    int            `gorm:"default:3" json:"sessions_per_week"`
	SessionDuration    int            `gorm:"default:60" json:"session_duration"`
	EquipmentAccess    datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"equipment_access"`
	ExperienceLevel    string         `gorm:"size:20" json:"experience_level"`
	WeeklyPlan         datatypes.JSON `gorm:"type:jsonb" json:"weekly_plan"`
	GenerationStatus   planner.Status `gorm:"size:20;not null;default:'pending';index" json:"generation_status"`
	WorkflowID         string         `gorm:"size:100" json:"workflow_id,omitempty"`
	FailureReason      string         `gorm:"type:text" json:"failure_reason,omitempty"`
	IsActive           bool           `gorm:"default:false;index" json:"is_active"`
	GeneratedAt        *time.Time     `json:"generated_at"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// Plan decodes the stored weekly plan; ok is false when none is stored.
func (s *UserSchedule) Plan() (planner.WeeklyPlan, bool) {
	if len(bytes.TrimSpace(s.WeeklyPlan)) == 0 {
		return nil, false
	}
	return planner.ParseWeeklyPlan(json.RawMessage(s.WeeklyPlan))
}

// --- DTOs ---

type CreateExerciseRequest struct {
	Name         string `json:"name"`
	MuscleGroup  string `json:"muscle_group"`
	Equipment    string `json:"equipment"`
	Difficulty   string `json:"difficulty"`
	Instructions string `json:"instructions"`
}

type TemplateExerciseInput struct {
	ExerciseID  *uuid.UUID `json:"exercise_id"`
	Sets        int        `json:"sets"`
	Reps        int        `json:"reps"`
	RestSeconds *int       `json:"rest_seconds"`
}

type CreateTemplateRequest struct {
	Name            string                  `json:"name"`
	Description     string                  `json:"description"`
	Goal            string                  `json:"goal"`
	Level           string                  `json:"level"`
	DurationMinutes int                     `json:"duration_minutes"`
	Exercises       []TemplateExerciseInput `json:"exercises"`
}

type AssignWorkoutRequest struct {
	TemplateID *uuid.UUID `json:"template_id"`
}

type CreateSessionRequest struct {
	TemplateID    *uuid.UUID `json:"template_id"`
	ExerciseCount *int       `json:"exercise_count"`
}

type UpdateSessionExerciseRequest struct {
	WeightUsed *float64 `json:"weight_used"`
	ActualReps *int     `json:"actual_reps"`
	Completed  *bool    `json:"completed"`
}

type GenerateScheduleRequest struct {
	AvailableDays      []string          `json:"available_days"`
	AvailableTimeSlots map[string]string `json:"available_time_slots"`
	SessionsPerWeek    *int              `json:"sessions_per_week"`
	SessionDuration    *int              `json:"session_duration"`
	EquipmentAccess    []string          `json:"equipment_access"`
	ExperienceLevel    string            `json:"experience_level"`
}

type workoutUserData struct {
	Age         *int     `json:"age"`
	Weight      *float64 `json:"weight"`
	Height      *float64 `json:"height"`
	Gender      string   `json:"gender"`
	FitnessGoal string   `json:"fitness_goal"`
}

type workoutPreferences struct {
	AvailableDays      []string          `json:"available_days"`
	AvailableTimeSlots map[string]string `json:"available_time_slots"`
	SessionsPerWeek    int               `json:"sessions_per_week"`
	SessionDuration    int               `json:"session_duration"`
	EquipmentAccess    []string          `json:"equipment_access"`
	ExperienceLevel    string            `json:"experience_level"`
}

type GeneratedWorkout struct {
	Template    TemplateSummary   `json:"template"`
	Exercises   []WorkoutExercise `json:"exercises"`
	GeneratedAt time.Time         `json:"generated_at"`
}

type TemplateSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Goal        string    `json:"goal"`
	Level       string    `json:"level"`
}

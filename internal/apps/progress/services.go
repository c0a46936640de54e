package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apps/training"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultWeightLimit  = 30
	defaultHistoryLimit = 20
	maxLimit            = 365
	dashboardWeights    = 10
	dashboardRecords    = 5
	maxBodyWeight       = 500
)

var (
	ErrUserNotFound      = apperr.NotFound("user not found")
	ErrExerciseNotFound  = apperr.NotFound("exercise not found")
	ErrWeightRequired    = apperr.InvalidArgument("weight is required")
	ErrWeightRange       = apperr.InvalidArgument("weight must be greater than 0 and at most 500 kg")
	ErrRecordFields      = apperr.InvalidArgument("exercise_id, weight, and reps are required")
	ErrRecordValues      = apperr.InvalidArgument("weight and reps must be positive")
	ErrNotPersonalRecord = apperr.InvalidArgument("Not a personal record")
)

// ProgressService reads workout history and records body weight and lifts.
type ProgressService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db, now: func() time.Time { return time.Now().UTC() }}
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func (s *ProgressService) Dashboard(userID uuid.UUID) (*Dashboard, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	stats, err := s.workoutStats(userID)
	if err != nil {
		return nil, err
	}

	out := &Dashboard{User: services.ToUserResponse(&user), WorkoutStats: *stats}
	if err := s.db.Model(&training.WorkoutSession{}).
		Where("user_id = ? AND completed = ? AND created_at >= ?", userID, true, s.now().AddDate(0, 0, -7)).
		Count(&out.ThisWeekWorkouts).Error; err != nil {
		return nil, err
	}
	if out.RecentWeight, err = s.WeightHistory(userID, dashboardWeights); err != nil {
		return nil, err
	}
	if err := s.db.Preload("Exercise").
		Where("user_id = ?", userID).
		Order("achieved_at DESC").
		Limit(dashboardRecords).
		Find(&out.RecentPRs).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ProgressService) workoutStats(userID uuid.UUID) (*WorkoutStats, error) {
	stats := &WorkoutStats{}
	base := s.db.Model(&training.WorkoutSession{}).Where("user_id = ?", userID)
	if err := base.Session(&gorm.Session{}).Count(&stats.TotalSessions).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("completed = ?", true).Count(&stats.CompletedSessions).Error; err != nil {
		return nil, err
	}
	stats.CompletionRate = CompletionRate(stats.TotalSessions, stats.CompletedSessions)

	var last training.WorkoutSession
	err := s.db.Where("user_id = ? AND completed = ? AND completed_at IS NOT NULL", userID, true).
		Order("completed_at DESC").
		Limit(1).
		Find(&last).Error
	if err != nil {
		return nil, err
	}
	stats.LastWorkout = last.CompletedAt
	return stats, nil
}

// --- Weight ---

func (s *ProgressService) WeightHistory(userID uuid.UUID, limit int) ([]WeightHistory, error) {
	out := []WeightHistory{}
	err := s.db.Where("user_id = ?", userID).
		Order("recorded_at DESC").
		Limit(clampLimit(limit, defaultWeightLimit)).
		Find(&out).Error
	return out, err
}

func validateWeight(req *LogWeightRequest) error {
	if req.Weight == nil {
		return ErrWeightRequired
	}
	if *req.Weight <= 0 || *req.Weight > maxBodyWeight {
		return ErrWeightRange
	}
	return nil
}

// LogWeight records an entry and makes it the user's current weight.
func (s *ProgressService) LogWeight(userID uuid.UUID, req *LogWeightRequest) (*WeightHistory, error) {
	if err := validateWeight(req); err != nil {
		return nil, err
	}

	entry := &WeightHistory{
		ID:         uuid.New(),
		UserID:     userID,
		Weight:     *req.Weight,
		Notes:      req.Notes,
		RecordedAt: s.now(),
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", userID).Update("weight", entry.Weight)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return tx.Omit("User").Create(entry).Error
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// --- Personal records ---

// PersonalRecords returns the heaviest record per exercise.
func (s *ProgressService) PersonalRecords(userID uuid.UUID) ([]ExercisePersonalRecord, error) {
	best := s.db.Model(&ExercisePersonalRecord{}).
		Select("exercise_id, MAX(weight) AS max_weight").
		Where("user_id = ?", userID).
		Group("exercise_id")

	out := []ExercisePersonalRecord{}
	err := s.db.Preload("Exercise").
		Joins("JOIN (?) AS best ON best.exercise_id = exercise_personal_records.exercise_id AND best.max_weight = exercise_personal_records.weight", best).
		Where("exercise_personal_records.user_id = ?", userID).
		Order("exercise_personal_records.achieved_at DESC").
		Find(&out).Error
	return out, err
}

func validateRecord(req *LogRecordRequest) error {
	if req.ExerciseID == nil || req.Weight == nil || req.Reps == nil {
		return ErrRecordFields
	}
	if *req.Weight <= 0 || *req.Reps <= 0 {
		return ErrRecordValues
	}
	return nil
}

// LogRecord stores a lift when it beats the user's current best for that
// exercise. Otherwise it returns ErrNotPersonalRecord with the current best.
func (s *ProgressService) LogRecord(userID uuid.UUID, req *LogRecordRequest) (*ExercisePersonalRecord, *ExercisePersonalRecord, error) {
	if err := validateRecord(req); err != nil {
		return nil, nil, err
	}

	var (
		pr      *ExercisePersonalRecord
		current *ExercisePersonalRecord
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&training.Exercise{}).Where("id = ?", *req.ExerciseID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrExerciseNotFound
		}

		var existing []ExercisePersonalRecord
		if err := tx.Preload("Exercise").
			Where("user_id = ? AND exercise_id = ?", userID, *req.ExerciseID).
			Order("weight DESC").
			Limit(1).
			Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) > 0 && existing[0].Weight >= *req.Weight {
			current = &existing[0]
			return ErrNotPersonalRecord
		}

		pr = &ExercisePersonalRecord{
			ID:         uuid.New(),
			UserID:     userID,
			ExerciseID: *req.ExerciseID,
			Weight:     *req.Weight,
			Reps:       *req.Reps,
			AchievedAt: s.now(),
		}
		if err := tx.Omit("User", "Exercise").Create(pr).Error; err != nil {
			return fmt.Errorf("failed to log personal record: %w", err)
		}
		return tx.First(&pr.Exercise, "id = ?", pr.ExerciseID).Error
	})
	if err != nil {
		return nil, current, err
	}
	return pr, nil, nil
}

// --- Workout history ---

func (s *ProgressService) WorkoutHistory(userID uuid.UUID, limit int, completedOnly bool) ([]training.WorkoutSession, error) {
	q := s.db.Preload("Template").Where("user_id = ?", userID)
	if completedOnly {
		q = q.Where("completed = ?", true)
	}
	out := []training.WorkoutSession{}
	err := q.Order("created_at DESC").Limit(clampLimit(limit, defaultHistoryLimit)).Find(&out).Error
	return out, err
}

func (s *ProgressService) Streak(userID uuid.UUID) (*StreakResponse, error) {
	var dates []time.Time
	if err := s.db.Model(&training.WorkoutSession{}).
		Where("user_id = ? AND completed = ? AND completed_at IS NOT NULL", userID, true).
		Order("completed_at DESC").
		Pluck("completed_at", &dates).Error; err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return &StreakResponse{Message: "Start your first workout!"}, nil
	}

	current, longest := Streaks(dates, s.now())
	last := dates[0]
	return &StreakResponse{
		CurrentStreak: current,
		LongestStreak: longest,
		TotalWorkouts: len(dates),
		LastWorkout:   &last,
	}, nil
}

func (s *ProgressService) Monthly(userID uuid.UUID) (*MonthlyStats, error) {
	now := s.now()
	sessions := []training.WorkoutSession{}
	if err := s.db.Preload("Exercises").
		Where("user_id = ? AND completed = ? AND created_at >= ?", userID, true, MonthStart(now)).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}

	exercises, sets := Summarize(sessions)
	return &MonthlyStats{
		Month:             now.Format("January 2006"),
		WorkoutsCompleted: len(sessions),
		TotalExercises:    exercises,
		TotalSets:         sets,
		Workouts:          sessions,
	}, nil
}

// PurgeUser removes the user's weight entries and records.
func PurgeUser(tx *gorm.DB, userID uuid.UUID) error {
	if err := tx.Where("user_id = ?", userID).Delete(&ExercisePersonalRecord{}).Error; err != nil {
		return err
	}
	return tx.Where("user_id = ?", userID).Delete(&WeightHistory{}).Error
}

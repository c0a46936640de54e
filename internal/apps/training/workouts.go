package training

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apperr"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultExerciseCount = 5

var (
	ErrExerciseNotFound  = apperr.NotFound("exercise not found")
	ErrTemplateNotFound  = apperr.NotFound("template not found")
	ErrWorkoutNotFound   = apperr.NotFound("workout not found")
	ErrSessionNotFound   = apperr.NotFound("session not found")
	ErrTemplateEmpty     = apperr.InvalidArgument("template has no exercises")
	ErrTemplateRequired  = apperr.InvalidArgument("template_id is required")
	ErrBadCount          = apperr.InvalidArgument("exercise count must be at least 1")
	ErrAlreadyAssigned   = apperr.Conflict("workout already assigned")
	ErrAlreadyCompleted  = apperr.InvalidArgument("session already completed")
	ErrExerciseExists    = apperr.Conflict("exercise with this name already exists")
	ErrExerciseFields    = apperr.InvalidArgument("name and muscle_group are required")
	ErrTemplateFields    = apperr.InvalidArgument("name and at least one exercise are required")
	ErrTemplateLine      = apperr.InvalidArgument("each exercise requires exercise_id, sets and reps")
	ErrPerformanceFields = apperr.InvalidArgument("weight_used and actual_reps cannot be negative")
)

// WorkoutService serves the exercise catalog, templates, assignments and
// logged sessions.
type WorkoutService struct {
	db   *gorm.DB
	perm func(n int) []int
	now  func() time.Time
}

func NewWorkoutService(db *gorm.DB) *WorkoutService {
	return &WorkoutService{
		db:   db,
		perm: rand.Perm,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *WorkoutService) Exercises(muscleGroup, difficulty string) ([]Exercise, error) {
	q := s.db
	if muscleGroup != "" {
		q = q.Where("muscle_group = ?", muscleGroup)
	}
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}
	var out []Exercise
	err := q.Order("name ASC").Find(&out).Error
	return out, err
}

func (s *WorkoutService) Templates(goal, level string) ([]WorkoutTemplate, error) {
	q := s.db
	if goal != "" {
		q = q.Where("goal = ?", goal)
	}
	if level != "" {
		q = q.Where("level = ?", level)
	}
	var out []WorkoutTemplate
	err := q.Order("name ASC").Find(&out).Error
	return out, err
}

func (s *WorkoutService) Template(id uuid.UUID) (*WorkoutTemplate, error) {
	return s.loadTemplate(s.db, id)
}

func (s *WorkoutService) loadTemplate(db *gorm.DB, id uuid.UUID) (*WorkoutTemplate, error) {
	var t WorkoutTemplate
	err := db.
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Exercises.Exercise").
		First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Generate draws a random workout of count exercises from a template's pool.
func (s *WorkoutService) Generate(id uuid.UUID, count int) (*GeneratedWorkout, error) {
	if count < 1 {
		return nil, ErrBadCount
	}
	t, err := s.Template(id)
	if err != nil {
		return nil, err
	}
	if len(t.Exercises) == 0 {
		return nil, ErrTemplateEmpty
	}
	return &GeneratedWorkout{
		Template: TemplateSummary{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			Goal:        t.Goal,
			Level:       t.Level,
		},
		Exercises:   SampleExercises(t.Exercises, count, s.perm),
		GeneratedAt: s.now(),
	}, nil
}

// --- Assignments ---

func (s *WorkoutService) MyWorkouts(userID uuid.UUID) ([]UserWorkout, error) {
	var out []UserWorkout
	err := s.db.Preload("Template").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("assigned_at DESC").
		Find(&out).Error
	return out, err
}

func (s *WorkoutService) Assign(userID uuid.UUID, templateID *uuid.UUID) (*UserWorkout, error) {
	if templateID == nil {
		return nil, ErrTemplateRequired
	}

	var template WorkoutTemplate
	if err := s.db.First(&template, "id = ?", *templateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	var n int64
	if err := s.db.Model(&UserWorkout{}).
		Where("user_id = ? AND template_id = ? AND is_active = ?", userID, template.ID, true).
		Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrAlreadyAssigned
	}

	uw := &UserWorkout{UserID: userID, TemplateID: template.ID, IsActive: true}
	if err := s.db.Omit(clause.Associations).Create(uw).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyAssigned
		}
		return nil, fmt.Errorf("failed to assign workout: %w", err)
	}
	uw.Template = template
	return uw, nil
}

// Unassign deactivates an assignment; the row is kept.
func (s *WorkoutService) Unassign(userID, id uuid.UUID) error {
	res := s.db.Model(&UserWorkout{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// --- Sessions ---

// CreateSession copies a random sample of the template's pool into a new
// session, keeping sets, reps and rest of each line.
func (s *WorkoutService) CreateSession(userID uuid.UUID, req *CreateSessionRequest) (*WorkoutSession, error) {
	if req.TemplateID == nil {
		return nil, ErrTemplateRequired
	}
	count := defaultExerciseCount
	if req.ExerciseCount != nil {
		count = *req.ExerciseCount
	}
	if count < 1 {
		return nil, ErrBadCount
	}

	t, err := s.Template(*req.TemplateID)
	if err != nil {
		return nil, err
	}
	if len(t.Exercises) == 0 {
		return nil, ErrTemplateEmpty
	}

	session := &WorkoutSession{ID: uuid.New(), UserID: userID, TemplateID: t.ID}
	for _, we := range SampleExercises(t.Exercises, count, s.perm) {
		session.Exercises = append(session.Exercises, SessionExercise{
			SessionID:   session.ID,
			ExerciseID:  we.ExerciseID,
			Sets:        we.Sets,
			Reps:        we.Reps,
			RestSeconds: we.RestSeconds,
			Position:    we.Position,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(session).Error; err != nil {
			return err
		}
		return tx.Omit("Exercise").Create(&session.Exercises).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return s.Session(userID, session.ID)
}

func (s *WorkoutService) sessionQuery() *gorm.DB {
	return s.db.
		Preload("Template").
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Exercises.Exercise")
}

func (s *WorkoutService) Sessions(userID uuid.UUID) ([]WorkoutSession, error) {
	var out []WorkoutSession
	err := s.sessionQuery().
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (s *WorkoutService) Session(userID, id uuid.UUID) (*WorkoutSession, error) {
	var session WorkoutSession
	if err := s.sessionQuery().First(&session, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (s *WorkoutService) CompleteSession(userID, id uuid.UUID) (*WorkoutSession, error) {
	session, err := s.Session(userID, id)
	if err != nil {
		return nil, err
	}
	if session.Completed {
		return nil, ErrAlreadyCompleted
	}

	now := s.now()
	res := s.db.Model(&WorkoutSession{}).
		Where("id = ? AND completed = ?", id, false).
		Updates(map[string]interface{}{"completed": true, "completed_at": now})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to complete session: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyCompleted
	}
	session.Completed = true
	session.CompletedAt = &now
	return session, nil
}

// UpdateSessionExercise records what the user did for one session line.
func (s *WorkoutService) UpdateSessionExercise(userID, sessionID, exerciseID uuid.UUID, req *UpdateSessionExerciseRequest) (*SessionExercise, error) {
	if (req.WeightUsed != nil && *req.WeightUsed < 0) || (req.ActualReps != nil && *req.ActualReps < 0) {
		return nil, ErrPerformanceFields
	}
	if _, err := s.Session(userID, sessionID); err != nil {
		return nil, err
	}

	var line SessionExercise
	if err := s.db.Preload("Exercise").
		First(&line, "id = ? AND session_id = ?", exerciseID, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.WeightUsed != nil {
		updates["weight_used"] = *req.WeightUsed
		line.WeightUsed = req.WeightUsed
	}
	if req.ActualReps != nil {
		updates["actual_reps"] = *req.ActualReps
		line.ActualReps = req.ActualReps
	}
	if req.Completed != nil {
		updates["completed"] = *req.Completed
		line.Completed = *req.Completed
	}
	if len(updates) == 0 {
		return &line, nil
	}
	if err := s.db.Model(&SessionExercise{}).Where("id = ?", line.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update exercise: %w", err)
	}
	return &line, nil
}

// --- Admin ---

func (s *WorkoutService) CreateExercise(req *CreateExerciseRequest) (*Exercise, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || strings.TrimSpace(req.MuscleGroup) == "" {
		return nil, ErrExerciseFields
	}
	ex := &Exercise{
		Name:         name,
		MuscleGroup:  strings.ToLower(strings.TrimSpace(req.MuscleGroup)),
		Equipment:    req.Equipment,
		Difficulty:   req.Difficulty,
		Instructions: req.Instructions,
	}
	if err := s.db.Create(ex).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrExerciseExists
		}
		return nil, fmt.Errorf("failed to create exercise: %w", err)
	}
	return ex, nil
}

// CreateTemplate stores a template and its exercise pool in one
// transaction. Lines keep the request order.
func (s *WorkoutService) CreateTemplate(req *CreateTemplateRequest) (*WorkoutTemplate, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(req.Exercises) == 0 {
		return nil, ErrTemplateFields
	}

	t := &WorkoutTemplate{
		ID:              uuid.New(),
		Name:            name,
		Description:     req.Description,
		Goal:            req.Goal,
		Level:           req.Level,
		DurationMinutes: req.DurationMinutes,
	}
	ids := make([]uuid.UUID, 0, len(req.Exercises))
	for i, in := range req.Exercises {
		if in.ExerciseID == nil || in.Sets <= 0 || in.Reps <= 0 {
			return nil, ErrTemplateLine
		}
		rest := 60
		if in.RestSeconds != nil && *in.RestSeconds >= 0 {
			rest = *in.RestSeconds
		}
		t.Exercises = append(t.Exercises, WorkoutExercise{
			TemplateID:  t.ID,
			ExerciseID:  *in.ExerciseID,
			Sets:        in.Sets,
			Reps:        in.Reps,
			RestSeconds: rest,
			Position:    i + 1,
		})
		ids = append(ids, *in.ExerciseID)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var found int64
		if err := tx.Model(&Exercise{}).Where("id IN ?", ids).Distinct("id").Count(&found).Error; err != nil {
			return err
		}
		if int(found) != len(uniqueIDs(ids)) {
			return ErrExerciseNotFound
		}
		if err := tx.Omit(clause.Associations).Create(t).Error; err != nil {
			return err
		}
		return tx.Omit("Exercise").Create(&t.Exercises).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Template(t.ID)
}

// PurgeUserWorkouts removes the user's sessions and assignments.
func PurgeUserWorkouts(tx *gorm.DB, userID uuid.UUID) error {
	sessions := tx.Model(&WorkoutSession{}).Select("id").Where("user_id = ?", userID)
	if err := tx.Where("session_id IN (?)", sessions).Delete(&SessionExercise{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&WorkoutSession{}).Error; err != nil {
		return err
	}
	return tx.Where("user_id = ?", userID).Delete(&UserWorkout{}).Error
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

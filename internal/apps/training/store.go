package training

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apps/calendar"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/planner"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScheduleStore persists generated workout schedules and the calendar
// events materialized from them. WithTx runs fn against a ScheduleStore
// bound to one transaction.
type ScheduleStore interface {
	WithTx(ctx context.Context, fn func(tx ScheduleStore) error) error

	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)

	CreateSchedule(ctx context.Context, s *UserSchedule) error
	SaveSchedule(ctx context.Context, s *UserSchedule) error
	GetSchedule(ctx context.Context, id uuid.UUID) (*UserSchedule, error)
	ListSchedules(ctx context.Context, userID uuid.UUID) ([]UserSchedule, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, ch planner.StatusChange) (bool, error)
	ActivateSchedule(ctx context.Context, userID, id uuid.UUID) error
	DeleteSchedule(ctx context.Context, userID, id uuid.UUID) error

	ReplaceEvents(ctx context.Context, scheduleID uuid.UUID, events []calendar.CalendarEvent) error
	DeleteEvents(ctx context.Context, scheduleID uuid.UUID) error
}

var errNoRows = gorm.ErrRecordNotFound

type gormScheduleStore struct {
	db *gorm.DB
}

func NewScheduleStore(db *gorm.DB) ScheduleStore {
	return &gormScheduleStore{db: db}
}

func (s *gormScheduleStore) WithTx(ctx context.Context, fn func(tx ScheduleStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormScheduleStore{db: tx})
	})
}

func (s *gormScheduleStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormScheduleStore) CreateSchedule(ctx context.Context, sched *UserSchedule) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(sched).Error
}

func (s *gormScheduleStore) SaveSchedule(ctx context.Context, sched *UserSchedule) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(sched).Error
}

func (s *gormScheduleStore) GetSchedule(ctx context.Context, id uuid.UUID) (*UserSchedule, error) {
	var sched UserSchedule
	if err := s.db.WithContext(ctx).First(&sched, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sched, nil
}

func (s *gormScheduleStore) ListSchedules(ctx context.Context, userID uuid.UUID) ([]UserSchedule, error) {
	var out []UserSchedule
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (s *gormScheduleStore) ChangeStatus(ctx context.Context, id uuid.UUID, ch planner.StatusChange) (bool, error) {
	return planner.ChangeStatus(s.db.WithContext(ctx), &UserSchedule{}, id, ch)
}

// ActivateSchedule must run inside WithTx for the row lock to hold.
func (s *gormScheduleStore) ActivateSchedule(ctx context.Context, userID, id uuid.UUID) error {
	return planner.ActivateExclusive(s.db.WithContext(ctx), &UserSchedule{}, userID, id)
}

func (s *gormScheduleStore) DeleteSchedule(ctx context.Context, userID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&UserSchedule{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errNoRows
	}
	return nil
}

func (s *gormScheduleStore) ReplaceEvents(ctx context.Context, scheduleID uuid.UUID, events []calendar.CalendarEvent) error {
	return calendar.ReplaceForSchedule(s.db.WithContext(ctx), scheduleID, events)
}

func (s *gormScheduleStore) DeleteEvents(ctx context.Context, scheduleID uuid.UUID) error {
	return calendar.DeleteForSchedule(s.db.WithContext(ctx), scheduleID)
}

// PurgeUserSchedules removes the user's generated schedules. Their events
// are removed by the calendar purge, which runs first.
func PurgeUserSchedules(tx *gorm.DB, userID uuid.UUID) error {
	return tx.Where("user_id = ?", userID).Delete(&UserSchedule{}).Error
}

func isNoRows(err error) bool {
	return errors.Is(err, errNoRows)
}

func notFound(err, want error) error {
	if isNoRows(err) {
		return want
	}
	return err
}

package training

import (
	"context"
	"sort"

	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/apps/calendar"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fitcoach-backend/internal/planner"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var _ ScheduleStore = (*memScheduleStore)(nil)

// memScheduleStore is an in-memory ScheduleStore. WithTx restores the
// previous state when fn fails.
type memScheduleStore struct {
	users     map[uuid.UUID]models.User
	schedules map[uuid.UUID]UserSchedule
	events    map[uuid.UUID]calendar.CalendarEvent
}

func newMemScheduleStore() *memScheduleStore {
	return &memScheduleStore{
		users:     map[uuid.UUID]models.User{},
		schedules: map[uuid.UUID]UserSchedule{},
		events:    map[uuid.UUID]calendar.CalendarEvent{},
	}
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *memScheduleStore) WithTx(ctx context.Context, fn func(tx ScheduleStore) error) error {
	schedules, events := copyMap(s.schedules), copyMap(s.events)
	if err := fn(s); err != nil {
		s.schedules, s.events = schedules, events
		return err
	}
	return nil
}

func (s *memScheduleStore) addUser() uuid.UUID {
	id := uuid.New()
	age := 30
	s.users[id] = models.User{ID: id, Email: id.String() + "@test.local", Age: &age, FitnessGoal: "strength"}
	return id
}

func (s *memScheduleStore) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (s *memScheduleStore) CreateSchedule(ctx context.Context, sched *UserSchedule) error {
	if sched.ID == uuid.Nil {
		sched.ID = uuid.New()
	}
	s.schedules[sched.ID] = *sched
	return nil
}

func (s *memScheduleStore) SaveSchedule(ctx context.Context, sched *UserSchedule) error {
	s.schedules[sched.ID] = *sched
	return nil
}

func (s *memScheduleStore) GetSchedule(ctx context.Context, id uuid.UUID) (*UserSchedule, error) {
	sched, ok := s.schedules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &sched, nil
}

func (s *memScheduleStore) ListSchedules(ctx context.Context, userID uuid.UUID) ([]UserSchedule, error) {
	var out []UserSchedule
	for _, sched := range s.schedules {
		if sched.UserID == userID {
			out = append(out, sched)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memScheduleStore) ChangeStatus(ctx context.Context, id uuid.UUID, ch planner.StatusChange) (bool, error) {
	sched, ok := s.schedules[id]
	if !ok || sched.GenerationStatus != ch.From {
		return false, nil
	}
	sched.GenerationStatus = ch.To
	if ch.WorkflowID != "" {
		sched.WorkflowID = ch.WorkflowID
	}
	if ch.FailureReason != "" {
		sched.FailureReason = ch.FailureReason
	}
	s.schedules[id] = sched
	return true, nil
}

func (s *memScheduleStore) ActivateSchedule(ctx context.Context, userID, id uuid.UUID) error {
	target, ok := s.schedules[id]
	if !ok || target.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	for sid, sched := range s.schedules {
		if sched.UserID == userID {
			sched.IsActive = sid == id
			s.schedules[sid] = sched
		}
	}
	return nil
}

func (s *memScheduleStore) DeleteSchedule(ctx context.Context, userID, id uuid.UUID) error {
	sched, ok := s.schedules[id]
	if !ok || sched.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(s.schedules, id)
	return nil
}

func (s *memScheduleStore) ReplaceEvents(ctx context.Context, scheduleID uuid.UUID, events []calendar.CalendarEvent) error {
	if err := s.DeleteEvents(ctx, scheduleID); err != nil {
		return err
	}
	for _, ev := range events {
		s.events[ev.ID] = ev
	}
	return nil
}

func (s *memScheduleStore) DeleteEvents(ctx context.Context, scheduleID uuid.UUID) error {
	for id, ev := range s.events {
		if ev.ScheduleID != nil && *ev.ScheduleID == scheduleID {
			delete(s.events, id)
		}
	}
	return nil
}

func (s *memScheduleStore) eventsFor(scheduleID uuid.UUID) []calendar.CalendarEvent {
	var out []calendar.CalendarEvent
	for _, ev := range s.events {
		if ev.ScheduleID != nil && *ev.ScheduleID == scheduleID {
			out = append(out, ev)
		}
	}
	return out
}

func (s *memScheduleStore) countActive(userID uuid.UUID) int {
	n := 0
	for _, sched := range s.schedules {
		if sched.UserID == userID && sched.IsActive {
			n++
		}
	}
	return n
}

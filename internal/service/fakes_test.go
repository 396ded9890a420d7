package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/reservation-service/internal/domain"
	"github.com/spec-kit/reservation-service/internal/events"
	"github.com/spec-kit/reservation-service/internal/repository"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]domain.User, 0, len(f.users))
	for _, user := range f.users {
		result = append(result, user)
	}
	return result, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.users, id)
	return nil
}

type fakeFacilityRepo struct {
	mu         sync.Mutex
	nextID     int64
	facilities map[int64]domain.Facility
}

func newFakeFacilityRepo() *fakeFacilityRepo {
	return &fakeFacilityRepo{facilities: map[int64]domain.Facility{}}
}

func (f *fakeFacilityRepo) Create(_ context.Context, facility *domain.Facility) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	facility.ID = f.nextID
	facility.CreatedAt = time.Now()
	facility.UpdatedAt = facility.CreatedAt
	f.facilities[facility.ID] = *facility
	return nil
}

func (f *fakeFacilityRepo) Update(_ context.Context, facility *domain.Facility) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.facilities[facility.ID]; !ok {
		return pgx.ErrNoRows
	}
	facility.UpdatedAt = time.Now()
	f.facilities[facility.ID] = *facility
	return nil
}

func (f *fakeFacilityRepo) GetByID(_ context.Context, id int64) (*domain.Facility, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	facility, ok := f.facilities[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &facility, nil
}

func (f *fakeFacilityRepo) List(_ context.Context) ([]domain.Facility, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]domain.Facility, 0, len(f.facilities))
	for _, facility := range f.facilities {
		result = append(result, facility)
	}
	return result, nil
}

func (f *fakeFacilityRepo) Search(_ context.Context, search repository.FacilitySearch) ([]domain.Facility, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Facility
	for _, facility := range f.facilities {
		if search.Name != nil && !strings.Contains(strings.ToLower(facility.Name), strings.ToLower(*search.Name)) {
			continue
		}
		if search.MinCapacity != nil && facility.Capacity < *search.MinCapacity {
			continue
		}
		result = append(result, facility)
	}
	return result, nil
}

func (f *fakeFacilityRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.facilities[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.facilities, id)
	return nil
}

type fakeReservationRepo struct {
	mu           sync.Mutex
	nextID       int64
	reservations map[int64]domain.Reservation
	createErr    error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: map[int64]domain.Reservation{}}
}

func (f *fakeReservationRepo) Create(_ context.Context, reservation *domain.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	reservation.ID = f.nextID
	reservation.CreatedAt = time.Now()
	reservation.UpdatedAt = reservation.CreatedAt
	f.reservations[reservation.ID] = *reservation
	return nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reservation, ok := f.reservations[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	reservation.Status = status
	reservation.UpdatedAt = time.Now()
	f.reservations[id] = reservation
	return &reservation, nil
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reservation, ok := f.reservations[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &reservation, nil
}

func (f *fakeReservationRepo) List(_ context.Context, filter repository.ReservationFilter) ([]domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Reservation
	for _, reservation := range f.reservations {
		if filter.UserID != nil && reservation.UserID != *filter.UserID {
			continue
		}
		if filter.FacilityID != nil && reservation.FacilityID != *filter.FacilityID {
			continue
		}
		if filter.Status != nil && reservation.Status != *filter.Status {
			continue
		}
		if filter.StartAfter != nil && !reservation.StartTime.After(*filter.StartAfter) {
			continue
		}
		result = append(result, reservation)
	}
	return result, nil
}

func (f *fakeReservationRepo) FindOverlapping(_ context.Context, facilityID int64, start, end time.Time) ([]domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Reservation
	for _, reservation := range f.reservations {
		if reservation.FacilityID != facilityID {
			continue
		}
		if reservation.Status != domain.ReservationStatusPending && reservation.Status != domain.ReservationStatusApproved {
			continue
		}
		r := reservation
		if r.Overlaps(start, end) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reservations[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.reservations, id)
	return nil
}

type fakeResetRepo struct {
	mu     sync.Mutex
	nextID int64
	tokens map[string]repository.PasswordResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: map[string]repository.PasswordResetToken{}}
}

func (f *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	token.ID = f.nextID
	token.CreatedAt = time.Now()
	f.tokens[token.Token] = *token
	return nil
}

func (f *fakeResetRepo) GetByToken(_ context.Context, token string) (*repository.PasswordResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.tokens[token]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &stored, nil
}

func (f *fakeResetRepo) MarkUsed(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, token := range f.tokens {
		if token.ID == id {
			now := time.Now()
			token.UsedAt = &now
			f.tokens[key] = token
			return nil
		}
	}
	return pgx.ErrNoRows
}

type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) events() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.published...)
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/calsync/calsync-server/internal/domain"
	"github.com/calsync/calsync-server/internal/store"
)

var errBoom = errors.New("boom")

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// fakeStore is an in-memory CalendarStore. Embedding the interface lets tests
// leave methods they never call unimplemented.
type fakeStore struct {
	CalendarStore

	mu     sync.Mutex
	users  map[int64]*domain.User
	events []domain.CalendarEvent
	nextID int64

	getUserErr error
	replaceErr error
	listErr    error
	createErr  error

	replaceCalls int
}

func newFakeStore(users ...*domain.User) *fakeStore {
	s := &fakeStore{users: make(map[int64]*domain.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeStore) CreateUser(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	for _, u := range s.users {
		if u.Email == user.Email {
			return store.ErrAlreadyExists
		}
	}
	user.ID = int64(len(s.users) + 1)
	s.users[user.ID] = user
	return nil
}

func (s *fakeStore) GetUser(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getUserErr != nil {
		return nil, s.getUserErr
	}
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (s *fakeStore) ListUsers(_ context.Context) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []*domain.User
	for _, u := range s.users {
		users = append(users, u)
	}
	slices.SortFunc(users, func(a, b *domain.User) int { return int(a.ID - b.ID) })
	return users, nil
}

func (s *fakeStore) ListByOwner(_ context.Context, userID int64) ([]domain.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []domain.CalendarEvent
	for _, e := range s.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeStore) ReplaceUserEvents(_ context.Context, userID int64, events []domain.NewCalendarEvent) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceCalls++
	if s.replaceErr != nil {
		return 0, 0, s.replaceErr
	}
	if _, ok := s.users[userID]; !ok {
		return 0, 0, store.ErrNotFound
	}

	kept := s.events[:0:0]
	deleted := 0
	for _, e := range s.events {
		if e.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	for _, e := range events {
		s.nextID++
		kept = append(kept, domain.CalendarEvent{
			ID:          s.nextID,
			UserID:      e.UserID,
			Title:       e.Title,
			Date:        e.Date,
			CountryCode: e.CountryCode,
			SyncID:      e.SyncID,
		})
	}
	s.events = kept
	return deleted, len(events), nil
}

// fakeHolidays serves a fixed holiday list and records its calls.
type fakeHolidays struct {
	mu        sync.Mutex
	holidays  []domain.Holiday
	countries []domain.AvailableCountry
	err       error
	calls     int
	lastYear  int
	lastCode  string
}

func (f *fakeHolidays) AvailableCountries(_ context.Context) ([]domain.AvailableCountry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.countries, nil
}

func (f *fakeHolidays) PublicHolidays(_ context.Context, year int, countryCode string) ([]domain.Holiday, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastYear = year
	f.lastCode = countryCode
	if f.err != nil {
		return nil, f.err
	}
	return f.holidays, nil
}

type fakeCountryInfo struct {
	info     *domain.CountryInfo
	err      error
	lastCode string
}

func (f *fakeCountryInfo) CountryInfo(_ context.Context, countryCode string) (*domain.CountryInfo, error) {
	f.lastCode = countryCode
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

type fakeMedia struct {
	mu            sync.Mutex
	flag          string
	population    *domain.PopulationData
	flagErr       error
	populationErr error
	countries     []string
}

func (f *fakeMedia) FlagURL(_ context.Context, country string) (string, error) {
	f.mu.Lock()
	f.countries = append(f.countries, country)
	f.mu.Unlock()
	if f.flagErr != nil {
		return "", f.flagErr
	}
	return f.flag, nil
}

func (f *fakeMedia) PopulationHistory(_ context.Context, country string) (*domain.PopulationData, error) {
	f.mu.Lock()
	f.countries = append(f.countries, country)
	f.mu.Unlock()
	if f.populationErr != nil {
		return nil, f.populationErr
	}
	return f.population, nil
}

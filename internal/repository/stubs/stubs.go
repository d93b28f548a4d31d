// Package stubs provides an in-memory implementation of the mongodb store
// interfaces for tests.
package stubs

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aayush-Sood101/newspaper-management-backend/internal/domain/models"
	"github.com/Aayush-Sood101/newspaper-management-backend/internal/repository/mongodb"
)

// Store keeps newspapers, records and users in memory with the same
// semantics as the MongoDB repository: day-normalized record upserts,
// at most one record per (newspaper, day), weak references tolerated.
type Store struct {
	mu         sync.RWMutex
	newspapers map[primitive.ObjectID]models.Newspaper
	records    []models.Record
	users      map[primitive.ObjectID]models.User

	// FailWith, when set, makes every store call return this error.
	FailWith error
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		newspapers: make(map[primitive.ObjectID]models.Newspaper),
		users:      make(map[primitive.ObjectID]models.User),
	}
}

var _ mongodb.NewspaperStore = (*Store)(nil)
var _ mongodb.RecordStore = (*Store)(nil)
var _ mongodb.UserStore = (*Store)(nil)

// AddNewspaper seeds a newspaper and returns its generated id.
func (s *Store) AddNewspaper(paper models.Newspaper) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if paper.ID.IsZero() {
		paper.ID = primitive.NewObjectID()
	}
	s.newspapers[paper.ID] = paper
	return paper.ID
}

// AddUser seeds a user account and returns its generated id.
func (s *Store) AddUser(user models.User) primitive.ObjectID {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = user
	return user.ID
}

// RecordCount reports how many ledger entries exist.
func (s *Store) RecordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *Store) ListNewspapersByPeriod(_ context.Context, month, year int) ([]models.Newspaper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	var papers []models.Newspaper
	for _, p := range s.newspapers {
		if p.Month == month && p.Year == year {
			papers = append(papers, p)
		}
	}
	return papers, nil
}

func (s *Store) FindNewspaperByID(_ context.Context, id primitive.ObjectID) (*models.Newspaper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	paper, ok := s.newspapers[id]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	return &paper, nil
}

func (s *Store) FindNewspapersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Newspaper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	var papers []models.Newspaper
	for _, id := range ids {
		if paper, ok := s.newspapers[id]; ok {
			papers = append(papers, paper)
		}
	}
	return papers, nil
}

func (s *Store) InsertNewspaper(_ context.Context, paper *models.Newspaper) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}

	now := time.Now().UTC()
	paper.ID = primitive.NewObjectID()
	paper.CreatedAt = now
	paper.UpdatedAt = now
	s.newspapers[paper.ID] = *paper
	return nil
}

func (s *Store) UpdateNewspaper(_ context.Context, id primitive.ObjectID, paper *models.Newspaper) (*models.Newspaper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	existing, ok := s.newspapers[id]
	if !ok {
		return nil, mongodb.ErrNotFound
	}

	existing.Name = paper.Name
	existing.Month = paper.Month
	existing.Year = paper.Year
	existing.Rates = paper.Rates
	existing.UpdatedAt = time.Now().UTC()
	s.newspapers[id] = existing
	return &existing, nil
}

func (s *Store) DeleteNewspaper(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}

	if _, ok := s.newspapers[id]; !ok {
		return mongodb.ErrNotFound
	}
	delete(s.newspapers, id)
	return nil
}

func (s *Store) FindRecordsByDay(_ context.Context, day time.Time) ([]models.Record, error) {
	day = models.DayOf(day)
	return s.FindRecordsInRange(context.Background(), day, day.AddDate(0, 0, 1))
}

func (s *Store) FindRecordsInRange(_ context.Context, from, to time.Time) ([]models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	var out []models.Record
	for _, rec := range s.records {
		if !rec.Date.Before(from) && rec.Date.Before(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *Store) UpsertRecord(_ context.Context, newspaperID primitive.ObjectID, date time.Time, received bool) (*models.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	day := models.DayOf(date)
	now := time.Now().UTC()
	for i := range s.records {
		if s.records[i].NewspaperID == newspaperID && s.records[i].Date.Equal(day) {
			s.records[i].Received = received
			s.records[i].UpdatedAt = now
			rec := s.records[i]
			return &rec, nil
		}
	}

	rec := models.Record{
		ID:          primitive.NewObjectID(),
		NewspaperID: newspaperID,
		Date:        day,
		Received:    received,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.records = append(s.records, rec)
	return &rec, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, mongodb.ErrNotFound
}

func (s *Store) FindUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	user, ok := s.users[id]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	return &user, nil
}

func (s *Store) CountUsers(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.FailWith != nil {
		return 0, s.FailWith
	}
	return int64(len(s.users)), nil
}

func (s *Store) InsertUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	s.users[user.ID] = *user
	return nil
}

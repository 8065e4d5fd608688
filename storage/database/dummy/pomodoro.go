package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/pomodoro"
)

type sessionRepository struct {
	db *DB
}

var _ pomodoro.Repository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(db *DB) pomodoro.Repository {
	return &sessionRepository{db: db}
}

func (repo *sessionRepository) CreateSession(_ context.Context, s pomodoro.Session, _ ...core.DBExecutor) (pomodoro.Session, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	s.ID = newID()
	repo.db.sessions[s.ID] = &s
	return s, nil
}

func (repo *sessionRepository) QuerySessions(_ context.Context, ownerID string, filter *pomodoro.QueryFilter, _ ...core.DBExecutor) ([]pomodoro.Session, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	sessions := make([]pomodoro.Session, 0)
	for _, s := range repo.db.sessions {
		if s.OwnerID == ownerID && filter.Includes(*s) {
			sessions = append(sessions, *s)
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].StartedAt.After(sessions[j].StartedAt) })
	return sessions, nil
}

func (repo *sessionRepository) GetSession(_ context.Context, ownerID, id string, _ ...core.DBExecutor) (pomodoro.Session, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.sessions[id]; ok && s.OwnerID == ownerID {
		return *s, nil
	}
	return pomodoro.Session{}, pomodoro.ErrNotFound
}

func (repo *sessionRepository) DeleteSession(_ context.Context, ownerID, id string, _ ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if s, ok := repo.db.sessions[id]; !ok || s.OwnerID != ownerID {
		return pomodoro.ErrNotFound
	}
	delete(repo.db.sessions, id)
	return nil
}

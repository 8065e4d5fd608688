// Package dummydb implements the repositories in memory, for tests and local runs.
package dummydb

import (
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/taskademic/core/course"
	"github.com/trezcool/taskademic/core/exam"
	"github.com/trezcool/taskademic/core/pomodoro"
	"github.com/trezcool/taskademic/core/task"
	"github.com/trezcool/taskademic/core/user"
)

// DB holds all tables behind a single lock, so that deletes can cascade across tables.
type DB struct {
	sync.RWMutex

	users    map[string]*user.User
	courses  map[string]*course.Course
	tasks    map[string]*task.Task
	sessions map[string]*pomodoro.Session
	exams    map[string]*exam.Plan
}

func Open() *DB {
	return &DB{
		users:    make(map[string]*user.User),
		courses:  make(map[string]*course.Course),
		tasks:    make(map[string]*task.Task),
		sessions: make(map[string]*pomodoro.Session),
		exams:    make(map[string]*exam.Plan),
	}
}

// Reset empties all tables.
func (db *DB) Reset() {
	db.Lock()
	defer db.Unlock()
	db.users = make(map[string]*user.User)
	db.courses = make(map[string]*course.Course)
	db.tasks = make(map[string]*task.Task)
	db.sessions = make(map[string]*pomodoro.Session)
	db.exams = make(map[string]*exam.Plan)
}

func newID() string {
	return uuid.New().String()
}

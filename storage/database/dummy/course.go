package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CountCourses(_ context.Context, ownerID string, _ ...core.DBExecutor) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var count int
	for _, c := range repo.db.courses {
		if c.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (repo *courseRepository) CreateCourse(_ context.Context, c course.Course, _ ...core.DBExecutor) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	c.ID = newID()
	repo.db.courses[c.ID] = &c
	return c, nil
}

func (repo *courseRepository) QueryCourses(_ context.Context, ownerID string, filter *course.QueryFilter, ordering []core.DBOrdering, _ ...core.DBExecutor) ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var search string
	if filter != nil {
		search = strings.ToLower(filter.Search)
	}
	courses := make([]course.Course, 0)
	for _, c := range repo.db.courses {
		if c.OwnerID != ownerID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) {
			continue
		}
		courses = append(courses, *c)
	}

	sort.Slice(courses, func(i, j int) bool { return courses[i].CreatedAt.Before(courses[j].CreatedAt) })
	sortBy(courses, ordering, func(c course.Course, field string) interface{} {
		switch field {
		case "name":
			return c.Name
		case "created_at":
			return c.CreatedAt
		case "updated_at":
			return c.UpdatedAt
		}
		return nil
	})
	return courses, nil
}

func (repo *courseRepository) GetCourse(_ context.Context, ownerID, id string, _ ...core.DBExecutor) (course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if c, ok := repo.db.courses[id]; ok && c.OwnerID == ownerID {
		return *c, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) UpdateCourse(_ context.Context, c course.Course, _ ...core.DBExecutor) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.courses[c.ID]
	if !ok || orig.OwnerID != c.OwnerID {
		return course.Course{}, course.ErrNotFound
	}
	c.CreatedAt = orig.CreatedAt
	repo.db.courses[c.ID] = &c
	return c, nil
}

func (repo *courseRepository) DeleteCourse(_ context.Context, ownerID, id string, _ ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	c, ok := repo.db.courses[id]
	if !ok || c.OwnerID != ownerID {
		return course.ErrNotFound
	}
	delete(repo.db.courses, id)
	for _, t := range repo.db.tasks {
		if t.CourseID == id {
			t.CourseID = ""
		}
	}
	for _, e := range repo.db.exams {
		if e.CourseID == id {
			e.CourseID = ""
		}
	}
	return nil
}

package dummydb

import (
	"context"
	"sort"
	"strings"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) all() []user.User {
	users := make([]user.User, 0, len(repo.db.users))
	for _, u := range repo.db.users {
		users = append(users, copyUser(*u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users
}

func (repo *userRepository) CheckUsernameUniqueness(_ context.Context, username, email string, excludedUsers []user.User, _ ...core.DBExecutor) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	excluded := make(map[string]bool, len(excludedUsers))
	for _, u := range excludedUsers {
		excluded[u.ID] = true
	}
	for _, u := range repo.db.users {
		if excluded[u.ID] {
			continue
		}
		if username != "" && u.Username == username {
			return user.ErrUsernameExists
		}
		if email != "" && u.Email == email {
			return user.ErrEmailExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User, _ ...core.DBExecutor) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr.ID = newID()
	usr = copyUser(usr)
	repo.db.users[usr.ID] = &usr
	return copyUser(usr), nil
}

func (repo *userRepository) QueryUsers(_ context.Context, filter *user.QueryFilter, ordering []core.DBOrdering, _ ...core.DBExecutor) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	users := repo.all()
	if filter == nil || filter.IsEmpty() {
		return sortUsers(users, ordering), nil
	}

	search := strings.ToLower(filter.Search)
	filtered := make([]user.User, 0, len(users))
	for _, u := range users {
		// users with search keyword matching any Name, Username or Email
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Username), search) &&
			!strings.Contains(strings.ToLower(u.Email), search) &&
			!strings.Contains(strings.ToLower(u.Name), search) {
			continue
		}
		// users with any of the specified roles
		if len(filter.Roles) > 0 {
			var hasRole bool
			for _, r := range filter.Roles {
				if u.RoleStartsWith(r) {
					hasRole = true
					break
				}
			}
			if !hasRole {
				continue
			}
		}
		if filter.Plan != "" && string(u.Plan) != filter.Plan {
			continue
		}
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		if !filter.CreatedFrom.IsZero() && u.CreatedAt.Before(filter.CreatedFrom.UTC()) {
			continue
		}
		if !filter.CreatedTo.IsZero() && u.CreatedAt.After(filter.CreatedTo.UTC()) {
			continue
		}
		filtered = append(filtered, u)
	}
	return sortUsers(filtered, ordering), nil
}

func (repo *userRepository) GetUser(_ context.Context, filter user.GetFilter, _ ...core.DBExecutor) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if filter.ID != "" {
		if u, ok := repo.db.users[filter.ID]; ok {
			return copyUser(*u), nil
		}
		return user.User{}, user.ErrNotFound
	}
	for _, u := range repo.db.users {
		switch {
		case filter.Username != "" && u.Username == filter.Username,
			filter.Email != "" && u.Email == filter.Email,
			filter.UsernameOrEmail != "" && (u.Username == filter.UsernameOrEmail || u.Email == filter.UsernameOrEmail):
			return copyUser(*u), nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(_ context.Context, usr user.User, _ ...core.DBExecutor) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.users[usr.ID]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	usr.CreatedAt = orig.CreatedAt
	usr = copyUser(usr)
	repo.db.users[usr.ID] = &usr
	return copyUser(usr), nil
}

// DeleteUsers deletes the users and everything they own.
func (repo *userRepository) DeleteUsers(_ context.Context, ids []string, _ ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.users, id)
		for cid, c := range repo.db.courses {
			if c.OwnerID == id {
				delete(repo.db.courses, cid)
			}
		}
		for tid, t := range repo.db.tasks {
			if t.OwnerID == id {
				delete(repo.db.tasks, tid)
			}
		}
		for sid, s := range repo.db.sessions {
			if s.OwnerID == id {
				delete(repo.db.sessions, sid)
			}
		}
		for eid, e := range repo.db.exams {
			if e.OwnerID == id {
				delete(repo.db.exams, eid)
			}
		}
	}
	return nil
}

func copyUser(u user.User) user.User {
	u.Roles = append([]string(nil), u.Roles...)
	u.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return u
}

func sortUsers(users []user.User, ordering []core.DBOrdering) []user.User {
	sortBy(users, ordering, func(u user.User, field string) interface{} {
		switch field {
		case "name":
			return u.Name
		case "username":
			return u.Username
		case "email":
			return u.Email
		case "is_active":
			return u.IsActive
		case "plan":
			return string(u.Plan)
		case "created_at":
			return u.CreatedAt
		case "last_login":
			return u.LastLogin
		}
		return nil
	})
	return users
}

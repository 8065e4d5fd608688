package sqlxrepos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/plan"
	"github.com/trezcool/taskademic/core/user"
)

const userColumns = `id, name, username, email, is_active, roles, plan, password_hash, created_at, updated_at, last_login`

type userRow struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	Username     null.String    `db:"username"`
	Email        null.String    `db:"email"`
	IsActive     bool           `db:"is_active"`
	Roles        pq.StringArray `db:"roles"`
	Plan         string         `db:"plan"`
	PasswordHash []byte         `db:"password_hash"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
	LastLogin    null.Time      `db:"last_login"`
}

func toUserRow(usr user.User) userRow {
	roles := usr.Roles
	if roles == nil {
		roles = []string{}
	}
	return userRow{
		ID:           usr.ID,
		Name:         usr.Name,
		Username:     null.NewString(usr.Username, usr.Username != ""),
		Email:        null.NewString(usr.Email, usr.Email != ""),
		IsActive:     usr.IsActive,
		Roles:        roles,
		Plan:         string(usr.Plan),
		PasswordHash: usr.PasswordHash,
		CreatedAt:    usr.CreatedAt.UTC(),
		UpdatedAt:    usr.UpdatedAt.UTC(),
		LastLogin:    null.NewTime(usr.LastLogin.UTC(), !usr.LastLogin.IsZero()),
	}
}

func (r userRow) toUser() user.User {
	return user.User{
		ID:           r.ID,
		Name:         r.Name,
		Username:     r.Username.String,
		Email:        r.Email.String,
		IsActive:     r.IsActive,
		Roles:        r.Roles,
		Plan:         plan.Plan(r.Plan),
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
		LastLogin:    r.LastLogin.Time.UTC(),
	}
}

type userRepository struct {
	repository
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(exec core.DBExecutor) user.Repository {
	return &userRepository{repository{exec: exec}}
}

func (repo *userRepository) CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers []user.User, exec ...core.DBExecutor) error {
	params := make(map[string]interface{})
	conds := make([]string, 0, 2)
	if username != "" {
		conds = append(conds, "username = :username")
		params["username"] = username
	}
	if email != "" {
		conds = append(conds, "email = :email")
		params["email"] = email
	}
	if len(conds) == 0 {
		return nil
	}

	w := newWhere("("+strings.Join(conds, " OR ")+")", params)
	if len(excludedUsers) > 0 {
		ids := make([]string, 0, len(excludedUsers))
		for _, u := range excludedUsers {
			ids = append(ids, u.ID)
		}
		w.and("id NOT IN (:excluded)", "excluded", ids)
	}

	var rows []userRow
	if err := repo.selectAll(ctx, exec, &rows, "SELECT "+userColumns+` FROM "user"`+w.String()+" LIMIT 1", w.params); err != nil {
		return errors.Wrap(err, "checking user uniqueness")
	}
	if len(rows) == 0 {
		return nil
	}
	if username != "" && rows[0].Username.String == username {
		return user.ErrUsernameExists
	}
	return user.ErrEmailExists
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	usr.ID = uuid.New().String()
	q := `INSERT INTO "user" (` + userColumns + `) VALUES (
		:id, :name, :username, :email, :is_active, :roles, :plan, :password_hash, :created_at, :updated_at, :last_login
	)`
	row := toUserRow(usr)
	if _, err := repo.execute(ctx, exec, q, row); err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return row.toUser(), nil
}

func (repo *userRepository) QueryUsers(ctx context.Context, filter *user.QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]user.User, error) {
	w := newWhere("true", make(map[string]interface{}))
	if filter != nil {
		// users with Name, Username or Email matching the search keyword
		if filter.Search != "" {
			w.and("(name ILIKE :search OR username ILIKE :search OR email ILIKE :search)", "search", "%"+filter.Search+"%")
		}
		// users with any role that starts with any of the provided roles
		if len(filter.Roles) > 0 {
			roleConds := make([]string, 0, len(filter.Roles))
			for i, role := range filter.Roles {
				param := fmt.Sprintf("role%d", i)
				roleConds = append(roleConds, fmt.Sprintf("EXISTS (SELECT 1 FROM UNNEST(roles) user_role WHERE user_role LIKE :%s)", param))
				w.params[param] = role + "%"
			}
			w.and("(" + strings.Join(roleConds, " OR ") + ")")
		}
		if filter.Plan != "" {
			w.and("plan = :plan", "plan", filter.Plan)
		}
		if filter.IsActive != nil {
			w.and("is_active = :is_active", "is_active", *filter.IsActive)
		}
		if !filter.CreatedFrom.IsZero() {
			w.and("created_at >= :created_from", "created_from", filter.CreatedFrom.UTC())
		}
		if !filter.CreatedTo.IsZero() {
			w.and("created_at <= :created_to", "created_to", filter.CreatedTo.UTC())
		}
	}

	q := "SELECT " + userColumns + ` FROM "user"` + w.String() + core.OrderBy(ordering, core.DBOrdering{Field: "created_at", Ascending: true})
	var rows []userRow
	if err := repo.selectAll(ctx, exec, &rows, q, w.params); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]user.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.toUser())
	}
	return users, nil
}

func (repo *userRepository) GetUser(ctx context.Context, filter user.GetFilter, exec ...core.DBExecutor) (user.User, error) {
	var w *where
	switch {
	case filter.ID != "":
		if !isUUID(filter.ID) {
			return user.User{}, user.ErrNotFound
		}
		w = newWhere("id = :id", map[string]interface{}{"id": filter.ID})
	case filter.Username != "":
		w = newWhere("username = :username", map[string]interface{}{"username": filter.Username})
	case filter.Email != "":
		w = newWhere("email = :email", map[string]interface{}{"email": filter.Email})
	case filter.UsernameOrEmail != "":
		w = newWhere("(username = :uname OR email = :uname)", map[string]interface{}{"uname": filter.UsernameOrEmail})
	default:
		return user.User{}, user.ErrNotFound
	}

	var rows []userRow
	if err := repo.selectAll(ctx, exec, &rows, "SELECT "+userColumns+` FROM "user"`+w.String()+" LIMIT 1", w.params); err != nil {
		return user.User{}, errors.Wrap(err, "finding user")
	}
	if len(rows) == 0 {
		return user.User{}, user.ErrNotFound
	}
	return rows[0].toUser(), nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	q := `UPDATE "user" SET
		name = :name, username = :username, email = :email, is_active = :is_active, roles = :roles, plan = :plan,
		password_hash = :password_hash, updated_at = :updated_at, last_login = :last_login
		WHERE id = :id`
	row := toUserRow(usr)
	n, err := repo.execute(ctx, exec, q, row)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return row.toUser(), nil
}

func (repo *userRepository) DeleteUsers(ctx context.Context, ids []string, exec ...core.DBExecutor) error {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if isUUID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return nil
	}
	if _, err := repo.execute(ctx, exec, `DELETE FROM "user" WHERE id IN (:ids)`, map[string]interface{}{"ids": valid}); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return nil
}

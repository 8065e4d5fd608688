package user

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/plan"
)

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrEmailExists    = errors.New("a user with this email already exists")
	ErrUsernameExists = errors.New("a user with this username already exists")

	errInvalidValue = "invalid value"
)

type (
	Repository interface {
		// CheckUsernameUniqueness returns ErrUsernameExists or ErrEmailExists when another user,
		// not in excludedUsers, already holds the username or email.
		CheckUsernameUniqueness(ctx context.Context, username, email string, excludedUsers []User, exec ...core.DBExecutor) error
		CreateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		// QueryUsers applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of User.Name, User.Username or User.Email.
		QueryUsers(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering, exec ...core.DBExecutor) ([]User, error)
		GetUser(ctx context.Context, filter GetFilter, exec ...core.DBExecutor) (User, error)
		// UpdateUser saves all fields of usr but ID and CreatedAt.
		UpdateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
		DeleteUsers(ctx context.Context, ids []string, exec ...core.DBExecutor) error
	}

	Service interface {
		CheckUniqueness(ctx context.Context, uname, email string, exclUsers ...User) error
		Create(ctx context.Context, nu NewUser) (User, error)
		Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]User, error)
		GetByID(ctx context.Context, id string) (User, error)
		GetByUsername(ctx context.Context, uname string) (User, error)
		GetByEmail(ctx context.Context, email string) (User, error)
		GetByUsernameOrEmail(ctx context.Context, uname string) (User, error)
		Update(ctx context.Context, usr User, uu UpdateUser) (User, error)
		SetPlan(ctx context.Context, usr User, p plan.Plan) (User, error)
		SetLastLogin(ctx context.Context, usr User) (User, error)
		Delete(ctx context.Context, ids ...string) error
		RequestPasswordReset(ctx context.Context, email string) error
		ResetPassword(ctx context.Context, data ResetUserPassword) error
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
		logger  core.Logger
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config, logger core.Logger) Service {
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
		logger:  logger,
	}
}

func (svc *service) CheckUniqueness(ctx context.Context, uname, email string, exclUsers ...User) error {
	if err := svc.repo.CheckUsernameUniqueness(ctx, uname, email, exclUsers); err != nil {
		var field string
		switch errors.Cause(err) {
		case ErrUsernameExists:
			field = "username"
		case ErrEmailExists:
			field = "email"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: errors.Cause(err).Error()})
	}
	return nil
}

// Create creates an active User on the free plan.
func (svc *service) Create(ctx context.Context, nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Name:      nu.Name,
		Username:  nu.Username,
		Email:     nu.Email,
		IsActive:  true,
		Roles:     nu.Roles,
		Plan:      plan.Free,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(usr.Roles) == 0 {
		usr.Roles = []string{RoleStudent}
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "setting password")
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *service) Query(ctx context.Context, filter *QueryFilter, ordering []core.DBOrdering) ([]User, error) {
	ordering = core.CleanOrderings(ordering, "name", "username", "email", "is_active", "plan", "created_at", "last_login")
	return svc.repo.QueryUsers(ctx, filter, ordering)
}

func (svc *service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{ID: id})
}

func (svc *service) GetByUsername(ctx context.Context, uname string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{Username: core.CleanString(uname, true /* lower */)})
}

func (svc *service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{Email: core.CleanString(email, true /* lower */)})
}

func (svc *service) GetByUsernameOrEmail(ctx context.Context, uname string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{UsernameOrEmail: core.CleanString(uname, true /* lower */)})
}

func (svc *service) Update(ctx context.Context, usr User, uu UpdateUser) (User, error) {
	usr.Name = uu.Name
	usr.Username = uu.Username
	usr.Email = uu.Email
	if uu.IsActive != nil {
		usr.IsActive = *uu.IsActive
	}
	if uu.Roles != nil {
		usr.Roles = uu.Roles
	}
	if uu.Password != "" {
		if err := usr.SetPassword(uu.Password); err != nil {
			return User{}, errors.Wrap(err, "setting password")
		}
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

// SetPlan moves usr to plan `p` and notifies them by email.
// Nothing is deleted on downgrade: existing items over the free limits are kept,
// only new ones are refused.
func (svc *service) SetPlan(ctx context.Context, usr User, p plan.Plan) (User, error) {
	if !p.IsValid() {
		return User{}, plan.ErrInvalidPlan
	}
	if usr.Plan == p {
		return usr, nil
	}
	usr.Plan = p
	usr.UpdatedAt = time.Now().UTC()
	usr, err := svc.repo.UpdateUser(ctx, usr)
	if err != nil {
		return User{}, errors.Wrap(err, "updating plan")
	}
	svc.sendPlanChangedMail(usr)
	return usr, nil
}

func (svc *service) SetLastLogin(ctx context.Context, usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *service) Delete(ctx context.Context, ids ...string) error {
	return svc.repo.DeleteUsers(ctx, ids)
}

func (svc *service) RequestPasswordReset(ctx context.Context, email string) error {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !usr.IsActive {
		return ErrNotFound
	}
	svc.sendPasswordResetMail(usr)
	return nil
}

func (svc *service) ResetPassword(ctx context.Context, data ResetUserPassword) error {
	uid, err := decodeUID(data.UID)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "uid", Error: errInvalidValue})
	}
	usr, err := svc.GetByID(ctx, uid)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return core.NewValidationError(err, core.FieldError{Field: "uid", Error: errInvalidValue})
		}
		return errors.Wrap(err, "finding user by ID")
	}
	if err = verifyToken(usr, data.Token, svc.conf); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "token", Error: errInvalidValue})
	}
	if err = usr.SetPassword(data.Password); err != nil {
		return errors.Wrap(err, "setting password")
	}
	usr.UpdatedAt = time.Now().UTC()
	if _, err = svc.repo.UpdateUser(ctx, usr); err != nil {
		return errors.Wrap(err, "updating user")
	}
	return nil
}

func (svc *service) sendPasswordResetMail(usr User) {
	token, err := MakeToken(usr, svc.conf)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("making password reset token: %v", err), err, usr)
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Password Reset",
		TemplateName: "password_reset",
		TemplateData: passwordResetData{Name: usr.Name, UID: EncodeUID(usr), Token: token},
	})
}

func (svc *service) sendPlanChangedMail(usr User) {
	if usr.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Your plan has changed",
		TemplateName: "plan_changed",
		TemplateData: planChangedData{
			Name:           usr.Name,
			Plan:           string(usr.Plan),
			Premium:        usr.Plan == plan.Premium,
			MaxCourses:     plan.LimitOf(plan.Courses, usr.Plan).String(),
			MaxActiveTasks: plan.LimitOf(plan.ActiveTasks, usr.Plan).String(),
		},
	})
}

type (
	passwordResetData struct {
		Name  string
		UID   string
		Token string
	}

	planChangedData struct {
		Name           string
		Plan           string
		Premium        bool
		MaxCourses     string
		MaxActiveTasks string
	}
)

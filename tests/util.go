// Package testutil sets up what package tests share: config, validator, logger and fixtures.
package testutil

import (
	"context"
	"net/mail"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/course"
	"github.com/trezcool/taskademic/core/exam"
	"github.com/trezcool/taskademic/core/plan"
	"github.com/trezcool/taskademic/core/pomodoro"
	"github.com/trezcool/taskademic/core/task"
	"github.com/trezcool/taskademic/core/user"
	logsvc "github.com/trezcool/taskademic/services/logger"
)

// Password satisfies the password policy.
const Password = "Pa$$w0rd!42"

// NewConfig returns the TEST config, without reading the environment.
func NewConfig() *core.Config {
	return &core.Config{
		Env:              "TEST",
		TestMode:         true,
		AppName:          "Taskademic",
		Build:            "test",
		SecretKey:        "test-secret-key",
		FrontendBaseURL:  "http://localhost:3000",
		DefaultFromEmail: mail.Address{Name: "Taskademic", Address: "noreply@localhost"},

		PasswordResetTimeoutDelta: 3 * 24 * time.Hour,

		Server: core.ServerConfig{
			Host:                      ":8000",
			ShutdownTimeout:           time.Second,
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}
}

// NewLogger returns a logger that writes nowhere.
func NewLogger(conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(zerolog.Nop(), conf)
}

// NewValidator returns a validator with the app's validations and their translations registered.
func NewValidator(logger core.Logger) (*validator.Validate, ut.Translator) {
	_en := en.New()
	translator, _ := ut.New(_en, _en).GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	user.LoadCommonPasswords(logger)
	return validate, translator
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
	p plan.Plan,
	createdAt ...time.Time,
) user.User {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		Plan:      p,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser(): %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser(): %v", err)
	}
	return usr
}

func CreateCourse(t *testing.T, repo course.Repository, owner user.User, name string) course.Course {
	t.Helper()
	now := time.Now().UTC()
	c, err := repo.CreateCourse(context.Background(), course.Course{
		OwnerID:   owner.ID,
		Name:      name,
		Color:     course.DefaultColor,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateCourse(): %v", err)
	}
	return c
}

// CreateTask inserts `t` for owner, bypassing plan checks.
func CreateTask(t *testing.T, repo task.Repository, owner user.User, tsk task.Task) task.Task {
	t.Helper()
	now := time.Now().UTC()
	tsk.OwnerID = owner.ID
	if tsk.CreatedAt.IsZero() {
		tsk.CreatedAt = now
	}
	tsk.UpdatedAt = tsk.CreatedAt
	tsk, err := repo.CreateTask(context.Background(), tsk)
	if err != nil {
		t.Fatalf("CreateTask(): %v", err)
	}
	return tsk
}

func CreateSession(t *testing.T, repo pomodoro.Repository, owner user.User, taskID string, startedAt time.Time, minutes int) pomodoro.Session {
	t.Helper()
	s, err := repo.CreateSession(context.Background(), pomodoro.Session{
		OwnerID:         owner.ID,
		TaskID:          taskID,
		StartedAt:       startedAt,
		DurationMinutes: minutes,
		CreatedAt:       time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateSession(): %v", err)
	}
	return s
}

func CreateExamPlan(t *testing.T, repo exam.Repository, owner user.User, courseID, name string, date core.Date, hours float64) exam.Plan {
	t.Helper()
	now := time.Now().UTC()
	p, err := repo.CreatePlan(context.Background(), exam.Plan{
		OwnerID:    owner.ID,
		CourseID:   courseID,
		Name:       name,
		ExamDate:   date,
		StudyHours: hours,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		t.Fatalf("CreateExamPlan(): %v", err)
	}
	return p
}

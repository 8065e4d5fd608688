package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/calendar"
	"github.com/trezcool/taskademic/core/course"
	"github.com/trezcool/taskademic/core/exam"
	"github.com/trezcool/taskademic/core/pomodoro"
	"github.com/trezcool/taskademic/core/studyplan"
	"github.com/trezcool/taskademic/core/task"
	"github.com/trezcool/taskademic/core/user"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		Validate       *validator.Validate
		Translator     ut.Translator
		DisableReqLogs bool

		UserSvc      user.Service
		CourseSvc    course.Service
		TaskSvc      task.Service
		SessionSvc   pomodoro.Service
		ExamSvc      exam.Service
		StudyPlanSvc studyplan.Service
		CalendarSvc  calendar.Service
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		// Errors receives the error the listener stopped with.
		Errors() <-chan error
		// ShutdownSignal receives OS interrupts and internal shutdown requests.
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = conf.TestMode
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(requestIDMiddleware())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(newJWTConfig(conf))
	ents := entitlementsMiddleware(s.deps.UserSvc)

	registerUserAPI(v1, jwt, s.deps)
	registerPlanAPI(v1, jwt, ents, s.deps)
	registerCourseAPI(v1, jwt, ents, s.deps)
	registerTaskAPI(v1, jwt, ents, s.deps)
	registerSessionAPI(v1, jwt, ents, s.deps)
	registerExamAPI(v1, jwt, ents, s.deps)
	registerCalendarAPI(v1, jwt, ents, s.deps)
	registerExportAPI(v1, jwt, ents, s.deps)
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Host); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errors
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

// signalShutdown asks the app to stop gracefully. It never blocks.
func (s *server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}

package main

import (
	"context"
	"database/sql"
	"expvar"
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/taskademic/apps/api/echo"
	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/calendar"
	"github.com/trezcool/taskademic/core/course"
	"github.com/trezcool/taskademic/core/exam"
	"github.com/trezcool/taskademic/core/pomodoro"
	"github.com/trezcool/taskademic/core/studyplan"
	"github.com/trezcool/taskademic/core/task"
	"github.com/trezcool/taskademic/core/user"
	"github.com/trezcool/taskademic/services/email"
	"github.com/trezcool/taskademic/services/logger"
	"github.com/trezcool/taskademic/services/metrics"
	"github.com/trezcool/taskademic/storage/database"
	"github.com/trezcool/taskademic/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	zl := logsvc.NewZerolog(conf)
	logger := logsvc.NewRollbarLogger(zl.With().Str("component", "API").Logger(), conf)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(zl.With().Str("component", "DB").Logger(), conf)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up repositories
	usrRepo := sqlxrepos.NewUserRepository(db)
	courseRepo := sqlxrepos.NewCourseRepository(db)
	taskRepo := sqlxrepos.NewTaskRepository(db)
	sessionRepo := sqlxrepos.NewSessionRepository(db)
	examRepo := sqlxrepos.NewExamRepository(db)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	core.ParseEmailTemplates(conf, logger)

	user.LoadCommonPasswords(logger)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.
	// /metrics - Prometheus metrics.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	http.Handle("/metrics", metrics.Handler())

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			Validate:   validate,
			Translator: translator,

			UserSvc:      user.NewService(usrRepo, mailSvc, conf, logger),
			CourseSvc:    course.NewService(courseRepo),
			TaskSvc:      task.NewService(taskRepo, courseRepo),
			SessionSvc:   pomodoro.NewService(sessionRepo, taskRepo),
			ExamSvc:      exam.NewService(examRepo, courseRepo),
			StudyPlanSvc: studyplan.NewService(examRepo, sessionRepo, taskRepo),
			CalendarSvc:  calendar.NewService(taskRepo, sessionRepo),
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

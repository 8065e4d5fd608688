package main

import (
	"os"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/user"
	"github.com/trezcool/taskademic/services/email"
	"github.com/trezcool/taskademic/services/logger"
	"github.com/trezcool/taskademic/storage/database"
	"github.com/trezcool/taskademic/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()

	zl := logsvc.NewZerolog(conf)
	logger := logsvc.NewRollbarLogger(zl.With().Str("component", "ADMIN").Logger(), conf)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal("opening database", err)
	}
	defer func() { _ = db.Close() }()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	core.ParseEmailTemplates(conf, logger)
	usrRepo := sqlxrepos.NewUserRepository(db)

	// start CLI
	cli := commandLine{
		db:      db,
		usrRepo: usrRepo,
		usrSvc:  user.NewService(usrRepo, mailSvc, conf, logger),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		_ = db.Close()
		os.Exit(1)
	}
}

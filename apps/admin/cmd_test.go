package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/plan"
	"github.com/trezcool/taskademic/core/user"
	"github.com/trezcool/taskademic/services/email"
	"github.com/trezcool/taskademic/storage/database/dummy"
	"github.com/trezcool/taskademic/tests"
)

var (
	usrRepo user.Repository
	mailSvc *emailsvc.ConsoleServiceMock
)

func setup(t *testing.T) *commandLine {
	t.Helper()
	conf := testutil.NewConfig()
	logger := testutil.NewLogger(conf)
	core.ParseEmailTemplates(conf, logger)

	usrRepo = dummydb.NewUserRepository(dummydb.Open())
	mailSvc = emailsvc.NewConsoleServiceMock(conf, logger)

	// start CLI
	return &commandLine{
		usrRepo: usrRepo,
		usrSvc:  user.NewService(usrRepo, mailSvc, conf, logger),
	}
}

// mockPassword makes the password prompt return `pwd`.
func mockPassword(pwd string) {
	readPasswordFunc = func(fd int) ([]byte, error) {
		return []byte(pwd), nil
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string
	wantErr error
}

func runCLI(cli *commandLine, tt cliTest) error {
	mockPassword(tt.pwd)
	return cli.run(append([]string{"admin"}, tt.args...))
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []struct {
		name       string
		args       []string
		wantErr    error
		wantErrStr string
	}{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to must be of form: goose [OPTIONS] DRIVER DBSTRING down-to VERSION"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "create", args: []string{"migrate", "create", "add_task_color", "sql"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(append([]string{"admin"}, tt.args...))
			switch {
			case tt.wantErr != nil:
				assert.Equal(t, tt.wantErr, err)
			case tt.wantErrStr != "":
				assert.EqualError(t, err, tt.wantErrStr)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)
	ctx := context.Background()
	testutil.CreateUser(t, usrRepo, "King", "king", "king@test.cd", testutil.Password, user.StudentRoles, true, plan.Free)

	tests := []cliTest{
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "no email", args: []string{"adduser", "-username", "hero"}, pwd: "pwd", wantErr: errHelp},
		{name: "no password", args: []string{"adduser", "-username", "hero", "-email", "hero@test.cd"}, wantErr: errHelp},
		{name: "invalid plan", args: []string{"adduser", "-username", "hero", "-email", "hero@test.cd", "-plan", "gold"}, pwd: "pwd", wantErr: plan.ErrInvalidPlan},
		{name: "email taken", args: []string{"adduser", "-username", "hero", "-email", "king@test.cd"}, pwd: "pwd", wantErr: user.ErrEmailExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, runCLI(cli, tt))
		})
	}

	t.Run("create", func(t *testing.T) {
		tt := cliTest{args: []string{"adduser", "-username", "Hero", "-email", "Hero@test.cd", "-name", "Hero", "-admin"}, pwd: "s3cret"}
		require.NoError(t, runCLI(cli, tt))

		usr, err := usrRepo.GetUser(ctx, user.GetFilter{Username: "hero"})
		require.NoError(t, err)
		assert.Equal(t, "hero@test.cd", usr.Email)
		assert.Equal(t, "Hero", usr.Name)
		assert.True(t, usr.IsAdmin())
		assert.True(t, usr.IsActive)
		assert.Equal(t, plan.Free, usr.Plan)
		assert.NoError(t, usr.CheckPassword("s3cret"))
	})

	t.Run("update", func(t *testing.T) {
		tt := cliTest{args: []string{"adduser", "-username", "hero", "-email", "hero@test.cd", "-plan", "Premium"}, pwd: "n3w"}
		require.NoError(t, runCLI(cli, tt))

		usr, err := usrRepo.GetUser(ctx, user.GetFilter{Username: "hero"})
		require.NoError(t, err)
		assert.Equal(t, "Hero", usr.Name)
		assert.True(t, usr.IsAdmin())
		assert.Equal(t, plan.Premium, usr.Plan)
		assert.NoError(t, usr.CheckPassword("n3w"))

		users, err := usrRepo.QueryUsers(ctx, nil, nil)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "User", "awe", "awe@test.cd", "mdr", nil, true, plan.Free)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "lol"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "lol"}, pwd: "lol", wantErr: user.ErrNotFound},
		{name: "reset with username", args: []string{"resetpassword", "-username", usr.Username}, pwd: "lol"},
		{name: "reset with email", args: []string{"resetpassword", "-username", "AWE@test.cd"}, pwd: "lmao"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runCLI(cli, tt)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			refreshedUsr, err := usrRepo.GetUser(context.Background(), user.GetFilter{ID: usr.ID})
			require.NoError(t, err)
			assert.False(t, bytes.Equal(refreshedUsr.PasswordHash, usr.PasswordHash), "failed to update new password")
			assert.NoError(t, refreshedUsr.CheckPassword(tt.pwd))
		})
	}
}

func Test_commandLine_setPlan(t *testing.T) {
	cli := setup(t)
	usr := testutil.CreateUser(t, usrRepo, "User", "awe", "awe@test.cd", "", user.StudentRoles, true, plan.Free)

	tests := []struct {
		name     string
		args     []string
		wantErr  error
		wantPlan plan.Plan
		wantMail bool
	}{
		{name: "no args", args: []string{"setplan"}, wantErr: errHelp, wantPlan: plan.Free},
		{name: "no plan", args: []string{"setplan", "-username", "awe"}, wantErr: errHelp, wantPlan: plan.Free},
		{name: "unknown plan", args: []string{"setplan", "-username", "awe", "-plan", "gold"}, wantErr: plan.ErrInvalidPlan, wantPlan: plan.Free},
		{name: "unknown user", args: []string{"setplan", "-username", "lol", "-plan", "premium"}, wantErr: user.ErrNotFound, wantPlan: plan.Free},
		{name: "upgrade", args: []string{"setplan", "-username", "awe@test.cd", "-plan", "PREMIUM"}, wantPlan: plan.Premium, wantMail: true},
		{name: "same plan", args: []string{"setplan", "-username", "awe", "-plan", "premium"}, wantPlan: plan.Premium},
		{name: "downgrade", args: []string{"setplan", "-username", "awe", "-plan", "free"}, wantPlan: plan.Free, wantMail: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailSvc.Reset()
			err := cli.run(append([]string{"admin"}, tt.args...))
			assert.Equal(t, tt.wantErr, err)

			refreshedUsr, err := usrRepo.GetUser(context.Background(), user.GetFilter{ID: usr.ID})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPlan, refreshedUsr.Plan)
			if tt.wantMail {
				assert.Len(t, mailSvc.SentMessages(), 1)
			} else {
				assert.Empty(t, mailSvc.SentMessages())
			}
		})
	}
}

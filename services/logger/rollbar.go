package logsvc

import (
	"context"
	"os"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"
	"github.com/rs/zerolog"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/user"
)

// RollbarLogger reports to rollbar (when enabled) and always writes through zerolog.
type RollbarLogger struct {
	zl zerolog.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

var exitFunc = os.Exit // mockable

func NewRollbarLogger(zl zerolog.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetEnabled(!conf.Debug && !conf.TestMode && conf.RollbarToken != "")
	return &RollbarLogger{zl: zl}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// expected fmt: msg | error, map[string]interface{}, user.User
// The User is passed to rollbar through a context, never as the global person.
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	var usrSet bool
	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	for _, arg := range args {
		if usr, ok := arg.(user.User); ok {
			if !usrSet { // only set one User
				person := &rollbar.Person{Id: usr.ID, Username: usr.Username, Email: usr.Email}
				newArgs = append(newArgs, rollbar.NewPersonContext(context.Background(), person))
				usrSet = true
			}
		} else {
			newArgs = append(newArgs, arg)
		}
	}
	return newArgs
}

func (l RollbarLogger) write(evt *zerolog.Event, msg string, args []interface{}) {
	for _, arg := range args {
		switch v := arg.(type) {
		case error:
			evt = evt.Err(v)
		case map[string]interface{}:
			evt = evt.Fields(v)
		case user.User:
			evt = evt.Str("user_id", v.ID)
		default:
			evt = evt.Interface("extra", v)
		}
	}
	evt.Msg(msg)
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.write(l.zl.Debug(), msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.write(l.zl.Info(), msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.write(l.zl.Warn(), msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.write(l.zl.Error(), msg, args)
}

// Fatal reports, flushes rollbar and exits.
func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	l.write(l.zl.WithLevel(zerolog.FatalLevel), msg, args)
	rollbar.Wait()
	exitFunc(1)
}

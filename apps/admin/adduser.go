package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/plan"
	"github.com/trezcool/taskademic/core/user"
)

type newUserArgs struct {
	name, uname, email, pwd string
	isAdmin                 bool
	plan                    string
}

// addUser updates or creates a user.User, active with the given password.
// The plan of an existing user is only changed when one is given.
func (cli *commandLine) addUser(args newUserArgs) error {
	ctx := context.Background()
	uname := core.CleanString(args.uname, true /* lower */)
	email := core.CleanString(args.email, true /* lower */)

	var p plan.Plan
	if args.plan != "" {
		var err error
		if p, err = plan.Parse(core.CleanString(args.plan, true /* lower */)); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	usr, err := cli.usrRepo.GetUser(ctx, user.GetFilter{Username: uname})
	isNew := errors.Cause(err) == user.ErrNotFound
	switch {
	case isNew:
		usr = user.User{
			Username:  uname,
			Roles:     user.StudentRoles,
			Plan:      plan.Free,
			CreatedAt: now,
		}
	case err != nil:
		return err
	}

	if name := core.CleanString(args.name); name != "" {
		usr.Name = name
	}
	usr.Email = email
	if args.isAdmin {
		usr.Roles = user.AllRoles
	}
	if p != "" {
		usr.Plan = p
	}
	usr.IsActive = true
	usr.UpdatedAt = now
	if err = usr.SetPassword(args.pwd); err != nil {
		return err
	}

	if err = cli.usrRepo.CheckUsernameUniqueness(ctx, usr.Username, usr.Email, []user.User{usr}); err != nil {
		return err
	}
	if isNew {
		_, err = cli.usrRepo.CreateUser(ctx, usr)
	} else {
		_, err = cli.usrRepo.UpdateUser(ctx, usr)
	}
	return err
}

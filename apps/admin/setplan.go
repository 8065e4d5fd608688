package main

import (
	"context"
	"fmt"

	"github.com/trezcool/taskademic/core"
	"github.com/trezcool/taskademic/core/plan"
)

// setPlan moves a user to another plan, notifying them by email.
func (cli *commandLine) setPlan(uname, planName string) error {
	p, err := plan.Parse(core.CleanString(planName, true /* lower */))
	if err != nil {
		return err
	}
	ctx := context.Background()
	usr, err := cli.usrSvc.GetByUsernameOrEmail(ctx, uname)
	if err != nil {
		return err
	}
	if usr, err = cli.usrSvc.SetPlan(ctx, usr, p); err != nil {
		return err
	}
	fmt.Printf("%s is now on the %s plan\n", usr.Username, usr.Plan)
	return nil
}

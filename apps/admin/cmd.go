package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/taskademic/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db      *sql.DB
	usrRepo user.Repository
	usrSvc  user.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose command (up, up-by-one, up-to, down, down-to, redo, reset, status, version, create, fix)")
	fmt.Println("  adduser -username USERNAME -email EMAIL [-name NAME] [-admin] [-plan PLAN] - create or update a user")
	fmt.Println("  resetpassword -username USERNAME|EMAIL - reset user's password")
	fmt.Println("  setplan -username USERNAME|EMAIL -plan free|premium - change user's plan")
}

// readPassword prompts for a password, errHelp if none is given.
func readPassword(usage func()) (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		usage()
		return "", errHelp
	}
	return string(pwd), nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserUname := addUserCmd.String("username", "", "The user's username. The password will be prompted next.")
	addUserEmail := addUserCmd.String("email", "", "The user's email.")
	addUserName := addUserCmd.String("name", "", "The user's name.")
	addUserAdmin := addUserCmd.Bool("admin", false, "Give the user all roles.")
	addUserPlan := addUserCmd.String("plan", "", "The user's plan; free for new users.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username or email. The password will be prompted next.")

	setPlanCmd := flag.NewFlagSet("setplan", flag.ExitOnError)
	setPlanUname := setPlanCmd.String("username", "", "The user's username or email.")
	setPlanPlan := setPlanCmd.String("plan", "", "The new plan: free or premium.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserUname == "" || *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := readPassword(addUserCmd.Usage)
		if err != nil {
			return err
		}
		return cli.addUser(newUserArgs{
			name:    *addUserName,
			uname:   *addUserUname,
			email:   *addUserEmail,
			pwd:     pwd,
			isAdmin: *addUserAdmin,
			plan:    *addUserPlan,
		})

	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := readPassword(resetPasswordCmd.Usage)
		if err != nil {
			return err
		}
		return cli.resetPassword(*resetPasswordUname, pwd)

	case "setplan":
		if err := setPlanCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *setPlanUname == "" || *setPlanPlan == "" {
			setPlanCmd.Usage()
			return errHelp
		}
		return cli.setPlan(*setPlanUname, *setPlanPlan)

	default:
		cli.printUsage()
		return errHelp
	}
}

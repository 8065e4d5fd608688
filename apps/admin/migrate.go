package main

import (
	"github.com/trezcool/taskademic/storage/database"
)

var gooseRunFunc = database.Goose // mockable

func (cli *commandLine) migrate(args []string) error {
	return gooseRunFunc(args[0], cli.db, args[1:]...)
}

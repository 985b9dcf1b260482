package main

import (
	"fmt"
	"os"

	"github.com/gonuts/commander"

	"hatparse/app"
)

var cmd *commander.Command

func init() {
	cmd = &commander.Command{
		UsageLine:   os.Args[0],
		Short:       "transition-based constituency oracle and parser core",
		Subcommands: app.AllCommands(),
	}
}

func main() {
	err := cmd.Dispatch(os.Args[1:])
	if err != nil {
		fmt.Printf("**err**: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"github.com/vsinha/botplan/pkg/interfaces/cli/commands"
)

func main() {
	commands.Execute()
}

package main

import (
	"os"

	"github.com/chainsafe/vrsc-identity/cmd/identitycreator/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

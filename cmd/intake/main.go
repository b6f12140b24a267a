package main

import (
	"os"

	"github.com/WailSalutem-Health-Care/patient-intake/cmd/intake/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}

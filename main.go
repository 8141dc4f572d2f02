package main

import (
	"os"

	"github.com/thenoetrevino/phaseboard/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

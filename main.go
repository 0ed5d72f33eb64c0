package main

import (
	"os"

	"cw/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

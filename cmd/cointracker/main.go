package main

import (
	"cointracker/internal/cli"
)

func main() {
	cli.Execute()
}

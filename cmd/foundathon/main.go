package main

import (
	"github.com/founder-srm/foundathon/internal/cli"
)

func main() {
	cli.Execute()
}

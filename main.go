package main

import (
	"os"

	"github.com/tanishqpabla/agrogenius-gateways/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/kailas-cloud/nearby/cmd/nearbyctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/healthvault/healthvault/healthservice"
)

func main() {
	if err := healthservice.Run(); err != nil {
		os.Exit(1)
	}
}

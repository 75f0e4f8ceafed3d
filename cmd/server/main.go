// Plain server entrypoint for deployments that do not need the CLI.
package main

import (
	"fmt"
	"os"

	"github.com/shashiranjanraj/ecommerce/internal/server"

	// Boot runs pending migrations, so their init() registrations are needed.
	_ "github.com/shashiranjanraj/ecommerce/database/migrations"
)

func main() {
	if err := server.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/ecommerce/internal/server"
)

// ecommerce serve starts the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/seo-assistant/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long:  "Starts the HTTP API exposing keyword analysis, brief and article generation, bulk processing, calendar planning, and task polling.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides the config file, default 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	port := servePort
	if port == 0 {
		port = a.cfg.Port
	}
	if port == 0 {
		port = 8080
	}

	srv, err := server.New(server.Config{
		Port:        port,
		Pipeline:    a.pipeline,
		TaskManager: a.manager,
		Coordinator: a.coordinator,
		Planner:     a.planner,
		Database:    a.database,
	})
	if err != nil {
		return err
	}
	return srv.Start()
}

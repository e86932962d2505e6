// Package main provides the entry point for the SEO content assistant CLI
// and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagAPIKey  string
	flagGoal    string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "seo_agent",
	Short: "SEO content assistant",
	Long:  "seo_agent researches keywords, designs retrieval contexts, and generates SEO content briefs, articles, and publishing calendars.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&flagGoal, "goal", "", "Content goal applied to every keyword")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Print progress details")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

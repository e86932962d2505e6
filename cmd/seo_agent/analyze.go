package main

import (
	"github.com/spf13/cobra"
)

var analyzeOut string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <keyword>",
	Short: "Research a keyword and print its retrieval context",
	Long:  "Gathers knowledge sources, related keywords, content opportunities, and user questions for a keyword, then scores the assembled context.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "Write the context JSON to a file instead of stdout")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	rc, err := a.pipeline.AnalyzeKeyword(cmd.Context(), args[0], a.cfg.Goal)
	if err != nil {
		return err
	}
	return printJSON(rc, analyzeOut)
}

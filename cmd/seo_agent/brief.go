package main

import (
	"github.com/spf13/cobra"
)

var briefOut string

var briefCmd = &cobra.Command{
	Use:   "brief <keyword>",
	Short: "Generate a content brief for a keyword",
	Long:  "Researches the keyword and generates an SEO content brief: title, meta description, content type, word count target, outline, and call to action.",
	Args:  cobra.ExactArgs(1),
	RunE:  runBrief,
}

func init() {
	briefCmd.Flags().StringVar(&briefOut, "out", "", "Write the brief JSON to a file instead of stdout")
	rootCmd.AddCommand(briefCmd)
}

func runBrief(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	brief, err := a.pipeline.GenerateBrief(cmd.Context(), args[0], a.cfg.Goal)
	if err != nil {
		return err
	}
	return printJSON(brief, briefOut)
}

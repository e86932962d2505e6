package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	articleOut      string
	articleMarkdown bool
)

var articleCmd = &cobra.Command{
	Use:   "article <keyword>",
	Short: "Generate a full article for a keyword",
	Long:  "Researches the keyword, generates a brief, and writes the article section by section from the brief's outline.",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticle,
}

func init() {
	articleCmd.Flags().StringVar(&articleOut, "out", "", "Write the article to a file instead of stdout")
	articleCmd.Flags().BoolVar(&articleMarkdown, "markdown", false, "Render the article as Markdown instead of JSON")
	rootCmd.AddCommand(articleCmd)
}

func runArticle(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	article, err := a.pipeline.GenerateArticle(cmd.Context(), args[0], a.cfg.Goal)
	if err != nil {
		return err
	}

	if !articleMarkdown {
		return printJSON(article, articleOut)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", article.Title)
	for _, section := range article.Sections {
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n", section.Heading, section.Body)
	}
	return printText(sb.String(), articleOut)
}

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	bulkOut  string
	bulkFile string
)

var bulkCmd = &cobra.Command{
	Use:   "bulk [keywords...]",
	Short: "Generate briefs for a batch of keywords",
	Long:  "Generates a content brief per keyword with bounded concurrency. A failed keyword is reported in the results without failing the batch.",
	RunE:  runBulk,
}

func init() {
	bulkCmd.Flags().StringVar(&bulkOut, "out", "", "Write the batch results JSON to a file instead of stdout")
	bulkCmd.Flags().StringVar(&bulkFile, "file", "", "Read keywords from a file, one per line")
	rootCmd.AddCommand(bulkCmd)
}

// collectKeywords merges positional args with the optional keyword file.
func collectKeywords(args []string, path string) ([]string, error) {
	keywords := append([]string{}, args...)
	if path == "" {
		return keywords, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyword file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			keywords = append(keywords, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read keyword file: %w", err)
	}
	return keywords, nil
}

func runBulk(cmd *cobra.Command, args []string) error {
	keywords, err := collectKeywords(args, bulkFile)
	if err != nil {
		return err
	}
	if len(keywords) == 0 {
		return fmt.Errorf("no keywords given: pass them as arguments or via --file")
	}

	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	result, err := a.coordinator.Process(cmd.Context(), keywords, a.cfg.Goal)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%d succeeded, %d failed of %d keywords\n",
		result.Succeeded, result.Failed, result.Total)
	return printJSON(result, bulkOut)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	calendarOut   string
	calendarFile  string
	calendarWeeks int
)

var calendarCmd = &cobra.Command{
	Use:   "calendar [keywords...]",
	Short: "Plan a publishing calendar from a set of keywords",
	Long:  "Generates a brief per keyword, scores each topic, and schedules them across the given number of weeks with the highest-priority topics first.",
	RunE:  runCalendar,
}

func init() {
	calendarCmd.Flags().StringVar(&calendarOut, "out", "", "Write the calendar JSON to a file instead of stdout")
	calendarCmd.Flags().StringVar(&calendarFile, "file", "", "Read keywords from a file, one per line")
	calendarCmd.Flags().IntVar(&calendarWeeks, "weeks", 4, "Number of weeks to spread the calendar across (1-52)")
	rootCmd.AddCommand(calendarCmd)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	keywords, err := collectKeywords(args, calendarFile)
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

	cal, err := a.planner.Plan(cmd.Context(), keywords, calendarWeeks, a.cfg.Goal)
	if err != nil {
		return err
	}
	return printJSON(cal, calendarOut)
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iliyamo/course-reviews/internal/report"
	"github.com/iliyamo/course-reviews/internal/service"
)

var (
	reportCourse string
	reportFormat string
	reportOut    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the aggregated report of one course",
	Long: `Runs the same aggregation as the HTTP endpoint without starting a
server. JSON output matches the API response; CSV output has one row per
lecturer plus a course-wide "ALL" row.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(reportFormat)
		if format != "json" && format != "csv" {
			return fmt.Errorf("unknown format %q (want json or csv)", reportFormat)
		}

		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx := cmd.Context()
		store, closeStore, err := openStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeStore()

		r, err := service.NewAggregator(store, log).Aggregate(ctx, reportCourse)
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if reportOut != "" {
			f, err := os.Create(reportOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		return writeReport(w, r, format)
	},
}

func writeReport(w io.Writer, r *service.CourseReport, format string) error {
	if format == "csv" {
		return report.WriteSectionsCSV(w, r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func init() {
	reportCmd.Flags().StringVarP(&reportCourse, "course", "c", "", "course number, e.g. KIEI-451")
	reportCmd.Flags().StringVar(&reportFormat, "format", "json", "output format: json or csv")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "write to this file instead of stdout")
	_ = reportCmd.MarkFlagRequired("course")
}

// Package cli holds the cobra commands of the coursereviews binary.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iliyamo/course-reviews/internal/config"
)

var envFiles []string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "coursereviews",
	Short: "Course review aggregation API",
	Long: `Serves course information together with its lecturers, reviews and
rating rollups per lecturer and per course. Data lives in MongoDB by
default; MySQL, SQLite and an in-memory store are also supported.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv(envFiles...)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "dotenv files to load (existing env vars win)")
	rootCmd.AddCommand(serveCmd, seedCmd, reportCmd)
}

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/course-reviews/internal/config"
	"github.com/iliyamo/course-reviews/internal/database"
	"github.com/iliyamo/course-reviews/internal/queue"
	"github.com/iliyamo/course-reviews/internal/repository"
	"github.com/iliyamo/course-reviews/internal/seed"
)

var (
	seedFile         string
	seedPublish      bool
	seedCreateTables bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample courses, lecturers, sections and reviews",
	Long: `Reads a YAML fixture and inserts its contents into the configured
store. With --publish every inserted review is announced on the review
queue so running servers drop their cached responses.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()
		if cfg.StoreDriver == config.DriverMemory {
			return errors.New("seed: the memory store keeps nothing between runs; set SEED_FILE for `serve` instead")
		}

		fx, err := seed.LoadFixture(seedFile)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if seedCreateTables && cfg.StoreDriver == config.DriverMySQL {
			db, err := database.OpenMySQL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
			if err != nil {
				return fmt.Errorf("connect mysql: %w", err)
			}
			err = repository.CreateTables(ctx, db, repository.DialectMySQL)
			_ = db.Close()
			if err != nil {
				return err
			}
		}

		store, closeStore, err := openStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeStore()

		seeder := &seed.Seeder{Writer: store, Log: log}
		if seedPublish {
			events := config.LoadEventsConfig()
			pub, err := queue.DialPublisher(events.URL, events.Queue)
			if err != nil {
				return err
			}
			defer pub.Close()
			seeder.Announcer = pub
		}

		res, err := seeder.Run(ctx, fx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d courses, %d lecturers, %d sections, %d reviews (%d announced)\n",
			res.Courses, res.Lecturers, res.Sections, res.Reviews, res.Announced)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "fixtures/courses.yaml", "YAML fixture to load")
	seedCmd.Flags().BoolVar(&seedPublish, "publish", false, "announce inserted reviews on the review queue")
	seedCmd.Flags().BoolVar(&seedCreateTables, "create-tables", false, "create the MySQL tables first when missing")
}

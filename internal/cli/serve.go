package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/iliyamo/course-reviews/internal/config"
	"github.com/iliyamo/course-reviews/internal/handler"
	"github.com/iliyamo/course-reviews/internal/logger"
	"github.com/iliyamo/course-reviews/internal/middleware"
	"github.com/iliyamo/course-reviews/internal/queue"
	"github.com/iliyamo/course-reviews/internal/router"
	"github.com/iliyamo/course-reviews/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, closeStore, err := openStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeStore()

		// Redis is optional: without it the cache and the rate limiter pass through.
		rdb, err := config.NewRedisClient(ctx, config.LoadRedisConfig())
		if err != nil {
			log.Warn("redis unavailable, caching and rate limiting disabled", "error", err)
		}
		if rdb != nil {
			defer rdb.Close()
		}
		cacheCfg := config.LoadCacheConfig()

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(echomw.Recover(), middleware.RequestID(), middleware.AccessLog(log))

		router.RegisterRoutes(e)
		courses := handler.NewCourseHandler(service.NewAggregator(store, log), log)
		router.RegisterCourses(e, courses,
			middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log),
			middleware.NewRedisCache(cacheCfg, rdb, log),
		)

		if events := config.LoadEventsConfig(); events.Enabled {
			consumer := &queue.ReviewConsumer{
				URL:    events.URL,
				Queue:  events.Queue,
				Handle: purgeOnReview(rdb, cacheCfg.Prefix, log),
				Log:    log,
			}
			go func() {
				if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Error("review consumer stopped", "error", err)
				}
			}()
		}

		addr := ":" + cfg.Port
		errCh := make(chan error, 1)
		go func() {
			log.Info("listening", "addr", addr, "env", cfg.Env, "store", cfg.StoreDriver)
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(sctx)
	},
}

// purgeOnReview drops every cached course response when a review arrives so
// the next request recomputes the rollups.
func purgeOnReview(rdb *redis.Client, prefix string, log *logger.Logger) queue.ReviewHandler {
	return func(ctx context.Context, ev queue.ReviewPostedEvent) error {
		n, err := middleware.PurgeCache(ctx, rdb, prefix)
		if err != nil {
			return err
		}
		log.Info("course cache purged", "course_number", ev.CourseNumber, "keys", n)
		return nil
	}
}

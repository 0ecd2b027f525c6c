// Command storefront-demo exercises the client against a configured API,
// falling back to the built-in demo catalog when the service is down.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/honeykokia/storefront"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("service", "storefront-demo")

	cfg, err := storefront.LoadConfig()
	if err != nil {
		logger.Error("config", "err", err)
		os.Exit(1)
	}

	client := storefront.New(cfg,
		storefront.WithObserver(storefront.ObserverFunc(func(ctx context.Context, method, path, requestID string, status int, err error, dur time.Duration) {
			if err != nil {
				logger.Warn("gateway", "method", method, "path", path, "request_id", requestID, "status", status, "dur", dur, "err", err)
				return
			}
			logger.Info("gateway", "method", method, "path", path, "request_id", requestID, "status", status, "dur", dur)
		})),
		storefront.WithNavigator(storefront.NavigatorFunc(func() {
			logger.Info("session invalidated, redirecting to login")
		})),
	)

	ctx := context.Background()
	if err := client.Restore(ctx); err != nil {
		logger.Warn("restore", "err", err)
	}
	logger.Info("session", "authenticated", client.Session.IsAuthenticated())

	_ = client.Catalog.FetchProducts(ctx, storefront.ProductQuery{})
	status := client.Catalog.ProductsStatus()
	if status.UsingFallback {
		logger.Warn("catalog degraded, showing demo dataset", "err", status.Error)
	}
	for _, p := range client.Catalog.Products() {
		fmt.Printf("%4d  %-28s %8.0f\n", p.ID, p.Name, p.Price)
	}
}

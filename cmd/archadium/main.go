// Package main provides the Archadium single-player terminal game.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	start := time.Now()

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfgPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	app, cleanup, err := initializeApp(ctx, configPath(*cfgPath))
	if err != nil {
		log.Fatalf("starting archadium: %v", err)
	}

	app.Logger.Info("archadium starting",
		zap.String("content_dir", app.Config.Game.ContentDir),
		zap.String("storage", app.Config.Storage.Driver),
		zap.Duration("startup", time.Since(start)),
	)

	runErr := app.Lifecycle.Run(ctx)
	cleanup()

	fmt.Fprintln(os.Stdout)
	fmt.Fprintln(os.Stdout, "Thanks for playing Archadium!")
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "archadium: %v\n", runErr)
		os.Exit(1)
	}
}

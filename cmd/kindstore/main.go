/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// kindstore builds the media registry, fills it from a seed file or with a demo
// scenario and prints its contents as YAML.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/kindstore"
	"github.com/suparena/kindstore/config"
	"github.com/suparena/kindstore/internal/logging"
	"github.com/suparena/kindstore/media"
)

var log = logging.GetLogger("main")

var (
	configFlag  = flag.String("config", "", "path to a YAML configuration file")
	seedFlag    = flag.String("seed", "", "YAML file of records to load instead of the demo scenario")
	versionFlag = flag.Bool("version", false, "Show version information")
)

func main() {
	flag.Parse()

	if *versionFlag {
		info := kindstore.GetVersionInfo()
		fmt.Printf("kindstore version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	// local development only, real deployments set the environment
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configFlag, *seedFlag, os.Stdout); err != nil {
		log.WithError(err).Fatal("kindstore failed")
	}
}

func run(ctx context.Context, configPath, seedPath string, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if seedPath != "" {
		cfg.Seed = seedPath
	}
	if err := logging.Initialize(cfg.Log.Level, cfg.Log.Formatter); err != nil {
		return err
	}

	store, err := kindstore.NewFromConfig(media.Kinds, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	ds, err := media.WrapStore(store)
	if err != nil {
		return err
	}
	log.WithField("backend", cfg.Backend).Info("Store ready")

	if cfg.Seed != "" {
		n, err := seedFromFile(ctx, ds.Store(), cfg.Seed)
		if err != nil {
			return err
		}
		log.WithField("records", n).Info("Seeded store")
	} else if err := demo(ctx, ds); err != nil {
		return err
	}

	snap, err := ds.Store().Snapshot(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}

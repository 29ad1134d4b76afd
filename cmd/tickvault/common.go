// Copyright (c) 2024 Neomantra Corp

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nimblemarkets/tickvault/internal/config"
	"github.com/nimblemarkets/tickvault/internal/logging"
	"github.com/nimblemarkets/tickvault/internal/objectstore"
	"github.com/nimblemarkets/tickvault/internal/vendorapi"
)

const dateLayout = "2006-01-02"

// runContext bundles the resources every subcommand needs, built once from
// the persistent flags and the loaded config.
type runContext struct {
	cfg       config.Config
	store     objectstore.Store
	client    *vendorapi.Client
	exchanges []string
	start     time.Time
	end       time.Time
}

func setup(cmd *cobra.Command) (*runContext, error) {
	configPath, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(configPath, envFile)
	if err != nil {
		return nil, err
	}
	if cfg.DefaultFormat != config.FormatParquet || cfg.Compression != config.CompressionSnappy {
		return nil, fmt.Errorf("config: default_format %q with compression %q is not implemented; only parquet with snappy is", cfg.DefaultFormat, cfg.Compression)
	}
	logging.Init(cfg)

	store, err := objectstore.NewLocalStore(storeRoot(cfg))
	if err != nil {
		return nil, err
	}

	startStr, _ := cmd.Flags().GetString("start-date")
	endStr, _ := cmd.Flags().GetString("end-date")
	if startStr == "" {
		return nil, fmt.Errorf("--start-date is required")
	}
	if endStr == "" {
		endStr = startStr
	}
	start, err := time.Parse(dateLayout, startStr)
	if err != nil {
		return nil, fmt.Errorf("invalid --start-date: %w", err)
	}
	end, err := time.Parse(dateLayout, endStr)
	if err != nil {
		return nil, fmt.Errorf("invalid --end-date: %w", err)
	}

	exchanges, _ := cmd.Flags().GetStringSlice("exchanges")

	client := vendorapi.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout, cfg.MaxRetries)

	return &runContext{
		cfg:       cfg,
		store:     store,
		client:    client,
		exchanges: exchanges,
		start:     start,
		end:       end,
	}, nil
}

// storeRoot resolves where LocalStore is rooted. A Bucket name doubles as a
// local directory name in the absence of a wired cloud backend; swapping in
// an S3/GCS-backed Store is the extension point objectstore.Store names.
func storeRoot(cfg config.Config) string {
	if cfg.Bucket != "" {
		return cfg.Bucket
	}
	return "./tickvault-data"
}

func shardFlags(cmd *cobra.Command) (int, int) {
	idx, _ := cmd.Flags().GetInt("shard-index")
	total, _ := cmd.Flags().GetInt("total-shards")
	if total < 1 {
		total = 1
	}
	return idx, total
}

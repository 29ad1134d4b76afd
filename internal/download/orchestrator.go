// Copyright (c) 2024 Neomantra Corp

package download

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/nimblemarkets/tickvault/internal/objectstore"
	"github.com/nimblemarkets/tickvault/internal/vendorapi"
)

// Orchestrator is C2: it owns the process-wide HTTP client, object-store
// handle, rate limiter, and host-concurrency semaphore for the duration of
// one Download call, released via Close on every exit path.
type Orchestrator struct {
	Vendor      *vendorapi.Client
	Store       objectstore.Store
	RateLimiter *TokenBucket
	Semaphore   *semaphore.Weighted
	BatchSize   int
	Format      string
}

// NewOrchestrator constructs an Orchestrator with the shared, process-wide
// resources the Design Notes require to be constructor-injected rather
// than globally accessed.
func NewOrchestrator(vendor *vendorapi.Client, store objectstore.Store, maxConcurrent, rateLimitPerVM, batchSize int) *Orchestrator {
	return &Orchestrator{
		Vendor:      vendor,
		Store:       store,
		RateLimiter: NewTokenBucket(rateLimitPerVM, 86400*time.Second),
		Semaphore:   semaphore.NewWeighted(int64(maxConcurrent)),
		BatchSize:   batchSize,
		Format:      "parquet",
	}
}

// Close releases resources held by the Orchestrator. The HTTP client has
// no explicit close (it pools connections for process lifetime); this
// exists so callers have one symmetric acquire/release point regardless.
func (o *Orchestrator) Close() error {
	return nil
}

// Download implements C2's public operation over an explicit target list,
// used directly by the gap-downloader path and by the full-download path
// after it joins the catalog.
func (o *Orchestrator) Download(ctx context.Context, targets []Target) (*DownloadReport, error) {
	start := time.Now()
	report := &DownloadReport{}
	var mu sync.Mutex

	for batchStart := 0; batchStart < len(targets); batchStart += o.BatchSize {
		end := batchStart + o.BatchSize
		if end > len(targets) {
			end = len(targets)
		}
		batch := targets[batchStart:end]

		var wg sync.WaitGroup
		for _, target := range batch {
			target := target
			if err := o.Semaphore.Acquire(ctx, 1); err != nil {
				mu.Lock()
				report.PerTargetStatus = append(report.PerTargetStatus, Status{Target: target, Category: CategoryRetryExhausted, Err: err})
				report.Failed++
				mu.Unlock()
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer o.Semaphore.Release(1)
				status := o.processOne(ctx, target)
				mu.Lock()
				report.PerTargetStatus = append(report.PerTargetStatus, status)
				if status.Category == CategoryNone {
					report.Processed++
					if status.Uploaded != "" {
						report.UploadedPaths = append(report.UploadedPaths, status.Uploaded)
					}
				} else if status.Category != CategoryNotFound {
					report.Failed++
				} else {
					report.Processed++
				}
				mu.Unlock()
			}()
		}
		wg.Wait()

		done := batchStart + len(batch)
		log.Info().
			Int("batch_done", done).
			Int("total", len(targets)).
			Str("elapsed", humanize.RelTime(start, time.Now(), "", "")).
			Msg("download batch complete")
	}

	report.Elapsed = time.Since(start)
	return report, nil
}

// processOne runs the strictly sequential fetch -> decompress -> parse ->
// upload pipeline for one target, suspending only at the rate-limiter
// acquire, semaphore acquire (already held by the caller), HTTP read, and
// object-store write — never while holding a shared lock.
func (o *Orchestrator) processOne(ctx context.Context, target Target) Status {
	if err := o.RateLimiter.Acquire(ctx); err != nil {
		return Status{Target: target, Category: CategoryRetryExhausted, Err: err}
	}

	body, err := o.Vendor.FetchArchive(ctx, target.VendorExchange, target.Product, target.Date, target.VendorSymbol)
	if err != nil {
		cat := Classify(err)
		return Status{Target: target, Category: cat, Err: err}
	}

	rows, skipped, err := DecodeCSV(target.Product, body)
	if err != nil {
		return Status{Target: target, Category: CategoryDecodeError, Err: err}
	}
	if skipped > 0 {
		log.Warn().Str("instrument_key", target.InstrumentKey).Int("skipped_rows", skipped).Msg("rows skipped during parse")
	}

	encoded, err := EncodeParquet(target.Product, rows)
	if err != nil {
		return Status{Target: target, Category: CategoryDecodeError, Err: err}
	}

	path := objectstore.TickDataPath(target.Date.Format("2006-01-02"), target.Product, target.InstrumentKey, o.Format)
	if err := o.Store.Put(ctx, path, encoded); err != nil {
		return Status{Target: target, Category: CategoryUploadError, Err: fmt.Errorf("upload %s: %w", path, err)}
	}

	return Status{Target: target, Category: CategoryNone, Uploaded: path, Rows: len(rows)}
}

// FilterByShard narrows targets to the ones owned by shardIndex out of
// totalShards. A totalShards of 1 (the default) is a no-op.
func FilterByShard(targets []Target, shardIndex, totalShards int) []Target {
	if totalShards <= 1 {
		return targets
	}
	out := targets[:0:0]
	for _, t := range targets {
		if InShard(t.InstrumentKey, shardIndex, totalShards) {
			out = append(out, t)
		}
	}
	return out
}

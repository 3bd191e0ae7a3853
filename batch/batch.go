// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/tabletamer/server/metrics"
)

// Kind identifies what an operation does to its target record.
type Kind string

const (
	KindCreate Kind = "create"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

// Operation is one create/update/delete against a named collection.
// For updates, a nil value in Data means "remove this field" and is written
// as an explicit NULL, never as a falsy value.
type Operation struct {
	Kind       Kind
	Collection string
	ID         string
	Data       map[string]any
}

// Options bound the blast radius of a batch application.
type Options struct {
	MaxBatchSize        int
	DelayBetweenBatches time.Duration
	MaxRetries          int
	RetryDelay          time.Duration
}

// DefaultOptions returns the standard batching parameters.
func DefaultOptions() Options {
	return Options{
		MaxBatchSize:        50,
		DelayBetweenBatches: 100 * time.Millisecond,
		MaxRetries:          3,
		RetryDelay:          time.Second,
	}
}

// maxBackoff caps the exponential retry delay.
const maxBackoff = 10 * time.Second

// CommitFunc applies one chunk of operations atomically. The store's
// implementation wraps the chunk in a single transaction.
type CommitFunc func(ctx context.Context, ops []Operation) error

// Result reports the outcome of a batch application. Success is false when
// any chunk ultimately failed; ProcessedCount counts the operations in
// chunks that succeeded.
type Result struct {
	Success        bool
	ProcessedCount int
	Errors         []string
}

// Writer chunks operation lists and applies them with retry and backoff.
type Writer struct {
	commit CommitFunc
	opts   Options

	// sleep is swapped out in tests
	sleep func(ctx context.Context, d time.Duration) error
}

// NewWriter creates a Writer around the given commit function. Zero-valued
// options fall back to the defaults.
func NewWriter(commit CommitFunc, opts Options) *Writer {
	def := DefaultOptions()
	if opts.MaxBatchSize <= 0 {
		opts.MaxBatchSize = def.MaxBatchSize
	}
	if opts.DelayBetweenBatches <= 0 {
		opts.DelayBetweenBatches = def.DelayBetweenBatches
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = def.MaxRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = def.RetryDelay
	}
	return &Writer{commit: commit, opts: opts, sleep: sleepContext}
}

// Apply partitions ops into fixed-size chunks in input order and applies
// each chunk as one atomic write. A chunk that fails is retried with
// exponential backoff; a chunk that exhausts its retries is recorded as a
// failure and processing continues with the next chunk. There is no
// cross-chunk atomicity: a caller observing a partial failure must
// reconcile by re-fetching state.
func (w *Writer) Apply(ctx context.Context, ops []Operation) Result {
	var result Result
	if len(ops) == 0 {
		result.Success = true
		return result
	}

	chunks := chunkOps(ops, w.opts.MaxBatchSize)
	for i, chunk := range chunks {
		if i > 0 {
			if err := w.sleep(ctx, w.opts.DelayBetweenBatches); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("cancelled before chunk %d/%d: %v", i+1, len(chunks), err))
				return result
			}
		}

		err := w.applyChunk(ctx, chunk)
		if err != nil {
			metrics.BatchChunks.WithLabelValues("failed").Inc()
			result.Errors = append(result.Errors,
				fmt.Sprintf("chunk %d/%d failed after %d retries: %v", i+1, len(chunks), w.opts.MaxRetries, err))
			if ctx.Err() != nil {
				return result
			}
			continue
		}

		metrics.BatchChunks.WithLabelValues("ok").Inc()
		result.ProcessedCount += len(chunk)
	}

	result.Success = len(result.Errors) == 0
	return result
}

func (w *Writer) applyChunk(ctx context.Context, chunk []Operation) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = w.commit(ctx, chunk)
		if err == nil {
			return nil
		}
		if attempt >= w.opts.MaxRetries {
			return err
		}

		backoff := w.opts.RetryDelay * (1 << attempt)
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
		if serr := w.sleep(ctx, backoff); serr != nil {
			return fmt.Errorf("%v (retry cancelled: %w)", err, serr)
		}
	}
}

func chunkOps(ops []Operation, size int) [][]Operation {
	var chunks [][]Operation
	for start := 0; start < len(ops); start += size {
		end := start + size
		if end > len(ops) {
			end = len(ops)
		}
		chunks = append(chunks, ops[start:end])
	}
	return chunks
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

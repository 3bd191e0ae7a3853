// Copyright (c) 2026 Table Tamer.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package batch chunks large write sets into bounded atomic commits.

A Writer partitions an operation list into chunks of at most MaxBatchSize
(50 by default), applies each chunk through a caller-supplied CommitFunc,
and sleeps briefly between chunks. Failed chunks are retried with
exponential backoff (RetryDelay * 2^attempt, capped at 10s); a chunk that
exhausts its retries is recorded and processing continues, so one poisoned
chunk doesn't sink the rest.

There is deliberately no cross-chunk atomicity. A caller that observes a
partial result must reconcile by re-fetching state.

	writer := batch.NewWriter(store.ApplyOperations, batch.DefaultOptions())
	result := writer.Apply(ctx, ops)
	if !result.Success {
		// result.ProcessedCount ops are committed; result.Errors has the rest
	}
*/
package batch

// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

// workpool.go batches and dispatches asset pre-loads across goroutines so a
// level load's pre-fetch pass (spec §4.4's build_asset_list consumer)
// doesn't serialize on one URI at a time. Grounded on the teacher's
// loader.go batching scheme (queue requests, dispatch in fixed-size batches
// as goroutines, collect results over a channel) adapted from
// model/texture-specific batches to one generic Uri-keyed batch.

import "sync"

// PreloadBatchSize caps how many URIs one dispatched goroutine loads before
// reporting back, mirroring the teacher's loadQueued batching.
const PreloadBatchSize = 100

// PreloadResult is one URI's pre-load outcome.
type PreloadResult struct {
	Uri   Uri
	Error error
}

// Preload loads every uri in uris concurrently (in fixed-size batches),
// routing each through the AssetProviders' kind-appropriate Get/load and
// reporting results on the returned channel. The channel is closed once all
// batches complete.
//
// load is supplied by the caller since each asset kind has a differently
// typed Provider.Get; Preload only owns the fan-out/collect shape.
func Preload(uris []Uri, load func(Uri) error) <-chan PreloadResult {
	results := make(chan PreloadResult, len(uris))
	if len(uris) == 0 {
		close(results)
		return results
	}

	var wg sync.WaitGroup
	for len(uris) > 0 {
		batch := uris
		if len(batch) > PreloadBatchSize {
			batch = uris[:PreloadBatchSize]
		}
		uris = uris[len(batch):]

		wg.Add(1)
		go func(batch []Uri) {
			defer wg.Done()
			for _, u := range batch {
				results <- PreloadResult{Uri: u, Error: load(u)}
			}
		}(batch)
	}

	go func() {
		wg.Wait()
		close(results)
	}()
	return results
}

package export

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Snapshotter computes and uploads one shop's snapshot.
type Snapshotter interface {
	ExportSnapshot(ctx context.Context, shopID string) (string, error)
}

// BatchResult records the outcome for one shop in a batch run.
type BatchResult struct {
	ShopID   string
	Key      string
	Err      error
	Duration time.Duration
}

// BatchRunner fans shop snapshot jobs out over a small worker pool. Failures
// are per-shop: one bad shop does not stop the batch.
type BatchRunner struct {
	snapshotter Snapshotter
	workerCount int
}

func NewBatchRunner(snapshotter Snapshotter, workerCount int) *BatchRunner {
	if workerCount < 1 {
		workerCount = 1
	}
	return &BatchRunner{
		snapshotter: snapshotter,
		workerCount: workerCount,
	}
}

// Run exports a snapshot for every shop and returns one result per shop, in
// completion order.
func (r *BatchRunner) Run(ctx context.Context, shopIDs []string) []BatchResult {
	jobChan := make(chan string, len(shopIDs))
	resultChan := make(chan BatchResult, len(shopIDs))
	var wg sync.WaitGroup

	for i := 0; i < r.workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for shopID := range jobChan {
				start := time.Now()
				key, err := r.snapshotter.ExportSnapshot(ctx, shopID)
				if err != nil {
					log.Error().Err(err).Int("worker", workerID).Str("shop_id", shopID).Msg("snapshot export failed")
				} else {
					log.Info().Int("worker", workerID).Str("shop_id", shopID).Str("key", key).
						Dur("duration", time.Since(start)).Msg("snapshot export completed")
				}
				resultChan <- BatchResult{
					ShopID:   shopID,
					Key:      key,
					Err:      err,
					Duration: time.Since(start),
				}
			}
		}(i)
	}

	for _, shopID := range shopIDs {
		select {
		case <-ctx.Done():
			// Stop enqueuing; in-flight jobs drain normally.
		case jobChan <- shopID:
			continue
		}
		break
	}
	close(jobChan)

	wg.Wait()
	close(resultChan)

	results := make([]BatchResult, 0, len(shopIDs))
	for res := range resultChan {
		results = append(results, res)
	}
	return results
}

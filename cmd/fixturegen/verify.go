package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"csb/random-fixtures/fixtures"
)

// Verify searches every ground truth query against the loaded collection and
// returns the recall of each search, indexed like truth.
func Verify(
	ctx context.Context,
	c *milvusclient.Client,
	settings MilvusSettings,
	truth []fixtures.QueryResult,
	k int,
) ([]float64, error) {
	logger, err := NewLogger("verify")
	if err != nil {
		return nil, err
	}
	defer logger.Close()
	logger.Log("Verifying...")

	/* Load Collection */
	task, err := c.LoadCollection(ctx, milvusclient.NewLoadCollectionOption(settings.Collection))
	if err != nil {
		return nil, err
	}
	if err := task.Await(ctx); err != nil {
		return nil, err
	}

	search := func(ctx context.Context, query fixtures.Vector) ([]int64, error) {
		searchRes, err := c.Search(ctx,
			milvusclient.NewSearchOption(
				settings.Collection,
				k,
				[]entity.Vector{entity.FloatVector(query)},
			).WithANNSField(vecFieldName).
				WithAnnParam(index.NewHNSWAnnParam(max(settings.Ef, k))).
				WithConsistencyLevel(entity.ClStrong),
		)
		if err != nil {
			return nil, err
		}
		if len(searchRes) != 1 {
			return nil, fmt.Errorf("unexpected number of result sets: %d", len(searchRes))
		}
		return searchRes[0].IDs.FieldData().GetScalars().GetLongData().Data, nil
	}

	recalls, failed := verifyQueries(ctx, truth, search, settings.Concurrency, logger)
	if failed > 0 {
		return recalls, fmt.Errorf("%d of %d verification queries failed", failed, len(truth))
	}

	logger.LogSummary("recall", fixtures.Summarize(recalls))
	return recalls, nil
}

type searchFunc func(ctx context.Context, query fixtures.Vector) ([]int64, error)

// verifyQueries runs search for every query on numWorkers workers and scores
// the returned ids against the recorded neighbors.
func verifyQueries(
	ctx context.Context,
	truth []fixtures.QueryResult,
	search searchFunc,
	numWorkers int,
	logger *Logger,
) (recalls []float64, failed int) {
	recalls = make([]float64, len(truth))
	workChan := make(chan int, numWorkers*2)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for i := range numWorkers {
		wg.Add(1)
		go func(workerId int) {
			defer wg.Done()
			for idx := range workChan {
				ids, err := search(ctx, truth[idx].QueryVector)
				if err != nil {
					logger.Logf("Verify worker %d: query %d: error: %v", workerId, truth[idx].QueryId, err)
					mu.Lock()
					failed++
					mu.Unlock()
					continue
				}
				recalls[idx] = fixtures.RecallAgainst(truth[idx].NeighborIds, ids)
			}
		}(i)
	}

	// Feed queries to workers
	for i := range truth {
		workChan <- i
	}
	close(workChan)

	wg.Wait()
	logger.Log(fmt.Sprintf("Verification completed: %d queries executed, %d failed", len(truth), failed))
	return recalls, failed
}

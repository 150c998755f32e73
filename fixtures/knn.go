package fixtures

import (
	"runtime"
	"slices"
	"sync"
)

/**
* Strictly speaking, this is not the Euclidean distance but squared Euclidean distance
* However, since we only care about relative distances, we may omit the square root
 */
func euclideanDistance(a []float32, b []float32) (dist float32) {
	for i := range a {
		diff := a[i] - b[i]
		dist += diff * diff
	}
	return
}

type neighbor struct {
	id       int64
	distance float32
}

/**
* sortedNeighbors keeps the k closest neighbors seen so far, closest first.
* On equal distance the neighbor inserted first stays ahead.
 */
type sortedNeighbors []neighbor

func (h sortedNeighbors) insertSorted(n neighbor, k int) sortedNeighbors {
	i, _ := slices.BinarySearchFunc(h, n.distance, func(e neighbor, d float32) int {
		if e.distance <= d {
			return -1
		}
		return 1
	})
	if i >= k {
		return h
	}
	h = slices.Insert(h, i, n)
	if len(h) > k {
		h = h[:k]
	}
	return h
}

func nearestNeighborsSequential(query Vector, rows []DataRow, k int) sortedNeighbors {
	sorted := make(sortedNeighbors, 0, max(k, 0)+1)
	for _, row := range rows {
		dist := euclideanDistance(query, row.Vector)
		sorted = sorted.insertSorted(neighbor{id: row.Id, distance: dist}, k)
	}
	return sorted
}

// mergeNeighbors merges per-chunk lists in chunk order, which keeps ties
// resolved in favor of the row that appears first in the dataset.
func mergeNeighbors(lists []sortedNeighbors, k int) sortedNeighbors {
	merged := make(sortedNeighbors, 0, k+1)
	for _, list := range lists {
		for _, n := range list {
			merged = merged.insertSorted(n, k)
		}
	}
	return merged
}

// NearestNeighbors returns the ids of the k rows closest to query, closest
// first, by brute force over all rows split across CPU cores.
func NearestNeighbors(query Vector, rows []DataRow, k int) []int64 {
	if k <= 0 || len(rows) == 0 {
		return []int64{}
	}
	numWorkers := runtime.NumCPU()
	dataLen := len(rows)

	chunkSize := (dataLen + numWorkers - 1) / numWorkers
	results := make([]sortedNeighbors, numWorkers)
	var wg sync.WaitGroup

	for i := range numWorkers {
		start := i * chunkSize
		if start >= dataLen {
			break
		}
		end := min(start+chunkSize, dataLen)

		wg.Add(1)
		go func(workerIdx int, chunk []DataRow) {
			defer wg.Done()
			results[workerIdx] = nearestNeighborsSequential(query, chunk, k)
		}(i, rows[start:end])
	}

	wg.Wait()

	return mergeNeighbors(results, k).ids()
}

// Recall is the fraction of resultIds that are among the true
// len(resultIds) nearest neighbors of query. An empty result has recall 0.
func Recall(query Vector, resultIds []int64, rows []DataRow) float64 {
	if len(resultIds) == 0 {
		return 0.0
	}

	trueNeighbors := NearestNeighbors(query, rows, len(resultIds))
	return overlap(trueNeighbors, resultIds)
}

// RecallAgainst scores resultIds against precomputed neighbor ids.
func RecallAgainst(truth []int64, resultIds []int64) float64 {
	if len(resultIds) == 0 {
		return 0.0
	}
	return overlap(truth[:min(len(truth), len(resultIds))], resultIds)
}

func overlap(truth []int64, resultIds []int64) float64 {
	trueNeighborMap := make(map[int64]bool, len(truth))
	for _, id := range truth {
		trueNeighborMap[id] = true
	}

	matches := 0
	for _, id := range resultIds {
		if trueNeighborMap[id] {
			matches++
		}
	}

	return float64(matches) / float64(len(resultIds))
}

// GroundTruth computes the exact k nearest neighbors of every query using a
// worker pool sized to the number of CPU cores.
func GroundTruth(queries []Vector, rows []DataRow, k int) []QueryResult {
	numQueries := len(queries)
	results := make([]QueryResult, numQueries)

	numWorkers := min(runtime.NumCPU(), numQueries)
	queryChan := make(chan int, numQueries)
	var wg sync.WaitGroup

	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queryChan {
				results[idx] = QueryResult{
					QueryId:     int64(idx),
					QueryVector: queries[idx],
					NeighborIds: nearestNeighborsSequential(queries[idx], rows, k).ids(),
				}
			}
		}()
	}

	for i := range queries {
		queryChan <- i
	}
	close(queryChan)

	wg.Wait()
	return results
}

func (h sortedNeighbors) ids() []int64 {
	ids := make([]int64, len(h))
	for i := range h {
		ids[i] = h[i].id
	}
	return ids
}

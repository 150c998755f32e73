package main

import (
	"fmt"
	"time"

	"csb/random-fixtures/fixtures"
)

// Generate builds the dataset, queries and ground truth described by config
// and writes them, together with config itself, to the output directory.
func Generate(config fixtures.Config) ([]fixtures.DataRow, []fixtures.QueryResult, error) {
	logger, err := NewLogger("generate")
	if err != nil {
		return nil, nil, err
	}
	defer logger.Close()

	gen := config.Generator()

	start := time.Now()
	rows, err := gen.GetDataSet()
	if err != nil {
		return nil, nil, err
	}
	logger.Logf("Generated %d rows of dim %d (%s, seed %d) in %v",
		len(rows), config.Dim, config.Distribution, config.Seed, time.Since(start))
	logger.LogSummary("data", fixtures.SummarizeRows(rows))

	queries, err := gen.Queries(config.Queries)
	if err != nil {
		return nil, nil, err
	}

	start = time.Now()
	truth := fixtures.GroundTruth(queries, rows, config.K)
	logger.Logf("Computed ground truth for %d queries (k=%d) in %v", len(truth), config.K, time.Since(start))

	/* Persist everything needed to replay and check the fixture */
	if err := fixtures.WriteConfig(outputPath(fixtures.ConfigFile), config); err != nil {
		return nil, nil, fmt.Errorf("write %s: %w", fixtures.ConfigFile, err)
	}
	if err := fixtures.SaveGob(outputPath(fixtures.DataRowsGob), rows); err != nil {
		return nil, nil, fmt.Errorf("write %s: %w", fixtures.DataRowsGob, err)
	}
	if err := fixtures.SaveParquet(outputPath(fixtures.DataRowsParquet), rows); err != nil {
		return nil, nil, fmt.Errorf("write %s: %w", fixtures.DataRowsParquet, err)
	}
	if err := fixtures.WriteText(outputPath(fixtures.DataRowsText), rows); err != nil {
		return nil, nil, fmt.Errorf("write %s: %w", fixtures.DataRowsText, err)
	}
	if err := fixtures.SaveGroundTruth(outputPath(fixtures.GroundTruthParquet), truth); err != nil {
		return nil, nil, fmt.Errorf("write %s: %w", fixtures.GroundTruthParquet, err)
	}
	logger.Logf("Fixture written to %s", GetOutputDir())

	return rows, truth, nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"csb/random-fixtures/fixtures"
)

func parseArgs(args []string) (configFile string, outDir string, loadMilvus bool, err error) {
	if len(args) < 3 || len(args) > 4 {
		return "", "", false, fmt.Errorf(`usage: %s <config_file> <output_dir> [load_milvus]
			config_file: fixture configuration (size, dim, seed, queries, k, distribution, mean, stdDev)
			output_dir:  directory the fixture files are written to
			Optional: load_milvus (true/false) whether to load the fixture into Milvus and verify recall (defaults to false)`,
			args[0])
	}

	configFile, outDir = args[1], args[2]
	if len(args) == 4 {
		loadMilvus, err = strconv.ParseBool(args[3])
		if err != nil {
			return "", "", false, fmt.Errorf("invalid load_milvus: must be true or false")
		}
	}
	return configFile, outDir, loadMilvus, nil
}

func main() {
	/* Parse CLI arguments and load configuration */
	configFile, outDir, loadMilvus, err := parseArgs(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	config, err := fixtures.LoadConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load fixture configuration: %v\n", err)
		os.Exit(1)
	}
	var settings MilvusSettings
	if loadMilvus {
		settings, err = LoadMilvusSettings()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load Milvus settings: %v\n", err)
			os.Exit(1)
		}
	}
	SetOutputDir(outDir)

	logger, err := NewLogger("main")
	if err != nil {
		panic(err)
	}
	defer logger.Close()
	logger.Logf("Fixture generation started with %s:\n%+v", configFile, config)

	rows, truth, err := Generate(config)
	if err != nil {
		logger.Logf("Generation failed: %v", err)
		os.Exit(1)
	}

	if !loadMilvus {
		logger.Log("Fixture generation finished.")
		return
	}

	if err := runMilvus(context.Background(), settings, config, rows, truth, logger); err != nil {
		logger.Logf("Milvus verification failed: %v", err)
		os.Exit(1)
	}
	logger.Log("Fixture generation finished.")
}

// runMilvus loads the fixture into Milvus, checks search recall against the
// ground truth and drops everything it created.
func runMilvus(
	ctx context.Context,
	settings MilvusSettings,
	config fixtures.Config,
	rows []fixtures.DataRow,
	truth []fixtures.QueryResult,
	logger *Logger,
) error {
	logger.Logf("Connecting to Milvus at %s...", settings.Address())
	c, err := milvusclient.New(ctx, &milvusclient.ClientConfig{
		Address:  settings.Address(),
		Username: settings.Username,
		Password: settings.Password,
	})
	if err != nil {
		return err
	}
	defer c.Close(ctx)
	logger.Log("Successfully connected")

	/* Prepare: create collection, insert data, create index */
	ops := newMilvusOps(c, settings, config.Dim)
	done, err := Prepare(ctx, ops, settings.InsertBatchSize, rows)
	if err != nil {
		return err
	}
	defer func() {
		logger.Log("Cleaning up: deleting collection and database...")
		if err := Cleanup(ctx, ops, done); err != nil {
			logger.Log(err.Error())
		}
	}()

	if len(truth) == 0 {
		logger.Log("No queries configured, skipping verification")
		return nil
	}

	recalls, err := Verify(ctx, c, settings, truth, config.K)
	if err != nil {
		return err
	}
	logger.Logf("Mean recall@%d over %d queries: %.4f", config.K, len(recalls), fixtures.Summarize(recalls).Mean)
	return nil
}

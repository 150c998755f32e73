package main

import (
	"context"
	"fmt"
	"time"

	"github.com/milvus-io/milvus/client/v2/entity"
	"github.com/milvus-io/milvus/client/v2/index"
	"github.com/milvus-io/milvus/client/v2/milvusclient"

	"csb/random-fixtures/fixtures"
)

// milvusOps are the Milvus calls used to set up and tear down the fixture
// collection, bound to one database and collection.
type milvusOps struct {
	createDatabase   func(ctx context.Context) error
	useDatabase      func(ctx context.Context) error
	createCollection func(ctx context.Context) error
	insert           func(ctx context.Context, rows []any) error
	flush            func(ctx context.Context) error
	createIndex      func(ctx context.Context) error
	listIndexes      func(ctx context.Context) (string, error)
	dropCollection   func(ctx context.Context) error
	dropDatabase     func(ctx context.Context) error
}

func newMilvusOps(c *milvusclient.Client, settings MilvusSettings, dim int) milvusOps {
	collection := settings.Collection
	return milvusOps{
		createDatabase: func(ctx context.Context) error {
			return c.CreateDatabase(ctx, milvusclient.NewCreateDatabaseOption(settings.DBName))
		},
		useDatabase: func(ctx context.Context) error {
			return c.UseDatabase(ctx, milvusclient.NewUseDatabaseOption(settings.DBName))
		},
		createCollection: func(ctx context.Context) error {
			return c.CreateCollection(ctx, milvusclient.NewCreateCollectionOption(collection, fixtureSchema(dim)))
		},
		insert: func(ctx context.Context, rows []any) error {
			_, err := c.Insert(ctx, milvusclient.NewRowBasedInsertOption(collection, rows...))
			return err
		},
		flush: func(ctx context.Context) error {
			task, err := c.Flush(ctx, milvusclient.NewFlushOption(collection))
			if err != nil {
				return err
			}
			return task.Await(ctx)
		},
		createIndex: func(ctx context.Context) error {
			task, err := c.CreateIndex(ctx, milvusclient.NewCreateIndexOption(
				collection,
				vecFieldName,
				index.NewHNSWIndex(
					index.MetricType(metricType),
					settings.M,
					settings.EfConstruction,
				),
			))
			if err != nil {
				return err
			}
			return task.Await(ctx)
		},
		listIndexes: func(ctx context.Context) (string, error) {
			indices, err := c.ListIndexes(ctx, milvusclient.NewListIndexOption(collection))
			return fmt.Sprint(indices), err
		},
		dropCollection: func(ctx context.Context) error {
			return c.DropCollection(ctx, milvusclient.NewDropCollectionOption(collection))
		},
		dropDatabase: func(ctx context.Context) error {
			return c.DropDatabase(ctx, milvusclient.NewDropDatabaseOption(settings.DBName))
		},
	}
}

func fixtureSchema(dim int) *entity.Schema {
	return entity.NewSchema().
		WithField(entity.NewField().
			WithName(idFieldName).
			WithIsAutoID(false).
			WithIsPrimaryKey(true).
			WithDataType(entity.FieldTypeInt64),
		).
		WithField(entity.NewField().
			WithName(vecFieldName).
			WithDataType(entity.FieldTypeFloatVector).
			WithDim(int64(dim)),
		).
		WithField(entity.NewField().
			WithName(fieldName).
			WithDataType(entity.FieldTypeVarChar).
			WithMaxLength(128),
		)
}

// created records what a prepare step created, so cleanup only drops that.
type created struct {
	database   bool
	collection bool
}

// CreateCollection creates the database, unless it already exists, and the
// fixture collection in it.
func CreateCollection(ctx context.Context, ops milvusOps, logger *Logger) (created, error) {
	var done created

	/* Create database and schema */
	logger.Log("Creating db...")
	if err := ops.createDatabase(ctx); err != nil {
		// most likely left over from an earlier run or owned by someone else
		logger.Log(err.Error())
	} else {
		done.database = true
	}
	if err := ops.useDatabase(ctx); err != nil {
		return done, err
	}

	logger.Log("Creating collection...")
	if err := ops.createCollection(ctx); err != nil {
		return done, err
	}
	done.collection = true
	return done, nil
}

func InsertDataset(
	ctx context.Context,
	ops milvusOps,
	data []fixtures.DataRow,
	batchSize int,
	logger *Logger,
) error {
	logger.Log("Inserting...")
	for _, batch := range insertBatches(data, batchSize) {
		if err := ops.insert(ctx, batch); err != nil {
			return err
		}
	}
	logger.Logf("Inserted %d rows", len(data))
	return nil
}

// insertBatches converts rows into row-based insert payloads of at most
// batchSize rows each.
func insertBatches(data []fixtures.DataRow, batchSize int) [][]any {
	var batches [][]any
	for start := 0; start < len(data); start += batchSize {
		end := min(start+batchSize, len(data))
		rows := make([]any, 0, end-start)
		for _, r := range data[start:end] {
			rows = append(rows, map[string]any{
				idFieldName:  r.Id,
				vecFieldName: []float32(r.Vector),
				fieldName:    r.Word,
			})
		}
		batches = append(batches, rows)
	}
	return batches
}

// Prepare loads rows into a fresh collection and builds an HNSW index on it.
// It returns what it created; if a step after creation fails, everything
// created so far is dropped before the error is returned.
func Prepare(
	ctx context.Context,
	ops milvusOps,
	insertBatchSize int,
	rows []fixtures.DataRow,
) (created, error) {
	logger, err := NewLogger("prepare")
	if err != nil {
		return created{}, err
	}
	defer logger.Close()

	done, err := CreateCollection(ctx, ops, logger)
	if err == nil {
		err = loadAndIndex(ctx, ops, insertBatchSize, rows, logger)
	}
	if err != nil {
		logger.Logf("Prepare failed: %v", err)
		if cleanupErr := Cleanup(ctx, ops, done); cleanupErr != nil {
			logger.Log(cleanupErr.Error())
		}
		return created{}, err
	}
	return done, nil
}

func loadAndIndex(
	ctx context.Context,
	ops milvusOps,
	insertBatchSize int,
	rows []fixtures.DataRow,
	logger *Logger,
) error {
	if err := InsertDataset(ctx, ops, rows, insertBatchSize, logger); err != nil {
		return err
	}

	/* Flush and await the flush */
	if err := ops.flush(ctx); err != nil {
		return err
	}
	logger.Log("Flush completed")

	/* Create the index */
	indexStartTime := time.Now()
	if err := ops.createIndex(ctx); err != nil {
		return err
	}
	logger.Logf("Index constructed in %v", time.Since(indexStartTime))

	// Sanity-Check index Creation
	indices, err := ops.listIndexes(ctx)
	if err != nil {
		return err
	}
	logger.Logf("Indices on the collection: %s", indices)
	return nil
}

package main

import (
	"context"
	"errors"
)

// Cleanup drops what a prepare step created. A database that existed before
// the run is left in place.
func Cleanup(ctx context.Context, ops milvusOps, done created) error {
	if !done.collection && !done.database {
		return nil
	}
	logger, err := NewLogger("cleanup")
	if err != nil {
		return err
	}
	defer logger.Close()
	logger.Log("Cleaning up Milvus database and collection...")

	var errs []error
	if done.collection {
		if err := ops.dropCollection(ctx); err != nil {
			errs = append(errs, err)
		} else {
			logger.Log("Collection dropped successfully")
		}
	}
	if done.database {
		if err := ops.dropDatabase(ctx); err != nil {
			errs = append(errs, err)
		} else {
			logger.Log("Database dropped successfully")
		}
	} else {
		logger.Log("Database existed before this run, keeping it")
	}
	return errors.Join(errs...)
}

package main

import (
	"context"
	"errors"
	"slices"
	"testing"

	"csb/random-fixtures/fixtures"
)

// fakeMilvus records the calls made through its milvusOps and fails the
// named call.
type fakeMilvus struct {
	calls    []string
	failOn   string
	dbExists bool
	inserted int
}

func (f *fakeMilvus) call(name string) error {
	f.calls = append(f.calls, name)
	if name == f.failOn {
		return errors.New(name + " failed")
	}
	return nil
}

func (f *fakeMilvus) ops() milvusOps {
	return milvusOps{
		createDatabase: func(context.Context) error {
			if err := f.call("createDatabase"); err != nil {
				return err
			}
			if f.dbExists {
				return errors.New("database already exists")
			}
			return nil
		},
		useDatabase:      func(context.Context) error { return f.call("useDatabase") },
		createCollection: func(context.Context) error { return f.call("createCollection") },
		insert: func(_ context.Context, rows []any) error {
			if err := f.call("insert"); err != nil {
				return err
			}
			f.inserted += len(rows)
			return nil
		},
		flush:       func(context.Context) error { return f.call("flush") },
		createIndex: func(context.Context) error { return f.call("createIndex") },
		listIndexes: func(context.Context) (string, error) {
			return "[vector]", f.call("listIndexes")
		},
		dropCollection: func(context.Context) error { return f.call("dropCollection") },
		dropDatabase:   func(context.Context) error { return f.call("dropDatabase") },
	}
}

func (f *fakeMilvus) called(name string) bool {
	return slices.Contains(f.calls, name)
}

func testRows(t *testing.T, n int) []fixtures.DataRow {
	t.Helper()
	rows, err := fixtures.DataGenerator{Size: n, Dim: 3, Seed: 1}.GetDataSet()
	if err != nil {
		t.Fatalf("GetDataSet: %v", err)
	}
	return rows
}

func TestPrepare_Success(t *testing.T) {
	useTempOutputDir(t)
	fake := &fakeMilvus{}

	done, err := Prepare(context.Background(), fake.ops(), 4, testRows(t, 10))
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	if done != (created{database: true, collection: true}) {
		t.Errorf("Expected database and collection created, got %+v", done)
	}
	if fake.inserted != 10 {
		t.Errorf("Expected 10 inserted rows, got %d", fake.inserted)
	}
	if fake.called("dropCollection") || fake.called("dropDatabase") {
		t.Errorf("Expected no cleanup on success, calls: %v", fake.calls)
	}
}

func TestPrepare_FailureAfterCreateDropsCollectionAndDatabase(t *testing.T) {
	for _, step := range []string{"insert", "flush", "createIndex", "listIndexes"} {
		t.Run(step, func(t *testing.T) {
			useTempOutputDir(t)
			fake := &fakeMilvus{failOn: step}

			_, err := Prepare(context.Background(), fake.ops(), 4, testRows(t, 10))
			if err == nil {
				t.Fatalf("Expected %s error", step)
			}

			if !fake.called("dropCollection") {
				t.Errorf("Expected collection to be dropped after %s failed, calls: %v", step, fake.calls)
			}
			if !fake.called("dropDatabase") {
				t.Errorf("Expected database to be dropped after %s failed, calls: %v", step, fake.calls)
			}
		})
	}
}

func TestPrepare_FailureKeepsExistingDatabase(t *testing.T) {
	useTempOutputDir(t)
	fake := &fakeMilvus{failOn: "insert", dbExists: true}

	if _, err := Prepare(context.Background(), fake.ops(), 4, testRows(t, 10)); err == nil {
		t.Fatal("Expected insert error")
	}

	if !fake.called("dropCollection") {
		t.Errorf("Expected collection to be dropped, calls: %v", fake.calls)
	}
	if fake.called("dropDatabase") {
		t.Errorf("Expected pre-existing database to be kept, calls: %v", fake.calls)
	}
}

func TestPrepare_CreateCollectionFailureDropsOnlyDatabase(t *testing.T) {
	useTempOutputDir(t)
	fake := &fakeMilvus{failOn: "createCollection"}

	if _, err := Prepare(context.Background(), fake.ops(), 4, testRows(t, 10)); err == nil {
		t.Fatal("Expected createCollection error")
	}

	if fake.called("dropCollection") {
		t.Errorf("Expected collection not created by this run to be kept, calls: %v", fake.calls)
	}
	if !fake.called("dropDatabase") {
		t.Errorf("Expected database created by this run to be dropped, calls: %v", fake.calls)
	}
	if fake.called("insert") {
		t.Errorf("Expected no insert after failed collection creation, calls: %v", fake.calls)
	}
}

func TestCleanup_NothingCreated(t *testing.T) {
	useTempOutputDir(t)
	fake := &fakeMilvus{}

	if err := Cleanup(context.Background(), fake.ops(), created{}); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("Expected no calls, got %v", fake.calls)
	}
}

func TestCleanup_ReportsDropErrorsAndContinues(t *testing.T) {
	useTempOutputDir(t)
	fake := &fakeMilvus{failOn: "dropCollection"}

	err := Cleanup(context.Background(), fake.ops(), created{database: true, collection: true})
	if err == nil {
		t.Fatal("Expected dropCollection error")
	}
	if !fake.called("dropDatabase") {
		t.Errorf("Expected database drop to still run, calls: %v", fake.calls)
	}
}

package fixtures

import (
	"encoding/gob"
	"os"

	"github.com/parquet-go/parquet-go"
)

// File names used inside a fixture directory.
const (
	ConfigFile         = "fixture.txt"
	DataRowsGob        = "data-rows.gob"
	DataRowsParquet    = "data-rows.parquet"
	DataRowsText       = "data-rows.txt"
	GroundTruthParquet = "ground-truth.parquet"
)

// QueryResult is one ground truth record: a query and the ids of its exact
// nearest neighbors, closest first.
type QueryResult struct {
	QueryId     int64
	QueryVector Vector
	NeighborIds []int64
}

func SaveGob(path string, rows []DataRow) error {
	gobFile, err := os.Create(path)
	if err != nil {
		return err
	}

	encoder := gob.NewEncoder(gobFile)
	if err := encoder.Encode(rows); err != nil {
		gobFile.Close()
		return err
	}
	return gobFile.Close()
}

func LoadGob(path string) ([]DataRow, error) {
	gobFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer gobFile.Close()

	var rows []DataRow
	decoder := gob.NewDecoder(gobFile)
	err = decoder.Decode(&rows)
	return rows, err
}

func SaveParquet(path string, rows []DataRow) error {
	return parquet.WriteFile(path, rows)
}

func LoadParquet(path string) ([]DataRow, error) {
	return parquet.ReadFile[DataRow](path)
}

func SaveGroundTruth(path string, results []QueryResult) error {
	return parquet.WriteFile(path, results)
}

func LoadGroundTruth(path string) ([]QueryResult, error) {
	return parquet.ReadFile[QueryResult](path)
}

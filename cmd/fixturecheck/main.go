package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"csb/random-fixtures/fixtures"
)

type checkResult struct {
	Name    string
	Rows    int
	Matches bool
	Detail  string
}

func main() {
	if len(os.Args) != 2 || os.Args[1] == "" {
		fmt.Fprintf(os.Stderr, "usage: %s <base_dir>\n", os.Args[0])
		os.Exit(1)
	}
	basePath := os.Args[1]

	results, err := checkAll(basePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	mismatches := 0
	for _, res := range results {
		status := "ok"
		if !res.Matches {
			status = "MISMATCH"
			mismatches++
		}
		fmt.Printf("%s: %s (%d rows) %s\n", res.Name, status, res.Rows, res.Detail)
	}
	if mismatches > 0 {
		os.Exit(1)
	}
}

// checkAll checks every fixture directory directly below basePath.
// Entries that are not fixture directories are skipped.
func checkAll(basePath string) ([]checkResult, error) {
	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, err
	}

	var results []checkResult
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		res, err := check(filepath.Join(basePath, entry.Name()))
		if err != nil {
			fmt.Printf("skipping %s: %v\n", entry.Name(), err)
			continue
		}
		results = append(results, res)
	}
	return results, nil
}

// check regenerates the dataset recorded in dir and compares it to the
// stored rows.
func check(dir string) (checkResult, error) {
	res := checkResult{Name: filepath.Base(dir)}

	config, err := fixtures.LoadConfig(filepath.Join(dir, fixtures.ConfigFile))
	if err != nil {
		return res, err
	}
	stored, err := fixtures.LoadGob(filepath.Join(dir, fixtures.DataRowsGob))
	if err != nil {
		return res, fmt.Errorf("failed to read %s: %w", fixtures.DataRowsGob, err)
	}
	regenerated, err := config.Generator().GetDataSet()
	if err != nil {
		return res, err
	}

	res.Rows = len(stored)
	res.Matches, res.Detail = compareRows(stored, regenerated)
	return res, nil
}

func compareRows(stored, regenerated []fixtures.DataRow) (bool, string) {
	if len(stored) != len(regenerated) {
		return false, fmt.Sprintf("row count %d, expected %d", len(stored), len(regenerated))
	}
	for i := range stored {
		a, b := stored[i], regenerated[i]
		if a.Id != b.Id || a.Word != b.Word || !slices.Equal(a.Vector, b.Vector) {
			return false, fmt.Sprintf("first difference at row %d", i)
		}
	}
	return true, ""
}

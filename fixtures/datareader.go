package fixtures

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// DataReader reads rows from a text file with one "word v1 v2 ..." row per
// line. Row ids follow line numbers; empty lines are skipped.
type DataReader struct {
	SourceFile string
}

func parseVector(vector []string) (Vector, error) {
	ret := make(Vector, len(vector))
	for idx, num := range vector {
		parsedNum, err := strconv.ParseFloat(num, 32)
		if err != nil {
			return nil, err
		}
		ret[idx] = float32(parsedNum)
	}
	return ret, nil
}

func (r DataReader) GetDataSet() ([]DataRow, error) {
	file, err := os.Open(r.SourceFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var rows []DataRow
	for id := int64(0); scanner.Scan(); id++ {
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		vector, err := parseVector(parts[1:])
		if err != nil {
			return nil, fmt.Errorf("line %d of %s: %w", id+1, r.SourceFile, err)
		}
		rows = append(rows, DataRow{Id: id, Word: parts[0], Vector: vector})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", r.SourceFile, err)
	}

	return rows, nil
}

// WriteText writes rows in the format read by DataReader. Words must not
// contain whitespace.
func WriteText(path string, rows []DataRow) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(file)
	for _, row := range rows {
		if strings.ContainsFunc(row.Word, unicode.IsSpace) || row.Word == "" {
			file.Close()
			return fmt.Errorf("row %d: word %q is empty or contains whitespace", row.Id, row.Word)
		}
		w.WriteString(row.Word)
		for _, x := range row.Vector {
			w.WriteByte(' ')
			w.WriteString(strconv.FormatFloat(float64(x), 'g', -1, 32))
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

package review

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// ImportFile reads one reviewed batch file, dispatching on extension.
// Unknown extensions are rejected with the offending path in the error.
func ImportFile(path string) ([]Record, error) {
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".json"):
		return importJSON(path)
	case strings.HasSuffix(strings.ToLower(path), ".csv"):
		return importCSV(path)
	}
	return nil, fmt.Errorf("unsupported review file format: %s", path)
}

// ImportFiles reads every given file. A file that fails to import is
// logged and skipped so one bad batch never hides the others.
func ImportFiles(paths []string, onlyApproved bool) []Record {
	var all []Record
	for _, path := range paths {
		records, err := ImportFile(path)
		if err != nil {
			log.Printf("⚠️ Review import failed for %s: %v", path, err)
			continue
		}
		all = append(all, records...)
	}
	if onlyApproved {
		all = filterApproved(all)
	}
	return all
}

// ImportDir imports every .csv/.json batch in the directory. A missing
// directory is an empty review queue, not an error.
func ImportDir(dir string, onlyApproved bool) []Record {
	paths, err := batchFiles(dir)
	if err != nil {
		return nil
	}
	return ImportFiles(paths, onlyApproved)
}

// LatestBatch returns the most recently modified batch file in the
// directory, or "" when the directory is absent or holds none.
func LatestBatch(dir string) string {
	paths, err := batchFiles(dir)
	if err != nil || len(paths) == 0 {
		return ""
	}

	latest := ""
	var latestMod int64
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); latest == "" || mod > latestMod {
			latest = path
			latestMod = mod
		}
	}
	return latest
}

func batchFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".json") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

func filterApproved(records []Record) []Record {
	approved := records[:0]
	for _, rec := range records {
		if rec.Approved != nil && *rec.Approved {
			approved = append(approved, rec)
		}
	}
	return approved
}

func importJSON(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}

func importCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(strings.ToLower(col))] = i
	}

	var records []Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row in %s: %w", path, err)
		}
		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		records = append(records, recordFromCSVRow(get))
	}
	return records, nil
}

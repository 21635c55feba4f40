package review

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Format selects the batch file encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// DefaultMaxBatchSize caps how many products land in one review file.
const DefaultMaxBatchSize = 100

// ExportOptions tunes a batch export. Zero values mean CSV, the default
// batch size and a timestamped batch name.
type ExportOptions struct {
	Format       Format
	OutputDir    string
	BatchName    string
	MaxBatchSize int
}

// Export splits the records into contiguous chunks of at most
// MaxBatchSize and writes each chunk as its own file, returning the paths
// in order. A single chunk keeps the plain batch name; multiple chunks
// get a _partN suffix.
func Export(records []Record, opts ExportOptions) ([]string, error) {
	if opts.Format == "" {
		opts.Format = FormatCSV
	}
	if opts.Format != FormatCSV && opts.Format != FormatJSON {
		return nil, fmt.Errorf("unsupported export format: %s", opts.Format)
	}
	if opts.MaxBatchSize <= 0 {
		opts.MaxBatchSize = DefaultMaxBatchSize
	}
	if opts.BatchName == "" {
		opts.BatchName = "batch_" + time.Now().Format("20060102_150405")
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create review dir: %w", err)
	}

	if len(records) <= opts.MaxBatchSize {
		path, err := exportChunk(records, opts.BatchName, opts)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	var paths []string
	for i := 0; i < len(records); i += opts.MaxBatchSize {
		end := i + opts.MaxBatchSize
		if end > len(records) {
			end = len(records)
		}
		name := fmt.Sprintf("%s_part%d", opts.BatchName, i/opts.MaxBatchSize+1)
		path, err := exportChunk(records[i:end], name, opts)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func exportChunk(records []Record, name string, opts ExportOptions) (string, error) {
	path := filepath.Join(opts.OutputDir, name+"."+string(opts.Format))
	if opts.Format == FormatJSON {
		return path, writeJSON(records, path)
	}
	return path, writeCSV(records, path)
}

func writeCSV(records []Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		salePrice := ""
		if rec.SalePrice != nil {
			salePrice = strconv.FormatFloat(*rec.SalePrice, 'f', -1, 64)
		}
		row := []string{
			strconv.FormatUint(uint64(rec.ID), 10),
			rec.Title,
			rec.Description,
			strconv.FormatFloat(rec.Price, 'f', -1, 64),
			salePrice,
			rec.Category,
			rec.Brand,
			rec.ProductURL,
			rec.AffiliateURL,
			rec.ImageURL,
			rec.Platform,
			strconv.Itoa(rec.Rank),
			strconv.FormatFloat(rec.Score, 'f', -1, 64),
			formatApproved(rec.Approved),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row for %q: %w", rec.Title, err)
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(records []Record, path string) error {
	// A JSON batch is an array even when empty, and pending approvals
	// serialize as explicit nulls for the reviewer to replace.
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode batch: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

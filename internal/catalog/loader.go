// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/logging"
)

// Supported dataset formats.
const (
	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatParquet = "parquet"
)

// Source locates the two artifacts that make up a catalog.
type Source struct {
	// ItemsPath is the tabular item dataset.
	ItemsPath string

	// SimilarityPath is the square similarity matrix, rows in item order.
	SimilarityPath string

	// Format forces a format for both files. Empty selects by file extension.
	Format string
}

// Load reads and validates both artifacts. Any missing, unreadable or
// malformed input is returned as an error; callers treat it as fatal.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	start := time.Now()

	itemsFormat, err := resolveFormat(src.ItemsPath, src.Format)
	if err != nil {
		return nil, err
	}
	matrixFormat, err := resolveFormat(src.SimilarityPath, src.Format)
	if err != nil {
		return nil, err
	}

	var loader *duckLoader
	if itemsFormat != FormatJSON || matrixFormat != FormatJSON {
		loader, err = openDuckLoader(ctx)
		if err != nil {
			return nil, err
		}
		defer loader.Close()
	}

	var items []Item
	if itemsFormat == FormatJSON {
		items, err = loadItemsJSON(src.ItemsPath)
	} else {
		items, err = loader.loadItems(ctx, src.ItemsPath, itemsFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("load items from %s: %w", src.ItemsPath, err)
	}

	var matrix [][]float64
	if matrixFormat == FormatJSON {
		matrix, err = loadMatrixJSON(src.SimilarityPath)
	} else {
		matrix, err = loader.loadMatrix(ctx, src.SimilarityPath, matrixFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("load similarity matrix from %s: %w", src.SimilarityPath, err)
	}

	c, err := New(items, matrix)
	if err != nil {
		return nil, err
	}

	logging.Info().
		Int("items", c.Len()).
		Str("items_path", src.ItemsPath).
		Str("similarity_path", src.SimilarityPath).
		Dur("elapsed", time.Since(start)).
		Msg("Catalog loaded")

	return c, nil
}

// resolveFormat picks the dataset format from the override or file extension.
func resolveFormat(path, override string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: dataset path is empty", ErrInvalidCatalog)
	}
	format := strings.ToLower(strings.TrimSpace(override))
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch format {
	case FormatJSON, FormatCSV, FormatParquet:
		return format, nil
	default:
		return "", fmt.Errorf("%w: unsupported dataset format %q for %s", ErrInvalidCatalog, format, path)
	}
}

// itemRecord is the on-disk JSON shape of one item. Both "movie_id" and "id"
// are accepted, as numbers or strings.
type itemRecord struct {
	MovieID    flexString `json:"movie_id"`
	ID         flexString `json:"id"`
	ExternalID flexString `json:"external_id"`
	Title      string     `json:"title"`
	Overview   overview   `json:"overview"`
}

func (r *itemRecord) toItem() Item {
	id := string(r.MovieID)
	if id == "" {
		id = string(r.ID)
	}
	return Item{
		ID:         id,
		Title:      r.Title,
		ExternalID: string(r.ExternalID),
		Overview:   string(r.Overview),
	}
}

// flexString decodes a JSON string or number into its string form.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifier must be a string or number: %w", err)
	}
	// Whole floats such as 19995.0 become "19995".
	if fv, err := n.Float64(); err == nil && fv == float64(int64(fv)) {
		*f = flexString(strconv.FormatInt(int64(fv), 10))
		return nil
	}
	*f = flexString(n.String())
	return nil
}

// overview decodes a JSON string or list of strings into one string.
type overview string

func (o *overview) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*o = ""
	case len(data) > 0 && data[0] == '[':
		var parts []string
		if err := json.Unmarshal(data, &parts); err != nil {
			return fmt.Errorf("overview list: %w", err)
		}
		*o = overview(JoinOverview(parts))
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("overview: %w", err)
		}
		*o = overview(s)
	}
	return nil
}

func loadItemsJSON(path string) ([]Item, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, err
	}

	var records []itemRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decode items: %v", ErrInvalidCatalog, err)
	}

	items := make([]Item, len(records))
	for i := range records {
		items[i] = records[i].toItem()
	}
	return items, nil
}

func loadMatrixJSON(path string) ([][]float64, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, err
	}

	// Pointers keep a JSON null distinguishable from 0.
	var cells [][]*float64
	if err := json.Unmarshal(data, &cells); err != nil {
		return nil, fmt.Errorf("%w: decode similarity matrix: %v", ErrInvalidCatalog, err)
	}

	matrix := make([][]float64, len(cells))
	for i, row := range cells {
		if row == nil {
			return nil, fmt.Errorf("%w: similarity[%d] is null", ErrInvalidCatalog, i)
		}
		matrix[i] = make([]float64, len(row))
		for j, v := range row {
			if v == nil {
				return nil, fmt.Errorf("%w: similarity[%d][%d] is null", ErrInvalidCatalog, i, j)
			}
			matrix[i][j] = *v
		}
	}
	return matrix, nil
}

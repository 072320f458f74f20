// Cinematch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // registers the "duckdb" driver

	"github.com/tomtom215/cinematch/internal/logging"
)

// duckLoader reads CSV and Parquet datasets through an in-memory DuckDB
// connection. It is only opened when a non-JSON artifact is configured.
type duckLoader struct {
	db *sql.DB
}

func openDuckLoader(ctx context.Context) (*duckLoader, error) {
	db, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	return &duckLoader{db: db}, nil
}

func (l *duckLoader) Close() {
	if err := l.db.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close catalog DuckDB connection")
	}
}

// tableFunction returns the DuckDB table function reading path.
func tableFunction(path, format string, header bool) string {
	lit := quoteLiteral(path)
	if format == FormatParquet {
		return "read_parquet(" + lit + ")"
	}
	return fmt.Sprintf("read_csv(%s, header=%t, auto_detect=true)", lit, header)
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// loadItems reads the item table. Recognized columns (case-insensitive):
// movie_id or id, title, external_id, overview. Other columns are ignored.
func (l *duckLoader) loadItems(ctx context.Context, path, format string) ([]Item, error) {
	//nolint:gosec // path is quoted as a literal, table functions do not accept bind parameters
	rows, err := l.db.QueryContext(ctx, "SELECT * FROM "+tableFunction(path, format, true))
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read item columns: %w", err)
	}

	idx := map[string]int{}
	for i, c := range cols {
		idx[strings.ToLower(strings.TrimSpace(c))] = i
	}
	idCol, ok := idx["movie_id"]
	if !ok {
		idCol, ok = idx["id"]
	}
	if !ok {
		return nil, fmt.Errorf("%w: item table has no movie_id or id column", ErrInvalidCatalog)
	}
	titleCol, ok := idx["title"]
	if !ok {
		return nil, fmt.Errorf("%w: item table has no title column", ErrInvalidCatalog)
	}
	extCol, hasExt := idx["external_id"]
	overviewCol, hasOverview := idx["overview"]

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	var items []Item
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan item row %d: %w", len(items), err)
		}
		item := Item{
			ID:    textValue(values[idCol]),
			Title: textValue(values[titleCol]),
		}
		if hasExt {
			item.ExternalID = textValue(values[extCol])
		}
		if hasOverview {
			item.Overview = textValue(values[overviewCol])
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// loadMatrix reads a headerless numeric table, one matrix row per record.
// Row order relies on DuckDB's default preserve_insertion_order=true.
func (l *duckLoader) loadMatrix(ctx context.Context, path, format string) ([][]float64, error) {
	//nolint:gosec // path is quoted as a literal
	rows, err := l.db.QueryContext(ctx, "SELECT * FROM "+tableFunction(path, format, false))
	if err != nil {
		return nil, fmt.Errorf("query similarity matrix: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read matrix columns: %w", err)
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	var matrix [][]float64
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan matrix row %d: %w", len(matrix), err)
		}
		row := make([]float64, len(cols))
		for j, v := range values {
			f, err := floatValue(v)
			if err != nil {
				return nil, fmt.Errorf("%w: similarity[%d][%d]: %v", ErrInvalidCatalog, len(matrix), j, err)
			}
			row[j] = f
		}
		matrix = append(matrix, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matrix: %w", err)
	}
	return matrix, nil
}

// textValue renders a scanned DuckDB value as text. Lists are joined the same
// way JSON overview lists are.
func textValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, textValue(p))
		}
		return JoinOverview(parts)
	default:
		return fmt.Sprint(t)
	}
}

// floatValue converts a scanned numeric DuckDB value to float64.
func floatValue(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case int32:
		return float64(t), nil
	case int16:
		return float64(t), nil
	case int8:
		return float64(t), nil
	case uint64:
		return float64(t), nil
	case uint32:
		return float64(t), nil
	case *big.Int:
		f, _ := new(big.Float).SetInt(t).Float64()
		return f, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	case nil:
		return 0, fmt.Errorf("missing value")
	default:
		return 0, fmt.Errorf("unsupported value type %T", v)
	}
}

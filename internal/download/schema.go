// Copyright (c) 2024 Neomantra Corp

package download

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/nimblemarkets/tickvault/pkg/parquetio"
)

// DecodeCSV parses a vendor CSV body into rows under product's static
// schema, dropping the vendor's "exchange" and "symbol" columns (redundant
// given the output path already encodes both) and coercing every other
// column per §4.2.3's type table. A non-numeric value in a numeric column
// becomes null and the row is kept; a row is skipped and counted only when
// a column's type has no coercion, never aborting the file.
func DecodeCSV(product string, body []byte) (rows []parquetio.Row, skipped int, err error) {
	schema, ok := parquetio.SchemaForProduct(product)
	if !ok {
		return nil, 0, fmt.Errorf("download: unknown product %q", product)
	}

	r := csv.NewReader(strings.NewReader(string(body)))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("download: read csv header: %w", err)
	}
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[name] = i
	}

	for {
		record, rerr := r.Read()
		if rerr != nil {
			break // io.EOF or a malformed trailing line: stop, keep what parsed
		}
		row := make(parquetio.Row, len(schema))
		rowSkip := false
		for i, col := range schema {
			srcCol, present := colIndex[col.Name]
			var raw string
			if present && srcCol < len(record) {
				raw = record[srcCol]
			}
			val, cerr := coerce(col.Type, raw)
			if cerr != nil {
				rowSkip = true
				break
			}
			row[i] = val
		}
		if rowSkip {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	return rows, skipped, nil
}

func coerce(t parquetio.ColumnType, raw string) (any, error) {
	if raw == "" {
		return nil, nil
	}
	switch t {
	case parquetio.TypeString:
		return raw, nil
	case parquetio.TypeInt64, parquetio.TypeTimestampNanos:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, nil // non-numeric value in a numeric column becomes null, not a row failure
		}
		return v, nil
	case parquetio.TypeFloat64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown column type %d", t)
	}
}

// EncodeParquet writes rows under product's schema as snappy-compressed
// Parquet bytes, ready for upload.
func EncodeParquet(product string, rows []parquetio.Row) ([]byte, error) {
	schema, ok := parquetio.SchemaForProduct(product)
	if !ok {
		return nil, fmt.Errorf("download: unknown product %q", product)
	}
	return parquetio.WriteRows(schema, rows)
}

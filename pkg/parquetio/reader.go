// Copyright (c) 2024 Neomantra Corp

package parquetio

import (
	"bytes"
	"fmt"

	"github.com/apache/arrow-go/v18/parquet"
	pqfile "github.com/apache/arrow-go/v18/parquet/file"
)

// ReadRows decodes a Parquet file written by WriteRows under the same
// schema, returning one Row per record in file order.
func ReadRows(schema Schema, data []byte) ([]Row, error) {
	reader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parquetio: open reader: %w", err)
	}
	defer reader.Close()

	var rows []Row
	for rg := 0; rg < reader.NumRowGroups(); rg++ {
		rgr := reader.RowGroup(rg)
		numRows := rgr.NumRows()
		if numRows == 0 {
			continue
		}

		columns := make([][]any, len(schema))
		for i, col := range schema {
			values, err := readColumn(rgr, i, col.Type, int(numRows))
			if err != nil {
				return nil, fmt.Errorf("parquetio: column %q: %w", col.Name, err)
			}
			columns[i] = values
		}

		for r := 0; r < int(numRows); r++ {
			row := make(Row, len(schema))
			for i := range schema {
				row[i] = columns[i][r]
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func readColumn(rgr *pqfile.RowGroupReader, col int, t ColumnType, numRows int) ([]any, error) {
	cr, err := rgr.Column(col)
	if err != nil {
		return nil, err
	}
	defLevels := make([]int16, numRows)
	out := make([]any, numRows)

	switch t {
	case TypeString:
		typed := cr.(*pqfile.ByteArrayColumnChunkReader)
		values := make([]parquet.ByteArray, numRows)
		_, _, err = typed.ReadBatch(int64(numRows), values, defLevels, nil)
		if err != nil {
			return nil, err
		}
		vi := 0
		for i, d := range defLevels {
			if d == 0 {
				out[i] = nil
				continue
			}
			out[i] = string(values[vi])
			vi++
		}
	case TypeInt64, TypeTimestampNanos:
		typed := cr.(*pqfile.Int64ColumnChunkReader)
		values := make([]int64, numRows)
		_, _, err = typed.ReadBatch(int64(numRows), values, defLevels, nil)
		if err != nil {
			return nil, err
		}
		vi := 0
		for i, d := range defLevels {
			if d == 0 {
				out[i] = nil
				continue
			}
			out[i] = values[vi]
			vi++
		}
	case TypeFloat64:
		typed := cr.(*pqfile.Float64ColumnChunkReader)
		values := make([]float64, numRows)
		_, _, err = typed.ReadBatch(int64(numRows), values, defLevels, nil)
		if err != nil {
			return nil, err
		}
		vi := 0
		for i, d := range defLevels {
			if d == 0 {
				out[i] = nil
				continue
			}
			out[i] = values[vi]
			vi++
		}
	default:
		return nil, fmt.Errorf("unknown column type %d", t)
	}
	return out, nil
}

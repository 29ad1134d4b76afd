// Copyright (c) 2024 Neomantra Corp

package parquetio

import (
	"bytes"
	"fmt"

	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	pqfile "github.com/apache/arrow-go/v18/parquet/file"
	pqschema "github.com/apache/arrow-go/v18/parquet/schema"
)

// Row is one record's values, ordered to match its Schema.
type Row []any

// groupNodeFor builds the Parquet GroupNode for a Schema, generalizing the
// per-message-type group-node builders this package's writer is adapted
// from: every column is nullable (optional) and field IDs are left unset (-1).
func groupNodeFor(schema Schema) (*pqschema.GroupNode, error) {
	fields := make(pqschema.FieldList, 0, len(schema))
	for _, col := range schema {
		switch col.Type {
		case TypeString:
			fields = append(fields, pqschema.MustPrimitive(pqschema.NewPrimitiveNodeConverted(
				col.Name, parquet.Repetitions.Optional, parquet.Types.ByteArray, pqschema.ConvertedTypes.UTF8, 0, 0, 0, -1)))
		case TypeInt64:
			fields = append(fields, pqschema.NewInt64Node(col.Name, parquet.Repetitions.Optional, -1))
		case TypeFloat64:
			fields = append(fields, pqschema.NewFloat64Node(col.Name, parquet.Repetitions.Optional, -1))
		case TypeTimestampNanos:
			fields = append(fields, pqschema.MustPrimitive(pqschema.NewPrimitiveNodeLogical(
				col.Name, parquet.Repetitions.Optional, pqschema.NewTimestampLogicalType(true, pqschema.TimeUnitNanos), parquet.Types.Int64, 0, -1)))
		default:
			return nil, fmt.Errorf("parquetio: unknown column type for %q", col.Name)
		}
	}
	return pqschema.MustGroup(pqschema.NewGroupNode("schema", parquet.Repetitions.Required, fields, -1)), nil
}

// WriteRows encodes rows under schema as a snappy-compressed Parquet file
// and returns the bytes.
func WriteRows(schema Schema, rows []Row) ([]byte, error) {
	groupNode, err := groupNodeFor(schema)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	props := parquet.NewWriterProperties(
		parquet.WithVersion(parquet.V2_LATEST),
		parquet.WithCompression(compress.Codecs.Snappy))

	pw := pqfile.NewParquetWriter(&buf, groupNode, pqfile.WithWriterProps(props))
	rgw := pw.AppendBufferedRowGroup()

	for _, row := range rows {
		if len(row) != len(schema) {
			return nil, fmt.Errorf("parquetio: row has %d values, schema has %d columns", len(row), len(schema))
		}
		for i, col := range schema {
			if err := writeCell(rgw, i, col.Type, row[i]); err != nil {
				return nil, fmt.Errorf("parquetio: column %q: %w", col.Name, err)
			}
		}
	}

	if err := rgw.Close(); err != nil {
		return nil, fmt.Errorf("parquetio: close row group: %w", err)
	}
	if err := pw.FlushWithFooter(); err != nil {
		return nil, fmt.Errorf("parquetio: flush: %w", err)
	}
	if err := pw.Close(); err != nil {
		return nil, fmt.Errorf("parquetio: close writer: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCell(rgw pqfile.BufferedRowGroupWriter, col int, t ColumnType, value any) error {
	cw, err := rgw.Column(col)
	if err != nil {
		return err
	}
	// A nil value is written as a null: a zero definition level with no
	// backing value, matching how optional DBN columns are left unset.
	if value == nil {
		return writeNull(cw, t)
	}
	switch t {
	case TypeString:
		s, _ := value.(string)
		_, _, err = cw.(*pqfile.ByteArrayColumnChunkWriter).WriteBatch([]parquet.ByteArray{[]byte(s)}, []int16{1}, nil)
	case TypeInt64:
		v, _ := value.(int64)
		_, _, err = cw.(*pqfile.Int64ColumnChunkWriter).WriteBatch([]int64{v}, []int16{1}, nil)
	case TypeFloat64:
		v, _ := value.(float64)
		_, _, err = cw.(*pqfile.Float64ColumnChunkWriter).WriteBatch([]float64{v}, []int16{1}, nil)
	case TypeTimestampNanos:
		v, _ := value.(int64)
		_, _, err = cw.(*pqfile.Int64ColumnChunkWriter).WriteBatch([]int64{v}, []int16{1}, nil)
	default:
		return fmt.Errorf("unknown column type %d", t)
	}
	return err
}

func writeNull(cw pqfile.ColumnChunkWriter, t ColumnType) error {
	var err error
	switch t {
	case TypeString:
		_, _, err = cw.(*pqfile.ByteArrayColumnChunkWriter).WriteBatch(nil, []int16{0}, nil)
	case TypeInt64, TypeTimestampNanos:
		_, _, err = cw.(*pqfile.Int64ColumnChunkWriter).WriteBatch(nil, []int16{0}, nil)
	case TypeFloat64:
		_, _, err = cw.(*pqfile.Float64ColumnChunkWriter).WriteBatch(nil, []int16{0}, nil)
	}
	return err
}

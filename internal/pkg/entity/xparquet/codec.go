package xparquet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress"
	"github.com/zpiroux/orderetl/entity"
)

// Available compression options
const (
	CompressionSnappy = "snappy"
	CompressionGzip   = "gzip"
	CompressionZstd   = "zstd"
	CompressionNone   = "none"

	DefaultCompression = CompressionSnappy
)

var codecs = map[string]compress.Codec{
	CompressionSnappy: &parquet.Snappy,
	CompressionGzip:   &parquet.Gzip,
	CompressionZstd:   &parquet.Zstd,
	CompressionNone:   &parquet.Uncompressed,
}

// ValidCompression returns true if the compression name is supported.
// Empty string is valid and means DefaultCompression.
func ValidCompression(compression string) bool {
	if compression == "" {
		return true
	}
	_, ok := codecs[strings.ToLower(compression)]
	return ok
}

// Encode serializes the rows into a single in-memory parquet file, using the
// FlatRow struct tags as schema. A file (with schema but no row groups) is
// produced also for zero rows.
func Encode(rows []entity.FlatRow, compression string) ([]byte, error) {

	if compression == "" {
		compression = DefaultCompression
	}
	codec, ok := codecs[strings.ToLower(compression)]
	if !ok {
		return nil, fmt.Errorf("unsupported parquet compression %q", compression)
	}

	var buf bytes.Buffer
	w := parquet.NewGenericWriter[entity.FlatRow](&buf, parquet.Compression(codec))

	if len(rows) > 0 {
		n, err := w.Write(rows)
		if err != nil {
			return nil, fmt.Errorf("parquet write failed after %d of %d rows: %v", n, len(rows), err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("parquet close failed: %v", err)
	}
	return buf.Bytes(), nil
}

// Decode reads back all rows from a parquet file as created by Encode.
func Decode(data []byte) ([]entity.FlatRow, error) {
	rows, err := parquet.Read[entity.FlatRow](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parquet read failed: %v", err)
	}
	return rows, nil
}

// ColumnNames returns the column names of the output schema.
func ColumnNames() []string {
	var names []string
	for _, field := range parquet.SchemaOf(new(entity.FlatRow)).Fields() {
		names = append(names, field.Name())
	}
	return names
}

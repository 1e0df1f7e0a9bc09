package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/brensch/snekpath/session"
)

// TraceWriter streams tick rows into a single Parquet file. Rows go to a
// sibling .tmp file which is renamed into place by Finalize, so readers never
// see a half-written trace.
type TraceWriter struct {
	tmpPath string
	outPath string

	file   *os.File
	writer *parquet.GenericWriter[TickRow]

	rows     int
	sessions map[string]struct{}
}

func NewTraceWriter(outPath string) (*TraceWriter, error) {
	if outPath == "" {
		return nil, fmt.Errorf("outPath is required")
	}
	if abs, err := filepath.Abs(outPath); err == nil {
		outPath = abs
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tmp parquet: %w", err)
	}

	w := parquet.NewGenericWriter[TickRow](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata("schema", TraceSchema)

	return &TraceWriter{
		tmpPath:  tmpPath,
		outPath:  outPath,
		file:     f,
		writer:   w,
		sessions: make(map[string]struct{}),
	}, nil
}

func (t *TraceWriter) OutPath() string { return t.outPath }
func (t *TraceWriter) Rows() int       { return t.rows }
func (t *TraceWriter) Sessions() int   { return len(t.sessions) }

func (t *TraceWriter) WriteRows(rows []TickRow) error {
	if t.writer == nil || t.file == nil {
		return fmt.Errorf("trace writer is closed")
	}
	if len(rows) == 0 {
		return nil
	}
	if _, err := t.writer.Write(rows); err != nil {
		return err
	}
	for _, r := range rows {
		t.sessions[r.SessionID] = struct{}{}
	}
	t.rows += len(rows)
	return nil
}

// WriteView records one view.
func (t *TraceWriter) WriteView(v session.View) error {
	return t.WriteRows([]TickRow{NewTickRow(v)})
}

// Finalize closes the writer and moves the trace into place. If no rows were
// written the tmp file is removed and outPath is returned empty.
func (t *TraceWriter) Finalize() (outPath string, rows int, err error) {
	if t.writer == nil && t.file == nil {
		return "", 0, nil
	}
	rows = t.rows

	if err := t.close(); err != nil {
		return "", 0, err
	}
	if rows == 0 {
		_ = os.Remove(t.tmpPath)
		return "", 0, nil
	}
	if err := os.Rename(t.tmpPath, t.outPath); err != nil {
		return "", 0, fmt.Errorf("rename parquet: %w", err)
	}
	return t.outPath, rows, nil
}

// Abort drops everything written so far.
func (t *TraceWriter) Abort() {
	_ = t.close()
	_ = os.Remove(t.tmpPath)
}

func (t *TraceWriter) close() error {
	var closeErr error
	if t.writer != nil {
		closeErr = t.writer.Close()
		t.writer = nil
	}
	var fileErr error
	if t.file != nil {
		_ = t.file.Sync()
		fileErr = t.file.Close()
		t.file = nil
	}
	if closeErr != nil {
		return fmt.Errorf("close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		return fmt.Errorf("close parquet file: %w", fileErr)
	}
	return nil
}

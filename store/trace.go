// Package store persists per-tick session traces as zstd-compressed Parquet.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/brensch/snekpath/session"
)

// TraceSchema is written to every trace file's key/value metadata.
const TraceSchema = "snek_tick_v1"

// TickRow is one end-of-tick snapshot of a session.
//
// Heading uses 0=Up, 1=Down, 2=Left, 3=Right. Replans and PlanTimeNs are
// running totals for the session up to and including this tick.
type TickRow struct {
	SessionID string `parquet:"session_id,dict"`
	Tick      int32  `parquet:"tick"`
	Strategy  string `parquet:"strategy,dict"`
	Width     int32  `parquet:"width"`
	Height    int32  `parquet:"height"`

	HeadX int32 `parquet:"head_x"`
	HeadY int32 `parquet:"head_y"`
	FoodX int32 `parquet:"food_x"`
	FoodY int32 `parquet:"food_y"`

	BodyX []int32 `parquet:"body_x"`
	BodyY []int32 `parquet:"body_y"`

	Heading int32 `parquet:"heading"`
	Length  int32 `parquet:"length"`
	Score   int32 `parquet:"score"`
	Reset   bool  `parquet:"reset"`

	PathLen    int32 `parquet:"path_len"`
	Visited    int32 `parquet:"visited"`
	Replans    int32 `parquet:"replans"`
	PlanTimeNs int64 `parquet:"plan_time_ns"`
}

// NewTickRow flattens a view into a row.
func NewTickRow(v session.View) TickRow {
	row := TickRow{
		SessionID:  v.SessionID,
		Tick:       int32(v.Tick),
		Strategy:   v.Strategy.String(),
		Width:      int32(v.Width),
		Height:     int32(v.Height),
		FoodX:      int32(v.Food.X),
		FoodY:      int32(v.Food.Y),
		BodyX:      make([]int32, len(v.Snake)),
		BodyY:      make([]int32, len(v.Snake)),
		Heading:    int32(v.Heading),
		Length:     int32(v.Length),
		Score:      int32(v.Score),
		Reset:      v.Reset,
		PathLen:    int32(len(v.Path)),
		Visited:    int32(len(v.Visited)),
		Replans:    int32(v.Stats.Replans),
		PlanTimeNs: v.Stats.PlanTime.Nanoseconds(),
	}
	for i, p := range v.Snake {
		row.BodyX[i] = int32(p.X)
		row.BodyY[i] = int32(p.Y)
	}
	if len(v.Snake) > 0 {
		row.HeadX, row.HeadY = row.BodyX[0], row.BodyY[0]
	}
	return row
}

// ReadTrace loads every row of a trace file.
func ReadTrace(path string) ([]TickRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	if schema, ok := pf.Lookup("schema"); ok && schema != TraceSchema {
		return nil, fmt.Errorf("unexpected trace schema %q", schema)
	}

	reader := parquet.NewGenericReader[TickRow](pf)
	defer reader.Close()

	rows := make([]TickRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows[:n], nil
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathquest/internal/tournament"
)

// SafetyLog implements tournament.SafetyLog. Every event is stamped with the
// next global sequence number.
type SafetyLog struct {
	db  *sql.DB
	seq *sequenceCounter
}

var _ tournament.SafetyLog = (*SafetyLog)(nil)

// SafetyRecord is a stored safety event.
type SafetyRecord struct {
	Sequence int64 `json:"sequence"`
	tournament.SafetyEvent
}

func (l *SafetyLog) Record(ctx context.Context, e tournament.SafetyEvent) error {
	seqNum, err := l.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	details := e.Details
	if details == nil {
		details = map[string]any{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal safety details: %w", err)
	}

	_, err = exec(ctx, l.db, builder.Insert(tableSafety).
		Columns("sequence", "user_id", "event_type", "details", "timestamp").
		Values(seqNum, e.UserID, e.EventType, string(raw), utc(e.At)))
	if err != nil {
		return fmt.Errorf("save safety event: %w", err)
	}
	return nil
}

// Query returns stored events in sequence order.
func (l *SafetyLog) Query(ctx context.Context, opts QueryOpts) ([]SafetyRecord, error) {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", utc(opts.From)))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", utc(opts.To)))
	}
	if opts.UserID != "" {
		preds = append(preds, entsql.EQ("user_id", opts.UserID))
	}

	sel := builder.Select("sequence", "user_id", "event_type", "details", "timestamp").
		From(builder.Table(tableSafety)).
		OrderBy(entsql.Asc("sequence"))
	if len(preds) > 0 {
		sel = sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	rows, err := queryRows(ctx, l.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query safety events: %w", err)
	}
	defer rows.Close()

	var out []SafetyRecord
	for rows.Next() {
		var rec SafetyRecord
		var raw string
		if err := rows.Scan(&rec.Sequence, &rec.UserID, &rec.EventType, &raw, &rec.At); err != nil {
			return nil, fmt.Errorf("scan safety event: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &rec.Details); err != nil {
			return nil, fmt.Errorf("parse safety details %d: %w", rec.Sequence, err)
		}
		rec.At = utc(rec.At)
		out = append(out, rec)
	}
	return out, rows.Err()
}

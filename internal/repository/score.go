package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iandyone/minesweeper-rss/internal/mines"
	"github.com/iandyone/minesweeper-rss/internal/scores"
)

type ScoreRecord struct {
	SessionId  uuid.UUID `db:"session_id"`
	Complexity string    `db:"complexity"`
	ElapsedMs  int64     `db:"elapsed_ms"`
	Moves      int32     `db:"moves"`
	FinishedAt time.Time `db:"finished_at"`
}

func NewScoreRecord(r scores.Record) ScoreRecord {
	return ScoreRecord{
		SessionId:  r.SessionID,
		Complexity: string(r.Complexity),
		ElapsedMs:  r.Elapsed.Milliseconds(),
		Moves:      int32(r.Moves),
		FinishedAt: r.FinishedAt.UTC(),
	}
}

func (s ScoreRecord) Record() scores.Record {
	return scores.Record{
		SessionID:  s.SessionId,
		Complexity: mines.Complexity(s.Complexity),
		Elapsed:    time.Duration(s.ElapsedMs) * time.Millisecond,
		Moves:      int(s.Moves),
		FinishedAt: s.FinishedAt,
	}
}

func (s ScoreRecord) NamedArgs() pgx.NamedArgs {
	return pgx.NamedArgs{
		"session_id":  s.SessionId,
		"complexity":  s.Complexity,
		"elapsed_ms":  s.ElapsedMs,
		"moves":       s.Moves,
		"finished_at": s.FinishedAt,
	}
}

// [Queries] implements [scores.Store]
func (q Queries) Append(ctx context.Context, r scores.Record) error {
	_, err := q.db.Exec(
		ctx,
		`INSERT INTO score_record (
			session_id, complexity, elapsed_ms, moves, finished_at
		)
		VALUES (
			@session_id, @complexity, @elapsed_ms, @moves, @finished_at
		);`,
		NewScoreRecord(r).NamedArgs(),
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return scores.ErrDuplicate
	}
	if err != nil {
		return err
	}

	_, err = q.db.Exec(
		ctx,
		`DELETE FROM score_record
		WHERE session_id NOT IN (
			SELECT session_id FROM score_record
			ORDER BY finished_at DESC
			LIMIT @limit
		);`,
		pgx.NamedArgs{"limit": scores.MaxRecords},
	)
	return err
}

func (q Queries) Recent(ctx context.Context) (scores.Log, error) {
	rows, err := q.db.Query(
		ctx,
		`SELECT session_id, complexity, elapsed_ms, moves, finished_at
		FROM score_record
		ORDER BY finished_at DESC
		LIMIT @limit;`,
		pgx.NamedArgs{"limit": scores.MaxRecords},
	)
	if err != nil {
		return nil, err
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[ScoreRecord])
	if err != nil {
		return nil, err
	}
	log := make(scores.Log, 0, len(records))
	for _, r := range records {
		log = append(log, r.Record())
	}
	return log, nil
}

package scores

import (
	"time"

	"github.com/google/uuid"
	"github.com/iandyone/minesweeper-rss/internal/mines"
)

// MaxRecords is how many results are kept; older ones are dropped.
const MaxRecords = 10

type Record struct {
	SessionID  uuid.UUID
	Complexity mines.Complexity
	Elapsed    time.Duration
	Moves      int
	FinishedAt time.Time
}

// Log holds records newest first.
type Log []Record

// Push returns a log with r in front, trimmed to [MaxRecords].
func (l Log) Push(r Record) Log {
	out := append(Log{r}, l...)
	if len(out) > MaxRecords {
		out = out[:MaxRecords]
	}
	return out
}

func (l Log) Contains(sessionID uuid.UUID) bool {
	for _, r := range l {
		if r.SessionID == sessionID {
			return true
		}
	}
	return false
}

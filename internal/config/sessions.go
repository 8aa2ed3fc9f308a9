package config

import (
	"fmt"
	"strconv"
	"time"
)

type Sessions struct {
	Limit           int
	TTL             time.Duration
	CleanupInterval time.Duration
	MaxBoardCells   int
}

func NewSessions() (*Sessions, error) {
	sessions := &Sessions{
		Limit:           1000,
		TTL:             time.Hour,
		CleanupInterval: time.Minute,
		MaxBoardCells:   100 * 100,
	}

	if s, ok := lookupEnv("SESSION_LIMIT"); ok {
		limit, err := strconv.Atoi(s)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("SESSION_LIMIT must be a positive integer, got %q", s)
		}
		sessions.Limit = limit
	}

	if s, ok := lookupEnv("SESSION_TTL"); ok {
		ttl, err := time.ParseDuration(s)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("SESSION_TTL must be a positive duration, got %q", s)
		}
		sessions.TTL = ttl
	}

	if s, ok := lookupEnv("SESSION_CLEANUP_INTERVAL"); ok {
		interval, err := time.ParseDuration(s)
		if err != nil || interval <= 0 {
			return nil, fmt.Errorf("SESSION_CLEANUP_INTERVAL must be a positive duration, got %q", s)
		}
		sessions.CleanupInterval = interval
	}

	if s, ok := lookupEnv("MAX_BOARD_CELLS"); ok {
		cells, err := strconv.Atoi(s)
		if err != nil || cells <= 0 {
			return nil, fmt.Errorf("MAX_BOARD_CELLS must be a positive integer, got %q", s)
		}
		sessions.MaxBoardCells = cells
	}

	return sessions, nil
}

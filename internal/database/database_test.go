package database

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
)

type fakeMigrator struct {
	upErr  error
	closed bool
}

func (m *fakeMigrator) Up() error { return m.upErr }

func (m *fakeMigrator) Close() (error, error) {
	m.closed = true
	return nil, nil
}

func TestUp(t *testing.T) {
	tests := []struct {
		name    string
		upErr   error
		wantErr bool
	}{
		{"applied", nil, false},
		{"nothing to apply", migrate.ErrNoChange, false},
		{"failed", errors.New("dirty database version 1"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &fakeMigrator{upErr: tt.upErr}
			err := up(m)
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.upErr)
				assert.True(t, m.closed, "migrator left open after a failed migration")
				return
			}
			assert.NoError(t, err)
			assert.False(t, m.closed)
		})
	}
}

package scheduler

import (
	"testing"

	testutil "github.com/aristath/allocator/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWALCheckpointJob(t *testing.T) {
	assert.Equal(t, "wal_checkpoint", NewWALCheckpointJob(nil, zerolog.Nop()).Name())
	assert.NoError(t, NewWALCheckpointJob(nil, zerolog.Nop()).Run())

	db, cleanup := testutil.NewTestDB(t)
	defer cleanup()

	for i := 0; i < 50; i++ {
		_, err := db.Exec("INSERT INTO assets (position, ticker, expected_return, risk_score, price, updated_at) VALUES (?, 'X', 1, 1, 1, 0)", i)
		require.NoError(t, err)
	}
	assert.NoError(t, NewWALCheckpointJob(db, zerolog.Nop()).Run())
}

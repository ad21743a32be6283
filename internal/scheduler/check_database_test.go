package scheduler

import (
	"testing"

	testutil "github.com/aristath/allocator/internal/testing"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestCheckDatabaseJob_Name(t *testing.T) {
	assert.Equal(t, "check_database", NewCheckDatabaseJob(nil, zerolog.Nop()).Name())
}

func TestCheckDatabaseJob_Run(t *testing.T) {
	assert.NoError(t, NewCheckDatabaseJob(nil, zerolog.Nop()).Run(), "nil database is skipped")

	db, cleanup := testutil.NewTestDB(t)
	defer cleanup()
	assert.NoError(t, NewCheckDatabaseJob(db, zerolog.Nop()).Run())
}

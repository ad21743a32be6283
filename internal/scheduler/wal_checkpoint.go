package scheduler

import (
	"fmt"

	"github.com/aristath/allocator/internal/database"
	"github.com/rs/zerolog"
)

// walTruncateFrames is the WAL size above which the job truncates the log.
const walTruncateFrames = 1000

// WALCheckpointJob checkpoints the optimizer database write-ahead log.
// Frontier snapshots write steadily, so the WAL is truncated once it grows large.
type WALCheckpointJob struct {
	db  *database.DB
	log zerolog.Logger
}

// NewWALCheckpointJob creates a new WALCheckpointJob
func NewWALCheckpointJob(db *database.DB, log zerolog.Logger) *WALCheckpointJob {
	return &WALCheckpointJob{
		db:  db,
		log: log.With().Str("job", "wal_checkpoint").Logger(),
	}
}

// Name returns the job name
func (j *WALCheckpointJob) Name() string {
	return "wal_checkpoint"
}

// Run executes the WAL checkpoint job
func (j *WALCheckpointJob) Run() error {
	if j.db == nil {
		return nil
	}

	// PRAGMA wal_checkpoint returns: busy, log, checkpointed
	var busy, frames, checkpointed int
	if err := j.db.QueryRow("PRAGMA wal_checkpoint(PASSIVE)").Scan(&busy, &frames, &checkpointed); err != nil {
		return fmt.Errorf("failed to checkpoint WAL: %w", err)
	}

	if frames <= walTruncateFrames {
		j.log.Debug().Int("wal_frames", frames).Int("checkpointed", checkpointed).Msg("WAL checkpoint status OK")
		return nil
	}

	j.log.Warn().Int("wal_frames", frames).Msg("WAL file is large, truncating")
	if err := j.db.QueryRow("PRAGMA wal_checkpoint(TRUNCATE)").Scan(&busy, &frames, &checkpointed); err != nil {
		return fmt.Errorf("failed to truncate WAL: %w", err)
	}
	return nil
}

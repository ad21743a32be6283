package utils

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestTimer_StopLogsOperation(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	timer := NewTimer("frontier_sweep", log)
	d := timer.Stop(map[string]interface{}{"points": 21})

	assert.GreaterOrEqual(t, int64(d), int64(0))
	out := buf.String()
	assert.Contains(t, out, `"operation":"frontier_sweep"`)
	assert.Contains(t, out, `"points":21`)
	assert.Contains(t, out, `"level":"debug"`)
}

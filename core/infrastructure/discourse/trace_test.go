package discourse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugBlock(t *testing.T) {
	log := &captureLogger{}
	debugBlock(log, "Body", "content")

	assert.Equal(t, []string{"===== Body =====", "content", "================"}, log.lines)
	assert.Len(t, log.lines[0], len(log.lines[2]))
}

func TestDebugBlock_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		debugBlock(nil, "Body", "content")
	})
}

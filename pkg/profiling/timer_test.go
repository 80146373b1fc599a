package profiling

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimerDisabledByDefault(t *testing.T) {
	stop := Start("noop")
	stop.Stop()

	var buf bytes.Buffer
	Summarize(&buf)
	assert.Empty(t, buf.String())
}

func TestTimerSummarize(t *testing.T) {
	Enable()

	Start("load").Stop()
	Start("parse").Stop()
	Start("parse").Stop()

	var buf bytes.Buffer
	Summarize(&buf)

	out := buf.String()
	assert.Contains(t, out, "timing summary:")
	assert.Contains(t, out, "load")
	assert.Contains(t, out, "parse")
	assert.Contains(t, out, "(2 calls)")
}

package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressReporterDisabled(t *testing.T) {
	var buf bytes.Buffer

	p := newProgressReporter(&buf, false)
	p.update(10)
	p.clear()

	assert.Empty(t, buf.String())
}

func TestProgressReporterEnabled(t *testing.T) {
	var buf bytes.Buffer

	p := newProgressReporter(&buf, true)
	assert.NotPanics(t, func() {
		for i := int64(0); i < 50; i++ {
			p.update(i)
		}

		p.clear()
	})
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}

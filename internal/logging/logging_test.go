package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "solver", LevelWarn)

	l.Debugf("noisy")
	l.Infof("also noisy")
	l.Warnf("heads up")
	l.Errorf("broken")

	out := buf.String()
	assert.NotContains(t, out, "noisy")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "heads up")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "broken")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, LevelInfo, ParseLevel("bogus"))
}

func TestLogger_WithTagsSubcomponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "solver", LevelInfo)
	sub := l.With("cbs")
	sub.Infof("expanded node")

	assert.True(t, strings.Contains(buf.String(), "solver.cbs"))
}

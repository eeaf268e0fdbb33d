package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinnerOnNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "Parsing drugbank.xml")

	s.Start()
	s.Start()
	s.Stop("done")
	s.Stop("ignored")

	assert.Equal(t, "Parsing drugbank.xml...\ndone\n", buf.String())
}

func TestSpinnerAnimates(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "working")
	s.animate = true
	s.interval = 5 * time.Millisecond

	s.Start()
	time.Sleep(30 * time.Millisecond)
	s.Update("still working")
	time.Sleep(30 * time.Millisecond)
	s.Stop("")

	out := buf.String()
	assert.Contains(t, out, frames[0]+" working")
	assert.Contains(t, out, "still working")
	assert.True(t, strings.HasSuffix(out, "\r\033[K"))
}

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	err := Run(&buf, "Loading", func() error { return nil })
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "✓ Loading")

	buf.Reset()
	boom := errors.New("boom")
	err = Run(&buf, "Loading", func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "✗ Loading")
}

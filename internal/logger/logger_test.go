package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	assert := assert.New(t)

	buf := &bytes.Buffer{}

	Init(buf, false, true)
	assert.Equal(log.WarnLevel, log.GetLevel())
	log.Debug("hidden")
	assert.Equal(0, buf.Len())

	Init(buf, true, true)
	assert.Equal(log.DebugLevel, log.GetLevel())
	log.Debug("shown", "ip", 3)
	assert.Contains(buf.String(), "ASMI")
	assert.Contains(buf.String(), "shown")
	assert.Contains(buf.String(), "ip=3")

	Init(nil, false, true)
}

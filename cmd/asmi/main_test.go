package main

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/asmi/emulator"
)

func TestRun(t *testing.T) {
	assert := assert.New(t)

	opt := &options{}
	buf := &bytes.Buffer{}

	err := opt.run(strings.NewReader("mov a, 5\nmsg 'a=', a\nend\n"), buf)
	assert.NoError(err)
	assert.Equal("a=5\n", buf.String())
}

func TestRunNoOutput(t *testing.T) {
	assert := assert.New(t)

	opt := &options{}
	buf := &bytes.Buffer{}

	err := opt.run(strings.NewReader("msg 'lost'\n"), buf)
	assert.Error(err)
	assert.Equal(0, buf.Len())
}

func TestRunPredefine(t *testing.T) {
	assert := assert.New(t)

	opt := &options{predefine: []string{"a=2**0 + 4", "b = a * 3"}}
	buf := &bytes.Buffer{}

	err := opt.run(strings.NewReader("msg a, ' ', b\nend\n"), buf)
	assert.Error(err)

	opt.predefine = []string{"a=1 + 4", "b = a * 3"}
	buf.Reset()
	err = opt.run(strings.NewReader("msg a, ' ', b\nend\n"), buf)
	assert.NoError(err)
	assert.Equal("5 15\n", buf.String())

	opt.predefine = []string{"a"}
	err = opt.run(strings.NewReader("end\n"), buf)
	assert.Error(err)
}

func TestRunSimple(t *testing.T) {
	assert := assert.New(t)

	opt := &options{simple: true}
	buf := &bytes.Buffer{}

	err := opt.run(strings.NewReader("mov b 2\nmov a 5\ndec a\njnz a -1\n"), buf)
	assert.NoError(err)
	assert.Equal("a=0\nb=2\n", buf.String())
}

func TestRunSteps(t *testing.T) {
	assert := assert.New(t)

	opt := &options{steps: 50}
	buf := &bytes.Buffer{}

	err := opt.run(strings.NewReader("x:\njmp x\n"), buf)
	assert.ErrorIs(err, emulator.ErrStepLimit)
}

func TestRunDump(t *testing.T) {
	assert := assert.New(t)

	opt := &options{dump: true}
	buf := &bytes.Buffer{}

	err := opt.run(strings.NewReader("mov q, 9\nmsg q\nend\n"), buf)
	assert.NoError(err)
	assert.True(strings.HasPrefix(buf.String(), "9\n"))
	assert.Contains(buf.String(), "| q")
}

func TestRunFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "halve.asm")
	err := os.WriteFile(path, []byte("mov a, 6\ndiv a, 2\nmsg a\nend\n"), 0o644)
	assert.NoError(err)

	buf := &bytes.Buffer{}
	err = runFile(&options{}, path, buf)
	assert.NoError(err)
	assert.Equal("3\n", buf.String())

	err = runFile(&options{}, filepath.Join(dir, "missing.asm"), buf)
	assert.ErrorIs(err, os.ErrNotExist)
}

func TestRunFilesOrder(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	good := filepath.Join(dir, "good.asm")
	err := os.WriteFile(good, []byte("msg 'good'\nend\n"), 0o644)
	assert.NoError(err)

	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	defer log.SetOutput(os.Stderr)

	w := bufio.NewWriter(buf)
	status := runFiles(&options{}, []string{good, filepath.Join(dir, "missing.asm"), good}, w)
	assert.Equal(1, status)
	assert.Equal(0, w.Buffered())

	text := buf.String()
	first := strings.Index(text, "good\n")
	failed := strings.Index(text, "missing.asm")
	last := strings.LastIndex(text, "good\n")
	assert.True(first >= 0 && first < failed, text)
	assert.True(failed < last, text)
}

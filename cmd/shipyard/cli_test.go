package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/samdwyer/shipyard/internal/config"
	"github.com/samdwyer/shipyard/internal/shipdata"
)

// setup resets the globals the commands read and returns a command whose
// output is captured.
func setup(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	logger = zap.NewNop()
	cfg = config.DefaultConfig()
	keep = -1
	outPath = ""

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	return cmd, &out
}

func TestCheckIntact(t *testing.T) {
	cmd, out := setup(t)

	require.NoError(t, runCheck(cmd, []string{"testdata/intact.yaml"}))
	assert.Contains(t, out.String(), "alice (Level II)")
	assert.Contains(t, out.String(), "intact")
}

func TestCheckSplitDoesNotModify(t *testing.T) {
	cmd, out := setup(t)

	require.NoError(t, runCheck(cmd, []string{"testdata/split.yaml"}))
	assert.Contains(t, out.String(), "[0] keep {(2, 3) (2, 4)}")
	assert.Contains(t, out.String(), "[1] keep {(2, 5)}")
}

func TestResolveNeedsKeep(t *testing.T) {
	cmd, out := setup(t)

	err := runResolve(cmd, []string{"testdata/split.yaml"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errChoiceNeeded))
	assert.Contains(t, out.String(), "split into 2 fragments")
	assert.Contains(t, out.String(), "[1] (2, 5)")
}

func TestResolveKeepWritesSurvivors(t *testing.T) {
	cmd, out := setup(t)
	keep = 1
	outPath = filepath.Join(t.TempDir(), "after.yaml")

	require.NoError(t, runResolve(cmd, []string{"testdata/split.yaml"}))
	assert.Contains(t, out.String(), "bob: trimmed, removed 2 tile(s)")

	sf, err := shipdata.LoadShip(outPath)
	require.NoError(t, err)
	assert.Equal(t, "bob", sf.Player)
	assert.Equal(t, "level-2", sf.Board)
	assert.Equal(t, []shipdata.Placement{{Tile: "cabin-2", Row: 2, Col: 5}}, sf.Tiles)
	assert.False(t, sf.HasCommand(), "the command cabin was cut away")

	catalog, err := shipdata.LoadCatalog()
	require.NoError(t, err)
	boards, err := shipdata.LoadBoards()
	require.NoError(t, err)
	g, err := sf.Assemble(catalog, boards, "")
	require.NoError(t, err)
	assert.Equal(t, 1, g.Len())
}

func TestResolveOutFailureIsReported(t *testing.T) {
	cmd, _ := setup(t)
	keep = 1
	outPath = t.TempDir()

	err := runResolve(cmd, []string{"testdata/split.yaml"})
	assert.Error(t, err)
}

func TestResolveInvalidKeep(t *testing.T) {
	cmd, _ := setup(t)
	keep = 9

	err := runResolve(cmd, []string{"testdata/split.yaml"})
	assert.ErrorIs(t, err, errChoiceNeeded)
}

func TestResolveMissingFile(t *testing.T) {
	cmd, _ := setup(t)
	assert.Error(t, runResolve(cmd, []string{"testdata/nope.yaml"}))
}

func TestFleet(t *testing.T) {
	cmd, out := setup(t)

	require.NoError(t, runFleet(cmd, []string{"testdata/intact.yaml", "testdata/split.yaml"}))
	assert.Contains(t, out.String(), "alice        intact, removed 0")
	assert.Contains(t, out.String(), "bob          split into 2 fragments")
}

func TestTiles(t *testing.T) {
	cmd, out := setup(t)

	require.NoError(t, runTiles(cmd, nil))
	assert.Contains(t, out.String(), "command-blue")
	assert.Contains(t, out.String(), "engine-1       engine        single none engine none")
}

func TestNewLogger(t *testing.T) {
	setup(t)

	l, err := newLogger(true)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel), "play without --log-file logs nowhere")

	logFile = filepath.Join(t.TempDir(), "play.log")
	defer func() { logFile = "" }()
	l, err = newLogger(true)
	require.NoError(t, err)
	l.Info("hello")
	require.NoError(t, l.Sync())
}

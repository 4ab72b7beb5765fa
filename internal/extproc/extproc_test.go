package extproc

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmptyNameIsIdentity(t *testing.T) {
	p := New(context.Background(), "")
	assert.IsType(t, identity{}, p)
	assert.Equal(t, "abc", p.Process(context.Background(), "abc"))
}

func TestNewMissingToolFallsBackToIdentity(t *testing.T) {
	p := New(context.Background(), "definitely-not-a-real-formatter-binary")
	assert.IsType(t, identity{}, p)
	assert.Equal(t, "abc", p.Process(context.Background(), "abc"))
}

func TestToolPipesStdinToStdout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a POSIX cat binary")
	}
	p := New(context.Background(), "cat")
	require.IsType(t, &tool{}, p)
	assert.Equal(t, "hello\nworld\n", p.Process(context.Background(), "hello\nworld\n"))
}

func TestToolNonZeroExitKeepsInput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a POSIX false binary")
	}
	p := New(context.Background(), "false")
	require.IsType(t, &tool{}, p)
	assert.Equal(t, "unchanged", p.Process(context.Background(), "unchanged"))
}

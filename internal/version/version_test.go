package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShort_LdflagsWin(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })

	Version = "v1.2.3"
	assert.Equal(t, "v1.2.3", Short())
}

func TestInfo(t *testing.T) {
	oldV, oldC, oldB := Version, Commit, BuildTime
	t.Cleanup(func() { Version, Commit, BuildTime = oldV, oldC, oldB })

	Version, Commit, BuildTime = "v1.2.3", "abc1234", "2026-10-17T12:00:00Z"
	info := Info()
	assert.Contains(t, info, "chatc v1.2.3")
	assert.Contains(t, info, "abc1234")
	assert.Contains(t, info, "2026-10-17T12:00:00Z")
	assert.Contains(t, info, runtime.Version())
}

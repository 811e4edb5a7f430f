package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestString_Unstamped(t *testing.T) {
	require.Equal(t, Version, String())
}

func TestString_Stamped(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	t.Cleanup(func() {
		Version, GitCommit = origVersion, origCommit
	})

	Version = "v1.2.0"
	GitCommit = "abc1234"
	require.Equal(t, "v1.2.0 (abc1234)", String())
}

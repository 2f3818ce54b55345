package flagx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	args := []string{"-d", "state.db", "-x", "ignored", "-o", "out"}
	got := FilterArgs(args, []string{"-d", "-o"})
	require.Equal(t, []string{"-d", "state.db", "-o", "out"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	args := []string{"--config=conf.json", "--other=1", "-d=state.db"}
	got := FilterArgs(args, []string{"--config", "-d"})
	require.Equal(t, []string{"--config=conf.json", "-d=state.db"}, got)
}

func TestFilterArgs_FlagFollowedByFlag(t *testing.T) {
	args := []string{"-d", "-o", "out"}
	got := FilterArgs(args, []string{"-d", "-o"})
	// -d has no value; the next token is another flag and must not be eaten
	require.Equal(t, []string{"-d", "-o", "out"}, got)
}

func TestFilterArgs_NothingAllowed(t *testing.T) {
	got := FilterArgs([]string{"-a", "1", "-b"}, nil)
	require.NotNil(t, got)
	require.Empty(t, got)
}

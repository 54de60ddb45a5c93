package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runQuote(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := QuoteCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestQuoteCmd(t *testing.T) {
	out, err := runQuote(t, "--rate", "25", "--start", "2024-01-15", "--end", "2024-01-17")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, []string{"Days:", "3"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Total:", "75.00"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"3", "day(s)", "67.50"}, strings.Fields(lines[4]))
	assert.Equal(t, []string{"30", "day(s)", "600.00"}, strings.Fields(lines[6]))
}

func TestQuoteCmdSameDayAndReversed(t *testing.T) {
	out, err := runQuote(t, "--rate", "10", "--start", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"Total:", "10.00"}, strings.Fields(strings.Split(out, "\n")[1]))

	out, err = runQuote(t, "--rate", "10", "--start", "2024-03-05", "--end", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"Days:", "5"}, strings.Fields(strings.SplitN(out, "\n", 2)[0]))
}

func TestQuoteCmdRejectsBadInput(t *testing.T) {
	_, err := runQuote(t, "--rate", "abc", "--start", "2024-03-01")
	require.Error(t, err)

	_, err = runQuote(t, "--rate", "10", "--start", "01/03/2024")
	require.Error(t, err)

	_, err = runQuote(t, "--start", "2024-03-01")
	require.Error(t, err)
}

func TestDashboardCmdRequiresDSN(t *testing.T) {
	cmd := DashboardCmd()
	cmd.SetArgs([]string{"--dsn", ""})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PG_DSN")
}

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ledger-console/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs a fresh root command with args, feeding stdin and
// capturing stdout and stderr separately.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	chdir(t, t.TempDir())

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_ScenarioA(t *testing.T) {
	stdout, _, err := executeCommand(t,
		"deposit 25.50\nwithdraw 20.75\ndeposit 0.25\nwithdraw 200.00\nbalance\nquit\n",
		"--owner", "Alice", "--balance", "100.00", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Ledger account for Alice.")
	assert.Contains(t, stdout, "New balance: 125.50")
	assert.Contains(t, stdout, "New balance: 104.75")
	assert.Contains(t, stdout, "New balance: 105.00")
	assert.Contains(t, stdout, "Error: Insufficient funds")
	assert.Contains(t, stdout, "Balance: 105.00")
	assert.True(t, strings.HasSuffix(stdout, "Goodbye!\n"))
}

func TestRootCmd_DefaultsAndEOF(t *testing.T) {
	stdout, _, err := executeCommand(t, "b\n", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Ledger account for User.")
	assert.Contains(t, stdout, "Balance: 0.00")
	assert.True(t, strings.HasSuffix(stdout, "Goodbye!\n"))
}

func TestRootCmd_InvalidInitialBalanceWarns(t *testing.T) {
	tests := []struct {
		name    string
		balance string
	}{
		{"unparsable", "lots"},
		{"negative", "-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, err := executeCommand(t, "b\n", "--balance", tt.balance, "--log-level", "error")
			require.NoError(t, err)

			assert.Contains(t, stderr, "Warning: invalid initial balance")
			assert.Contains(t, stdout, "Balance: 0.00")
		})
	}
}

func TestRootCmd_InitialBalanceRounded(t *testing.T) {
	stdout, _, err := executeCommand(t, "b\n", "--balance", "9.995", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Balance: 10.00")
}

func TestRootCmd_Prompt(t *testing.T) {
	stdout, _, err := executeCommand(t, "b\n", "--prompt", "$ ", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, stdout, "$ Balance: 0.00")
}

func TestRootCmd_LogsToStderr(t *testing.T) {
	stdout, stderr, err := executeCommand(t, "d 1\n", "--owner", "Alice", "--log-level", "debug")
	require.NoError(t, err)

	assert.Contains(t, stderr, "Starting ledger session")
	assert.Contains(t, stderr, "operation applied")
	assert.NotContains(t, stdout, "Starting ledger session")
}

func TestRootCmd_ConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "ledger.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("account:\n  owner: Dana\n  initial_balance: \"12.34\"\nlog:\n  level: error\n"), 0644))

	stdout, _, err := executeCommand(t, "b\n", "--config", cfgPath)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Ledger account for Dana.")
	assert.Contains(t, stdout, "Balance: 12.34")
}

func TestRootCmd_RejectsPositionalArgs(t *testing.T) {
	_, _, err := executeCommand(t, "", "extra")
	require.Error(t, err)
}

func TestOpeningBalance(t *testing.T) {
	var warn bytes.Buffer
	log := logger.NewWithWriter("error", &warn)

	assert.Equal(t, "0.00", openingBalance("", &warn, log).String())
	assert.Equal(t, "0.00", openingBalance("   ", &warn, log).String())
	assert.Empty(t, warn.String())

	assert.Equal(t, "100.00", openingBalance("100", &warn, log).String())
	assert.Equal(t, "0.00", openingBalance("1,000", &warn, log).String())
	assert.Contains(t, warn.String(), `"1,000"`)
}

func TestOpeningBalance_NegativeIsLoggedAsInvalidAmount(t *testing.T) {
	var warn, logs bytes.Buffer
	log := logger.NewWithWriter("warn", &logs)

	assert.Equal(t, "0.00", openingBalance("-5", &warn, log).String())
	assert.Contains(t, warn.String(), `invalid initial balance "-5"`)
	assert.Contains(t, logs.String(), "[ACC_001] Initial balance cannot be negative")
	assert.Contains(t, logs.String(), `"level":"warn"`)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(wd)) })
}

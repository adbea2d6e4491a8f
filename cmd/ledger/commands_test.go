package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
)

const accountsData = `C1,current,100,50
S1,saving,200,0.02,50
F1,deposit,1000,0.05,12,0.1,2024-01-01
B1,brokerage,10
`

const transfersData = `S1,160,C1
C1,500,S1
C1,10,F1
C1,ten,S1
`

func setupFiles(t *testing.T) (configDir, accounts, transfers string) {
	t.Helper()

	for _, key := range []string{"SERVER_ADDRESS", "GO_ENV", "SAVINGS_PENALTY_MODE", "REPORT_FORMAT", "NO_COLOR"} {
		t.Setenv(key, "")
	}

	dir := t.TempDir()
	accounts = filepath.Join(dir, "accounts.txt")
	transfers = filepath.Join(dir, "transactions.txt")

	require.NoError(t, os.WriteFile(accounts, []byte(accountsData), 0o600))
	require.NoError(t, os.WriteFile(transfers, []byte(transfersData), 0o600))

	return dir, accounts, transfers
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer

	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err = root.Execute()

	return out.String(), errOut.String(), err
}

func TestRunText(t *testing.T) {
	configDir, accounts, transfers := setupFiles(t)

	stdout, stderr, err := execute(t, "run", accounts, transfers, "--config", configDir, "--no-color")
	require.NoError(t, err)

	for _, want := range []string{
		"Transfer C1 -> S1 (500.00) rejected: insufficient funds",
		"Transfer C1 -> F1 (10.00) debited but not credited: unsupported operation",
		"****************** Summary for Account C1 ******************",
		"Balance: $250.00",
		"****************** Summary for Account S1 ******************",
		"Balance: $-120.50",
		"Savings Account-Medium Risk: Balance is below minimum.",
		"****************** Summary for Account F1 ******************",
		"Balance: $1000.00",
	} {
		require.Contains(t, stdout, want)
	}

	require.NotContains(t, stdout, "B1")
	require.Contains(t, stderr, "account skipped")
	require.Contains(t, stderr, "line skipped")
}

func TestRunJSONCorrectedPenalty(t *testing.T) {
	configDir, accounts, transfers := setupFiles(t)
	t.Setenv("SAVINGS_PENALTY_MODE", "corrected")

	stdout, stderr, err := execute(t, "run", accounts, transfers, "--config", configDir, "--format", "json")
	require.NoError(t, err)
	require.Contains(t, stderr, "rejected: insufficient funds")

	var reports []domain.AccountReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &reports))
	require.Len(t, reports, 3)

	require.Equal(t, "S1", reports[1].ID)
	require.InDelta(t, 39.5, reports[1].Balance, 1e-9)
	require.Len(t, reports[0].Transactions, 2)
}

func TestRunErrors(t *testing.T) {
	configDir, accounts, transfers := setupFiles(t)

	testCases := []struct {
		name    string
		args    []string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "MissingArgs",
			args:    []string{"run", accounts},
			wantErr: "accepts 2 arg(s), received 1",
		},
		{
			name:    "UnknownFormat",
			args:    []string{"run", accounts, transfers, "--format", "xml"},
			wantErr: `unknown report format "xml"`,
		},
		{
			name:    "MissingAccountsFile",
			args:    []string{"run", filepath.Join(configDir, "nope.txt"), transfers},
			wantErr: "read accounts",
		},
		{
			name:    "UnknownPenaltyMode",
			args:    []string{"run", accounts, transfers},
			env:     map[string]string{"SAVINGS_PENALTY_MODE": "harsh"},
			wantErr: "penalty mode",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, _, err := execute(t, append(tc.args, "--config", configDir)...)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestNewServer(t *testing.T) {
	_, accounts, _ := setupFiles(t)

	server, err := newServer(context.Background(), zerolog.Nop(), configpkg.Config{}, accounts)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/accounts", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var res struct {
		Data struct {
			Accounts []domain.AccountReport `json:"accounts"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
	require.Len(t, res.Data.Accounts, 3)

	_, err = newServer(context.Background(), zerolog.Nop(), configpkg.Config{}, filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

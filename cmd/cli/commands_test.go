package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"portfolioanalyzer/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

const vtiBndCsv = `symbol,name,asset_type,asset_category,allocation_percentage,dollar_amount,risk_rating
VTI,Vanguard Total Stock Market,etf,us_large_cap,60,60000,5
BND,Vanguard Total Bond Market,etf,government_bonds,40,40000,2
`

func runCommand(t *testing.T, args ...string) (string, error) {
	root := newRootCommand()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestScenariosCommand(t *testing.T) {
	out, err := runCommand(t, "scenarios")
	require.NoError(t, err)

	scenarios := []domain.Scenario{}
	require.NoError(t, json.Unmarshal([]byte(out), &scenarios))
	require.Len(t, scenarios, 4)
}

func TestValidateCommand(t *testing.T) {
	t.Run("clean file", func(t *testing.T) {
		out, err := runCommand(t, "validate", writeFile(t, "p.csv", vtiBndCsv))
		require.NoError(t, err)

		result := validateOutput{}
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		require.NotNil(t, result.RiskProfile)
		require.False(t, result.Findings.HasBlocking())
	})

	t.Run("blocking findings fail the command", func(t *testing.T) {
		path := writeFile(t, "p.csv", vtiBndCsv+"VTI,duplicate,etf,us_large_cap,0,0,5\n")
		out, err := runCommand(t, "validate", path)
		require.ErrorIs(t, err, errBlockingFindings)

		result := validateOutput{}
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		require.NotEmpty(t, result.Findings.OfKind(domain.FindingKind_DuplicateSymbol))
		require.Nil(t, result.RiskProfile)
	})

	t.Run("bad cells do not hide other findings", func(t *testing.T) {
		path := writeFile(t, "p.csv", "symbol,name,asset_type,asset_category,allocation_percentage,dollar_amount,risk_rating\n"+
			"VTI,Vanguard Total Stock Market,etf,us_large_cap,50,50000,abc\n"+
			"BND,Vanguard Total Bond Market,etf,government_bonds,20,20000,2\n"+
			"bnd,Vanguard Total Bond Market,etf,government_bonds,20,20000,2\n")
		out, err := runCommand(t, "validate", path)
		require.ErrorIs(t, err, errBlockingFindings)

		result := validateOutput{}
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		require.Len(t, result.Findings.OfKind(domain.FindingKind_OutOfRangeField), 1)
		require.Len(t, result.Findings.OfKind(domain.FindingKind_DuplicateSymbol), 1)
		require.Len(t, result.Findings.OfKind(domain.FindingKind_InvalidAllocationSum), 1)
		require.Nil(t, result.RiskProfile)
	})

	t.Run("unsupported currency flag", func(t *testing.T) {
		_, err := runCommand(t, "validate", "--currency", "zzz", writeFile(t, "p.csv", vtiBndCsv))
		require.ErrorIs(t, err, errBlockingFindings)
	})
}

func TestAnalyzeCommand(t *testing.T) {
	path := writeFile(t, "p.csv", vtiBndCsv)

	t.Run("single scenario", func(t *testing.T) {
		out, err := runCommand(t, "analyze", path, "--scenario", "recession")
		require.NoError(t, err)

		results := []domain.ScenarioAnalysisResult{}
		require.NoError(t, json.Unmarshal([]byte(out), &results))
		require.Len(t, results, 1)
		require.Equal(t, -11.0, results[0].TotalImpactPercentage)
		require.Equal(t, "p", results[0].PortfolioID)
	})

	t.Run("every scenario", func(t *testing.T) {
		out, err := runCommand(t, "analyze", path)
		require.NoError(t, err)

		results := []domain.ScenarioAnalysisResult{}
		require.NoError(t, json.Unmarshal([]byte(out), &results))
		require.Len(t, results, 4)
	})

	t.Run("text summary", func(t *testing.T) {
		out, err := runCommand(t, "analyze", path, "--scenario", "recession", "--text")
		require.NoError(t, err)
		require.Contains(t, out, "-$11,000.00")
	})

	t.Run("unknown scenario", func(t *testing.T) {
		_, err := runCommand(t, "analyze", path, "--scenario", "stagflation")
		require.ErrorContains(t, err, "unknown scenario")
	})
}

package main

import (
	"saucedemo-e2e/models"
	"saucedemo-e2e/scraper/saucedemo"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCasesFromFlagsDefault(t *testing.T) {
	cases, err := casesFromFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, saucedemo.DefaultCases(), cases)
}

func TestCasesFromFlags(t *testing.T) {
	cases, err := casesFromFlags([]string{"hilo", "name-asc"})
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, models.SortPriceDesc, cases[0].Mode)
	assert.Equal(t, models.SortNameAsc, cases[1].Mode)
	assert.Equal(t, "items sorted name-asc", cases[1].Name)
}

func TestCasesFromFlagsDedupes(t *testing.T) {
	cases, err := casesFromFlags([]string{"za", "hilo", "za", "name-desc"})
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, models.SortNameDesc, cases[0].Mode)
	assert.Equal(t, models.SortPriceDesc, cases[1].Mode)
}

func TestCasesFromFlagsUnknown(t *testing.T) {
	_, err := casesFromFlags([]string{"newest"})
	assert.ErrorIs(t, err, models.ErrUnknownSortMode)
}

func TestCheckCommand(t *testing.T) {
	rootCmd.SetArgs([]string{"check", "--file", "verify/testdata/inventory_hilo.html", "--mode", "hilo"})
	require.NoError(t, rootCmd.Execute())

	rootCmd.SetArgs([]string{"check", "--file", "verify/testdata/inventory_az.html", "--mode", "za"})
	assert.ErrorIs(t, rootCmd.Execute(), errCasesFailed)
}

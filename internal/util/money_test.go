package util

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	t.Run("usd", func(t *testing.T) {
		require.Equal(t, "$60,000.00", FormatMoney(decimal.NewFromInt(60000), "USD"))
	})

	t.Run("negative cents", func(t *testing.T) {
		require.Equal(t, "-$1,234.57", FormatMoney(decimal.RequireFromString("-1234.567"), "usd"))
	})

	t.Run("unknown currency falls back to usd", func(t *testing.T) {
		require.Equal(t, "$1.00", FormatMoney(decimal.NewFromInt(1), "ZZZ"))
	})
}

func TestIsSupportedCurrency(t *testing.T) {
	require.True(t, IsSupportedCurrency("USD"))
	require.True(t, IsSupportedCurrency("eur"))
	require.False(t, IsSupportedCurrency("ZZZ"))
	require.False(t, IsSupportedCurrency(""))
}

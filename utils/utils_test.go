package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetPrivateKeyFromSeed(t *testing.T) {
	Seedphrase = "pilot slab bonus retreat help slight sword mind mixture mutual indoor rifle"

	t.Run("deterministic per account index", func(t *testing.T) {
		first := GetPrivateKeyFromSeed(42)
		second := GetPrivateKeyFromSeed(42)
		require.Equal(t, first, second)
	})

	t.Run("distinct indexes derive distinct wallets", func(t *testing.T) {
		a := GetAddressFromPrivateKey(GetPrivateKeyFromSeed(1))
		b := GetAddressFromPrivateKey(GetPrivateKeyFromSeed(2))
		require.NotEqual(t, a, b)
	})

	t.Run("derived key signs", func(t *testing.T) {
		pk := GetPrivateKeyFromSeed(7)
		require.Len(t, []byte(pk), 64)
		require.NotEmpty(t, pk.PublicKey().String())
	})
}

func TestNicePrice(t *testing.T) {
	require.Equal(t, "1,234,567", NicePrice(1234567, 0))
	require.Equal(t, "1,000.50", NicePrice(1000.5, 2))
	require.Equal(t, "1.5", NicePrice(1.5, -1))
	require.Equal(t, "2", NicePrice(2, -1))
}

func TestSolString(t *testing.T) {
	require.Equal(t, "1.5", SolString(1_500_000_000))
	require.Equal(t, "0.001", SolString(1_000_000))
}

func TestShortenAddress(t *testing.T) {
	require.Equal(t, "So111111...111112", ShortenAddress("So11111111111111111111111111111111111111112"))
	require.Equal(t, "", ShortenAddress("short"))
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package units

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic(s)
	}
	return v
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		in       *big.Int
		decimals uint8
		want     string
	}{
		{nil, 18, "0.0"},
		{big.NewInt(0), 18, "0.0"},
		{mustBig("1000000000000000000"), 18, "1.0"},
		{mustBig("1000000000000000000000"), 18, "1000.0"},
		{mustBig("1500000000000000000"), 18, "1.5"},
		{big.NewInt(1), 18, "0.000000000000000001"},
		{big.NewInt(-25), 1, "-2.5"},
		{big.NewInt(42), 0, "42.0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUnits(tt.in, tt.decimals))
	}
}

func TestParseUnits(t *testing.T) {
	v, err := ParseEther("1000")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000000", v.String())

	v, err = ParseEther("0.25")
	require.NoError(t, err)
	assert.Equal(t, "250000000000000000", v.String())

	v, err = ParseUnits(".5", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(50), v.Int64())

	v, err = ParseUnits("1.500", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(15), v.Int64())

	for _, bad := range []string{"", "  ", ".", " . ", "abc", "1.2.3", "-1", "1e18", "+1", "1 000"} {
		_, err := ParseEther(bad)
		assert.Error(t, err, bad)
	}

	_, err = ParseUnits("1.25", 1)
	assert.ErrorIs(t, err, errTooPrecise)

	_, err = ParseUnits("1"+strings.Repeat("0", 80), 0)
	assert.ErrorIs(t, err, errOverflow)
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, s := range []string{"0.0", "1.0", "123.456", "0.000000000000000001"} {
		v, err := ParseEther(s)
		require.NoError(t, err)
		assert.Equal(t, s, FormatEther(v))
	}
}

func TestShortAddress(t *testing.T) {
	addr := common.HexToAddress("0x2c1D0ae11C69Bfe1689266A31fF05F835B9D0250")
	assert.True(t, strings.EqualFold("0x2c1d...0250", ShortAddress(addr)), ShortAddress(addr))
	assert.Len(t, ShortAddress(common.Address{}), 13)
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package units converts between integer token amounts and their decimal
// string form.
package units

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// EtherDecimals is the number of decimals of ether and of the GROOVE token.
const EtherDecimals = 18

var (
	errEmptyAmount   = errors.New("empty amount")
	errInvalidAmount = errors.New("invalid amount")
	errTooPrecise    = errors.New("too many decimal places")
	errOverflow      = errors.New("amount overflows uint256")
)

// FormatUnits renders v with the given number of decimals. Trailing zeros of
// the fraction are trimmed but at least one fractional digit is kept, so
// 1e18 with 18 decimals renders as "1.0".
func FormatUnits(v *big.Int, decimals uint8) string {
	if v == nil {
		v = new(big.Int)
	}
	neg := v.Sign() < 0
	digits := new(big.Int).Abs(v).String()

	d := int(decimals)
	if len(digits) <= d {
		digits = strings.Repeat("0", d-len(digits)+1) + digits
	}
	whole, frac := digits[:len(digits)-d], strings.TrimRight(digits[len(digits)-d:], "0")
	if frac == "" {
		frac = "0"
	}

	s := whole + "." + frac
	if neg {
		s = "-" + s
	}
	return s
}

// ParseUnits parses a decimal string into an integer amount with the given
// number of decimals. Negative amounts and values not fitting 256 bits are rejected.
func ParseUnits(s string, decimals uint8) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errEmptyAmount
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		// "." alone carries no digits
		return nil, errors.WithMessagef(errInvalidAmount, "%q", s)
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || !isDigits(frac) {
		return nil, errors.WithMessagef(errInvalidAmount, "%q", s)
	}
	frac = strings.TrimRight(frac, "0")
	if len(frac) > int(decimals) {
		return nil, errors.WithMessagef(errTooPrecise, "%q has more than %d", s, decimals)
	}
	frac += strings.Repeat("0", int(decimals)-len(frac))

	v, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, errors.WithMessagef(errInvalidAmount, "%q", s)
	}
	if _, overflow := uint256.FromBig(v); overflow {
		return nil, errOverflow
	}
	return v, nil
}

// FormatEther renders a wei amount with 18 decimals.
func FormatEther(v *big.Int) string {
	return FormatUnits(v, EtherDecimals)
}

// ParseEther parses an amount expressed in whole tokens into wei.
func ParseEther(s string) (*big.Int, error) {
	return ParseUnits(s, EtherDecimals)
}

// ShortAddress abbreviates an address to its first 6 and last 4 characters,
// e.g. 0x2c1D...0250.
func ShortAddress(addr common.Address) string {
	hex := addr.Hex()
	return hex[:6] + "..." + hex[len(hex)-4:]
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

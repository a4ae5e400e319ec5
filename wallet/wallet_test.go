// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package wallet

import (
	"context"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundsage/soundsage/network"
)

const devKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

var devAddress = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

func TestFromHex(t *testing.T) {
	w, err := FromHex(devKey)
	require.NoError(t, err)
	assert.Equal(t, devAddress, w.Address())

	w, err = FromHex("0x" + devKey + "\n")
	require.NoError(t, err)
	assert.Equal(t, devAddress, w.Address())

	_, err = FromHex("nope")
	assert.Error(t, err)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	other, err := crypto.GenerateKey()
	require.NoError(t, err)
	keyFile := filepath.Join(dir, "key")
	require.NoError(t, crypto.SaveECDSA(keyFile, other))

	w, err := Load(Source{PrivateKey: devKey, KeyFile: keyFile})
	require.NoError(t, err)
	assert.Equal(t, devAddress, w.Address())

	w, err = Load(Source{KeyFile: keyFile})
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(other.PublicKey), w.Address())

	t.Setenv(PrivateKeyEnv, devKey)
	w, err = Load(Source{})
	require.NoError(t, err)
	assert.Equal(t, devAddress, w.Address())

	t.Setenv(PrivateKeyEnv, "")
	_, err = Load(Source{})
	assert.ErrorIs(t, err, ErrNoKey)
}

func writeKeystore(t *testing.T, password string) (string, common.Address) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	k := &keystore.Key{
		Address:    crypto.PubkeyToAddress(key.PublicKey),
		PrivateKey: key,
	}
	data, err := keystore.EncryptKey(k, password, keystore.LightScryptN, keystore.LightScryptP)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "keystore.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path, k.Address
}

func TestLoadKeystore(t *testing.T) {
	path, addr := writeKeystore(t, "groove")

	pwFile := filepath.Join(t.TempDir(), "pw")
	require.NoError(t, os.WriteFile(pwFile, []byte("groove\n"), 0o600))
	w, err := Load(Source{Keystore: path, PasswordFile: pwFile})
	require.NoError(t, err)
	assert.Equal(t, addr, w.Address())

	var prompted string
	w, err = Load(Source{Keystore: path, Prompt: func(msg string) (string, error) {
		prompted = msg
		return "groove", nil
	}})
	require.NoError(t, err)
	assert.Equal(t, addr, w.Address())
	assert.Contains(t, prompted, path)

	_, err = Load(Source{Keystore: path, Prompt: func(string) (string, error) { return "wrong", nil }})
	assert.Error(t, err)
}

func TestTransactOpts(t *testing.T) {
	w, err := FromHex(devKey)
	require.NoError(t, err)
	ctx := context.Background()
	opts, err := w.TransactOpts(ctx, big.NewInt(31337))
	require.NoError(t, err)
	assert.Equal(t, devAddress, opts.From)
	assert.Equal(t, ctx, opts.Context)
}

type fixedChain int64

func (c fixedChain) ChainID(context.Context) (*big.Int, error) {
	return big.NewInt(int64(c)), nil
}

func TestEnsureChain(t *testing.T) {
	net := network.Sepolia()
	assert.NoError(t, EnsureChain(context.Background(), fixedChain(11155111), net))

	err := EnsureChain(context.Background(), fixedChain(1), net)
	require.ErrorIs(t, err, ErrChainMismatch)
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, int64(1), mismatch.Got.Int64())
	assert.Contains(t, err.Error(), "0xaa36a7")
}

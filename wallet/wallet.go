// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package wallet holds the signing key of the connected account.
package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mattn/go-tty"
	"github.com/pkg/errors"

	"github.com/soundsage/soundsage/log"
)

// PrivateKeyEnv is the environment variable consulted for a hex private key.
const PrivateKeyEnv = "SOUNDSAGE_PRIVATE_KEY"

var logger = log.WithContext("pkg", "wallet")

// ErrNoKey is returned when no key source was configured.
var ErrNoKey = errors.New("no wallet configured")

// Wallet is a connected account able to sign transactions.
type Wallet struct {
	address common.Address
	key     *ecdsa.PrivateKey
}

// New wraps an already loaded key.
func New(key *ecdsa.PrivateKey) *Wallet {
	return &Wallet{
		address: crypto.PubkeyToAddress(key.PublicKey),
		key:     key,
	}
}

// FromHex parses a hex encoded private key, with or without 0x prefix.
func FromHex(s string) (*Wallet, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "parse private key")
	}
	return New(key), nil
}

// FromKeyFile loads a hex private key file.
func FromKeyFile(path string) (*Wallet, error) {
	key, err := crypto.LoadECDSA(path)
	if err != nil {
		return nil, errors.Wrap(err, "load key file")
	}
	return New(key), nil
}

// FromKeystore decrypts an encrypted keystore JSON file.
func FromKeystore(path, password string) (*Wallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read keystore")
	}
	key, err := keystore.DecryptKey(data, password)
	if err != nil {
		return nil, errors.Wrap(err, "decrypt keystore")
	}
	return New(key.PrivateKey), nil
}

// Address returns the account address.
func (w *Wallet) Address() common.Address {
	return w.address
}

// TransactOpts returns signing options bound to ctx for the given chain.
func (w *Wallet) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(w.key, chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

// Source describes where to load the key from. The first non-empty field wins,
// in the order PrivateKey, KeyFile, Keystore, then the PrivateKeyEnv variable.
type Source struct {
	PrivateKey   string
	KeyFile      string
	Keystore     string
	PasswordFile string
	// Prompt reads the keystore password when no PasswordFile is given.
	Prompt func(msg string) (string, error)
}

// Load resolves the key source. It returns ErrNoKey if nothing was configured.
func Load(src Source) (*Wallet, error) {
	switch {
	case src.PrivateKey != "":
		return FromHex(src.PrivateKey)
	case src.KeyFile != "":
		return FromKeyFile(src.KeyFile)
	case src.Keystore != "":
		password, err := src.password()
		if err != nil {
			return nil, err
		}
		return FromKeystore(src.Keystore, password)
	}
	if hex := os.Getenv(PrivateKeyEnv); hex != "" {
		logger.Debug("using private key from environment", "env", PrivateKeyEnv)
		return FromHex(hex)
	}
	return nil, ErrNoKey
}

func (src Source) password() (string, error) {
	if src.PasswordFile != "" {
		data, err := os.ReadFile(src.PasswordFile)
		if err != nil {
			return "", errors.Wrap(err, "read password file")
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	prompt := src.Prompt
	if prompt == nil {
		prompt = ReadPasswordFromTTY
	}
	return prompt(fmt.Sprintf("Password for %s: ", src.Keystore))
}

// ReadPasswordFromTTY prompts on the controlling terminal and reads a password
// without echoing it.
func ReadPasswordFromTTY(msg string) (string, error) {
	t, err := tty.Open()
	if err != nil {
		return "", errors.Wrap(err, "open tty")
	}
	defer t.Close()
	fmt.Fprint(t.Output(), msg)
	pass, err := t.ReadPasswordNoEcho()
	if err != nil {
		return "", errors.Wrap(err, "read password")
	}
	return pass, nil
}

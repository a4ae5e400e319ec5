// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/ecdsa"
	"crypto/rand"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// DevAccount is a well known key pair, the same ones a local hardhat node funds.
type DevAccount struct {
	Address    common.Address
	PrivateKey *ecdsa.PrivateKey
}

var devKeys = []string{
	"ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
	"59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d",
	"5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a",
	"7c852118294e51e653712a81e05800f419141751be58f605c371e15141b007a6",
}

// DevAccounts returns the dev key pairs.
func DevAccounts() []DevAccount {
	accounts := make([]DevAccount, 0, len(devKeys))
	for _, hex := range devKeys {
		key, err := crypto.HexToECDSA(hex)
		if err != nil {
			panic(err)
		}
		accounts = append(accounts, DevAccount{
			Address:    crypto.PubkeyToAddress(key.PublicKey),
			PrivateKey: key,
		})
	}
	return accounts
}

func RandAddress() (addr common.Address) {
	rand.Read(addr[:])
	return
}

func RandHash() (h common.Hash) {
	rand.Read(h[:])
	return
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package contracts

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// Artifact is a compiled contract as emitted by hardhat (artifacts/**/<Name>.json).
type Artifact struct {
	ContractName string
	ABI          abi.ABI
	Bytecode     []byte
}

type artifactJSON struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

// LoadArtifact reads a hardhat artifact file.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read artifact")
	}
	return ParseArtifact(data)
}

// ParseArtifact decodes a hardhat artifact. Artifacts of abstract contracts or
// interfaces carry no creation bytecode and are rejected.
func ParseArtifact(data []byte) (*Artifact, error) {
	var raw artifactJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "decode artifact")
	}
	if len(raw.ABI) == 0 {
		return nil, errors.New("artifact: missing abi")
	}
	parsed, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, errors.Wrap(err, "artifact: abi")
	}
	code, err := hexutil.Decode(raw.Bytecode)
	if err != nil {
		return nil, errors.Wrap(err, "artifact: bytecode")
	}
	if len(code) == 0 {
		return nil, errors.Errorf("artifact %s: empty bytecode", raw.ContractName)
	}
	return &Artifact{
		ContractName: raw.ContractName,
		ABI:          parsed,
		Bytecode:     code,
	}, nil
}

// Implements reports an error unless the artifact exposes every method and
// event of the expected ABI, so a wrong artifact is caught before deploying it.
func (a *Artifact) Implements(expected *contract) error {
	for name, m := range expected.ABI.Methods {
		got, ok := a.ABI.Methods[name]
		if !ok || got.Sig != m.Sig {
			return errors.Errorf("artifact %s: missing method %s", a.ContractName, m.Sig)
		}
	}
	for name, e := range expected.ABI.Events {
		got, ok := a.ABI.Events[name]
		if !ok || got.ID != e.ID {
			return errors.Errorf("artifact %s: missing event %s", a.ContractName, e.Sig)
		}
	}
	return nil
}

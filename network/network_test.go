// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package network

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSepolia(t *testing.T) {
	n := Sepolia()
	assert.Equal(t, "0xaa36a7", n.HexChainID())
	assert.Equal(t, int64(11155111), n.ChainIDBig().Int64())
	require.NotNil(t, n.GrooveToken)
	require.NotNil(t, n.PlaylistDAO)
	assert.Equal(t, sepoliaToken, *n.GrooveToken)
	assert.NoError(t, n.Validate())

	hash := common.HexToHash("0x01")
	assert.Equal(t, "https://sepolia.etherscan.io/tx/"+hash.Hex(), n.TxURL(hash))
	assert.Empty(t, Localhost().TxURL(hash))
}

func TestSelect(t *testing.T) {
	n, err := Select("")
	require.NoError(t, err)
	assert.Equal(t, "sepolia", n.Name)

	n, err = Select("LocalHost")
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), n.ChainID)

	_, err = Select("nowhere")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "localhost|sepolia")
}

func TestLoadOverlaysPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "net.yaml")
	content := `name: localhost
grooveToken: "0x00000000000000000000000000000000000000aa"
playlistDao: "0x00000000000000000000000000000000000000bb"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	n, err := Select(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(31337), n.ChainID)
	assert.Equal(t, "http://127.0.0.1:8545", n.RPCURL)
	require.NotNil(t, n.GrooveToken)
	assert.Equal(t, common.HexToAddress("0xaa"), *n.GrooveToken)
	assert.Equal(t, common.HexToAddress("0xbb"), *n.PlaylistDAO)
}

func TestParseValidation(t *testing.T) {
	_, err := Parse([]byte("name: custom\nchainId: 5\n"))
	assert.EqualError(t, err, "network: rpcUrl is required")

	_, err = Parse([]byte("chainId: 5\nrpcUrl: http://x\n"))
	assert.EqualError(t, err, "network: name is required")

	n, err := Parse([]byte("name: custom\nchainId: 5\nrpcUrl: http://x\n"))
	require.NoError(t, err)
	assert.Equal(t, "0x5", n.HexChainID())
	assert.Nil(t, n.GrooveToken)
}

func TestMarshalRoundTrip(t *testing.T) {
	n := Localhost().WithContracts(common.HexToAddress("0x01"), common.HexToAddress("0x02"))
	data, err := n.Marshal()
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, n, back)
}

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	require.Equal(t, config{Timeout: defaultTimeout}, cfg)

	p := writeFile(t, "config.yml", `
rpc_endpoint: https://rpc.example.org:30333
timeout: 5s
contract: 0x1234567890abcdef1234567890abcdef12345678
wallet: /etc/respect/wallet.json
account: NfgHwwTi3wHAS8aFAN243C5vGbkYDpqLHP
`)
	cfg, err = loadConfig(p)
	require.NoError(t, err)
	require.Equal(t, config{
		RPCEndpoint: "https://rpc.example.org:30333",
		Timeout:     5 * time.Second,
		Contract:    "0x1234567890abcdef1234567890abcdef12345678",
		Wallet:      "/etc/respect/wallet.json",
		Account:     "NfgHwwTi3wHAS8aFAN243C5vGbkYDpqLHP",
	}, cfg)

	t.Run("invalid", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"))
		require.Error(t, err)

		_, err = loadConfig(writeFile(t, "bad.yml", "rpc_endpoint: [1, 2"))
		require.Error(t, err)

		_, err = loadConfig(writeFile(t, "zero.yml", "timeout: 0s"))
		require.Error(t, err)
	})
}

func TestFlagsOverrideConfig(t *testing.T) {
	cfg, err := loadConfig(writeFile(t, "config.yml", "rpc_endpoint: http://file:30333\nwallet: file.json\n"))
	require.NoError(t, err)

	root := newRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--rpc", "http://flag:30333", "--timeout", "3s"}))
	require.NoError(t, cfg.applyFlags(root))

	require.Equal(t, "http://flag:30333", cfg.RPCEndpoint)
	require.Equal(t, "file.json", cfg.Wallet)
	require.Equal(t, 3*time.Second, cfg.Timeout)

	root = newRootCmd()
	require.NoError(t, root.ParseFlags([]string{"--timeout", "0s"}))
	require.Error(t, cfg.applyFlags(root))
}

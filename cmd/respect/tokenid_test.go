package main

import (
	"bytes"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/respect-contract/tokenid"
	"github.com/stretchr/testify/require"
)

func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTokenIDCommands(t *testing.T) {
	owner := util.Uint160{0xde, 0xad, 0xbe, 0xef}
	id := tokenid.Pack(tokenid.Data{Kind: tokenid.KindDirect, Period: 42, Owner: owner})

	out, err := execRoot(t, "tokenid", "pack", "--kind", "1", "--period", "42", "--owner", address.Uint160ToString(owner))
	require.NoError(t, err)
	require.Contains(t, out, "ID:      "+id.String()+"\n")
	require.Contains(t, out, "Hex:     "+id.Hex()+"\n")
	require.Contains(t, out, "Kind:    1 (direct)\n")
	require.Contains(t, out, "Period:  42\n")
	require.Contains(t, out, address.Uint160ToString(owner))

	for _, s := range []string{id.String(), id.Hex(), "0x" + id.Hex()} {
		unpacked, err := execRoot(t, "tokenid", "unpack", s)
		require.NoError(t, err, s)
		require.Equal(t, out, unpacked, s)
	}

	_, err = execRoot(t, "tokenid", "unpack", "0x0102")
	require.Error(t, err)

	_, err = execRoot(t, "tokenid", "pack", "--owner", "bad")
	require.ErrorIs(t, err, tokenid.ErrInvalidOwner)
}

func TestParseTokenID(t *testing.T) {
	id := tokenid.Pack(tokenid.Data{Kind: tokenid.KindRanks, Period: 1, Owner: util.Uint160{1}})

	for _, s := range []string{id.String(), " " + id.String() + "\n", id.Hex(), "0x" + id.Hex()} {
		got, err := parseTokenID(s)
		require.NoError(t, err, s)
		require.Equal(t, id, got)
	}

	_, err := parseTokenID("")
	require.Error(t, err)
	_, err = parseTokenID("0xzz")
	require.Error(t, err)
}

package main

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/respect-contract/tokenid"
	"github.com/stretchr/testify/require"
)

func TestPrintStorageItem(t *testing.T) {
	owner := util.Uint160{1, 2, 3}
	addr := address.Uint160ToString(owner)
	id := tokenid.Pack(tokenid.Data{Kind: tokenid.KindRanks, Period: 3, Owner: owner})
	num := func(n int64) []byte { return bigint.ToBytes(big.NewInt(n)) }

	for _, tc := range []struct {
		key, value []byte
		exp        string
	}{
		{key: append([]byte{prefixToken}, id[:]...), value: num(55), exp: "token " + id.String() + " = 55\n"},
		{key: append(append([]byte{prefixAccountToken}, owner.BytesBE()...), id[:]...), value: id[:], exp: "owned " + addr + " " + id.String() + "\n"},
		{key: append([]byte{prefixBalance}, owner.BytesBE()...), value: num(89), exp: "balance " + addr + " = 89\n"},
		{key: []byte("owner"), value: owner.BytesBE(), exp: "owner = " + addr + "\n"},
		{key: []byte("name"), value: []byte("Respect"), exp: "name = \"Respect\"\n"},
		{key: []byte("periodNumber"), value: num(3), exp: "periodNumber = 3\n"},
		{key: []byte("lastRanksTime"), value: nil, exp: "lastRanksTime = 0\n"},
		{key: []byte("tokenSupply"), value: []byte{}, exp: "tokenSupply = 0\n"},
		{key: append([]byte{prefixBalance}, owner.BytesBE()...), value: nil, exp: "balance " + addr + " = 0\n"},
		{key: []byte("unknown"), value: []byte{0xca, 0xfe}, exp: "unknown = cafe\n"},
	} {
		var buf bytes.Buffer
		require.NoError(t, printStorageItem(&buf, tc.key, tc.value))
		require.Equal(t, tc.exp, buf.String())
	}

	var buf bytes.Buffer
	require.Error(t, printStorageItem(&buf, nil, nil))
	require.Error(t, printStorageItem(&buf, []byte{prefixToken, 1, 2}, nil))
	require.Error(t, printStorageItem(&buf, []byte{prefixAccountToken, 1}, nil))
	require.Error(t, printStorageItem(&buf, []byte{prefixBalance, 1}, nil))
}

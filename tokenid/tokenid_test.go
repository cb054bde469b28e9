package tokenid

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func randData(r *rand.Rand) Data {
	var d Data
	d.Kind = MintKind(r.Intn(256))
	d.Period = r.Uint64()
	r.Read(d.Owner[:])
	return d
}

func TestPackLayout(t *testing.T) {
	owner := util.Uint160{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	id := Pack(Data{Kind: KindDirect, Period: 0x0102030405060708, Owner: owner})

	require.Equal(t, byte(1), id[0])
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, id[1:9])
	require.Equal(t, owner.BytesBE(), id[9:])
}

func TestPackUnpack(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 1000; i++ {
		d := randData(r)
		require.Equal(t, d, Unpack(Pack(d)))
	}

	t.Run("bounds", func(t *testing.T) {
		for _, d := range []Data{
			{},
			{Kind: math.MaxUint8, Period: math.MaxUint64},
			{Kind: KindRanks, Period: 1, Owner: util.Uint160{0xff}},
		} {
			require.Equal(t, d, Unpack(Pack(d)))
		}
	})
}

func TestPackInjective(t *testing.T) {
	base := Data{Kind: KindRanks, Period: 7, Owner: util.Uint160{1}}
	variants := []Data{
		{Kind: KindDirect, Period: 7, Owner: util.Uint160{1}},
		{Kind: KindRanks, Period: 8, Owner: util.Uint160{1}},
		{Kind: KindRanks, Period: 7, Owner: util.Uint160{2}},
	}
	for _, v := range variants {
		require.NotEqual(t, Pack(base), Pack(v))
	}

	r := rand.New(rand.NewSource(7))
	seen := make(map[ID]Data)
	for i := 0; i < 1000; i++ {
		d := randData(r)
		id := Pack(d)
		if prev, ok := seen[id]; ok {
			require.Equal(t, prev, d)
		}
		seen[id] = d
	}
}

func TestBigIntOrder(t *testing.T) {
	low := Pack(Data{Kind: KindRanks, Period: math.MaxUint64, Owner: util.Uint160{0xff}})
	high := Pack(Data{Kind: KindDirect})
	require.Equal(t, -1, low.BigInt().Cmp(high.BigInt()))
	require.True(t, bytes.Equal(high.BigInt().FillBytes(make([]byte, Size)), high.Bytes()))
}

func TestTextForms(t *testing.T) {
	id := Pack(Data{Kind: KindDirect, Period: 3, Owner: util.Uint160{9, 8, 7}})

	got, err := DecodeString(id.String())
	require.NoError(t, err)
	require.Equal(t, id, got)

	got, err = DecodeHex(id.Hex())
	require.NoError(t, err)
	require.Equal(t, id, got)

	got, err = FromBytes(id.Bytes())
	require.NoError(t, err)
	require.Equal(t, id, got)

	t.Run("invalid", func(t *testing.T) {
		_, err := FromBytes(make([]byte, Size-1))
		require.ErrorIs(t, err, ErrInvalidLength)

		_, err = FromBytes(make([]byte, Size+1))
		require.ErrorIs(t, err, ErrInvalidLength)

		_, err = DecodeHex("abcd")
		require.ErrorIs(t, err, ErrInvalidLength)

		_, err = DecodeString("0OIl")
		require.Error(t, err)
	})
}

func TestNormalize(t *testing.T) {
	owner := util.Uint160{0xde, 0xad, 0xbe, 0xef}
	forms := []string{
		address.Uint160ToString(owner),
		"0x" + owner.StringBE(),
		"0X" + owner.StringBE(),
		owner.StringLE(),
		"  " + owner.StringLE() + "\n",
	}

	for _, f := range forms {
		d, err := Normalize(Record{Kind: KindRanks, Period: 2, Owner: f})
		require.NoError(t, err, f)
		require.Equal(t, Data{Kind: KindRanks, Period: 2, Owner: owner}, d)
		require.True(t, Equal(Record{Kind: KindRanks, Period: 2, Owner: forms[0]}, Record{Kind: KindRanks, Period: 2, Owner: f}))
	}

	require.False(t, Equal(Record{Period: 1, Owner: forms[0]}, Record{Period: 2, Owner: forms[0]}))
	require.False(t, Equal(Record{Owner: "bad"}, Record{Owner: "bad"}))

	_, err := Normalize(Record{Owner: "not an address"})
	require.ErrorIs(t, err, ErrInvalidOwner)

	d := Data{Kind: KindDirect, Period: 5, Owner: owner}
	back, err := Normalize(d.Record())
	require.NoError(t, err)
	require.Equal(t, d, back)
}

func TestMintKindString(t *testing.T) {
	require.Equal(t, "ranks", KindRanks.String())
	require.Equal(t, "direct", KindDirect.String())
	require.Equal(t, "kind(7)", MintKind(7).String())
}

/*
Package tokenid provides off-chain encoding of Respect token identifiers.

Identifier is a fixed-width big-endian value made of three fields: mint kind
(1 byte), period (8 bytes) and owner script hash (20 bytes, big-endian as
returned by util.Uint160.BytesBE). Packing is total and injective, unpacking
never fails for a value of the right width.
*/
package tokenid

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/respect-contract/contracts/respect/respectconst"
)

// Size is the length of the identifier in bytes.
const Size = respectconst.TokenIDLen

// ErrInvalidLength is returned when the decoded identifier has a wrong width.
var ErrInvalidLength = errors.New("invalid token id length")

// MintKind distinguishes the ways a token can be issued.
type MintKind uint8

const (
	// KindRanks is a token minted by a rank submission.
	KindRanks MintKind = respectconst.MintKindRanks
	// KindDirect is a token minted directly by the owner.
	KindDirect MintKind = respectconst.MintKindDirect
)

// String implements fmt.Stringer.
func (k MintKind) String() string {
	switch k {
	case KindRanks:
		return "ranks"
	case KindDirect:
		return "direct"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Data is an unpacked identifier.
type Data struct {
	Kind   MintKind
	Period uint64
	Owner  util.Uint160
}

// ID is a packed identifier.
type ID [Size]byte

// Pack encodes d into an identifier.
func Pack(d Data) ID {
	var id ID
	id[0] = byte(d.Kind)
	binary.BigEndian.PutUint64(id[respectconst.PeriodOffset:respectconst.OwnerOffset], d.Period)
	copy(id[respectconst.OwnerOffset:], d.Owner.BytesBE())
	return id
}

// Unpack decodes all fields of the identifier.
func Unpack(id ID) Data {
	owner, _ := util.Uint160DecodeBytesBE(id[respectconst.OwnerOffset:]) // width is fixed by the type
	return Data{
		Kind:   MintKind(id[0]),
		Period: binary.BigEndian.Uint64(id[respectconst.PeriodOffset:respectconst.OwnerOffset]),
		Owner:  owner,
	}
}

// FromBytes converts a raw identifier as returned by the contract.
func FromBytes(b []byte) (ID, error) {
	var id ID
	if len(b) != Size {
		return id, fmt.Errorf("%w: %d", ErrInvalidLength, len(b))
	}
	copy(id[:], b)
	return id, nil
}

// DecodeString parses the base58 text form of the identifier.
func DecodeString(s string) (ID, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return ID{}, fmt.Errorf("decode base58: %w", err)
	}
	return FromBytes(b)
}

// DecodeHex parses the hex text form of the identifier.
func DecodeHex(s string) (ID, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return ID{}, fmt.Errorf("decode hex: %w", err)
	}
	return FromBytes(b)
}

// Bytes returns a copy of the raw identifier.
func (id ID) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, id[:])
	return b
}

// BigInt returns the identifier as an unsigned integer.
func (id ID) BigInt() *big.Int {
	return new(big.Int).SetBytes(id[:])
}

// String returns base58 text form of the identifier.
func (id ID) String() string {
	return base58.Encode(id[:])
}

// Hex returns hex text form of the identifier.
func (id ID) Hex() string {
	return hex.EncodeToString(id[:])
}

// Data unpacks the identifier.
func (id ID) Data() Data {
	return Unpack(id)
}

package tokenid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// ErrInvalidOwner is returned for owner strings that are neither an address
// nor a script hash.
var ErrInvalidOwner = errors.New("invalid owner")

// Record is an identifier with the owner in a human-readable form. Owner can
// be a Neo address, a 0x-prefixed big-endian script hash or a plain
// little-endian script hash.
type Record struct {
	Kind   MintKind
	Period uint64
	Owner  string
}

// ParseOwner converts any supported owner notation to a script hash.
func ParseOwner(s string) (util.Uint160, error) {
	s = strings.TrimSpace(s)

	var (
		u   util.Uint160
		err error
	)
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		u, err = util.Uint160DecodeStringBE(s[2:])
	case len(s) == 2*util.Uint160Size:
		u, err = util.Uint160DecodeStringLE(s)
	default:
		u, err = address.StringToUint160(s)
	}
	if err != nil {
		return util.Uint160{}, fmt.Errorf("%w %q: %w", ErrInvalidOwner, s, err)
	}
	return u, nil
}

// Normalize converts the record to its canonical form.
func Normalize(r Record) (Data, error) {
	owner, err := ParseOwner(r.Owner)
	if err != nil {
		return Data{}, err
	}
	return Data{Kind: r.Kind, Period: r.Period, Owner: owner}, nil
}

// Equal reports whether two records denote the same identifier. Records with
// unparsable owners are never equal.
func Equal(a, b Record) bool {
	da, err := Normalize(a)
	if err != nil {
		return false
	}
	db, err := Normalize(b)
	if err != nil {
		return false
	}
	return da == db
}

// Record returns the record form of d with the owner as a Neo address.
func (d Data) Record() Record {
	return Record{Kind: d.Kind, Period: d.Period, Owner: address.Uint160ToString(d.Owner)}
}

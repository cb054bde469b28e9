package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

// IsValidAccount checks that acc is a 20-byte script hash.
func IsValidAccount(acc interop.Hash160) bool {
	return acc != nil && len(acc) == interop.Hash160Len
}

// IsZeroAccount returns true for missing, empty and all-zero accounts.
func IsZeroAccount(acc interop.Hash160) bool {
	if acc == nil || len(acc) == 0 {
		return true
	}
	for i := 0; i < len(acc); i++ { //nolint:intrange // Not supported by NeoGo
		if acc[i] != 0 {
			return false
		}
	}
	return true
}

// BytesEqual compares two slice of bytes by wrapping them into strings,
// which is necessary with new util.Equal interop behaviour, see neo-go#1176.
func BytesEqual(a []byte, b []byte) bool {
	return util.Equals(string(a), string(b))
}

package respect

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/respect-contract/contracts/respect/respectconst"
)

// packTokenID builds fixed-width big-endian token ID: kind | period | owner.
func packTokenID(kind, period int, owner interop.Hash160) []byte {
	id := make([]byte, respectconst.TokenIDLen)
	id[0] = byte(kind)
	for i := respectconst.OwnerOffset - 1; i >= respectconst.PeriodOffset; i-- {
		id[i] = byte(period & 0xff)
		period = period >> 8
	}
	for i := 0; i < respectconst.OwnerLen; i++ { //nolint:intrange // Not supported by NeoGo
		id[respectconst.OwnerOffset+i] = owner[i]
	}
	return id
}

func tokenKind(id []byte) int {
	return int(id[0])
}

func tokenPeriod(id []byte) int {
	n := 0
	for i := respectconst.PeriodOffset; i < respectconst.OwnerOffset; i++ {
		n = n<<8 | int(id[i])
	}
	return n
}

func tokenOwner(id []byte) interop.Hash160 {
	return interop.Hash160(id[respectconst.OwnerOffset:])
}

func checkTokenID(id []byte) {
	if len(id) != respectconst.TokenIDLen {
		panic(respectconst.ErrInvalidTokenID)
	}
}

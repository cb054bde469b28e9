package receiver

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	// prefixReceived maps received token ID to the contract that sent it.
	prefixReceived = "r"
	// rejectKey must not start with prefixReceived.
	rejectKey = "x"
)

func OnNEP11Payment(from interop.Hash160, amount int, tokenID []byte, data any) {
	ctx := storage.GetContext()
	if storage.Get(ctx, rejectKey) != nil {
		panic("payment rejected")
	}
	if amount != 1 {
		panic("wrong amount")
	}
	if from != nil {
		panic("unexpected sender")
	}
	storage.Put(ctx, prefixReceived+string(tokenID), runtime.GetCallingScriptHash())
}

// SetReject makes further payments fail.
func SetReject(reject bool) {
	ctx := storage.GetContext()
	if reject {
		storage.Put(ctx, rejectKey, true)
	} else {
		storage.Delete(ctx, rejectKey)
	}
}

// Received returns IDs of all received tokens.
func Received() [][]byte {
	res := [][]byte{}
	it := storage.Find(storage.GetReadOnlyContext(), prefixReceived, storage.KeysOnly|storage.RemovePrefix)
	for iterator.Next(it) {
		res = append(res, iterator.Value(it).([]byte))
	}
	return res
}

// SenderOf returns the contract that has sent the token.
func SenderOf(tokenID []byte) interop.Hash160 {
	v := storage.Get(storage.GetReadOnlyContext(), prefixReceived+string(tokenID))
	if v == nil {
		return nil
	}
	return v.(interop.Hash160)
}

package respect

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/respect-contract/common"
	"github.com/nspcc-dev/respect-contract/contracts/respect/respectconst"
)

const (
	// prefixToken contains map from token ID to its value.
	prefixToken byte = 0x01
	// prefixAccountToken contains map from (owner + token ID) to token ID.
	prefixAccountToken byte = 0x02
	// prefixBalance contains map from owner to the sum of its token values.
	prefixBalance byte = 0x03

	tokenSupplyKey = "tokenSupply"
	totalSupplyKey = "totalSupply"
)

// mintToken records a new unit for the owner encoded in tokenID. Every
// aggregate is updated in the same call, so a unit is never visible without
// its contribution to supplies and balance.
func mintToken(ctx storage.Context, tokenID []byte, value int) {
	key := tokenKey(tokenID)
	if storage.Get(ctx, key) != nil {
		panic(respectconst.ErrAlreadyMinted)
	}

	owner := tokenOwner(tokenID)
	storage.Put(ctx, key, value)
	storage.Put(ctx, accountTokenKey(owner, tokenID), tokenID)

	bKey := balanceKey(owner)
	storage.Put(ctx, bKey, common.GetInt(ctx, bKey)+value)
	storage.Put(ctx, tokenSupplyKey, common.GetInt(ctx, tokenSupplyKey)+1)
	storage.Put(ctx, totalSupplyKey, common.GetInt(ctx, totalSupplyKey)+value)

	var from interop.Hash160
	runtime.Notify("Transfer", from, owner, 1, tokenID)
}

// notifyReceiver calls onNEP11Payment of the token owner if the owner is a
// deployed contract. It must only be called after all writes of the
// invocation are done. Rank mints never call it: one ranked contract must not
// be able to block the whole period.
func notifyReceiver(tokenID []byte) {
	owner := tokenOwner(tokenID)
	if management.GetContract(owner) != nil {
		var from interop.Hash160
		contract.Call(owner, "onNEP11Payment", contract.All, from, 1, tokenID, nil)
	}
}

func isMinted(ctx storage.Context, tokenID []byte) bool {
	return storage.Get(ctx, tokenKey(tokenID)) != nil
}

func tokenValue(ctx storage.Context, tokenID []byte) int {
	checkTokenID(tokenID)
	v := storage.Get(ctx, tokenKey(tokenID))
	if v == nil {
		panic(respectconst.ErrTokenNotFound)
	}
	return v.(int)
}

func balanceOf(ctx storage.Context, owner interop.Hash160) int {
	return common.GetInt(ctx, balanceKey(owner))
}

func allTokens(ctx storage.Context) iterator.Iterator {
	return storage.Find(ctx, []byte{prefixToken}, storage.KeysOnly|storage.RemovePrefix)
}

func tokensOf(ctx storage.Context, owner interop.Hash160) iterator.Iterator {
	return storage.Find(ctx, append([]byte{prefixAccountToken}, owner...), storage.ValuesOnly)
}

func tokenKey(tokenID []byte) []byte {
	return append([]byte{prefixToken}, tokenID...)
}

func accountTokenKey(owner interop.Hash160, tokenID []byte) []byte {
	return append(append([]byte{prefixAccountToken}, owner...), tokenID...)
}

func balanceKey(owner interop.Hash160) []byte {
	return append([]byte{prefixBalance}, owner...)
}

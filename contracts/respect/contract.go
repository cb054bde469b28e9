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
	ownerKey     = "owner"
	executorKey  = "executor"
	nameKey      = "name"
	symbolKey    = "symbol"
	intentKey    = "intent"
	agreementKey = "agreement"
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner      interop.Hash160
		executor   interop.Hash160
		ranksDelay int
		name       string
		symbol     string
	})

	if !common.IsValidAccount(args.owner) || common.IsZeroAccount(args.owner) {
		panic(respectconst.ErrInvalidAccount)
	}
	if args.ranksDelay < 0 {
		panic(respectconst.ErrInvalidRanksDelay)
	}

	ctx := storage.GetContext()
	storage.Put(ctx, ownerKey, args.owner)
	if !common.IsZeroAccount(args.executor) {
		if !common.IsValidAccount(args.executor) {
			panic(respectconst.ErrInvalidAccount)
		}
		storage.Put(ctx, executorKey, args.executor)
	}
	storage.Put(ctx, ranksDelayKey, args.ranksDelay)
	storage.Put(ctx, nameKey, args.name)
	storage.Put(ctx, symbolKey, args.symbol)
	storage.Put(ctx, periodNumberKey, 0)
	storage.Put(ctx, lastRanksTimeKey, 0)
	storage.Put(ctx, tokenSupplyKey, 0)
	storage.Put(ctx, totalSupplyKey, 0)

	runtime.Log("respect contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckWitnessWithMessage(getOwner(ctx), respectconst.ErrNotOwner)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("respect contract updated")
}

// SubmitRanks mints Respect for the rankings of all breakout groups of the
// next period. Only the owner or the executor can call it, and at least
// RanksDelay milliseconds must pass since the previous accepted submission.
func SubmitRanks(groupRanks []GroupRanks) {
	ctx := storage.GetContext()
	submitRanks(ctx, isOwnerOrExecutor(ctx), runtime.GetTime(), groupRanks)
}

// Mint issues a single token of an arbitrary non-ranks kind. Only the owner
// can call it.
func Mint(to interop.Hash160, value, kind, period int) {
	ctx := storage.GetContext()
	common.CheckWitnessWithMessage(getOwner(ctx), respectconst.ErrNotOwner)

	if !common.IsValidAccount(to) || common.IsZeroAccount(to) {
		panic(respectconst.ErrInvalidAccount)
	}
	if kind == respectconst.MintKindRanks || kind < 0 || kind > respectconst.MaxMintKind {
		panic(respectconst.ErrInvalidMintKind)
	}
	if value <= 0 {
		panic(respectconst.ErrInvalidValue)
	}
	if period < 0 || period>>(8*respectconst.PeriodLen) != 0 {
		panic(respectconst.ErrInvalidPeriod)
	}

	id := packTokenID(kind, period, to)
	mintToken(ctx, id, value)
	notifyReceiver(id)
}

// SetRanksDelay sets the minimum time in milliseconds between two accepted
// rank submissions. Only the owner can call it.
func SetRanksDelay(delay int) {
	ctx := storage.GetContext()
	common.CheckWitnessWithMessage(getOwner(ctx), respectconst.ErrNotOwner)

	if delay < 0 {
		panic(respectconst.ErrInvalidRanksDelay)
	}
	storage.Put(ctx, ranksDelayKey, delay)
	runtime.Notify("RanksDelaySet", delay)
}

// SetExecutor sets the account allowed to submit ranks. A zero account
// removes the executor. Both the owner and the current executor can call it.
func SetExecutor(executor interop.Hash160) {
	ctx := storage.GetContext()
	if !isOwnerOrExecutor(ctx) {
		panic(respectconst.ErrNotIssuerOrExecutor)
	}

	if common.IsZeroAccount(executor) {
		var none interop.Hash160
		storage.Delete(ctx, executorKey)
		runtime.Notify("ExecutorSet", none)
		return
	}
	if !common.IsValidAccount(executor) {
		panic(respectconst.ErrInvalidAccount)
	}
	storage.Put(ctx, executorKey, executor)
	runtime.Notify("ExecutorSet", executor)
}

// TransferOwnership passes the owner role to another account. Only the
// current owner can call it.
func TransferOwnership(newOwner interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckWitnessWithMessage(getOwner(ctx), respectconst.ErrNotOwner)

	if !common.IsValidAccount(newOwner) || common.IsZeroAccount(newOwner) {
		panic(respectconst.ErrInvalidAccount)
	}
	previous := getOwner(ctx)
	storage.Put(ctx, ownerKey, newOwner)
	runtime.Notify("OwnershipTransferred", previous, newOwner)
}

// SetIntent sets the free-form statement of the fractal intent. Only the
// owner can call it.
func SetIntent(intent string) {
	ctx := storage.GetContext()
	common.CheckWitnessWithMessage(getOwner(ctx), respectconst.ErrNotOwner)
	storage.Put(ctx, intentKey, intent)
}

// SetAgreement sets the link to the agreement members sign. Only the owner
// can call it.
func SetAgreement(agreement string) {
	ctx := storage.GetContext()
	common.CheckWitnessWithMessage(getOwner(ctx), respectconst.ErrNotOwner)
	storage.Put(ctx, agreementKey, agreement)
}

// SignAgreement emits AgreementSigned notification on behalf of the signer.
// Nothing is stored.
func SignAgreement(signer interop.Hash160, agreement string) {
	common.CheckWitness(signer)
	runtime.Notify("AgreementSigned", signer, agreement)
}

// Name returns the ledger name.
func Name() string {
	return common.GetString(storage.GetReadOnlyContext(), nameKey)
}

// Symbol returns the ledger symbol.
func Symbol() string {
	return common.GetString(storage.GetReadOnlyContext(), symbolKey)
}

// Decimals returns zero: token values are whole numbers.
func Decimals() int {
	return 0
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// TotalSupply returns the sum of values of all minted tokens.
func TotalSupply() int {
	return common.GetInt(storage.GetReadOnlyContext(), totalSupplyKey)
}

// TokenSupply returns the number of minted tokens.
func TokenSupply() int {
	return common.GetInt(storage.GetReadOnlyContext(), tokenSupplyKey)
}

// BalanceOf returns the sum of values of tokens owned by the account.
func BalanceOf(owner interop.Hash160) int {
	if !common.IsValidAccount(owner) {
		panic(respectconst.ErrInvalidAccount)
	}
	return balanceOf(storage.GetReadOnlyContext(), owner)
}

// ValueOfToken returns the value of the minted token.
func ValueOfToken(tokenID []byte) int {
	return tokenValue(storage.GetReadOnlyContext(), tokenID)
}

// OwnerOf returns the owner of the minted token.
func OwnerOf(tokenID []byte) interop.Hash160 {
	tokenValue(storage.GetReadOnlyContext(), tokenID)
	return tokenOwner(tokenID)
}

// Properties returns decoded fields and the value of the minted token.
func Properties(tokenID []byte) map[string]any {
	value := tokenValue(storage.GetReadOnlyContext(), tokenID)
	return map[string]any{
		"kind":   tokenKind(tokenID),
		"period": tokenPeriod(tokenID),
		"owner":  tokenOwner(tokenID),
		"value":  value,
	}
}

// Tokens returns iterator over IDs of all minted tokens.
func Tokens() iterator.Iterator {
	return allTokens(storage.GetReadOnlyContext())
}

// TokensOf returns iterator over IDs of tokens owned by the account.
func TokensOf(owner interop.Hash160) iterator.Iterator {
	if !common.IsValidAccount(owner) {
		panic(respectconst.ErrInvalidAccount)
	}
	return tokensOf(storage.GetReadOnlyContext(), owner)
}

// PeriodNumber returns the number of accepted rank submissions.
func PeriodNumber() int {
	return common.GetInt(storage.GetReadOnlyContext(), periodNumberKey)
}

// LastRanksTime returns the block time in milliseconds of the last accepted
// rank submission, zero if there were none.
func LastRanksTime() int {
	return common.GetInt(storage.GetReadOnlyContext(), lastRanksTimeKey)
}

// RanksDelay returns the minimum time in milliseconds between rank submissions.
func RanksDelay() int {
	return common.GetInt(storage.GetReadOnlyContext(), ranksDelayKey)
}

// Owner returns the owner (issuer) account.
func Owner() interop.Hash160 {
	return getOwner(storage.GetReadOnlyContext())
}

// Executor returns the executor account or nothing if it is not set.
func Executor() interop.Hash160 {
	return getExecutor(storage.GetReadOnlyContext())
}

// Intent returns the fractal intent statement.
func Intent() string {
	return common.GetString(storage.GetReadOnlyContext(), intentKey)
}

// Agreement returns the link to the fractal agreement.
func Agreement() string {
	return common.GetString(storage.GetReadOnlyContext(), agreementKey)
}

func getOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}

func getExecutor(ctx storage.Context) interop.Hash160 {
	v := storage.Get(ctx, executorKey)
	if v == nil {
		return nil
	}
	return v.(interop.Hash160)
}

func isOwnerOrExecutor(ctx storage.Context) bool {
	return common.HasWitness(getOwner(ctx)) || common.HasWitness(getExecutor(ctx))
}

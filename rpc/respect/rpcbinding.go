// Package respect contains RPC wrappers for Respect contract.
package respect

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/respect-contract/contracts/respect/respectconst"
)

// GroupRanks is a ranking of a single breakout group. Ranks[0] is the lowest
// rank, zero values mark unfilled slots.
type GroupRanks struct {
	GroupNum int64
	Ranks    [respectconst.RanksPerGroup]util.Uint160
}

// Properties is the decoded result of `properties` method.
type Properties struct {
	Kind   *big.Int
	Period *big.Int
	Owner  util.Uint160
	Value  *big.Int
}

// TransferEvent represents "Transfer" event emitted by the contract.
type TransferEvent struct {
	From    util.Uint160
	To      util.Uint160
	Amount  *big.Int
	TokenID []byte
}

// RanksSubmittedEvent represents "RanksSubmitted" event emitted by the contract.
type RanksSubmittedEvent struct {
	Period *big.Int
	Time   *big.Int
	Count  *big.Int
}

// AgreementSignedEvent represents "AgreementSigned" event emitted by the contract.
type AgreementSignedEvent struct {
	Signer    util.Uint160
	Agreement string
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Hash returns the contract hash.
func (c *ContractReader) Hash() util.Uint160 {
	return c.hash
}

// Name invokes `name` method of contract.
func (c *ContractReader) Name() (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "name"))
}

// Symbol invokes `symbol` method of contract.
func (c *ContractReader) Symbol() (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "symbol"))
}

// Decimals invokes `decimals` method of contract.
func (c *ContractReader) Decimals() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "decimals"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// TotalSupply invokes `totalSupply` method of contract.
func (c *ContractReader) TotalSupply() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalSupply"))
}

// TokenSupply invokes `tokenSupply` method of contract.
func (c *ContractReader) TokenSupply() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "tokenSupply"))
}

// BalanceOf invokes `balanceOf` method of contract.
func (c *ContractReader) BalanceOf(owner util.Uint160) (*big.Int, error) {
	res, err := unwrap.BigInt(c.invoker.Call(c.hash, "balanceOf", owner))
	return res, ResolveFault(err)
}

// ValueOfToken invokes `valueOfToken` method of contract.
func (c *ContractReader) ValueOfToken(tokenID []byte) (*big.Int, error) {
	res, err := unwrap.BigInt(c.invoker.Call(c.hash, "valueOfToken", tokenID))
	return res, ResolveFault(err)
}

// OwnerOf invokes `ownerOf` method of contract.
func (c *ContractReader) OwnerOf(tokenID []byte) (util.Uint160, error) {
	res, err := unwrap.Uint160(c.invoker.Call(c.hash, "ownerOf", tokenID))
	return res, ResolveFault(err)
}

// Properties invokes `properties` method of contract.
func (c *ContractReader) Properties(tokenID []byte) (*Properties, error) {
	item, err := unwrap.Item(c.invoker.Call(c.hash, "properties", tokenID))
	if err != nil {
		return nil, ResolveFault(err)
	}
	return itemToProperties(item)
}

// Tokens invokes `tokens` method of contract.
func (c *ContractReader) Tokens() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "tokens"))
}

// TokensExpanded is similar to Tokens (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) TokensExpanded(_numOfIteratorItems int) ([][]byte, error) {
	return unwrap.ArrayOfBytes(c.invoker.CallAndExpandIterator(c.hash, "tokens", _numOfIteratorItems))
}

// TokensOf invokes `tokensOf` method of contract.
func (c *ContractReader) TokensOf(owner util.Uint160) (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "tokensOf", owner))
}

// TokensOfExpanded is similar to TokensOf (uses the same contract method),
// but expands the iterator in the VM, see TokensExpanded.
func (c *ContractReader) TokensOfExpanded(owner util.Uint160, _numOfIteratorItems int) ([][]byte, error) {
	return unwrap.ArrayOfBytes(c.invoker.CallAndExpandIterator(c.hash, "tokensOf", _numOfIteratorItems, owner))
}

// IteratorBatch is the number of items requested by one iterator traversal.
// It does not exceed the default MaxIteratorResultItems of RPC servers.
const IteratorBatch = 100

// AllTokens returns IDs of all minted tokens. Unlike TokensExpanded, it pages
// through the iterator session, so the number of tokens is not limited by
// the VM stack.
func (c *ContractReader) AllTokens() ([][]byte, error) {
	sess, iter, err := c.Tokens()
	if err != nil {
		return nil, err
	}
	return c.traverseBytes(sess, iter)
}

// AllTokensOf returns IDs of all tokens owned by the account, see AllTokens.
func (c *ContractReader) AllTokensOf(owner util.Uint160) ([][]byte, error) {
	sess, iter, err := c.TokensOf(owner)
	if err != nil {
		return nil, ResolveFault(err)
	}
	return c.traverseBytes(sess, iter)
}

func (c *ContractReader) traverseBytes(sess uuid.UUID, iter result.Iterator) ([][]byte, error) {
	if iter.ID != nil {
		defer func() { _ = c.invoker.TerminateSession(sess) }()
	}

	var res [][]byte
	for {
		items, err := c.invoker.TraverseIterator(sess, &iter, IteratorBatch)
		if err != nil {
			return nil, fmt.Errorf("traverse iterator: %w", err)
		}
		if len(items) == 0 {
			return res, nil
		}
		for i := range items {
			b, err := items[i].TryBytes()
			if err != nil {
				return nil, fmt.Errorf("item #%d: %w", len(res), err)
			}
			res = append(res, b)
		}
	}
}

// PeriodNumber invokes `periodNumber` method of contract.
func (c *ContractReader) PeriodNumber() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "periodNumber"))
}

// LastRanksTime invokes `lastRanksTime` method of contract.
func (c *ContractReader) LastRanksTime() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "lastRanksTime"))
}

// RanksDelay invokes `ranksDelay` method of contract.
func (c *ContractReader) RanksDelay() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "ranksDelay"))
}

// Owner invokes `owner` method of contract.
func (c *ContractReader) Owner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "owner"))
}

// Executor invokes `executor` method of contract. Zero value is returned if
// the executor is not set.
func (c *ContractReader) Executor() (util.Uint160, error) {
	item, err := unwrap.Item(c.invoker.Call(c.hash, "executor"))
	if err != nil {
		return util.Uint160{}, err
	}
	return itemToOptionalUint160(item)
}

// Intent invokes `intent` method of contract.
func (c *ContractReader) Intent() (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "intent"))
}

// Agreement invokes `agreement` method of contract.
func (c *ContractReader) Agreement() (string, error) {
	return unwrap.UTF8String(c.invoker.Call(c.hash, "agreement"))
}

// SubmitRanks creates a transaction invoking `submitRanks` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SubmitRanks(groups []GroupRanks) (util.Uint256, uint32, error) {
	h, vub, err := c.actor.SendCall(c.hash, "submitRanks", groupsToParam(groups))
	return h, vub, ResolveFault(err)
}

// SubmitRanksTransaction creates a transaction invoking `submitRanks` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SubmitRanksTransaction(groups []GroupRanks) (*transaction.Transaction, error) {
	tx, err := c.actor.MakeCall(c.hash, "submitRanks", groupsToParam(groups))
	return tx, ResolveFault(err)
}

// SubmitRanksUnsigned creates a transaction invoking `submitRanks` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SubmitRanksUnsigned(groups []GroupRanks) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "submitRanks", nil, groupsToParam(groups))
}

// Mint creates a transaction invoking `mint` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Mint(to util.Uint160, value *big.Int, kind *big.Int, period *big.Int) (util.Uint256, uint32, error) {
	h, vub, err := c.actor.SendCall(c.hash, "mint", to, value, kind, period)
	return h, vub, ResolveFault(err)
}

// MintTransaction creates a transaction invoking `mint` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) MintTransaction(to util.Uint160, value *big.Int, kind *big.Int, period *big.Int) (*transaction.Transaction, error) {
	tx, err := c.actor.MakeCall(c.hash, "mint", to, value, kind, period)
	return tx, ResolveFault(err)
}

// SetRanksDelay creates a transaction invoking `setRanksDelay` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetRanksDelay(delay *big.Int) (util.Uint256, uint32, error) {
	h, vub, err := c.actor.SendCall(c.hash, "setRanksDelay", delay)
	return h, vub, ResolveFault(err)
}

// SetExecutor creates a transaction invoking `setExecutor` method of the contract.
// Zero executor removes the current one.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetExecutor(executor util.Uint160) (util.Uint256, uint32, error) {
	h, vub, err := c.actor.SendCall(c.hash, "setExecutor", executor)
	return h, vub, ResolveFault(err)
}

// TransferOwnership creates a transaction invoking `transferOwnership` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) TransferOwnership(owner util.Uint160) (util.Uint256, uint32, error) {
	h, vub, err := c.actor.SendCall(c.hash, "transferOwnership", owner)
	return h, vub, ResolveFault(err)
}

// SetIntent creates a transaction invoking `setIntent` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetIntent(intent string) (util.Uint256, uint32, error) {
	h, vub, err := c.actor.SendCall(c.hash, "setIntent", intent)
	return h, vub, ResolveFault(err)
}

// SetAgreement creates a transaction invoking `setAgreement` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetAgreement(agreement string) (util.Uint256, uint32, error) {
	h, vub, err := c.actor.SendCall(c.hash, "setAgreement", agreement)
	return h, vub, ResolveFault(err)
}

// SignAgreement creates a transaction invoking `signAgreement` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SignAgreement(signer util.Uint160, agreement string) (util.Uint256, uint32, error) {
	h, vub, err := c.actor.SendCall(c.hash, "signAgreement", signer, agreement)
	return h, vub, ResolveFault(err)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	h, vub, err := c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
	return h, vub, ResolveFault(err)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	tx, err := c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
	return tx, ResolveFault(err)
}

func groupsToParam(groups []GroupRanks) []any {
	res := make([]any, len(groups))
	for i := range groups {
		ranks := make([]any, len(groups[i].Ranks))
		for j := range groups[i].Ranks {
			ranks[j] = groups[i].Ranks[j]
		}
		res[i] = []any{groups[i].GroupNum, ranks}
	}
	return res
}

func itemToOptionalUint160(item stackitem.Item) (util.Uint160, error) {
	if _, ok := item.(stackitem.Null); ok {
		return util.Uint160{}, nil
	}
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	return util.Uint160DecodeBytesBE(b)
}

// itemToProperties converts stack item into *Properties.
func itemToProperties(item stackitem.Item) (*Properties, error) {
	m, ok := item.(*stackitem.Map)
	if !ok {
		return nil, errors.New("not a map")
	}

	res := new(Properties)
	for _, kv := range m.Value().([]stackitem.MapElement) {
		key, err := kv.Key.TryBytes()
		if err != nil {
			return nil, fmt.Errorf("invalid key: %w", err)
		}
		switch string(key) {
		case "kind":
			res.Kind, err = kv.Value.TryInteger()
		case "period":
			res.Period, err = kv.Value.TryInteger()
		case "value":
			res.Value, err = kv.Value.TryInteger()
		case "owner":
			var b []byte
			b, err = kv.Value.TryBytes()
			if err == nil {
				res.Owner, err = util.Uint160DecodeBytesBE(b)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
	}
	if res.Kind == nil || res.Period == nil || res.Value == nil {
		return nil, errors.New("missing properties")
	}
	return res, nil
}

// TransferEventsFromApplicationLog retrieves a set of all emitted events
// with "Transfer" name from the provided [result.ApplicationLog].
func TransferEventsFromApplicationLog(log *result.ApplicationLog) ([]*TransferEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*TransferEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Transfer" {
				continue
			}
			event := new(TransferEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize TransferEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to TransferEvent or
// returns an error if it's not possible to do to so.
func (e *TransferEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 4)
	if err != nil {
		return err
	}

	e.From, err = itemToOptionalUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field From: %w", err)
	}
	e.To, err = itemToOptionalUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field To: %w", err)
	}
	e.Amount, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}
	e.TokenID, err = arr[3].TryBytes()
	if err != nil {
		return fmt.Errorf("field TokenID: %w", err)
	}
	return nil
}

// RanksSubmittedEventsFromApplicationLog retrieves a set of all emitted events
// with "RanksSubmitted" name from the provided [result.ApplicationLog].
func RanksSubmittedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RanksSubmittedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RanksSubmittedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "RanksSubmitted" {
				continue
			}
			event := new(RanksSubmittedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RanksSubmittedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RanksSubmittedEvent or
// returns an error if it's not possible to do to so.
func (e *RanksSubmittedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 3)
	if err != nil {
		return err
	}

	e.Period, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field Period: %w", err)
	}
	e.Time, err = arr[1].TryInteger()
	if err != nil {
		return fmt.Errorf("field Time: %w", err)
	}
	e.Count, err = arr[2].TryInteger()
	if err != nil {
		return fmt.Errorf("field Count: %w", err)
	}
	return nil
}

// AgreementSignedEventsFromApplicationLog retrieves a set of all emitted events
// with "AgreementSigned" name from the provided [result.ApplicationLog].
func AgreementSignedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AgreementSignedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AgreementSignedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AgreementSigned" {
				continue
			}
			event := new(AgreementSignedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AgreementSignedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AgreementSignedEvent or
// returns an error if it's not possible to do to so.
func (e *AgreementSignedEvent) FromStackItem(item *stackitem.Array) error {
	arr, err := eventFields(item, 2)
	if err != nil {
		return err
	}

	e.Signer, err = itemToOptionalUint160(arr[0])
	if err != nil {
		return fmt.Errorf("field Signer: %w", err)
	}
	b, err := arr[1].TryBytes()
	if err != nil {
		return fmt.Errorf("field Agreement: %w", err)
	}
	e.Agreement = string(b)
	return nil
}

func eventFields(item *stackitem.Array, n int) ([]stackitem.Item, error) {
	if item == nil {
		return nil, errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}
	if len(arr) != n {
		return nil, errors.New("wrong number of structure elements")
	}
	return arr, nil
}

package respect

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/respect-contract/tokenid"
	"github.com/stretchr/testify/require"
)

// ledgerInv serves reads of a fixed set of tokens.
type ledgerInv struct {
	testInv
	values      map[tokenid.ID]int64
	owners      map[tokenid.ID]util.Uint160
	balances    map[util.Uint160]int64
	tokenSupply int64
	totalSupply int64

	order      []tokenid.ID
	cursor     int
	session    uuid.UUID
	batches    []int
	terminated bool
	// onTraverse is called before every iterator traversal.
	onTraverse func()
}

func (l *ledgerInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	halt := func(it stackitem.Item) (*result.Invoke, error) {
		return &result.Invoke{State: "HALT", Stack: []stackitem.Item{it}}, nil
	}
	switch operation {
	case "tokens":
		l.session, l.cursor = uuid.New(), 0
		iterID := uuid.New()
		return &result.Invoke{
			State:   "HALT",
			Session: l.session,
			Stack:   []stackitem.Item{stackitem.NewInterop(result.Iterator{ID: &iterID})},
		}, nil
	case "tokenSupply":
		return halt(stackitem.Make(l.tokenSupply))
	case "totalSupply":
		return halt(stackitem.Make(l.totalSupply))
	case "valueOfToken":
		id, _ := tokenid.FromBytes(params[0].([]byte))
		return halt(stackitem.Make(l.values[id]))
	case "ownerOf":
		id, _ := tokenid.FromBytes(params[0].([]byte))
		return halt(stackitem.NewBuffer(l.owners[id].BytesBE()))
	case "balanceOf":
		return halt(stackitem.Make(l.balances[params[0].(util.Uint160)]))
	}
	return nil, errors.New("unexpected call " + operation)
}

// TraverseIterator pages through tokens and rejects batches bigger than RPC
// servers allow by default.
func (l *ledgerInv) TraverseIterator(sess uuid.UUID, iter *result.Iterator, num int) ([]stackitem.Item, error) {
	if sess != l.session || iter.ID == nil {
		return nil, errors.New("unknown session")
	}
	if num <= 0 || num > IteratorBatch {
		return nil, fmt.Errorf("count is out of range: %d", num)
	}
	if l.onTraverse != nil {
		l.onTraverse()
	}
	l.batches = append(l.batches, num)

	end := l.cursor + num
	if end > len(l.order) {
		end = len(l.order)
	}
	items := make([]stackitem.Item, 0, end-l.cursor)
	for _, id := range l.order[l.cursor:end] {
		items = append(items, stackitem.NewByteArray(id.Bytes()))
	}
	l.cursor = end
	return items, nil
}

func (l *ledgerInv) TerminateSession(sess uuid.UUID) error {
	if sess != l.session {
		return errors.New("unknown session")
	}
	l.terminated = true
	return nil
}

func (l *ledgerInv) add(kind tokenid.MintKind, period uint64, owner util.Uint160, value int64) {
	id := tokenid.Pack(tokenid.Data{Kind: kind, Period: period, Owner: owner})
	l.values[id] = value
	l.owners[id] = owner
	l.balances[owner] += value
	l.order = append(l.order, id)
	l.tokenSupply++
	l.totalSupply += value
}

func newLedgerInv() *ledgerInv {
	l := &ledgerInv{
		values:   make(map[tokenid.ID]int64),
		owners:   make(map[tokenid.ID]util.Uint160),
		balances: make(map[util.Uint160]int64),
	}

	alice, bob := util.Uint160{1}, util.Uint160{2}
	for _, m := range []struct {
		kind   tokenid.MintKind
		period uint64
		owner  util.Uint160
		value  int64
	}{
		{tokenid.KindRanks, 1, alice, 21},
		{tokenid.KindRanks, 2, alice, 55},
		{tokenid.KindRanks, 1, bob, 34},
		{tokenid.KindDirect, 0, bob, 100},
	} {
		l.add(m.kind, m.period, m.owner, m.value)
	}
	return l
}

func TestAudit(t *testing.T) {
	l := newLedgerInv()
	r := NewReader(l, util.Uint160{1, 2, 3})

	rep, err := r.Audit()
	require.NoError(t, err)
	require.Equal(t, 4, rep.Tokens)
	require.EqualValues(t, 210, rep.Sum.Int64())
	require.EqualValues(t, 76, rep.Balances[util.Uint160{1}].Int64())
	require.EqualValues(t, 134, rep.Balances[util.Uint160{2}].Int64())
	require.NoError(t, r.CheckBalances(rep))

	t.Run("many tokens", func(t *testing.T) {
		l := newLedgerInv()
		for i := 0; i < 2100; i++ {
			l.add(tokenid.KindRanks, uint64(3+i/6), util.Uint160{byte(i), byte(i >> 8), 3}, int64(5+i%6))
		}

		rep, err := NewReader(l, util.Uint160{}).Audit()
		require.NoError(t, err)
		require.Equal(t, 2104, rep.Tokens)
		require.EqualValues(t, l.totalSupply, rep.Sum.Int64())
		require.True(t, l.terminated)
		for _, n := range l.batches {
			require.LessOrEqual(t, n, IteratorBatch)
		}
	})

	t.Run("supply changes during audit", func(t *testing.T) {
		l := newLedgerInv()
		l.onTraverse = func() {
			if len(l.batches) == 0 {
				l.add(tokenid.KindRanks, 3, util.Uint160{3}, 55)
			}
		}
		_, err := NewReader(l, util.Uint160{}).Audit()
		require.ErrorIs(t, err, ErrLedgerChanged)
		require.NotErrorIs(t, err, ErrInconsistentLedger)
	})

	t.Run("supply mismatch", func(t *testing.T) {
		l := newLedgerInv()
		l.totalSupply++
		rep, err := NewReader(l, util.Uint160{}).Audit()
		require.ErrorIs(t, err, ErrInconsistentLedger)
		require.NotNil(t, rep)
	})

	t.Run("owner mismatch", func(t *testing.T) {
		l := newLedgerInv()
		for id := range l.owners {
			l.owners[id] = util.Uint160{9}
			break
		}
		_, err := NewReader(l, util.Uint160{}).Audit()
		require.ErrorIs(t, err, ErrInconsistentLedger)
	})

	t.Run("balance mismatch", func(t *testing.T) {
		l := newLedgerInv()
		r := NewReader(l, util.Uint160{})
		rep, err := r.Audit()
		require.NoError(t, err)

		l.balances[util.Uint160{2}]--
		require.ErrorIs(t, r.CheckBalances(rep), ErrInconsistentLedger)
	})
}

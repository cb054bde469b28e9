package respect

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/respect-contract/tokenid"
)

var (
	// ErrInconsistentLedger is returned by Audit when recomputed aggregates
	// differ from the stored ones.
	ErrInconsistentLedger = errors.New("inconsistent ledger")

	// ErrLedgerChanged is returned by Audit when stored supplies change while
	// tokens are being read, so the recomputation can not be trusted.
	ErrLedgerChanged = errors.New("ledger changed during audit")
)

// AuditReport contains ledger aggregates recomputed from individual tokens.
type AuditReport struct {
	// Stored counters.
	TokenSupply *big.Int
	TotalSupply *big.Int

	// Recomputed values.
	Tokens   int
	Sum      *big.Int
	Balances map[util.Uint160]*big.Int
}

// Audit walks over all minted tokens and checks that the stored supplies
// match the recomputed ones and that every token belongs to the account
// encoded in its ID. The report is returned even if the check fails.
//
// Reads are separate RPC calls. Supplies are read before and after listing
// tokens and ErrLedgerChanged is returned if they differ. Use a historic
// invoker (invoker.NewHistoricAtHeight) to audit a fixed chain state.
func (c *ContractReader) Audit() (*AuditReport, error) {
	tokenSupply, totalSupply, err := c.supplies()
	if err != nil {
		return nil, err
	}

	ids, err := c.AllTokens()
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}

	rep := &AuditReport{
		TokenSupply: tokenSupply,
		TotalSupply: totalSupply,
		Tokens:      len(ids),
		Sum:         new(big.Int),
		Balances:    make(map[util.Uint160]*big.Int),
	}

	tokenSupply, totalSupply, err = c.supplies()
	if err != nil {
		return nil, err
	}
	if tokenSupply.Cmp(rep.TokenSupply) != 0 || totalSupply.Cmp(rep.TotalSupply) != 0 {
		return rep, fmt.Errorf("%w: token supply %s -> %s, total supply %s -> %s",
			ErrLedgerChanged, rep.TokenSupply, tokenSupply, rep.TotalSupply, totalSupply)
	}

	var problems []error
	for _, raw := range ids {
		id, err := tokenid.FromBytes(raw)
		if err != nil {
			problems = append(problems, err)
			continue
		}

		value, err := c.ValueOfToken(raw)
		if err != nil {
			return rep, fmt.Errorf("get value of %s: %w", id, err)
		}
		owner, err := c.OwnerOf(raw)
		if err != nil {
			return rep, fmt.Errorf("get owner of %s: %w", id, err)
		}
		if d := id.Data(); d.Owner != owner {
			problems = append(problems, fmt.Errorf("token %s: owner %s, encoded %s", id, owner.StringLE(), d.Owner.StringLE()))
		}

		rep.Sum.Add(rep.Sum, value)
		if b, ok := rep.Balances[owner]; ok {
			b.Add(b, value)
		} else {
			rep.Balances[owner] = new(big.Int).Set(value)
		}
	}

	if rep.TokenSupply.Cmp(big.NewInt(int64(rep.Tokens))) != 0 {
		problems = append(problems, fmt.Errorf("token supply %s, counted %d tokens", rep.TokenSupply, rep.Tokens))
	}
	if rep.TotalSupply.Cmp(rep.Sum) != 0 {
		problems = append(problems, fmt.Errorf("total supply %s, sum of values %s", rep.TotalSupply, rep.Sum))
	}

	if len(problems) != 0 {
		return rep, fmt.Errorf("%w: %w", ErrInconsistentLedger, errors.Join(problems...))
	}
	return rep, nil
}

func (c *ContractReader) supplies() (*big.Int, *big.Int, error) {
	tokenSupply, err := c.TokenSupply()
	if err != nil {
		return nil, nil, fmt.Errorf("get token supply: %w", err)
	}
	totalSupply, err := c.TotalSupply()
	if err != nil {
		return nil, nil, fmt.Errorf("get total supply: %w", err)
	}
	return tokenSupply, totalSupply, nil
}

// CheckBalances compares recomputed balances with `balanceOf` results.
func (c *ContractReader) CheckBalances(rep *AuditReport) error {
	var problems []error
	for owner, expected := range rep.Balances {
		actual, err := c.BalanceOf(owner)
		if err != nil {
			return fmt.Errorf("get balance of %s: %w", owner.StringLE(), err)
		}
		if actual.Cmp(expected) != 0 {
			problems = append(problems, fmt.Errorf("balance of %s is %s, sum of values %s", owner.StringLE(), actual, expected))
		}
	}
	if len(problems) != 0 {
		return fmt.Errorf("%w: %w", ErrInconsistentLedger, errors.Join(problems...))
	}
	return nil
}

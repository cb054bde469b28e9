package respect

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/respect-contract/common"
	"github.com/nspcc-dev/respect-contract/contracts/respect/respectconst"
)

const (
	periodNumberKey  = "periodNumber"
	lastRanksTimeKey = "lastRanksTime"
	ranksDelayKey    = "ranksDelay"
)

// GroupRanks is a ranking of a single breakout group. Ranks[0] is the lowest
// rank, Ranks[5] is the highest. Zero accounts mark unfilled slots.
type GroupRanks struct {
	GroupNum int
	Ranks    []interop.Hash160
}

// pendingMint is a unit validated against the ledger but not yet recorded.
type pendingMint struct {
	TokenID []byte
	Value   int
}

// rankRewards maps rank slot to the reward value.
var rankRewards = []int{5, 8, 13, 21, 34, 55}

// submitRanks opens the next period and mints a unit for every ranked account.
// All checks happen before the first write, so a rejected submission leaves
// no trace.
func submitRanks(ctx storage.Context, authorized bool, now int, groups []GroupRanks) {
	if !authorized {
		panic(respectconst.ErrNotIssuerOrExecutor)
	}

	last := common.GetInt(ctx, lastRanksTimeKey)
	if last != 0 && now < last+common.GetInt(ctx, ranksDelayKey) {
		panic(respectconst.ErrRanksDelay)
	}

	period := common.GetInt(ctx, periodNumberKey) + 1
	mints := stageRanks(ctx, period, groups)

	for i := range mints {
		mintToken(ctx, mints[i].TokenID, mints[i].Value)
	}

	storage.Put(ctx, periodNumberKey, period)
	storage.Put(ctx, lastRanksTimeKey, now)
	runtime.Notify("RanksSubmitted", period, now, len(mints))
}

// stageRanks validates groups and returns units to mint for the period.
// Storage is only read here.
func stageRanks(ctx storage.Context, period int, groups []GroupRanks) []pendingMint {
	if len(groups) == 0 {
		panic(respectconst.ErrInvalidGroupRanks)
	}

	for i := range groups {
		ranks := groups[i].Ranks
		if len(ranks) != respectconst.RanksPerGroup {
			panic(respectconst.ErrInvalidGroupRanks)
		}

		ranked := 0
		for j := range ranks {
			if common.IsZeroAccount(ranks[j]) {
				continue
			}
			if !common.IsValidAccount(ranks[j]) {
				panic(respectconst.ErrInvalidAccount)
			}
			ranked++
		}
		if ranked < respectconst.MinRanksPerGroup {
			panic(respectconst.ErrTooFewRanks)
		}
	}

	mints := []pendingMint{}
	for i := range groups {
		ranks := groups[i].Ranks
		for j := range ranks {
			if common.IsZeroAccount(ranks[j]) {
				continue
			}

			id := packTokenID(respectconst.MintKindRanks, period, ranks[j])
			if isMinted(ctx, id) || isStaged(mints, id) {
				panic(respectconst.ErrAlreadyMinted)
			}
			mints = append(mints, pendingMint{TokenID: id, Value: rankRewards[j]})
		}
	}
	return mints
}

func isStaged(mints []pendingMint, id []byte) bool {
	for i := range mints {
		if common.BytesEqual(mints[i].TokenID, id) {
			return true
		}
	}
	return false
}

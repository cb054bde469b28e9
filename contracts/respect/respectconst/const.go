/*
Package respectconst contains constants shared by the Respect contract and
off-chain code working with it.
*/
package respectconst

// MintKind values occupy the first byte of every token ID.
const (
	// MintKindRanks is a kind of tokens issued by rank submissions.
	MintKindRanks = 0
	// MintKindDirect is a kind of tokens issued directly by the contract owner.
	MintKindDirect = 1
	// MaxMintKind is the largest value of the mint kind field.
	MaxMintKind = 255
)

// Token ID layout: kind | period (big-endian) | owner.
const (
	MintKindLen = 1
	PeriodLen   = 8
	OwnerLen    = 20

	PeriodOffset = MintKindLen
	OwnerOffset  = PeriodOffset + PeriodLen

	TokenIDLen = MintKindLen + PeriodLen + OwnerLen
)

// Ranking rules.
const (
	// RanksPerGroup is the number of rank slots in every group, slot 0 is the
	// lowest rank.
	RanksPerGroup = 6
	// MinRanksPerGroup is the minimum number of ranked (non-zero) accounts in a
	// group.
	MinRanksPerGroup = 3
)

// Fault exceptions thrown by the contract.
const (
	ErrNotIssuerOrExecutor = "only executor or issuer can do this"
	ErrNotOwner            = "only owner can do this"
	ErrWitnessFailed       = "witness check failed"
	ErrRanksDelay          = "ranksDelay amount of time has to pass before next submitRanks"
	ErrTooFewRanks         = "at least 3 non-zero addresses have to be ranked"
	ErrAlreadyMinted       = "token id already minted"
	ErrTokenNotFound       = "token not found"

	ErrInvalidAccount    = "invalid account"
	ErrInvalidGroupRanks = "invalid group ranks"
	ErrInvalidTokenID    = "invalid token id"
	ErrInvalidMintKind   = "invalid mint kind"
	ErrInvalidPeriod     = "invalid period"
	ErrInvalidValue      = "invalid value"
	ErrInvalidRanksDelay = "invalid ranks delay"
)

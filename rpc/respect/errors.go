package respect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/respect-contract/contracts/respect/respectconst"
)

// Errors returned by contract wrappers for known contract faults. Use
// errors.Is to check them, the original error stays in the chain.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrTimeGate          = errors.New("ranks delay has not passed")
	ErrInsufficientRanks = errors.New("too few ranked accounts in a group")
	ErrDuplicateMint     = errors.New("token already minted")
	ErrNotFound          = errors.New("token not found")
	ErrInvalidArgument   = errors.New("invalid argument")
)

var faults = []struct {
	exception string
	err       error
}{
	{respectconst.ErrNotIssuerOrExecutor, ErrUnauthorized},
	{respectconst.ErrNotOwner, ErrUnauthorized},
	{respectconst.ErrWitnessFailed, ErrUnauthorized},
	{respectconst.ErrRanksDelay, ErrTimeGate},
	{respectconst.ErrTooFewRanks, ErrInsufficientRanks},
	{respectconst.ErrAlreadyMinted, ErrDuplicateMint},
	{respectconst.ErrTokenNotFound, ErrNotFound},
	{respectconst.ErrInvalidAccount, ErrInvalidArgument},
	{respectconst.ErrInvalidGroupRanks, ErrInvalidArgument},
	{respectconst.ErrInvalidTokenID, ErrInvalidArgument},
	{respectconst.ErrInvalidMintKind, ErrInvalidArgument},
	{respectconst.ErrInvalidPeriod, ErrInvalidArgument},
	{respectconst.ErrInvalidValue, ErrInvalidArgument},
	{respectconst.ErrInvalidRanksDelay, ErrInvalidArgument},
}

// ResolveFault wraps err with one of the package errors if it carries a known
// contract fault exception. Other errors are returned as is.
func ResolveFault(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	for _, f := range faults {
		if strings.Contains(msg, f.exception) {
			return fmt.Errorf("%w: %w", f.err, err)
		}
	}
	return err
}

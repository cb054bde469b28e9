package deploy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/nspcc-dev/respect-contract/contracts"
	"github.com/nspcc-dev/respect-contract/rpc/respect"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type waiterFunc func() (*state.AppExecResult, error)

func (f waiterFunc) Wait(util.Uint256, uint32, error) (*state.AppExecResult, error) {
	return f()
}

func appExecResult(st vmstate.State, exception string) *state.AppExecResult {
	return &state.AppExecResult{Execution: state.Execution{VMState: st, FaultException: exception}}
}

func TestAwaitTx(t *testing.T) {
	ctx := context.Background()

	t.Run("halt", func(t *testing.T) {
		err := awaitTx(ctx, waiterFunc(func() (*state.AppExecResult, error) {
			return appExecResult(vmstate.Halt, ""), nil
		}), util.Uint256{1}, 10)
		require.NoError(t, err)
	})

	t.Run("fault", func(t *testing.T) {
		err := awaitTx(ctx, waiterFunc(func() (*state.AppExecResult, error) {
			return appExecResult(vmstate.Fault, "only owner can do this"), nil
		}), util.Uint256{1}, 10)
		require.ErrorIs(t, err, respect.ErrUnauthorized)
	})

	t.Run("wait error", func(t *testing.T) {
		waitErr := errors.New("transaction expired")
		err := awaitTx(ctx, waiterFunc(func() (*state.AppExecResult, error) {
			return nil, waitErr
		}), util.Uint256{1}, 10)
		require.ErrorIs(t, err, waitErr)
	})

	t.Run("context", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)

		ctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
		defer cancel()

		err := awaitTx(ctx, waiterFunc(func() (*state.AppExecResult, error) {
			<-release
			return appExecResult(vmstate.Halt, ""), nil
		}), util.Uint256{1}, 10)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func validPrm(t *testing.T) Prm {
	acc, err := wallet.NewAccount()
	require.NoError(t, err)

	return Prm{
		Logger:       zaptest.NewLogger(t),
		Blockchain:   struct{ Blockchain }{},
		LocalAccount: acc,
		Contract:     contracts.Contract{Manifest: *manifest.NewManifest("Respect")},
		Owner:        acc.ScriptHash(),
		RanksDelay:   6 * 24 * time.Hour,
		Name:         "Fractal Respect",
		Symbol:       "FR",
	}
}

func TestCheckPrm(t *testing.T) {
	require.NoError(t, checkPrm(validPrm(t)))

	for name, mod := range map[string]func(*Prm){
		"logger":     func(p *Prm) { p.Logger = nil },
		"blockchain": func(p *Prm) { p.Blockchain = nil },
		"account":    func(p *Prm) { p.LocalAccount = nil },
		"contract":   func(p *Prm) { p.Contract = contracts.Contract{} },
		"owner":      func(p *Prm) { p.Owner = util.Uint160{} },
		"delay":      func(p *Prm) { p.RanksDelay = -time.Second },
	} {
		t.Run(name, func(t *testing.T) {
			prm := validPrm(t)
			mod(&prm)
			require.ErrorIs(t, checkPrm(prm), errInvalidPrm)

			_, err := Deploy(context.Background(), prm)
			require.ErrorIs(t, err, errInvalidPrm)
		})
	}

	t.Run("update ignores initial settings", func(t *testing.T) {
		prm := validPrm(t)
		prm.Address = util.Uint160{1}
		prm.Owner = util.Uint160{}
		prm.RanksDelay = -time.Second
		require.NoError(t, checkPrm(prm))
	})
}

func TestDeployArgs(t *testing.T) {
	prm := validPrm(t)
	prm.Executor = util.Uint160{2}

	require.Equal(t, []any{
		prm.Owner,
		util.Uint160{2},
		int64(6 * 24 * 60 * 60 * 1000),
		"Fractal Respect",
		"FR",
	}, deployArgs(prm))
}

func TestIsErrContractNotFound(t *testing.T) {
	require.False(t, isErrContractNotFound(nil))
	require.False(t, isErrContractNotFound(errors.New("connection refused")))
	require.True(t, isErrContractNotFound(errors.New("Unknown contract (-102)")))
}

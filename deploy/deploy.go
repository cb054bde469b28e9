// Package deploy provides deployment procedure of the Respect contract.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/nspcc-dev/respect-contract/contracts"
	"github.com/nspcc-dev/respect-contract/rpc/respect"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the contract deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to
	// the blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// Prm groups all parameters of the deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy the contract to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	// It must be the contract owner to update the contract.
	LocalAccount *wallet.Account

	// Compiled contract.
	Contract contracts.Contract

	// Address of the already deployed contract to update. Zero address means
	// the contract is deployed from LocalAccount.
	Address util.Uint160

	// Initial contract settings, ignored on update.
	Owner      util.Uint160
	Executor   util.Uint160
	RanksDelay time.Duration
	Name       string
	Symbol     string
}

var errInvalidPrm = errors.New("invalid deployment parameters")

// txWaiter awaits transaction execution.
type txWaiter interface {
	Wait(h util.Uint256, vub uint32, err error) (*state.AppExecResult, error)
}

// Deploy makes the local contract version present on the chain: it deploys the
// contract if it is missing or updates the one at Prm.Address if its NEF differs
// from the local one. Deploy returns the on-chain contract address.
func Deploy(ctx context.Context, prm Prm) (util.Uint160, error) {
	if err := checkPrm(prm); err != nil {
		return util.Uint160{}, err
	}

	act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	if !prm.Address.Equals(util.Uint160{}) {
		return prm.Address, updateContract(ctx, prm, act)
	}

	addr := state.CreateContractHash(act.Sender(), prm.Contract.NEF.Checksum, prm.Contract.Manifest.Name)
	l := prm.Logger.With(zap.Stringer("address", addr))

	_, err = prm.Blockchain.GetContractStateByHash(addr)
	if err == nil {
		l.Info("contract is already deployed")
		return addr, nil
	}
	if !isErrContractNotFound(err) {
		return util.Uint160{}, fmt.Errorf("get contract state: %w", err)
	}

	l.Info("contract is missing on the chain, deploying...")

	txHash, vub, err := management.New(act).Deploy(&prm.Contract.NEF, &prm.Contract.Manifest, deployArgs(prm))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("send deploy transaction: %w", err)
	}

	l.Info("deploy transaction sent, waiting...", zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	err = awaitTx(ctx, act, txHash, vub)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("deploy contract: %w", err)
	}

	l.Info("contract successfully deployed")
	return addr, nil
}

func updateContract(ctx context.Context, prm Prm, act *actor.Actor) error {
	l := prm.Logger.With(zap.Stringer("address", prm.Address))

	st, err := prm.Blockchain.GetContractStateByHash(prm.Address)
	if err != nil {
		return fmt.Errorf("get contract state: %w", err)
	}

	if st.NEF.Checksum == prm.Contract.NEF.Checksum {
		l.Info("contract is already up to date")
		return nil
	}

	bNEF, jManifest, err := prm.Contract.Marshal()
	if err != nil {
		return err
	}

	l.Info("on-chain contract differs from the local one, updating...",
		zap.Uint32("on-chain checksum", st.NEF.Checksum), zap.Uint32("local checksum", prm.Contract.NEF.Checksum))

	txHash, vub, err := respect.New(act, prm.Address).Update(bNEF, jManifest, nil)
	if err != nil {
		return fmt.Errorf("send update transaction: %w", err)
	}

	l.Info("update transaction sent, waiting...", zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	err = awaitTx(ctx, act, txHash, vub)
	if err != nil {
		return fmt.Errorf("update contract: %w", err)
	}

	l.Info("contract successfully updated")
	return nil
}

func checkPrm(prm Prm) error {
	switch {
	case prm.Logger == nil:
		return fmt.Errorf("%w: missing logger", errInvalidPrm)
	case prm.Blockchain == nil:
		return fmt.Errorf("%w: missing blockchain", errInvalidPrm)
	case prm.LocalAccount == nil:
		return fmt.Errorf("%w: missing local account", errInvalidPrm)
	case prm.Contract.Manifest.Name == "":
		return fmt.Errorf("%w: missing contract", errInvalidPrm)
	}

	if !prm.Address.Equals(util.Uint160{}) {
		return nil
	}

	switch {
	case prm.Owner.Equals(util.Uint160{}):
		return fmt.Errorf("%w: missing owner", errInvalidPrm)
	case prm.RanksDelay < 0:
		return fmt.Errorf("%w: negative ranks delay %s", errInvalidPrm, prm.RanksDelay)
	}
	return nil
}

func deployArgs(prm Prm) []any {
	return []any{
		prm.Owner,
		prm.Executor,
		prm.RanksDelay.Milliseconds(),
		prm.Name,
		prm.Symbol,
	}
}

func isErrContractNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Unknown contract")
}

// awaitTx waits for the transaction to be accepted and checks that it has
// been executed successfully. It stops waiting when ctx is done.
func awaitTx(ctx context.Context, w txWaiter, txHash util.Uint256, vub uint32) error {
	type waitResult struct {
		res *state.AppExecResult
		err error
	}

	ch := make(chan waitResult, 1)
	go func() {
		res, err := w.Wait(txHash, vub, nil)
		ch <- waitResult{res, err}
	}()

	var r waitResult
	select {
	case <-ctx.Done():
		return fmt.Errorf("wait for transaction %s: %w", txHash, ctx.Err())
	case r = <-ch:
	}

	if r.err != nil {
		return fmt.Errorf("wait for transaction %s: %w", txHash, r.err)
	}
	if r.res.VMState != vmstate.Halt {
		return respect.ResolveFault(fmt.Errorf("transaction %s failed: %s", txHash, r.res.FaultException))
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/nspcc-dev/respect-contract/rpc/respect"
	"github.com/nspcc-dev/respect-contract/tokenid"
)

// wrapper over rpcNeo providing services needed for Respect commands.
type remoteBlockchain struct {
	rpc *rpcclient.Client
}

// newRemoteBlockchain dials Neo RPC server and returns remoteBlockchain based
// on the opened connection. Connection and all requests are done within the
// configured timeout.
func newRemoteBlockchain(ctx context.Context, cfg config) (*remoteBlockchain, error) {
	if cfg.RPCEndpoint == "" {
		return nil, errors.New("missing Neo RPC endpoint")
	}

	c, err := rpcclient.New(ctx, cfg.RPCEndpoint, rpcclient.Options{
		DialTimeout:    cfg.Timeout,
		RequestTimeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = c.Init()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("RPC client init: %w", err)
	}

	return &remoteBlockchain{rpc: c}, nil
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
}

func contractAddress(cfg config) (util.Uint160, error) {
	if cfg.Contract == "" {
		return util.Uint160{}, errors.New("missing Respect contract address")
	}
	h, err := tokenid.ParseOwner(cfg.Contract)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid contract address: %w", err)
	}
	return h, nil
}

// reader returns read-only Respect contract client.
func (x *remoteBlockchain) reader(cfg config) (*respect.ContractReader, error) {
	h, err := contractAddress(cfg)
	if err != nil {
		return nil, err
	}
	return respect.NewReader(invoker.New(x.rpc, nil), h), nil
}

// historicReader returns read-only Respect contract client bound to the
// state of the latest block. RPC node must keep historic states.
func (x *remoteBlockchain) historicReader(cfg config) (*respect.ContractReader, error) {
	h, err := contractAddress(cfg)
	if err != nil {
		return nil, err
	}

	n, err := x.rpc.GetBlockCount()
	if err != nil {
		return nil, fmt.Errorf("get number of the latest block: %w", err)
	}
	return respect.NewReader(invoker.NewHistoricAtHeight(n-1, x.rpc, nil), h), nil
}

// actor returns actor signing transactions with the configured wallet account.
func (x *remoteBlockchain) actor(cfg config) (*actor.Actor, *wallet.Account, error) {
	acc, err := openAccount(cfg)
	if err != nil {
		return nil, nil, err
	}

	act, err := actor.NewSimple(x.rpc, acc)
	if err != nil {
		return nil, nil, fmt.Errorf("init actor: %w", err)
	}
	return act, acc, nil
}

// openAccount reads and decrypts wallet account. Password is taken from the
// environment.
func openAccount(cfg config) (*wallet.Account, error) {
	if cfg.Wallet == "" {
		return nil, errors.New("missing wallet")
	}

	w, err := wallet.NewWalletFromFile(cfg.Wallet)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}
	defer w.Close()

	if len(w.Accounts) == 0 {
		return nil, fmt.Errorf("wallet %s has no accounts", cfg.Wallet)
	}

	acc := w.Accounts[0]
	if cfg.Account != "" {
		h, err := tokenid.ParseOwner(cfg.Account)
		if err != nil {
			return nil, fmt.Errorf("invalid account: %w", err)
		}
		acc = w.GetAccount(h)
		if acc == nil {
			return nil, fmt.Errorf("account %s is missing in wallet %s", cfg.Account, cfg.Wallet)
		}
	}

	err = acc.Decrypt(os.Getenv(passwordEnv), w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt account %s: %w", acc.Address, err)
	}
	return acc, nil
}

// iterateContractStorage iterates over all storage items of the Neo smart
// contract referenced by given address and passes them into f.
// iterateContractStorage breaks on any f's error and returns it.
func (x *remoteBlockchain) iterateContractStorage(contract util.Uint160, f func(key, value []byte) error) error {
	nLatestBlock, err := x.rpc.GetBlockCount()
	if err != nil {
		return fmt.Errorf("get number of the latest block: %w", err)
	}

	stateRoot, err := x.rpc.GetStateRootByHeight(nLatestBlock - 1)
	if err != nil {
		return fmt.Errorf("get state root at penult block #%d: %w", nLatestBlock-1, err)
	}

	var start []byte

	for {
		res, err := x.rpc.FindStates(stateRoot.Root, contract, nil, start, nil)
		if err != nil {
			return fmt.Errorf("get historical storage items of the requested contract at state root '%s': %w", stateRoot.Root, err)
		}

		for i := range res.Results {
			err = f(res.Results[i].Key, res.Results[i].Value)
			if err != nil {
				return err
			}
		}

		if !res.Truncated {
			return nil
		}

		start = res.Results[len(res.Results)-1].Key
	}
}

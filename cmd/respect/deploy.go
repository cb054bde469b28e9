package main

import (
	"fmt"
	"time"

	"github.com/nspcc-dev/respect-contract/contracts"
	"github.com/nspcc-dev/respect-contract/deploy"
	"github.com/nspcc-dev/respect-contract/tokenid"
	"github.com/spf13/cobra"
)

func newDeployCmd(a *app) *cobra.Command {
	var (
		dir        string
		owner      string
		executor   string
		ranksDelay time.Duration
		name       string
		symbol     string
		update     bool
	)
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy Respect contract or update the configured one",
		Long: `deploy deploys compiled Respect contract from the given directory. With
--update it updates the contract configured by --contract instead, the
wallet account must be the contract owner then.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := contracts.ReadDir(dir)
			if err != nil {
				return err
			}

			b, err := newRemoteBlockchain(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			defer b.close()

			acc, err := openAccount(a.cfg)
			if err != nil {
				return err
			}

			prm := deploy.Prm{
				Logger:       a.log,
				Blockchain:   b.rpc,
				LocalAccount: acc,
				Contract:     c,
				RanksDelay:   ranksDelay,
				Name:         name,
				Symbol:       symbol,
			}

			if update {
				prm.Address, err = contractAddress(a.cfg)
				if err != nil {
					return err
				}
			} else {
				prm.Owner = acc.ScriptHash()
				if owner != "" {
					prm.Owner, err = tokenid.ParseOwner(owner)
					if err != nil {
						return fmt.Errorf("invalid owner: %w", err)
					}
				}
				if executor != "" {
					prm.Executor, err = tokenid.ParseOwner(executor)
					if err != nil {
						return fmt.Errorf("invalid executor: %w", err)
					}
				}
			}

			addr, err := deploy.Deploy(cmd.Context(), prm)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Contract: %s\n", addr.StringLE())
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&dir, "dir", contracts.RespectDir, "directory with contract.nef and manifest.json")
	f.StringVar(&owner, "owner", "", "contract owner, the wallet account by default")
	f.StringVar(&executor, "executor", "", "account allowed to submit ranks besides the owner")
	f.DurationVar(&ranksDelay, "ranks-delay", 6*24*time.Hour, "minimum time between rank submissions")
	f.StringVar(&name, "name", "Respect", "ledger name")
	f.StringVar(&symbol, "symbol", "RESPECT", "ledger symbol")
	f.BoolVar(&update, "update", false, "update the configured contract")
	return cmd
}

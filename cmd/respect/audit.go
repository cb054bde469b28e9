package main

import (
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/respect-contract/rpc/respect"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAuditCmd(a *app) *cobra.Command {
	var (
		historic bool
		balances bool
	)
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Recompute ledger totals from individual tokens and compare them with stored ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := newRemoteBlockchain(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			defer b.close()

			var r *respect.ContractReader
			if historic {
				r, err = b.historicReader(a.cfg)
			} else {
				r, err = b.reader(a.cfg)
			}
			if err != nil {
				return err
			}

			rep, err := r.Audit()
			if rep != nil {
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Tokens: %d (stored %s)\n", rep.Tokens, rep.TokenSupply)
				fmt.Fprintf(w, "Values: %s (stored %s)\n", rep.Sum, rep.TotalSupply)
				fmt.Fprintf(w, "Owners: %d\n", len(rep.Balances))
			}
			if err != nil {
				return err
			}

			if balances {
				err = r.CheckBalances(rep)
				if err != nil {
					return err
				}
				for owner, bal := range rep.Balances {
					a.log.Debug("balance verified", zap.String("owner", address.Uint160ToString(owner)), zap.Stringer("balance", bal))
				}
			}

			a.log.Info("ledger is consistent")
			return nil
		},
	}
	cmd.Flags().BoolVar(&historic, "historic", false, "read the state of the latest block with historic calls (node must keep old states)")
	cmd.Flags().BoolVar(&balances, "balances", true, "also check balances of all owners")
	return cmd
}

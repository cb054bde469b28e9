package main

import (
	"fmt"
	"math/big"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/respect-contract/rpc/respect"
	"github.com/nspcc-dev/respect-contract/tokenid"
	"github.com/spf13/cobra"
)

// withReader opens connection to the blockchain and passes contract reader
// into f.
func (a *app) withReader(cmd *cobra.Command, f func(*respect.ContractReader) error) error {
	b, err := newRemoteBlockchain(cmd.Context(), a.cfg)
	if err != nil {
		return err
	}
	defer b.close()

	r, err := b.reader(a.cfg)
	if err != nil {
		return err
	}
	return f(r)
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print contract settings and ledger totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withReader(cmd, func(r *respect.ContractReader) error {
				w := cmd.OutOrStdout()

				for _, s := range []struct {
					name string
					get  func() (string, error)
				}{
					{"Name", r.Name},
					{"Symbol", r.Symbol},
					{"Intent", r.Intent},
					{"Agreement", r.Agreement},
				} {
					v, err := s.get()
					if err != nil {
						return fmt.Errorf("get %s: %w", s.name, err)
					}
					fmt.Fprintf(w, "%s: %s\n", s.name, v)
				}

				for _, s := range []struct {
					name string
					get  func() (util.Uint160, error)
				}{
					{"Owner", r.Owner},
					{"Executor", r.Executor},
				} {
					v, err := s.get()
					if err != nil {
						return fmt.Errorf("get %s: %w", s.name, err)
					}
					fmt.Fprintf(w, "%s: %s\n", s.name, formatAccount(v))
				}

				for _, s := range []struct {
					name string
					get  func() (*big.Int, error)
				}{
					{"Period", r.PeriodNumber},
					{"Token supply", r.TokenSupply},
					{"Total supply", r.TotalSupply},
				} {
					v, err := s.get()
					if err != nil {
						return fmt.Errorf("get %s: %w", s.name, err)
					}
					fmt.Fprintf(w, "%s: %s\n", s.name, v)
				}

				delay, err := r.RanksDelay()
				if err != nil {
					return fmt.Errorf("get ranks delay: %w", err)
				}
				fmt.Fprintf(w, "Ranks delay: %s\n", time.Duration(delay.Int64())*time.Millisecond)

				last, err := r.LastRanksTime()
				if err != nil {
					return fmt.Errorf("get last ranks time: %w", err)
				}
				fmt.Fprintf(w, "Last ranks: %s\n", formatBlockTime(last))
				return nil
			})
		},
	}
}

func newBalanceCmd(a *app) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "balance <account>",
		Short: "Print the sum of token values of the account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := tokenid.ParseOwner(args[0])
			if err != nil {
				return err
			}

			return a.withReader(cmd, func(r *respect.ContractReader) error {
				balance, err := r.BalanceOf(owner)
				if err != nil {
					return fmt.Errorf("get balance: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Balance: %s\n", balance)

				if !list {
					return nil
				}

				ids, err := r.AllTokensOf(owner)
				if err != nil {
					return fmt.Errorf("list tokens: %w", err)
				}
				for _, raw := range ids {
					id, err := tokenid.FromBytes(raw)
					if err != nil {
						return err
					}
					value, err := r.ValueOfToken(raw)
					if err != nil {
						return fmt.Errorf("get value of %s: %w", id, err)
					}
					d := id.Data()
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tperiod %d\t%s\n", id, d.Kind, d.Period, value)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list tokens of the account")
	return cmd
}

func newTokenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "token <id>",
		Short: "Print properties of the minted token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTokenID(args[0])
			if err != nil {
				return err
			}

			return a.withReader(cmd, func(r *respect.ContractReader) error {
				p, err := r.Properties(id.Bytes())
				if err != nil {
					return err
				}
				printTokenID(cmd.OutOrStdout(), id)
				fmt.Fprintf(cmd.OutOrStdout(), "Value:   %s\n", p.Value)
				return nil
			})
		},
	}
}

func formatAccount(h util.Uint160) string {
	if h.Equals(util.Uint160{}) {
		return "none"
	}
	return address.Uint160ToString(h)
}

func formatBlockTime(ms *big.Int) string {
	if ms.Sign() == 0 {
		return "never"
	}
	return time.UnixMilli(ms.Int64()).UTC().Format(time.RFC3339)
}

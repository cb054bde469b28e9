package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/respect-contract/contracts/respect/respectconst"
	"github.com/nspcc-dev/respect-contract/rpc/respect"
	"github.com/nspcc-dev/respect-contract/tokenid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ranksFile is a YAML file with breakout group rankings of a single period.
//
//	groups:
//	  - group: 1
//	    ranks: ["", "", "", "NZ...", "NV...", "Nb..."]
//
// Ranks are listed from the lowest to the highest, empty strings mark
// unfilled slots.
type ranksFile struct {
	Groups []struct {
		Group int64    `yaml:"group"`
		Ranks []string `yaml:"ranks"`
	} `yaml:"groups"`
}

var errInvalidRanks = errors.New("invalid ranks file")

func readRanksFile(path string) ([]respect.GroupRanks, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ranks file: %w", err)
	}
	defer f.Close()

	return decodeRanks(f)
}

// decodeRanks parses a rank submission and checks it the way the contract
// does, so obviously broken submissions never reach the network.
func decodeRanks(r io.Reader) ([]respect.GroupRanks, error) {
	var rf ranksFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(&rf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidRanks, err)
	}
	if len(rf.Groups) == 0 {
		return nil, fmt.Errorf("%w: no groups", errInvalidRanks)
	}

	var (
		res  = make([]respect.GroupRanks, len(rf.Groups))
		seen = make(map[util.Uint160]int64)
	)
	for i, g := range rf.Groups {
		if len(g.Ranks) != respectconst.RanksPerGroup {
			return nil, fmt.Errorf("%w: group %d has %d ranks instead of %d",
				errInvalidRanks, g.Group, len(g.Ranks), respectconst.RanksPerGroup)
		}

		res[i].GroupNum = g.Group

		var ranked int
		for j, s := range g.Ranks {
			if strings.TrimSpace(s) == "" {
				continue
			}

			acc, err := tokenid.ParseOwner(s)
			if err != nil {
				return nil, fmt.Errorf("%w: group %d, rank %d: %w", errInvalidRanks, g.Group, j+1, err)
			}
			if acc.Equals(util.Uint160{}) {
				continue
			}
			if other, ok := seen[acc]; ok {
				return nil, fmt.Errorf("%w: %s is ranked in groups %d and %d", errInvalidRanks, s, other, g.Group)
			}
			seen[acc] = g.Group

			res[i].Ranks[j] = acc
			ranked++
		}

		if ranked < respectconst.MinRanksPerGroup {
			return nil, fmt.Errorf("%w: group %d has %d ranked accounts, at least %d required",
				errInvalidRanks, g.Group, ranked, respectconst.MinRanksPerGroup)
		}
	}
	return res, nil
}

func newSubmitRanksCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "submit-ranks <ranks.yml>",
		Short: "Submit breakout group rankings of the next period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			groups, err := readRanksFile(args[0])
			if err != nil {
				return err
			}

			b, err := newRemoteBlockchain(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			defer b.close()

			h, err := contractAddress(a.cfg)
			if err != nil {
				return err
			}
			act, acc, err := b.actor(a.cfg)
			if err != nil {
				return err
			}

			c := respect.New(act, h)
			l := a.log.With(zap.String("account", acc.Address), zap.Int("groups", len(groups)))

			if dryRun {
				tx, err := c.SubmitRanksTransaction(groups)
				if err != nil {
					return err
				}
				l.Info("submission is valid", zap.Int64("system fee", tx.SystemFee), zap.Int64("network fee", tx.NetworkFee))
				return nil
			}

			txHash, vub, err := c.SubmitRanks(groups)
			if err != nil {
				return err
			}
			l.Info("ranks submitted, waiting...", zap.Stringer("tx", txHash))

			res, err := act.Wait(txHash, vub, nil)
			if err != nil {
				return fmt.Errorf("wait for transaction %s: %w", txHash, err)
			}
			if res.VMState != vmstate.Halt {
				return respect.ResolveFault(fmt.Errorf("transaction %s failed: %s", txHash, res.FaultException))
			}

			events, err := respect.RanksSubmittedEventsFromApplicationLog(&result.ApplicationLog{
				Container:  res.Container,
				Executions: []state.Execution{res.Execution},
			})
			if err != nil {
				return err
			}
			for _, e := range events {
				fmt.Fprintf(cmd.OutOrStdout(), "Period %s: %s tokens minted\n", e.Period, e.Count)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only check the submission against the current contract state")
	return cmd
}

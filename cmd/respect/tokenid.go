package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/respect-contract/tokenid"
	"github.com/spf13/cobra"
)

func newTokenIDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenid",
		Short: "Pack and unpack token identifiers",
	}

	var (
		kind   uint8
		period uint64
		owner  string
	)
	pack := &cobra.Command{
		Use:   "pack",
		Short: "Pack token identifier from its fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := tokenid.Normalize(tokenid.Record{Kind: tokenid.MintKind(kind), Period: period, Owner: owner})
			if err != nil {
				return err
			}
			printTokenID(cmd.OutOrStdout(), tokenid.Pack(d))
			return nil
		},
	}
	pack.Flags().Uint8Var(&kind, "kind", uint8(tokenid.KindRanks), "mint kind")
	pack.Flags().Uint64Var(&period, "period", 0, "period number")
	pack.Flags().StringVar(&owner, "owner", "", "owner address or script hash")
	_ = pack.MarkFlagRequired("owner")

	unpack := &cobra.Command{
		Use:   "unpack <id>",
		Short: "Unpack base58 or hex token identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTokenID(args[0])
			if err != nil {
				return err
			}
			printTokenID(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.AddCommand(pack, unpack)
	return cmd
}

// parseTokenID accepts base58 and hex (optionally 0x-prefixed) forms.
func parseTokenID(s string) (tokenid.ID, error) {
	s = strings.TrimSpace(s)
	if h, ok := strings.CutPrefix(s, "0x"); ok {
		return tokenid.DecodeHex(h)
	}
	if len(s) == 2*tokenid.Size {
		if id, err := tokenid.DecodeHex(s); err == nil {
			return id, nil
		}
	}
	return tokenid.DecodeString(s)
}

func printTokenID(w io.Writer, id tokenid.ID) {
	d := id.Data()
	fmt.Fprintf(w, "ID:      %s\n", id)
	fmt.Fprintf(w, "Hex:     %s\n", id.Hex())
	fmt.Fprintf(w, "Kind:    %d (%s)\n", uint8(d.Kind), d.Kind)
	fmt.Fprintf(w, "Period:  %d\n", d.Period)
	fmt.Fprintf(w, "Owner:   %s (%s)\n", address.Uint160ToString(d.Owner), d.Owner.StringLE())
}

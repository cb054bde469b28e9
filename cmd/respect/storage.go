package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/respect-contract/tokenid"
	"github.com/spf13/cobra"
)

// Storage key prefixes of the Respect contract.
const (
	prefixToken        = 0x01
	prefixAccountToken = 0x02
	prefixBalance      = 0x03
)

func newStorageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "storage",
		Short: "Dump decoded contract storage at the latest state root",
		Long: `storage reads all storage items of the contract using historical state
requests, so the RPC node must keep state roots (KeepOnlyLatestState disabled).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := contractAddress(a.cfg)
			if err != nil {
				return err
			}

			b, err := newRemoteBlockchain(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			defer b.close()

			w := cmd.OutOrStdout()
			return b.iterateContractStorage(h, func(key, value []byte) error {
				return printStorageItem(w, key, value)
			})
		},
	}
}

func printStorageItem(w io.Writer, key, value []byte) error {
	if len(key) == 0 {
		return errors.New("empty storage key")
	}

	switch key[0] {
	case prefixToken:
		id, err := tokenid.FromBytes(key[1:])
		if err != nil {
			return fmt.Errorf("token key: %w", err)
		}
		fmt.Fprintf(w, "token %s = %s\n", id, storedInt(value))
	case prefixAccountToken:
		if len(key) != 1+util.Uint160Size+tokenid.Size {
			return fmt.Errorf("invalid account token key length %d", len(key))
		}
		owner, err := util.Uint160DecodeBytesBE(key[1 : 1+util.Uint160Size])
		if err != nil {
			return err
		}
		id, err := tokenid.FromBytes(key[1+util.Uint160Size:])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "owned %s %s\n", address.Uint160ToString(owner), id)
	case prefixBalance:
		owner, err := util.Uint160DecodeBytesBE(key[1:])
		if err != nil {
			return fmt.Errorf("balance key: %w", err)
		}
		fmt.Fprintf(w, "balance %s = %s\n", address.Uint160ToString(owner), storedInt(value))
	default:
		fmt.Fprintf(w, "%s = %s\n", key, formatSettingValue(string(key), value))
	}
	return nil
}

func formatSettingValue(key string, value []byte) string {
	switch key {
	case "owner", "executor":
		h, err := util.Uint160DecodeBytesBE(value)
		if err != nil {
			return hex.EncodeToString(value)
		}
		return address.Uint160ToString(h)
	case "name", "symbol", "intent", "agreement":
		return fmt.Sprintf("%q", value)
	case "ranksDelay", "lastRanksTime", "periodNumber", "tokenSupply", "totalSupply":
		return storedInt(value).String()
	default:
		return hex.EncodeToString(value)
	}
}


// storedInt decodes integer storage value. Zero is stored as an empty value
// which RPC may return as nil.
func storedInt(value []byte) *big.Int {
	if len(value) == 0 {
		return new(big.Int)
	}
	return bigint.FromBytes(value)
}

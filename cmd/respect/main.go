package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app holds state shared by all commands.
type app struct {
	cfg     config
	cfgPath string
	debug   bool
	log     *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := new(app)

	root := &cobra.Command{
		Use:           "respect",
		Short:         "Command-line interface for Respect contract",
		Long:          `respect queries Respect contract, submits breakout group ranks and deploys the contract.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgPath, "config", "c", "", "path to YAML configuration file")
	pf.StringP(flagRPC, "r", "", "Neo RPC endpoint")
	pf.String(flagContract, "", "Respect contract address (LE hex or Neo address)")
	pf.StringP(flagWallet, "w", "", "path to NEP-6 wallet")
	pf.StringP(flagAccount, "a", "", "wallet account address, the first one is used by default")
	pf.Duration(flagTimeout, defaultTimeout, "RPC dial and request timeout")
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newTokenIDCmd(),
		newInfoCmd(a),
		newBalanceCmd(a),
		newTokenCmd(a),
		newSubmitRanksCmd(a),
		newAuditCmd(a),
		newDeployCmd(a),
		newStorageCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	var err error
	if a.debug {
		a.log, err = zap.NewDevelopment()
	} else {
		a.log, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	a.cfg, err = loadConfig(a.cfgPath)
	if err != nil {
		return err
	}
	return a.cfg.applyFlags(cmd)
}

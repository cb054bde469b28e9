package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	flagRPC      = "rpc"
	flagContract = "contract"
	flagWallet   = "wallet"
	flagAccount  = "account"
	flagTimeout  = "timeout"

	defaultTimeout = 15 * time.Second

	// Wallet password is never read from flags or files.
	passwordEnv = "RESPECT_WALLET_PASSWORD"
)

// config is the CLI configuration file format. Command-line flags override
// values from the file.
type config struct {
	RPCEndpoint string        `yaml:"rpc_endpoint"`
	Timeout     time.Duration `yaml:"timeout"`
	Contract    string        `yaml:"contract"`
	Wallet      string        `yaml:"wallet"`
	Account     string        `yaml:"account"`
}

func loadConfig(path string) (config, error) {
	cfg := config{Timeout: defaultTimeout}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("decode config file %s: %w", path, err)
	}
	if cfg.Timeout <= 0 {
		return cfg, fmt.Errorf("invalid timeout %s in %s", cfg.Timeout, path)
	}
	return cfg, nil
}

func (c *config) applyFlags(cmd *cobra.Command) error {
	fs := cmd.Flags()
	for name, dst := range map[string]*string{
		flagRPC:      &c.RPCEndpoint,
		flagContract: &c.Contract,
		flagWallet:   &c.Wallet,
		flagAccount:  &c.Account,
	} {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if fs.Changed(flagTimeout) {
		v, err := fs.GetDuration(flagTimeout)
		if err != nil {
			return err
		}
		if v <= 0 {
			return errors.New("timeout must be positive")
		}
		c.Timeout = v
	}
	return nil
}

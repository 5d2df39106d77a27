package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/screa/pr000xy-miner/internal/config"
	"github.com/screa/pr000xy-miner/internal/crypto"
	"github.com/screa/pr000xy-miner/pkg/pattern"
	"github.com/screa/pr000xy-miner/pkg/reward"
	"github.com/spf13/cobra"
)

var errNoSalt = errors.New("must specify --salt")

// newVerifyCmd re-derives the address of a salt offline, the way the factory
// would, and scores it.
func newVerifyCmd() *cobra.Command {
	vc := config.NewConfig()
	var salt string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Derive, score and optionally match the proxy address of a salt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if salt == "" {
				return errNoSalt
			}
			return runVerify(cmd.OutOrStdout(), vc, salt)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&salt, "salt", "s", "", "32 byte salt (hex)")
	flags.StringVarP(&vc.Factory, "factory", "f", config.DefaultFactory, "Pr000xy factory address")
	flags.StringVarP(&vc.Bytecode, "bytecode", "B", "", "Proxy init code (hex)")
	flags.StringVarP(&vc.BytecodeFile, "bytecode-file", "F", "", "File containing proxy init code (hex)")
	flags.StringVarP(&vc.InitCodeHash, "init-hash", "H", "", "Keccak-256 of the proxy init code (default: Pr000xy proxy)")
	flags.StringVarP(&vc.Pattern, "pattern", "p", "", "Pattern to check the address against")
	flags.StringVarP(&vc.Target, "target", "t", config.DefaultTarget, "Target address the pattern compares against")
	return cmd
}

func runVerify(w io.Writer, vc *config.Config, saltHex string) error {
	salt, err := crypto.ParseSalt(saltHex)
	if err != nil {
		return err
	}
	factory, err := crypto.ParseAddress(vc.Factory)
	if err != nil {
		return fmt.Errorf("factory: %w", err)
	}
	if err := vc.ValidateInitCode(); err != nil {
		return err
	}
	initCodeHash, err := vc.GetInitCodeHash()
	if err != nil {
		return fmt.Errorf("init code: %w", err)
	}

	addr := crypto.DeriveAddress(factory, salt, initCodeHash)
	score := reward.ScoreOf(addr)

	fmt.Fprintf(w, "submitter: 0x%x\n", salt[:crypto.SubmitterLen])
	fmt.Fprintf(w, "address:   %s\n", addr.Hex())
	fmt.Fprintf(w, "score:     %s\n", score)

	if vc.Pattern == "" {
		return nil
	}
	p, err := pattern.Compile(vc.Pattern)
	if err != nil {
		return err
	}
	target, err := crypto.ParseAddress(vc.Target)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}
	fmt.Fprintf(w, "match:     %t\n", p.Match(addr, target))
	return nil
}

// newScoreCmd prints the zero byte counts and reward of an address.
func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <address>",
		Short: "Count the zero bytes of an address and look up its reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.OutOrStdout(), args[0])
		},
	}
}

func runScore(w io.Writer, s string) error {
	addr, err := crypto.ParseAddress(s)
	if err != nil {
		return err
	}
	score := reward.ScoreOf(addr)
	fmt.Fprintf(w, "address: %s\n", addr.Hex())
	fmt.Fprintf(w, "leading: %d\n", score.Leading)
	fmt.Fprintf(w, "total:   %d\n", score.Total)
	fmt.Fprintf(w, "reward:  %s\n", score.Reward.Dec())
	fmt.Fprintf(w, "logged:  %t\n", reward.LikelyRewarding(addr))
	return nil
}

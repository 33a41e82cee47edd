// Package main is the entry point for the textbook-rsa-cli application.
// It initializes the root command and registers the key generation, primality,
// signature and forgery sub-commands, then executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/MGTheTrain/textbook-rsa/cmd/textbook-rsa-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "textbook-rsa-cli",
		Short: "Textbook RSA key generation and blinding forgery CLI tool",
		Long: `textbook-rsa-cli generates RSA primes independently or with the structure p-1 = c*q,
tests numbers for primality with Miller-Rabin, signs and verifies raw (unpadded) RSA signatures
and forges a signature on a message by blinding a query to a signing oracle.

Raw RSA signatures are multiplicative. This tool exists to demonstrate that and must not be
used to protect anything.`,
	}

	// Initialize all command groups BEFORE executing
	if err := initializeCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command) error {
	if err := commands.InitKeyGenCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize key generation commands: %w", err)
	}

	if err := commands.InitSignatureCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize signature commands: %w", err)
	}

	if err := commands.InitForgeryCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize forgery commands: %w", err)
	}

	return nil
}

// init sets up any necessary initialization before main runs.
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}

package commands

import (
	"fmt"

	"github.com/MGTheTrain/textbook-rsa/internal/app"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/utils"

	"github.com/spf13/cobra"
)

// KeyGenCommandHandler encapsulates logic for prime search and key generation via CLI.
type KeyGenCommandHandler struct {
	components *app.CryptoComponents
	logger     logger.Logger
}

// NewKeyGenCommandHandler initializes a new KeyGenCommandHandler with logging and the core components.
func NewKeyGenCommandHandler() (*KeyGenCommandHandler, error) {
	components, loggerInstance, err := setupComponents()
	if err != nil {
		return nil, err
	}

	return &KeyGenCommandHandler{
		components: components,
		logger:     loggerInstance,
	}, nil
}

// GenerateKeysCmd searches a prime pair, derives the key pair and prints n, p, q, e and d
func (commandHandler *KeyGenCommandHandler) GenerateKeysCmd(cmd *cobra.Command, _ []string) {
	opts, err := keyGenOptionsFromFlags(cmd)
	if err != nil {
		commandHandler.logger.Error("invalid key generation flags: ", err)
		return
	}
	hex, err := cmd.Flags().GetBool("hex")
	if err != nil {
		commandHandler.logger.Error("invalid hex flag: ", err)
		return
	}
	seed, err := cmd.Flags().GetString("seed")
	if err != nil {
		commandHandler.logger.Error("invalid seed flag: ", err)
		return
	}

	rnd, err := randomSource(seed)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	keyPair, err := commandHandler.components.KeyFactory.Generate(rnd, opts)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	pub, priv, primes := keyPair.Public(), keyPair.Private(), keyPair.Primes()
	values := []namedValue{
		{"n", pub.N},
		{"p", priv.P},
		{"q", priv.Q},
		{"e", pub.E},
		{"d", priv.D},
	}
	if primes.Cofactor != nil {
		values = append(values, namedValue{"c", primes.Cofactor})
	}

	printValues(cmd.OutOrStdout(), fmt.Sprintf("Generated %s keypair values", primes.Mode), hex, values...)
	commandHandler.logger.Info("Generated ", pub.N.BitLen(), "-bit modulus in ", primes.Mode, " mode")
}

// TestPrimeCmd runs Miller-Rabin on a candidate and reports the verdict
func (commandHandler *KeyGenCommandHandler) TestPrimeCmd(cmd *cobra.Command, _ []string) {
	candidateFlag, err := cmd.Flags().GetString("candidate")
	if err != nil {
		commandHandler.logger.Error("invalid candidate flag: ", err)
		return
	}
	rounds, err := cmd.Flags().GetInt("rounds")
	if err != nil {
		commandHandler.logger.Error("invalid rounds flag: ", err)
		return
	}
	seed, err := cmd.Flags().GetString("seed")
	if err != nil {
		commandHandler.logger.Error("invalid seed flag: ", err)
		return
	}

	candidate, err := utils.ParseBigInt(candidateFlag)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	rnd, err := randomSource(seed)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	prime, err := commandHandler.components.Tester.IsProbablyPrime(rnd, candidate, rounds)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	verdict := "composite"
	if prime {
		verdict = fmt.Sprintf("probably prime (error bound 4^-%d)", rounds)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", candidate.String(), verdict)
}

// GeneratePrimeCmd searches a single probable prime of the requested size
func (commandHandler *KeyGenCommandHandler) GeneratePrimeCmd(cmd *cobra.Command, _ []string) {
	bits, err := cmd.Flags().GetInt("bits")
	if err != nil {
		commandHandler.logger.Error("invalid bits flag: ", err)
		return
	}
	rounds, err := cmd.Flags().GetInt("rounds")
	if err != nil {
		commandHandler.logger.Error("invalid rounds flag: ", err)
		return
	}
	hex, err := cmd.Flags().GetBool("hex")
	if err != nil {
		commandHandler.logger.Error("invalid hex flag: ", err)
		return
	}
	seed, err := cmd.Flags().GetString("seed")
	if err != nil {
		commandHandler.logger.Error("invalid seed flag: ", err)
		return
	}

	rnd, err := randomSource(seed)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	prime, err := commandHandler.components.Generator.GeneratePrime(rnd, bits, rounds, config.DefaultMaxCandidates)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	printValues(cmd.OutOrStdout(), fmt.Sprintf("Generated %d-bit probable prime", prime.BitLen()), hex, namedValue{"p", prime})
}

// InitKeyGenCommands registers key generation and primality commands with the root command
func InitKeyGenCommands(rootCmd *cobra.Command) error {
	handler, err := NewKeyGenCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create key generation command handler %w", err)
	}

	var generateKeysCmd = &cobra.Command{
		Use:   "generate-keys",
		Short: "Generate a textbook RSA key pair",
		Run:   handler.GenerateKeysCmd,
	}
	addKeyGenFlags(generateKeysCmd, config.DefaultKeyGenSettings())
	generateKeysCmd.Flags().BoolP("hex", "", false, "Print values as hex dump, 32 bytes per line")
	rootCmd.AddCommand(generateKeysCmd)

	var generatePrimeCmd = &cobra.Command{
		Use:   "generate-prime",
		Short: "Generate a single probable prime",
		Run:   handler.GeneratePrimeCmd,
	}
	generatePrimeCmd.Flags().IntP("bits", "", 512, "Bit length of the prime")
	generatePrimeCmd.Flags().IntP("rounds", "", config.DefaultRounds, "Miller-Rabin rounds")
	generatePrimeCmd.Flags().BoolP("hex", "", false, "Print the prime as hex dump, 32 bytes per line")
	generatePrimeCmd.Flags().StringP("seed", "", "", "Seed for a reproducible run (insecure, testing only)")
	rootCmd.AddCommand(generatePrimeCmd)

	var testPrimeCmd = &cobra.Command{
		Use:   "test-prime",
		Short: "Test a number for primality with Miller-Rabin",
		Run:   handler.TestPrimeCmd,
	}
	testPrimeCmd.Flags().StringP("candidate", "", "", "Decimal or 0x-prefixed hexadecimal number to test")
	testPrimeCmd.Flags().IntP("rounds", "", 40, "Miller-Rabin rounds")
	testPrimeCmd.Flags().StringP("seed", "", "", "Seed for reproducible bases (insecure, testing only)")
	rootCmd.AddCommand(testPrimeCmd)

	return nil
}

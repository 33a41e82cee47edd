package commands

import (
	"fmt"
	"math/big"
	"time"

	"github.com/MGTheTrain/textbook-rsa/internal/app"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/infrastructure/connector"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/utils"

	"github.com/spf13/cobra"
)

// ForgeryCommandHandler encapsulates logic for the blinding forgery via CLI.
type ForgeryCommandHandler struct {
	components *app.CryptoComponents
	logger     logger.Logger
}

// NewForgeryCommandHandler initializes a new ForgeryCommandHandler with logging and the core components.
func NewForgeryCommandHandler() (*ForgeryCommandHandler, error) {
	components, loggerInstance, err := setupComponents()
	if err != nil {
		return nil, err
	}

	return &ForgeryCommandHandler{
		components: components,
		logger:     loggerInstance,
	}, nil
}

// ForgeCmd forges a signature on a message the oracle refuses to sign.
// Without --oracle-url a local oracle with a fresh key is attacked.
func (commandHandler *ForgeryCommandHandler) ForgeCmd(cmd *cobra.Command, _ []string) {
	messageFlag, err := cmd.Flags().GetString("message")
	if err != nil {
		commandHandler.logger.Error("invalid message flag: ", err)
		return
	}
	oracleURL, err := cmd.Flags().GetString("oracle-url")
	if err != nil {
		commandHandler.logger.Error("invalid oracle-url flag: ", err)
		return
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		commandHandler.logger.Error("invalid timeout flag: ", err)
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

	m, err := utils.ParseBigInt(messageFlag)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	rnd, err := randomSource(seed)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	var oracle cryptoalg.SigningOracle
	if oracleURL != "" {
		oracle, err = connector.NewHTTPOracleConnector(&config.OracleConnectorSettings{
			BaseURL: oracleURL,
			Timeout: timeout,
		}, commandHandler.logger)
		if err != nil {
			commandHandler.logger.Error(err)
			return
		}
	} else {
		opts, err := keyGenOptionsFromFlags(cmd)
		if err != nil {
			commandHandler.logger.Error("invalid key generation flags: ", err)
			return
		}

		keyPair, err := commandHandler.components.KeyFactory.Generate(rnd, opts)
		if err != nil {
			commandHandler.logger.Error(err)
			return
		}

		oracle, err = app.NewSigningOracleService(commandHandler.components.Engine, keyPair, nil, []*big.Int{m}, commandHandler.logger)
		if err != nil {
			commandHandler.logger.Error(err)
			return
		}
	}

	forgeryService, err := app.NewForgeryService(commandHandler.components.Forger, oracle, rnd, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	result, err := forgeryService.Forge(cmd.Context(), m)
	if err != nil {
		commandHandler.logger.Error(err)
		if result == nil {
			return
		}
	}

	fc := result.Context
	printValues(cmd.OutOrStdout(), fmt.Sprintf("Blinding forgery %s after %d attempt(s)", result.ID, result.Attempts), hex,
		namedValue{"m", result.Message},
		namedValue{"r", fc.R},
		namedValue{"r^e", fc.BlindedR},
		namedValue{"t = r^e*m", fc.Query},
		namedValue{"s' = t^d", fc.OracleOutput},
		namedValue{"s = s'/r", fc.Signature},
	)
	fmt.Fprintf(cmd.OutOrStdout(), "verified: %t\n", result.Verified)
}

// InitForgeryCommands registers forgery commands with the root command
func InitForgeryCommands(rootCmd *cobra.Command) error {
	handler, err := NewForgeryCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create forgery command handler %w", err)
	}

	var forgeCmd = &cobra.Command{
		Use:   "forge",
		Short: "Forge a raw RSA signature by blinding a query to a signing oracle",
		Run:   handler.ForgeCmd,
	}
	addKeyGenFlags(forgeCmd, independentDefaults())
	forgeCmd.Flags().StringP("message", "", "4", "Decimal or 0x-prefixed hexadecimal message the oracle refuses")
	forgeCmd.Flags().StringP("oracle-url", "", "", "Base URL of a remote textbook-rsa-rest-api oracle")
	forgeCmd.Flags().DurationP("timeout", "", 10*time.Second, "Timeout of each remote oracle request")
	forgeCmd.Flags().BoolP("hex", "", false, "Print values as hex dump, 32 bytes per line")
	rootCmd.AddCommand(forgeCmd)

	return nil
}

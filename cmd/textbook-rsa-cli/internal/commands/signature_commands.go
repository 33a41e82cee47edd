package commands

import (
	"fmt"

	"github.com/MGTheTrain/textbook-rsa/internal/app"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/utils"

	"github.com/spf13/cobra"
)

// SignatureCommandHandler encapsulates logic for raw RSA signatures via CLI.
type SignatureCommandHandler struct {
	components *app.CryptoComponents
	logger     logger.Logger
}

// NewSignatureCommandHandler initializes a new SignatureCommandHandler with logging and the core components.
func NewSignatureCommandHandler() (*SignatureCommandHandler, error) {
	components, loggerInstance, err := setupComponents()
	if err != nil {
		return nil, err
	}

	return &SignatureCommandHandler{
		components: components,
		logger:     loggerInstance,
	}, nil
}

// SignVerifyCmd generates a fresh key, signs a message with it and verifies the signature
func (commandHandler *SignatureCommandHandler) SignVerifyCmd(cmd *cobra.Command, _ []string) {
	opts, err := keyGenOptionsFromFlags(cmd)
	if err != nil {
		commandHandler.logger.Error("invalid key generation flags: ", err)
		return
	}
	messageFlag, err := cmd.Flags().GetString("message")
	if err != nil {
		commandHandler.logger.Error("invalid message flag: ", err)
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

	keyPair, err := commandHandler.components.KeyFactory.Generate(rnd, opts)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	s, err := commandHandler.components.Engine.Sign(m, keyPair.Private())
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	valid, err := commandHandler.components.Engine.Verify(m, s, keyPair.Public())
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	printValues(cmd.OutOrStdout(), "Raw RSA signature", hex,
		namedValue{"n", keyPair.Public().N},
		namedValue{"e", keyPair.Public().E},
		namedValue{"m", m},
		namedValue{"s", s},
	)
	fmt.Fprintf(cmd.OutOrStdout(), "valid: %t\n", valid)
}

// InitSignatureCommands registers signature commands with the root command
func InitSignatureCommands(rootCmd *cobra.Command) error {
	handler, err := NewSignatureCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create signature command handler %w", err)
	}

	var signVerifyCmd = &cobra.Command{
		Use:   "sign-verify",
		Short: "Sign a message with a fresh key and verify the raw signature",
		Run:   handler.SignVerifyCmd,
	}
	addKeyGenFlags(signVerifyCmd, independentDefaults())
	signVerifyCmd.Flags().StringP("message", "", "4", "Decimal or 0x-prefixed hexadecimal message in [0, n)")
	signVerifyCmd.Flags().BoolP("hex", "", false, "Print values as hex dump, 32 bytes per line")
	rootCmd.AddCommand(signVerifyCmd)

	return nil
}

package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// RestConfig holds the settings of the REST signing oracle.
type RestConfig struct {
	Port     string           `mapstructure:"port" validate:"required,numeric"`
	Logger   LoggerSettings   `mapstructure:"logger"`
	Database DatabaseSettings `mapstructure:"database"`
	KeyGen   KeyGenSettings   `mapstructure:"key_gen"`
	Oracle   OracleSettings   `mapstructure:"oracle"`
}

// Validate checks the RestConfig and every nested settings struct
func (c *RestConfig) Validate() error {
	validate := validator.New()
	if err := validate.Var(c.Port, "required,numeric"); err != nil {
		return fmt.Errorf("validation failed for port: %w", err)
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.KeyGen.Validate(); err != nil {
		return err
	}
	if err := c.Oracle.Validate(); err != nil {
		return err
	}
	return nil
}

// InitializeRestConfig reads the REST configuration from a YAML file.
// Environment variables prefixed with TRSA_ override file values, e.g. TRSA_KEY_GEN_MODULUS_BITS.
func InitializeRestConfig(path string) (*RestConfig, error) {
	v := viper.New()
	setRestDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("TRSA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setRestDefaults(v *viper.Viper) {
	keyGen := DefaultKeyGenSettings()

	v.SetDefault("port", "8080")
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("key_gen.mode", keyGen.Mode)
	v.SetDefault("key_gen.modulus_bits", keyGen.ModulusBits)
	v.SetDefault("key_gen.subprime_bits", keyGen.SubprimeBits)
	v.SetDefault("key_gen.rounds", keyGen.Rounds)
	v.SetDefault("key_gen.cofactor_step", keyGen.CofactorStep)
	v.SetDefault("key_gen.max_cofactor_attempts", keyGen.MaxCofactorAttempts)
	v.SetDefault("key_gen.max_subprime_attempts", keyGen.MaxSubprimeAttempts)
	v.SetDefault("key_gen.max_candidates", keyGen.MaxCandidates)
	v.SetDefault("key_gen.max_key_attempts", keyGen.MaxKeyAttempts)
	v.SetDefault("oracle.max_blinding_attempts", DefaultMaxBlindingAttempts)
}

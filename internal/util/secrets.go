package util

import (
	"fmt"
	"os"
	"strings"

	"portfolioanalyzer/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Secrets struct {
	Port int       `mapstructure:"port"`
	Db   DbSecrets `mapstructure:"db"`
	// HS256 secret used to verify identity tokens
	Jwt string `mapstructure:"jwt"`
	// optional csv replacing rows of the built-in scenario catalog
	CatalogOverridesPath string `mapstructure:"catalogOverridesPath"`
}

type DbSecrets struct {
	Host      string `mapstructure:"host"`
	User      string `mapstructure:"user"`
	Port      string `mapstructure:"port"`
	Password  string `mapstructure:"password"`
	Database  string `mapstructure:"database"`
	EnableSsl bool   `mapstructure:"enableSsl"`
}

func (t DbSecrets) ToConnectionStr() string {
	x := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		t.Host, t.Port, t.User, t.Password, t.Database)
	if !t.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

func secretsFile() string {
	if path := os.Getenv("PORTFOLIO_SECRETS_FILE"); path != "" {
		return path
	}
	switch strings.ToLower(os.Getenv(logger.EnvVar)) {
	case "dev":
		return "secrets-dev.json"
	case "test":
		return "secrets-test.json"
	}
	return "/go/src/app/secrets.json"
}

// LoadSecrets reads the secrets file for the current env. Any value can be
// overridden with a PORTFOLIO_ prefixed env var, e.g. PORTFOLIO_DB_HOST.
func LoadSecrets() (*Secrets, error) {
	// .env is optional, only used for local dev
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(secretsFile())
	v.SetConfigType("json")
	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("port", 3009)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read secrets file %s: %w", v.ConfigFileUsed(), err)
	}

	secrets := Secrets{}
	if err := v.Unmarshal(&secrets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal secrets: %w", err)
	}

	return &secrets, nil
}

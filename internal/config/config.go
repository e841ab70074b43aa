// Package config loads the application configuration: built-in defaults,
// optionally overridden by a YAML file.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Data Data `mapstructure:"data"`
	Log  Log  `mapstructure:"log"`
}

// Data locates the flat-file logs and derived outputs.
type Data struct {
	Dir              string `mapstructure:"dir"`
	UsersFile        string `mapstructure:"users_file"`
	TransactionsFile string `mapstructure:"transactions_file"`
	SavingsFile      string `mapstructure:"savings_file"`
	LoansFile        string `mapstructure:"loans_file"`
	RatesFile        string `mapstructure:"rates_file"`
	ReportsDir       string `mapstructure:"reports_dir"`
}

// Log configures the operational log sink.
type Log struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.users_file", "users.csv")
	v.SetDefault("data.transactions_file", "transactions.csv")
	v.SetDefault("data.savings_file", "savings.csv")
	v.SetDefault("data.loans_file", "loans.csv")
	v.SetDefault("data.rates_file", "rates.json")
	v.SetDefault("data.reports_dir", "reports")
	v.SetDefault("log.file", "ledger.log")
	v.SetDefault("log.level", "info")
}

// Load builds the configuration. path may be empty, in which case only the
// defaults apply; a named file that cannot be read or parsed is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("Load: reading config file: %w", err)
		}
	}
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("Load: parsing config: %w", err)
	}
	return cfg, nil
}

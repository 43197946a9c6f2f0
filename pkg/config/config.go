package config

import (
	"fmt"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config resolves where the vault, the daily documents, and the settings
// blob live.
type Config interface {
	VaultDir() string
	DailyDir() string
	BlobDir() string
}

// Load reads .micropost (yaml implicit) from MICROPOST_CONFIG_PATH, the
// working directory, or the home directory, with MICROPOST_* env overrides.
func Load() (Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("config: resolve home: %w", err)
	}

	viper.SetDefault("vault", ".")
	viper.SetDefault("daily", "daily")
	viper.SetDefault("blob", "~/.micropost.db")
	viper.SetConfigName(".micropost")
	viper.SetEnvPrefix("MICROPOST")
	viper.AutomaticEnv()

	if override := viper.GetString("config_path"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	viper.AddConfigPath(home)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	c := &fileConfig{
		Vault: viper.GetString("vault"),
		Daily: viper.GetString("daily"),
		Blob:  viper.GetString("blob"),
	}
	if c.Vault, err = homedir.Expand(c.Vault); err != nil {
		return nil, fmt.Errorf("config: expand vault path: %w", err)
	}
	if c.Blob, err = homedir.Expand(c.Blob); err != nil {
		return nil, fmt.Errorf("config: expand blob path: %w", err)
	}
	return c, nil
}

type fileConfig struct {
	Vault string `json:"vault"`
	Daily string `json:"daily"`
	Blob  string `json:"blob"`
}

func (f *fileConfig) VaultDir() string { return f.Vault }
func (f *fileConfig) DailyDir() string { return f.Daily }
func (f *fileConfig) BlobDir() string  { return f.Blob }

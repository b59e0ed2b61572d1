package store

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Backend selects which Store implementation Load opens.
type Backend string

const (
	// BackendFile keeps task documents on the local filesystem.
	BackendFile Backend = "file"
	// BackendFirestore talks to a Cloud Firestore tasks collection.
	BackendFirestore Backend = "firestore"
)

type Config interface {
	Backend() Backend
	BasePath() string
	Project() string
	Credentials() string
}

// LoadConfig reads .tick config (yaml is implicit) from TICK_CONFIG_PATH,
// the working directory, or $HOME, with TICK_* env overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("backend", string(BackendFile))
	viper.SetDefault("path", "~/.tick.db")
	viper.SetConfigName(".tick")
	viper.SetEnvPrefix("TICK")
	viper.AutomaticEnv()

	if override := os.Getenv("TICK_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")
	viper.AddConfigPath("$HOME")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	creds, err := homedir.Expand(viper.GetString("credentials"))
	if err != nil {
		return nil, fmt.Errorf("store: expand credentials path: %w", err)
	}

	return &fileConfig{
		backend:     Backend(viper.GetString("backend")),
		path:        path,
		project:     viper.GetString("project"),
		credentials: creds,
	}, nil
}

type fileConfig struct {
	backend     Backend
	path        string
	project     string
	credentials string
}

func (f *fileConfig) Backend() Backend    { return f.backend }
func (f *fileConfig) BasePath() string    { return f.path }
func (f *fileConfig) Project() string     { return f.project }
func (f *fileConfig) Credentials() string { return f.credentials }

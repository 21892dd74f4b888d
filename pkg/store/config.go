package store

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config locates the store on disk.
type Config interface {
	BasePath() string
}

// FileConfig is the configuration read from .postcard.yaml and POSTCARD_*
// environment variables.
type FileConfig struct {
	Path            string        `json:"path"`
	MaxBytes        int           `json:"maxBytes"`
	MaxComponents   int           `json:"maxComponents"`
	HistoryCapacity int           `json:"historyCapacity"`
	HistoryDebounce time.Duration `json:"historyDebounce"`
	Title           string        `json:"title"`
	Theme           string        `json:"theme"`
}

func (f *FileConfig) BasePath() string {
	return f.Path
}

// LoadConfig reads .postcard.yaml from $POSTCARD_CONFIG_PATH or the working
// directory. A missing file is not an error.
func LoadConfig() (*FileConfig, error) {
	v := viper.New()
	v.SetDefault("path", "~/.postcard")
	v.SetDefault("limits.maxBytes", 2<<20)
	v.SetDefault("limits.maxComponents", 200)
	v.SetDefault("history.capacity", 100)
	v.SetDefault("history.debounce", "300ms")
	v.SetDefault("title", "")
	v.SetDefault("theme", "")
	v.SetConfigName(".postcard") // .yaml is implicit
	v.SetEnvPrefix("POSTCARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("POSTCARD_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	return &FileConfig{
		Path:            path,
		MaxBytes:        v.GetInt("limits.maxBytes"),
		MaxComponents:   v.GetInt("limits.maxComponents"),
		HistoryCapacity: v.GetInt("history.capacity"),
		HistoryDebounce: v.GetDuration("history.debounce"),
		Title:           v.GetString("title"),
		Theme:           v.GetString("theme"),
	}, nil
}

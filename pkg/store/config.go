package store

import (
	"errors"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the runtime configuration of the stores and their collaborators.
type Config interface {
	// BasePath is the directory of the local document store.
	BasePath() string
	// RemotePath is the sqlite file backing the remote store. Empty disables it.
	RemotePath() string
	// User is the identity the remote document is keyed by.
	User() string
	// Debounce is the delay used to coalesce writes.
	Debounce() time.Duration
	// AdvisorCommand is the external program answering advisor prompts.
	AdvisorCommand() []string
	// LogLevel is the charmbracelet/log level name.
	LogLevel() string
}

// DefaultDebounce matches the delay used before a routine is written out.
const DefaultDebounce = 2 * time.Second

// LoadConfig reads .caddr.yaml and CADDR_* environment variables.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", "~/.caddr")
	v.SetDefault("remote", "")
	v.SetDefault("user", "")
	v.SetDefault("debounce", DefaultDebounce.String())
	v.SetDefault("advisor.command", []string{})
	v.SetDefault("log.level", "info")
	v.SetConfigName(".caddr") // .yaml is implicit
	v.SetEnvPrefix("CADDR")
	v.AutomaticEnv()

	if override := os.Getenv("CADDR_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}
	remote, err := homedir.Expand(v.GetString("remote"))
	if err != nil {
		return nil, err
	}
	debounce := v.GetDuration("debounce")
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Settings{
		Path:      path,
		Remote:    remote,
		UserID:    v.GetString("user"),
		Delay:     debounce,
		Advisor:   v.GetStringSlice("advisor.command"),
		Verbosity: v.GetString("log.level"),
	}, nil
}

// Settings is a plain Config value. LoadConfig returns one.
type Settings struct {
	Path      string        `json:"path"`
	Remote    string        `json:"remote,omitempty"`
	UserID    string        `json:"user,omitempty"`
	Delay     time.Duration `json:"debounce"`
	Advisor   []string      `json:"advisor,omitempty"`
	Verbosity string        `json:"logLevel"`
}

func (f *Settings) BasePath() string         { return f.Path }
func (f *Settings) RemotePath() string       { return f.Remote }
func (f *Settings) User() string             { return f.UserID }
func (f *Settings) Debounce() time.Duration  { return f.Delay }
func (f *Settings) AdvisorCommand() []string { return f.Advisor }
func (f *Settings) LogLevel() string         { return f.Verbosity }

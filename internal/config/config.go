package config

import (
	"io"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/revu-cli/revu/internal/locale"
	"github.com/revu-cli/revu/internal/printers"
)

const (
	configDirName  = ".config/revu"
	configFileName = "config.yml"
)

// Config carries every dependency the cli needs. It is constructed once at
// startup and passed down explicitly; nothing reads the environment at
// import time.
type Config struct {
	Version  string
	Viper    *viper.Viper
	Debug    bool
	Lang     locale.Lang
	Provider string
	Model    string
	RepoPath string

	// AutoStage skips the "stage all changes?" confirmation.
	AutoStage bool

	Printers printers.IPrinters

	// io writers, useful for testing
	InReader  io.Reader
	OutWriter io.Writer
	ErrWriter io.Writer
}

// NewDefaultConfig creates a config backed by the user's config file (when
// present) and the standard terminal printers.
func NewDefaultConfig() Config {
	conf := Config{
		Printers:  printers.NewPrinters(),
		Lang:      locale.LangEN,
		RepoPath:  ".",
		InReader:  os.Stdin,
		OutWriter: os.Stdout,
		ErrWriter: os.Stderr,
	}

	conf.Viper = setupViper()
	return conf
}

func setupViper() *viper.Viper {
	v := viper.New()

	dir, err := ConfigDirPath()
	if err != nil {
		return v
	}

	v.SetConfigFile(filepath.Join(dir, configFileName))
	v.SetConfigType("yaml")
	// Config file not found is fine, defaults apply.
	_ = v.ReadInConfig()

	return v
}

// ConfigDirPath returns the revu config directory under the user's home.
func ConfigDirPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName), nil
}

// ConfigFilePath returns the path of the revu config file.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDirPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-asciitree/pkg/diagram"
	"github.com/mattsolo1/grove-asciitree/pkg/service"
)

var (
	DataDirOverride string
	Verbose         bool
)

func InitConfig() {
	// .env values are visible to AutomaticEnv below; a missing file is fine
	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	cobra.CheckErr(err)

	viper.AddConfigPath(filepath.Join(home, ".config", "atree"))
	viper.SetConfigType("yaml")
	viper.SetConfigName("config")

	viper.SetEnvPrefix("ATREE")
	viper.AutomaticEnv()

	viper.SetDefault("data_dir", filepath.Join(home, ".local", "share", "atree"))
	viper.SetDefault("default_root", ".")
	viper.SetDefault("cache_size", 64)
	viper.SetDefault("blank_line_policy", diagram.ResumeOnGlyph.String())
	viper.SetDefault("log_level", "warn")

	// A missing config file just means defaults
	_ = viper.ReadInConfig()
}

// NewLogger builds the stderr logger. --verbose wins over log_level.
func NewLogger() (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if Verbose {
		logger.SetLevel(logrus.DebugLevel)
		return logger, nil
	}

	level, err := logrus.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		return nil, fmt.Errorf("invalid log_level: %w", err)
	}
	logger.SetLevel(level)
	return logger, nil
}

// ServiceConfig resolves the service settings from viper and flags
func ServiceConfig() (*service.Config, error) {
	policy, ok := diagram.ParseBlankLinePolicy(viper.GetString("blank_line_policy"))
	if !ok {
		return nil, fmt.Errorf("invalid blank_line_policy %q: want resume or stop", viper.GetString("blank_line_policy"))
	}

	dataDir := viper.GetString("data_dir")
	if DataDirOverride != "" {
		dataDir = DataDirOverride
	}

	return &service.Config{
		DataDir:         dataDir,
		DefaultRoot:     viper.GetString("default_root"),
		CacheSize:       viper.GetInt("cache_size"),
		BlankLinePolicy: policy,
	}, nil
}

func InitService() (*service.Service, error) {
	logger, err := NewLogger()
	if err != nil {
		return nil, err
	}

	config, err := ServiceConfig()
	if err != nil {
		return nil, err
	}

	svc, err := service.New(config, logrus.NewEntry(logger))
	if err != nil {
		return nil, err
	}

	logger.WithField("data_dir", config.DataDir).Debug("Service initialized")
	return svc, nil
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&DataDirOverride, "data-dir", "", "directory holding the document store (default is $HOME/.local/share/atree)")
	if cmd.PersistentFlags().Lookup("verbose") == nil {
		cmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "v", false, "Enable debug logging")
	}
}

// ResolveVerbose reads --verbose whichever command defined it
func ResolveVerbose(cmd *cobra.Command) {
	if v, err := cmd.Flags().GetBool("verbose"); err == nil {
		Verbose = Verbose || v
	}
}

package cmd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/redballoonsecurity/bal"
	"github.com/redballoonsecurity/bal/format/xilinx"
)

var rootCmd = &cobra.Command{
	Use:   "balctl",
	Short: "Binary Analysis Library CLI",
	Long:  "CLI for inspecting binary blobs as lazy typed trees.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if viper.GetBool("verbose") {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/balctl/config.yaml)")
	rootCmd.PersistentFlags().String("format", "xilinx", "binary format family")
	rootCmd.PersistentFlags().Int("concurrency", 4, "parallel workers for batch and fetch operations")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("concurrency", rootCmd.PersistentFlags().Lookup("concurrency"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("BAL")
	viper.AutomaticEnv()

	viper.ReadInConfig()
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "balctl")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "balctl")
	}
	return ".balctl"
}

// formats holds the context factory for every format family balctl
// understands.
var formats = newFormats()

func newFormats() *bal.Manager {
	m := bal.NewManager()
	if err := m.Register("xilinx", xilinx.NewFactory()); err != nil {
		panic(err)
	}
	return m
}

func getFactory() (*bal.Factory, error) {
	return formats.Get(viper.GetString("format"))
}

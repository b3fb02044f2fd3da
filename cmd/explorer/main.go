package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultBaseURL = "http://localhost:8080"

var rootCmd = &cobra.Command{
	Use:           "explorer",
	Short:         "Browse web platform features served by the explorer API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .explorer.yaml)")
	rootCmd.PersistentFlags().String("api", defaultBaseURL, "API base URL")
	rootCmd.PersistentFlags().Duration("timeout", 15*time.Second, "HTTP timeout")
	_ = viper.BindPFlag("api", rootCmd.PersistentFlags().Lookup("api"))
	_ = viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	rootCmd.AddCommand(listCmd, showCmd, statsCmd, watchCmd, exportCmd, importCmd)
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".explorer")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("EXPLORER")
	viper.AutomaticEnv()

	// no config file is fine; flags and env cover everything
	_ = viper.ReadInConfig()
}

func newClient() *apiClient {
	return &apiClient{
		baseURL: viper.GetString("api"),
		timeout: viper.GetDuration("timeout"),
	}
}

// Package main provides the CLI entry point for wrapped-go.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/wrappedin/wrapped-go/internal/server"
	"github.com/wrappedin/wrapped-go/internal/store"
	"github.com/wrappedin/wrapped-go/pkg/wrapped"
	"github.com/wrappedin/wrapped-go/pkg/wrapped/output"
)

var (
	outputPath   string
	pretty       bool
	rankByMetric bool
	cfgFile      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "wrapped [input.xlsx]",
		Short: "Parse LinkedIn analytics exports into normalized JSON",
		Long: `wrapped-go parses a LinkedIn analytics spreadsheet export and emits a
normalized analytics record (period totals, top posts, demographics,
per-day engagement) as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().BoolVar(&rankByMetric, "rank-by-metric", false, "Re-rank top posts by engagements instead of trusting export order")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the upload and analytics HTTP API",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.wrapped.yaml)")
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("db", "wrapped.db", "SQLite database path")
	serveCmd.Flags().String("loglevel", "info", "Log level: debug, info, warn, error")
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	rec, err := wrapped.ParseFile(inputPath, wrapped.Options{RankByMetric: rankByMetric})
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	jsonData, err := output.ToJSON(rec, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(jsonData))
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	initConfig(cmd)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(viper.GetString("loglevel")),
	}))

	st, err := store.Open(viper.GetString("db"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	addr := viper.GetString("addr")
	logger.Info("listening", "addr", addr, "db", viper.GetString("db"))
	return http.ListenAndServe(addr, server.New(st, logger))
}

// initConfig reads in config file and environment variables if set.
func initConfig(cmd *cobra.Command) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".wrapped")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("WRAPPED")
	viper.AutomaticEnv()
	for _, flag := range []string{"addr", "db", "loglevel"} {
		_ = viper.BindPFlag(flag, cmd.Flags().Lookup(flag))
	}
	_ = viper.ReadInConfig()
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

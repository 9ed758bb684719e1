// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the office-to-pdf CLI, a thin shell
// over pkg/officetopdf.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/office-to-pdf/internal/secrets"
	"github.com/pdiddy/office-to-pdf/pkg/officetopdf"
	"github.com/pdiddy/office-to-pdf/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultURL        = "http://127.0.0.1:8000"
	defaultSecretsDir = ".secrets/headers"
)

// logger is shared by the CLI and the library it drives.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "office-to-pdf",
	Level:  log.InfoLevel,
})

// secretHeaders holds headers loaded from the secrets directory at startup.
var secretHeaders map[string]string

// rootCmd is the base command for the office-to-pdf CLI.
var rootCmd = &cobra.Command{
	Use:   "office-to-pdf",
	Short: "Convert office documents to PDF through an office-to-pdf server",
	Long: `office-to-pdf uploads office documents (docx, xlsx, pptx, odt, csv, ...)
to an office-to-pdf server and saves the converted PDF. Several documents in
one request come back as a ZIP with one PDF each.

The server address, timeout and headers can be set with flags, an
office-to-pdf.yaml config file, or OFFICE_TO_PDF_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		h, err := secrets.LoadHeaders(viper.GetString("secrets_dir"), logger)
		if err != nil {
			return err
		}
		secretHeaders = h
		if len(h) > 0 {
			logger.Info("loaded headers from secrets", "names", secrets.Names(h))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./office-to-pdf.yaml or ~/.config/office-to-pdf/office-to-pdf.yaml)")
	pf.String("url", defaultURL, "base URL of the office-to-pdf server")
	pf.Duration("timeout", officetopdf.DefaultTimeout, "request timeout")
	pf.Bool("http2", true, "negotiate HTTP/2 with the server")
	pf.String("log-level", "error", "transport log level: debug, info, warn or error")
	pf.StringToString("header", nil, "extra request header as Name=Value (repeatable)")
	pf.String("secrets-dir", defaultSecretsDir, "directory of header files (filename = header name)")

	for key, flag := range map[string]string{
		"url":         "url",
		"timeout":     "timeout",
		"http2":       "http2",
		"log_level":   "log-level",
		"secrets_dir": "secrets-dir",
	} {
		if err := viper.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("office-to-pdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "office-to-pdf"))
		}
	}

	viper.SetEnvPrefix("OFFICE_TO_PDF")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Info("using config file", "path", viper.ConfigFileUsed())
	}
}

// clientConfig assembles the client configuration. Headers are layered:
// config file, then secrets directory, then --header flags.
func clientConfig(cmd *cobra.Command) types.ClientConfig {
	headers := make(map[string]string)
	for k, v := range viper.GetStringMapString("headers") {
		headers[k] = v
	}
	for k, v := range secretHeaders {
		headers[k] = v
	}
	flagHeaders, _ := cmd.Flags().GetStringToString("header")
	for k, v := range flagHeaders {
		headers[k] = v
	}

	timeout := viper.GetDuration("timeout")
	if timeout <= 0 {
		timeout = officetopdf.DefaultTimeout
	}

	return types.ClientConfig{
		URL:      viper.GetString("url"),
		Timeout:  timeout,
		HTTP2:    viper.GetBool("http2"),
		LogLevel: viper.GetString("log_level"),
		Headers:  headers,
	}
}

func newClient(cmd *cobra.Command) (*officetopdf.Client, error) {
	cfg := clientConfig(cmd)
	c, err := officetopdf.NewFromConfig(cfg, officetopdf.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}
	return c, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// elapsed formats a duration for status lines.
func elapsed(start time.Time) string {
	return time.Since(start).Round(time.Millisecond).String()
}

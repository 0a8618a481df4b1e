// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command covlay prints source files with coverage markings.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/go-covlay/pkg/covlay"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd creates the root command and binds its flags, COVLAY_ env
// vars and .covlay.yaml into viper.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "covlay",
		Short: "Coverage overlay for source files",
		Long:  "covlay reads an Istanbul or Go coverage file and shows which lines and branches of your sources were covered.",
	}

	// Global flags.
	rootCmd.PersistentFlags().String("coverage", "coverage/coverage-final.json", "Coverage file (Istanbul JSON or Go cover profile)")
	rootCmd.PersistentFlags().String("formatter", covlay.FormatterDefault, "Formatter: DefaultFormatter or GutterFormatter")
	rootCmd.PersistentFlags().String("root", "", "Base directory for relative coverage paths (default: git root)")
	rootCmd.PersistentFlags().String("install-root", "", "Base directory for ./ gutter icon paths (default: the executable's directory)")
	rootCmd.PersistentFlags().Bool("color", true, "Colour line backgrounds")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging to stderr")

	// Bind flags to viper.
	viper.BindPFlag("coverage", rootCmd.PersistentFlags().Lookup("coverage"))
	viper.BindPFlag("formatter", rootCmd.PersistentFlags().Lookup("formatter"))
	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("install-root", rootCmd.PersistentFlags().Lookup("install-root"))
	viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Env vars: COVLAY_COVERAGE, COVLAY_INSTALL_ROOT, etc.
	viper.SetEnvPrefix("COVLAY")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".covlay")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// configFromViper builds an overlay config from flags, env and the config
// file. The settings block of .covlay.yaml overrides colours and icons.
func configFromViper() (covlay.Config, error) {
	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var settings covlay.Settings
	if err := viper.UnmarshalKey("settings", &settings); err != nil {
		return covlay.Config{}, fmt.Errorf("reading settings: %w", err)
	}

	return covlay.Config{
		CoveragePath: viper.GetString("coverage"),
		Root:         viper.GetString("root"),
		Formatter:    viper.GetString("formatter"),
		Settings:     settings,
		InstallRoot:  viper.GetString("install-root"),
		Color:        viper.GetBool("color"),
		Logger:       logger,
	}, nil
}

// newOverlay creates an overlay from viper config and opens paths.
func newOverlay(enabled, watch bool, paths []string) (covlay.Overlay, error) {
	cfg, err := configFromViper()
	if err != nil {
		return nil, err
	}
	cfg.Enabled = enabled
	cfg.Watch = watch

	ov, err := covlay.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialization failed: %w", err)
	}
	if err := ov.Open(paths...); err != nil {
		ov.Close()
		return nil, err
	}
	return ov, nil
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print covlay version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("covlay %s\n", version)
		},
	}
}

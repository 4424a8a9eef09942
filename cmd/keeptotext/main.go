// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the keeptotext CLI, which converts a
// notes takeout archive into one timestamped text file per note.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alecperkey/KeepToText/internal/convert"
	"github.com/alecperkey/KeepToText/internal/textenc"
	"github.com/alecperkey/KeepToText/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts the archive named by its single argument.
var rootCmd = &cobra.Command{
	Use:   "keeptotext <takeout.zip>",
	Short: "Convert a notes takeout archive into timestamped text files",
	Long: `keeptotext extracts a notes takeout zip next to itself, reads every
exported HTML note, and writes each one as a Markdown text file into a
sibling Text/ directory. Each file's modification time is set to the
note's creation time.

Checklist notes become "- item" lists. Notes without a heading are
skipped; notes whose text cannot be written in the output encoding are
skipped with a warning.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runConvert,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./keeptotext.yaml or ~/.config/keeptotext/config.yaml)")

	rootCmd.Flags().String("encoding", "", "character encoding of output (default utf-8)")
	rootCmd.Flags().Bool("system-encoding", false, "use the terminal's encoding for the output")
	rootCmd.Flags().Bool("frontmatter", false, "prepend YAML frontmatter with source and creation time")
	rootCmd.Flags().Int("retry-attempts", types.DefaultRetryAttempts, "attempts for directory removal and creation")
	rootCmd.Flags().Duration("retry-delay", types.DefaultRetryDelay, "wait between directory operation attempts")

	viper.BindPFlag("encoding", rootCmd.Flags().Lookup("encoding"))
	viper.BindPFlag("system_encoding", rootCmd.Flags().Lookup("system-encoding"))
	viper.BindPFlag("frontmatter", rootCmd.Flags().Lookup("frontmatter"))
	viper.BindPFlag("retry.attempts", rootCmd.Flags().Lookup("retry-attempts"))
	viper.BindPFlag("retry.delay", rootCmd.Flags().Lookup("retry-delay"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("keeptotext")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "keeptotext"))
		}
	}

	viper.SetEnvPrefix("KEEPTOTEXT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := conversionConfig(viper.GetViper(), os.Getenv)
	cfg.ArchivePath = args[0]

	result, err := convert.Run(cmd.Context(), cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if result.HasFailures() {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d note(s) could not be written\n", result.Failed)
	}
	return nil
}

// conversionConfig resolves settings from v. An explicit encoding wins
// over the terminal's, which wins over the utf-8 default.
func conversionConfig(v *viper.Viper, getenv func(string) string) types.ConversionConfig {
	cfg := types.ConversionConfig{
		Encoding:    v.GetString("encoding"),
		Frontmatter: v.GetBool("frontmatter"),
		Retry: types.RetryConfig{
			Attempts: v.GetInt("retry.attempts"),
			Delay:    v.GetDuration("retry.delay"),
		},
	}
	if cfg.Encoding == "" && v.GetBool("system_encoding") {
		cfg.Encoding = textenc.SystemName(getenv)
	}
	return cfg.WithDefaults()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mica/internal/config"
	"mica/internal/diagfmt"
	"mica/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.mi",
	Short: "Tokenize a mica source file",
	Long:  `Tokenize breaks a mica source file into its constituent tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("stats", false, "print lexer and interner statistics")
	tokenizeCmd.Flags().String("config", "", "path to mica.toml (default: discovered)")
	tokenizeCmd.Flags().Bool("retain-comments", false, "emit comment tokens")
	tokenizeCmd.Flags().Bool("retain-whitespace", false, "emit whitespace tokens")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if retain, _ := cmd.Flags().GetBool("retain-comments"); retain {
		cfg.Lexer.RetainComments = true
	}
	if retain, _ := cmd.Flags().GetBool("retain-whitespace"); retain {
		cfg.Lexer.RetainWhitespace = true
	}
	if maxDiags, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err == nil && maxDiags > 0 {
		cfg.Diagnostics.MaxErrors = uint64(maxDiags)
	}

	session := driver.NewSession(cfg)

	// Диагностики уходят в stderr по мере лексинга.
	var consumer interface {
		BeginSourceFile()
		EndSourceFile()
	}
	switch cfg.Diagnostics.Format {
	case "json":
		c := diagfmt.NewJSONConsumer(os.Stderr)
		session.Diags.AddConsumer(c)
		consumer = c
	default:
		c := diagfmt.NewTextConsumer(os.Stderr, useColor(cmd, os.Stderr))
		session.Diags.AddConsumer(c)
		consumer = c
	}

	consumer.BeginSourceFile()
	result, err := session.Tokenize(path)
	consumer.EndSourceFile()
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("get format flag: %w", err)
	}
	switch format {
	case "pretty":
		if err := diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, session.SM); err != nil {
			return err
		}
	case "json":
		if err := diagfmt.FormatTokensJSON(os.Stdout, result.Tokens, session.SM); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		fmt.Fprint(os.Stderr, result.Timer.Summary())
	}
	if showStats, _ := cmd.Flags().GetBool("stats"); showStats {
		fmt.Fprintln(os.Stderr, renderStats(session, result))
	}
	if session.Diags.HasErrors() {
		os.Exit(1)
	}
	return nil
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	if explicit != "" {
		return config.Load(explicit)
	}
	return config.LoadOrDefault(".")
}

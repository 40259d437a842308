package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mica/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "mica",
	Short: "Mica language front-end toolchain",
	Long:  `Mica is a pedagogical programming language; this tool drives its compiler front-end`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of errors before giving up")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color tri-state against the stream.
func useColor(cmd *cobra.Command, f *os.File) bool {
	flag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false
	}
	switch flag {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(f)
}

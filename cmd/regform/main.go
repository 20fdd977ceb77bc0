package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var version = "dev"

// errInvalid marks a values file that did not pass validation. The report has
// already been printed so main only sets the exit status.
var errInvalid = errors.New("registration is invalid")

type globalFlags struct {
	config   string
	logLevel string
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			errorMsg(os.Stderr, "%s", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "regform",
		Short: "Code Geeks membership registration",
		Long: `regform runs the membership registration form.

Fill it in interactively, validate a values file non-interactively, or print
the OpenAPI schema other services can validate payloads against.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "registration definition (JSON or YAML); embedded default when empty")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		registerCmd(flags),
		validateCmd(flags),
		schemaCmd(flags),
	)
	return rootCmd
}

func newLogger(level string, out io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: lvl})), nil
}

// success prints a success message.
func success(out io.Writer, format string, args ...any) {
	color.New(color.FgGreen).Fprint(out, "✓ ")
	fmt.Fprintf(out, format+"\n", args...)
}

// errorMsg prints an error message.
func errorMsg(out io.Writer, format string, args ...any) {
	color.New(color.FgRed).Fprint(out, "Error: ")
	fmt.Fprintf(out, format+"\n", args...)
}

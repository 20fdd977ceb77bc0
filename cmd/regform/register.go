package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/pkg/notify"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
)

func registerCmd(flags *globalFlags) *cobra.Command {
	var (
		format   string
		dark     bool
		noColor  bool
		output   string
		attempts int
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Fill in the registration form interactively",
		Long: `Prompt for every field, show validation messages as fields are
visited, and submit once the whole form is valid. Type :theme at any
text prompt to switch between the light and dark theme.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(flags.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			outputFormat, err := notify.ParseFormat(format)
			if err != nil {
				return err
			}

			options := []regform.Option{
				regform.WithLogger(logger),
				regform.WithOutput(cmd.OutOrStdout()),
				regform.WithFormat(outputFormat),
			}
			if flags.config != "" {
				options = append(options, regform.WithConfigFile(flags.config))
			}
			session, err := regform.New(options...)
			if err != nil {
				return err
			}

			tuiOptions := []tui.Option{
				tui.WithPromptDriver(tui.NewSurveyDriver(cmd.OutOrStdout())),
				tui.WithOutputFormat(outputFormat),
				tui.WithLogger(logger),
				tui.WithDarkMode(dark || session.Registration.Theme.Variant == tui.VariantDark),
				tui.WithMaxAttempts(attempts),
			}
			if noColor {
				tuiOptions = append(tuiOptions, tui.WithoutColor())
			}
			renderer, err := tui.New(tuiOptions...)
			if err != nil {
				return err
			}
			if err := session.Renderers.Register(renderer); err != nil {
				return err
			}

			payload, err := session.Render(cmd.Context(), tui.Name, nil)
			if err != nil {
				return err
			}
			if output != "" {
				if err := os.WriteFile(output, payload, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				success(cmd.OutOrStdout(), "Submission written to %s", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(notify.FormatJSON), "payload format (json, form, pretty)")
	cmd.Flags().BoolVar(&dark, "dark", false, "start with the dark theme")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colours")
	cmd.Flags().StringVarP(&output, "output", "o", "", "also write the submission payload to this file")
	cmd.Flags().IntVar(&attempts, "attempts", 3, "submit attempts before giving up")

	return cmd
}

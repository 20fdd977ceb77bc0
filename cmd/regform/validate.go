package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/pkg/notify"
	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/registration"
	"github.com/goliatone/go-regform/pkg/render"
)

func validateCmd(flags *globalFlags) *cobra.Command {
	var (
		format string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate and submit a JSON or YAML values file",
		Long: `Load field values from FILE, submit them once and print the
messages a user would see. Exits with status 1 when the form is invalid.`,
		Args: cobra.ExactArgs(1),
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

			values, err := registration.ReadValuesFile(session.Registration.Form, args[0])
			if err != nil {
				return err
			}

			if strict {
				invalid, err := checkSchema(cmd, session, values)
				if err != nil {
					return err
				}
				if invalid {
					return errInvalid
				}
			}

			outcome, err := session.Submit(cmd.Context(), values)
			if err != nil {
				return err
			}
			if outcome.Accepted {
				return nil
			}

			report, err := session.Report(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(report); err != nil {
				return err
			}
			return errInvalid
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(notify.FormatJSON), "payload format (json, form, pretty)")
	cmd.Flags().BoolVar(&strict, "strict", false, "also check the values against the OpenAPI schema")

	return cmd
}

func checkSchema(cmd *cobra.Command, session *regform.Session, values map[string]any) (bool, error) {
	schema, err := openapi.Schema(session.Registration.Form)
	if err != nil {
		return false, err
	}
	issues, err := openapi.CheckPayload(schema, values)
	if err != nil {
		return false, err
	}
	if len(issues) == 0 {
		return false, nil
	}

	mapping := render.MapErrorPayload(session.Form.Fields(), openapi.Payload(issues))
	out := cmd.OutOrStdout()
	for _, name := range session.Form.Fields() {
		for _, message := range mapping.Fields[name] {
			fmt.Fprintf(out, "schema %s: %s\n", name, message)
		}
	}
	form := append([]string(nil), mapping.Form...)
	sort.Strings(form)
	for _, message := range form {
		fmt.Fprintf(out, "schema: %s\n", message)
	}
	return true, nil
}

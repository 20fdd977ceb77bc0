package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/pkg/openapi"
)

func schemaCmd(flags *globalFlags) *cobra.Command {
	var apiVersion string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI document of the registration form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(flags.logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			options := []regform.Option{regform.WithLogger(logger)}
			if flags.config != "" {
				options = append(options, regform.WithConfigFile(flags.config))
			}
			session, err := regform.New(options...)
			if err != nil {
				return err
			}
			raw, err := session.SchemaJSON(openapi.WithAPIVersion(apiVersion))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(raw)
			return err
		},
	}

	cmd.Flags().StringVar(&apiVersion, "api-version", "1.0.0", "info.version of the generated document")
	return cmd
}

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/pkg/openapi"
	"github.com/goliatone/go-formbuilder/pkg/responses"
)

func newSchemaCmd(c *cli) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Export the submission endpoint of the form as an OpenAPI document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := c.loadFile(cmd.Context())
			if err != nil {
				return err
			}
			spec, err := openapi.Export(file.Document, file.FormID)
			if err != nil {
				return err
			}
			data, err := openapi.Marshal(spec, format)
			if err != nil {
				return err
			}
			if output == "" {
				_, err = c.out.Write(append(data, '\n'))
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write schema: %w", err)
			}
			fmt.Fprintf(c.out, "Schema written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	var payload string
	validate := &cobra.Command{
		Use:   "validate",
		Short: "Check a submission against the form without storing it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if payload == "" {
				return errors.New("--data is required")
			}
			file, err := c.loadFile(cmd.Context())
			if err != nil {
				return err
			}
			data, err := readPayload(payload)
			if err != nil {
				return err
			}
			issues, err := responses.Validate(file.Document, data)
			if err != nil {
				return err
			}
			if len(issues) > 0 {
				printIssues(c, issues)
				return fmt.Errorf("%w: %d issue(s)", responses.ErrInvalidSubmission, len(issues))
			}
			fmt.Fprintln(c.out, "Submission is valid")
			return nil
		},
	}
	validate.Flags().StringVar(&payload, "data", "", "JSON object with answers keyed by question id, or @file")
	cmd.AddCommand(validate)
	return cmd
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/trailhead/pkg/dispatcher"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the tool discovery document",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unsupported format %q: use json or yaml", format)
			}

			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			a, err := newApp(cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			doc := map[string]any{"tools": dispatcher.New(a.registry).ListTools()}
			raw, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			if format == "json" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
				return err
			}

			// Round-trip through a generic value so yaml sees the JSON field names.
			var generic any
			if err := json.Unmarshal(raw, &generic); err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(generic); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
	return cmd
}

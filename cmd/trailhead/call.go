package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/trailhead/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

func newCallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [json-args]",
		Short: "Run one tool call in-process and print the result",
		Long: `Runs a single tools/call exchange through a fresh session, exactly as the
HTTP endpoint would, and prints the JSON-RPC response. Arguments default to {}.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			arguments := json.RawMessage(`{}`)
			if len(args) == 2 {
				if !json.Valid([]byte(args[1])) {
					return fmt.Errorf("arguments are not valid JSON")
				}
				arguments = json.RawMessage(args[1])
			}

			body, err := json.Marshal(map[string]any{
				"jsonrpc": "2.0",
				"id":      1,
				"method":  "tools/call",
				"params": map[string]any{
					"name":      args[0],
					"arguments": arguments,
				},
			})
			if err != nil {
				return err
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

			reply := mcp.Exchange(cmd.Context(), a.registry, body, mcp.WithLogger(logger))
			out, err := json.MarshalIndent(reply.Message, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}

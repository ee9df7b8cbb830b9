package cmd

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call <method> [param...]",
	Short: "Call an arbitrary RPC method",
	Long: `Call an arbitrary JSON-RPC method and print the decoded result.

Each parameter is parsed as JSON when possible and passed through as a
literal string otherwise, so quoted JSON literals and plain strings
like block tags both work without extra escaping.

Examples:
  evmctl mainnet call eth_blockNumber
  evmctl mainnet call eth_getBlockByNumber latest false
  evmctl mainnet call eth_getBalance 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045 latest`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCall,
}

func runCall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	result, err := client.Call(ctx, args[0], parseParams(args[1:])...)
	if err != nil {
		return err
	}

	return printJSON(result)
}

// parseParams decodes each argument as a JSON value when possible and
// keeps the raw string otherwise. Numbers are kept in their exact
// textual form.
func parseParams(args []string) []any {
	params := make([]any, 0, len(args))
	for _, arg := range args {
		dec := json.NewDecoder(strings.NewReader(arg))
		dec.UseNumber()

		var v any
		if err := dec.Decode(&v); err != nil || dec.More() {
			params = append(params, arg)
			continue
		}
		params = append(params, v)
	}
	return params
}

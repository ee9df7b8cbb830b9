package cmd

import (
	"github.com/chinmay1088/evmctl/evm"
	"github.com/spf13/cobra"
)

var balanceBlock string

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Display the account balance",
	Long: `Display the balance of an address in both wei and ether.

The address may use any casing; it is normalized to its checksummed
form before the query.

Examples:
  evmctl mainnet balance 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045
  evmctl mainnet balance 0xd8da6bf26964af9d7eed9e03e53415d37aa96045 --block 17000000`,
	Args: cobra.ExactArgs(1),
	RunE: runBalance,
}

func runBalance(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	balance, err := client.Balance(ctx, args[0], balanceBlock)
	if err != nil {
		return err
	}

	return printJSON(evm.Mapping(
		evm.Member{Key: "wei", Value: evm.String(balance.Wei.String())},
		evm.Member{Key: "ether", Value: evm.String(balance.Ether.String())},
	))
}

func init() {
	balanceCmd.Flags().StringVar(&balanceBlock, "block", evm.BlockLatest, "Block identifier (number or tag) to query")
}

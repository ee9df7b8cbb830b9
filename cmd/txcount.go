package cmd

import (
	"fmt"

	"github.com/chinmay1088/evmctl/evm"
	"github.com/spf13/cobra"
)

var txCountBlock string

var txCountCmd = &cobra.Command{
	Use:   "tx-count <address>",
	Short: "Show the number of transactions sent from the address",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxCount,
}

func runTxCount(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	count, err := client.TransactionCount(ctx, args[0], txCountBlock)
	if err != nil {
		return err
	}

	fmt.Println(count)
	return nil
}

func init() {
	txCountCmd.Flags().StringVar(&txCountBlock, "block", evm.BlockLatest, "Block identifier (number or tag) to query")
}

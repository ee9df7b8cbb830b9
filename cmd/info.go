package cmd

import (
	"encoding/json"
	"strconv"

	"github.com/chinmay1088/evmctl/evm"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show provider information",
	Long: `Show the chain ID and current block number of the provider.

Examples:
  evmctl https://ethereum-rpc.publicnode.com info`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	client, err := newClient(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return err
	}
	blockNumber, err := client.BlockNumber(ctx)
	if err != nil {
		return err
	}

	return printJSON(evm.Mapping(
		evm.Member{Key: "chain_id", Value: evm.Number(json.Number(chainID.String()))},
		evm.Member{Key: "block_number", Value: evm.Number(json.Number(strconv.FormatUint(blockNumber, 10)))},
	))
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chinmay1088/evmctl/config"
	"github.com/chinmay1088/evmctl/evm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"
)

var (
	endpoint string
	cfgPath  string
	timeout  time.Duration
	verbose  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "evmctl <endpoint> <command>",
	Short: "Query Ethereum-compatible JSON-RPC endpoints",
	Long: `Evmctl is a command-line helper for Ethereum-compatible JSON-RPC
providers. It queries provider metadata, account balances, and
transaction counts, and can invoke arbitrary RPC methods.

The endpoint is either an HTTP(S) provider URL or an alias defined in
the configuration file (~/.evmctl.yaml by default).

Examples:
  evmctl https://ethereum-rpc.publicnode.com info
  evmctl mainnet balance 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045
  evmctl mainnet tx-count 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045 --block 17000000
  evmctl mainnet call eth_getBlockByNumber latest false`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetOutput(os.Stderr)
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute peels the leading endpoint positional off the argument list
// and dispatches the remaining arguments to the command tree.
func Execute(args []string) error {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") && !isCommand(args[0]) {
		endpoint = args[0]
		args = args[1:]
	}
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// isCommand reports whether name is a subcommand rather than an
// endpoint, so that invocations like "evmctl help" keep working.
func isCommand(name string) bool {
	if name == "help" || name == "completion" {
		return true
	}
	for _, c := range rootCmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}

// newClient resolves the endpoint through the configuration file and
// dials it. Connection failures carry evm.ErrConnect for main to
// report.
func newClient(ctx context.Context) (*evm.Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint is required: evmctl <endpoint> <command>")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	resolved, err := cfg.Resolve(endpoint)
	if err != nil {
		return nil, err
	}

	t := timeout
	if t == 0 {
		t = time.Duration(cfg.Defaults.Timeout)
	}
	var opts []evm.Option
	if t > 0 {
		opts = append(opts, evm.WithTimeout(t))
	}

	return evm.Dial(ctx, resolved, opts...)
}

// printJSON writes a value to stdout as pretty-printed JSON.
func printJSON(v evm.Value) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.DefaultPath(), "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Per-request timeout (e.g. 10s). Default from config, or none")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(txCountCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(versionCmd)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("evmctl v%s\n", version)
	},
}

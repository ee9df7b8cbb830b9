package evm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Sentinel errors returned by the client. Callers match them with errors.Is.
var (
	ErrConnect        = errors.New("unable to connect to the RPC endpoint")
	ErrInvalidAddress = errors.New("invalid ethereum address")
	ErrInvalidBlock   = errors.New("invalid block identifier")
)

// Block identifier tags accepted by the JSON-RPC state methods.
const (
	BlockLatest   = "latest"
	BlockEarliest = "earliest"
	BlockPending  = "pending"
)

// Balance holds an account balance in both wei and ether.
type Balance struct {
	Wei   *big.Int
	Ether decimal.Decimal
}

// weiExponent is the decimal scale of the chain's base unit (10^18).
const weiExponent = 18

// Client is a thin wrapper around go-ethereum's RPC and ethclient
// clients. It normalizes addresses to checksummed form before dispatch
// and exposes the generic call method without reaching into the raw
// RPC client from caller code.
type Client struct {
	rpc *rpc.Client
	eth *ethclient.Client
}

// Option configures a Client during Dial.
type Option func(*dialConfig)

type dialConfig struct {
	timeout time.Duration
}

// WithTimeout sets a fixed per-request timeout on the HTTP transport.
func WithTimeout(d time.Duration) Option {
	return func(cfg *dialConfig) {
		cfg.timeout = d
	}
}

// Dial connects to an HTTP JSON-RPC endpoint and verifies it is alive by
// requesting the client version. The returned error matches ErrConnect
// if the endpoint does not answer.
func Dial(ctx context.Context, endpoint string, opts ...Option) (*Client, error) {
	var cfg dialConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var dialOpts []rpc.ClientOption
	if cfg.timeout > 0 {
		dialOpts = append(dialOpts, rpc.WithHTTPClient(&http.Client{Timeout: cfg.timeout}))
	}

	logrus.WithField("endpoint", endpoint).Debug("dialing rpc endpoint")

	rpcClient, err := rpc.DialOptions(ctx, endpoint, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	// Liveness probe. Dialing an HTTP endpoint does not touch the
	// network, so ask for the client version before handing out the
	// client.
	var version string
	if err := rpcClient.CallContext(ctx, &version, "web3_clientVersion"); err != nil {
		rpcClient.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	logrus.WithField("version", version).Debug("connected to rpc endpoint")

	return &Client{
		rpc: rpcClient,
		eth: ethclient.NewClient(rpcClient),
	}, nil
}

// Close closes the underlying RPC connection.
func (c *Client) Close() {
	c.rpc.Close()
}

// ChainID returns the numeric chain ID reported by the provider.
func (c *Client) ChainID(ctx context.Context) (*big.Int, error) {
	return c.eth.ChainID(ctx)
}

// BlockNumber returns the current block height.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	return c.eth.BlockNumber(ctx)
}

// Balance fetches the balance of address at the given block identifier.
// The address is normalized to its checksummed form before the query and
// the result carries both the raw wei amount and its exact ether value.
func (c *Client) Balance(ctx context.Context, address, block string) (Balance, error) {
	checksum, err := checksumAddress(address)
	if err != nil {
		return Balance{}, err
	}
	blockArg, err := blockParam(block)
	if err != nil {
		return Balance{}, err
	}

	var result hexutil.Big
	if err := c.rpc.CallContext(ctx, &result, "eth_getBalance", checksum, blockArg); err != nil {
		return Balance{}, err
	}

	wei := (*big.Int)(&result)
	return Balance{
		Wei:   wei,
		Ether: decimal.NewFromBigInt(wei, -weiExponent),
	}, nil
}

// TransactionCount returns the number of transactions sent from address
// as of the given block identifier.
func (c *Client) TransactionCount(ctx context.Context, address, block string) (uint64, error) {
	checksum, err := checksumAddress(address)
	if err != nil {
		return 0, err
	}
	blockArg, err := blockParam(block)
	if err != nil {
		return 0, err
	}

	var count hexutil.Uint64
	if err := c.rpc.CallContext(ctx, &count, "eth_getTransactionCount", checksum, blockArg); err != nil {
		return 0, err
	}
	return uint64(count), nil
}

// Call invokes an arbitrary JSON-RPC method and decodes the raw result
// into a Value tree. The client performs no method-specific validation;
// transport and RPC errors propagate to the caller verbatim.
func (c *Client) Call(ctx context.Context, method string, params ...any) (Value, error) {
	logrus.WithField("method", method).Debug("rpc call")

	var raw json.RawMessage
	if err := c.rpc.CallContext(ctx, &raw, method, params...); err != nil {
		return Value{}, err
	}
	return DecodeValue(raw)
}

// checksumAddress validates a hex account address and returns its
// EIP-55 checksummed form.
func checksumAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return common.HexToAddress(address).Hex(), nil
}

// blockParam converts a block identifier (a tag or a decimal height)
// into its wire form. An empty identifier defaults to "latest".
func blockParam(block string) (string, error) {
	switch block {
	case "":
		return BlockLatest, nil
	case BlockLatest, BlockEarliest, BlockPending:
		return block, nil
	}
	height, err := strconv.ParseUint(block, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidBlock, block)
	}
	return hexutil.EncodeUint64(height), nil
}

package main

import (
	"context"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/quaverlib/quaver/utils/httputil"
)

// GasPrices is one gas oracle reading, in gwei.
type GasPrices struct {
	Safe      float64
	Propose   float64
	Fast      float64
	LastBlock int64
}

// Oracle fetches gas prices from an Etherscan-style gas oracle endpoint.
type Oracle struct {
	client *httputil.Client
	url    string
	apiKey string
}

// NewOracle creates an oracle client for the configured endpoint.
func NewOracle(cfg OracleConfig) *Oracle {
	return &Oracle{
		client: httputil.NewClient(),
		url:    cfg.URL,
		apiKey: cfg.APIKey,
	}
}

// gasOracleResponse mirrors the Etherscan gas oracle payload. All numbers
// arrive as JSON strings.
type gasOracleResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  struct {
		LastBlock       string `json:"LastBlock"`
		SafeGasPrice    string `json:"SafeGasPrice"`
		ProposeGasPrice string `json:"ProposeGasPrice"`
		FastGasPrice    string `json:"FastGasPrice"`
	} `json:"result"`
}

// endpoint returns the oracle URL with the API key merged into its query,
// regardless of whether the configured URL already has one.
func (o *Oracle) endpoint() (string, error) {
	if o.apiKey == "" {
		return o.url, nil
	}

	u, err := url.Parse(o.url)
	if err != nil {
		return "", errors.Wrap(err, "bad gas oracle URL")
	}

	query := u.Query()
	query.Set("apikey", o.apiKey)
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// Prices fetches the current gas prices.
func (o *Oracle) Prices(ctx context.Context) (*GasPrices, error) {
	endpoint, err := o.endpoint()
	if err != nil {
		return nil, err
	}

	var resp gasOracleResponse
	if err := o.client.WithContext(ctx).RequestJSON(&resp, "GET", endpoint); err != nil {
		return nil, errors.Wrap(err, "failed to query gas oracle")
	}

	if resp.Status != "1" {
		return nil, errors.Errorf("gas oracle error: %s", resp.Message)
	}

	var prices GasPrices

	if prices.Safe, err = strconv.ParseFloat(resp.Result.SafeGasPrice, 64); err != nil {
		return nil, errors.Wrap(err, "bad safe gas price")
	}
	if prices.Propose, err = strconv.ParseFloat(resp.Result.ProposeGasPrice, 64); err != nil {
		return nil, errors.Wrap(err, "bad proposed gas price")
	}
	if prices.Fast, err = strconv.ParseFloat(resp.Result.FastGasPrice, 64); err != nil {
		return nil, errors.Wrap(err, "bad fast gas price")
	}
	if prices.LastBlock, err = strconv.ParseInt(resp.Result.LastBlock, 10, 64); err != nil {
		return nil, errors.Wrap(err, "bad last block")
	}

	return &prices, nil
}

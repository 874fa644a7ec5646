package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oracleOKBody = `{
	"status": "1",
	"message": "OK",
	"result": {
		"LastBlock": "18123456",
		"SafeGasPrice": "21",
		"ProposeGasPrice": "22.5",
		"FastGasPrice": "25"
	}
}`

func TestOraclePrices(t *testing.T) {
	var gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.URL.Query().Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(oracleOKBody))
	}))
	defer srv.Close()

	oracle := NewOracle(OracleConfig{
		URL:    srv.URL + "/api?module=gastracker&action=gasoracle",
		APIKey: "testkey",
	})

	prices, err := oracle.Prices(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "testkey", gotAPIKey)
	assert.Equal(t, 21.0, prices.Safe)
	assert.Equal(t, 22.5, prices.Propose)
	assert.Equal(t, 25.0, prices.Fast)
	assert.Equal(t, int64(18123456), prices.LastBlock)
}

func TestOracleEndpoint(t *testing.T) {
	t.Run("bare URL", func(t *testing.T) {
		oracle := NewOracle(OracleConfig{
			URL:    "https://api.etherscan.io/api",
			APIKey: "testkey",
		})

		endpoint, err := oracle.endpoint()
		require.NoError(t, err)
		assert.Equal(t, "https://api.etherscan.io/api?apikey=testkey", endpoint)
	})

	t.Run("URL with query", func(t *testing.T) {
		oracle := NewOracle(OracleConfig{
			URL:    "https://api.etherscan.io/api?module=gastracker&action=gasoracle",
			APIKey: "testkey",
		})

		endpoint, err := oracle.endpoint()
		require.NoError(t, err)

		u, err := url.Parse(endpoint)
		require.NoError(t, err)
		assert.Equal(t, "testkey", u.Query().Get("apikey"))
		assert.Equal(t, "gastracker", u.Query().Get("module"))
		assert.Equal(t, "gasoracle", u.Query().Get("action"))
	})

	t.Run("no key", func(t *testing.T) {
		oracle := NewOracle(OracleConfig{URL: "https://api.etherscan.io/api"})

		endpoint, err := oracle.endpoint()
		require.NoError(t, err)
		assert.Equal(t, "https://api.etherscan.io/api", endpoint)
	})
}

// The oracle must reach servers whose configured URL has no query string at
// all.
func TestOracleBareURL(t *testing.T) {
	var gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.URL.Query().Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(oracleOKBody))
	}))
	defer srv.Close()

	oracle := NewOracle(OracleConfig{URL: srv.URL, APIKey: "testkey"})

	prices, err := oracle.Prices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "testkey", gotAPIKey)
	assert.Equal(t, 25.0, prices.Fast)
}

func TestOracleError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"0","message":"NOTOK","result":null}`))
	}))
	defer srv.Close()

	oracle := NewOracle(OracleConfig{URL: srv.URL})

	_, err := oracle.Prices(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTOK")
}

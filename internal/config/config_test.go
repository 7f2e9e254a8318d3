package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "cointracker", cfg.App.Name)
	assert.Equal(t, "https://api.coinranking.com/v2", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, "$", cfg.Currency.Symbol)
	assert.Equal(t, 2, cfg.Currency.FractionDigits)
	assert.Equal(t, 100, cfg.Cache.CoinsLimit)
	assert.Equal(t, 5*time.Minute, cfg.Refresh.Interval)
	assert.True(t, cfg.Refresh.AlignToClock)
	assert.Empty(t, cfg.Database.DSN)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
api:
  key: secret
  request_timeout: 3s
currency:
  symbol: "€"
  thousands_separator: "."
  decimal_separator: ","
refresh:
  interval: 90s
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.API.Key)
	assert.Equal(t, 3*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, "€", cfg.Currency.Symbol)
	assert.Equal(t, 90*time.Second, cfg.Refresh.Interval)
	// Untouched keys keep their defaults.
	assert.Equal(t, 100, cfg.Cache.CoinsLimit)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("COINTRACKER_API_KEY", "from-env")
	t.Setenv("COINTRACKER_CACHE_COINS_LIMIT", "25")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.API.Key)
	assert.Equal(t, 25, cfg.Cache.CoinsLimit)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cfg.Cache.CoinsLimit = 0
	assert.Error(t, cfg.Validate())

	cfg.Cache.CoinsLimit = 10
	cfg.Refresh.Interval = 0
	assert.Error(t, cfg.Validate())

	cfg.Refresh.Interval = time.Minute
	cfg.Currency.Symbol = ""
	assert.Error(t, cfg.Validate())

	cfg.Currency.Symbol = "$"
	assert.NoError(t, cfg.Validate())
}

func TestCurrencyFormat(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	f := cfg.CurrencyFormat()
	assert.Equal(t, "$", f.Symbol)
	assert.Equal(t, ",", f.ThousandsSep)
	assert.Equal(t, ".", f.DecimalSep)
	assert.Equal(t, 2, f.FractionDigits)
}

func TestResolveMaxPoints(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, cfg.Export.MaxDataPoints, cfg.ResolveMaxPoints(0))
	assert.Equal(t, 500, cfg.ResolveMaxPoints(500))
}

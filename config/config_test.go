package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplicity-wallet/simplicityw/config"
)

func TestDefaults(t *testing.T) {
	assert.Equal(t, config.DbTypeFile, config.GetString(config.DbTypeKey))
	assert.Equal(t, "regtest", config.GetString(config.NetworkKey))
	assert.Equal(t, uint64(100), config.GetUint(config.FeeMsatsPerByteKey))
	assert.Equal(t, uint64(450), config.GetUint(config.DustThresholdKey))
	assert.Equal(t, uint64(6), config.GetUint(config.PendingExpiryBlocksKey))
	assert.Equal(t, 256, config.GetInt(config.EntropySizeKey))
}

func TestSetOverridesDefault(t *testing.T) {
	config.Set(config.NetworkKey, "testnet")
	defer config.Set(config.NetworkKey, "regtest")

	require.Equal(t, "testnet", config.GetString(config.NetworkKey))
}

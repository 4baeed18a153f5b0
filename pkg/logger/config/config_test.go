package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lintang-b-s/netlist-kl-partitioner/pkg/logger/config"
)

func TestValidate(t *testing.T) {
	valid := config.Configuration{Level: config.INFO_LEVEL, TimeFormat: time.RFC3339Nano}
	require.NoError(t, valid.Validate())

	badLevel := config.Configuration{Level: 42, TimeFormat: time.RFC3339Nano}
	require.Error(t, badLevel.Validate())

	emptyFormat := config.Configuration{Level: config.DEBUG_LEVEL}
	require.Error(t, emptyFormat.Validate())
}

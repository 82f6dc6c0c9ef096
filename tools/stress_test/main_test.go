package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VanDung-dev/NamedCache/bridge"
	"github.com/VanDung-dev/NamedCache/cache"
)

func TestRunStressTest(t *testing.T) {
	a := bridge.NewAdapter(cache.New(cache.Options{Shards: 4}), nil)
	config := StressTestConfig{Concurrency: 6, Keys: 300, Rounds: 3, Shards: 4, Map: "stress"}

	result, err := runStressTest(context.Background(), a, config)
	require.NoError(t, err)

	assert.Equal(t, config.Concurrency*config.Keys, result.FinalSize)
	assert.EqualValues(t, config.Concurrency*config.Keys, result.Inserted)
	assert.EqualValues(t, config.Concurrency*config.Keys*(config.Rounds-1), result.Overwritten)
	assert.Zero(t, result.Mismatches)
	// Every 16th key is read back after its write: keys 0, 16, ..., 288.
	assert.EqualValues(t, config.Concurrency*config.Rounds*19, result.Reads)
	assert.EqualValues(t, config.Concurrency*config.Rounds, result.Exports)
}

func TestRunStressTestRejectsBadConfig(t *testing.T) {
	a := bridge.NewAdapter(nil, nil)
	_, err := runStressTest(context.Background(), a, StressTestConfig{Map: "m"})
	assert.Error(t, err)
}

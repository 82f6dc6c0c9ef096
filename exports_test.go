package main

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VanDung-dev/NamedCache/bridge"
)

func TestNullArgumentsSignalAbsence(t *testing.T) {
	before := lib.Store().Stats()

	assert.NotPanics(t, func() {
		CreateMap(nil)
		CreateSet(nil)
	})
	assert.False(t, bool(UpsertNumber(nil, nil, 1)))
	assert.False(t, bool(UpsertText(nil, nil, nil)))
	assert.False(t, bool(InsertSetMember(nil, nil)))
	assert.False(t, bool(RemoveMapEntry(nil, nil)))
	assert.False(t, bool(RemoveSetMember(nil, nil)))
	assert.False(t, bool(MapContains(nil, nil)))
	assert.False(t, bool(SetContains(nil, nil)))
	assert.Zero(t, int64(MapSize(nil)))
	assert.Zero(t, int64(SetSize(nil)))
	assert.Nil(t, GetText(nil, nil))
	assert.Equal(t, bridge.NumberSentinel, float64(GetNumber(nil, nil)))
	assert.Nil(t, ExportNumericEntries(nil, nil))

	assert.Equal(t, int32(bridge.StatusNullArgument), int32(UpsertNumberStatus(nil, nil, 1)))
	assert.Equal(t, int32(bridge.StatusNullArgument), int32(UpsertTextStatus(nil, nil, nil)))
	assert.Equal(t, int32(bridge.StatusNullArgument), int32(GetTextStatus(nil, nil, nil)))
	assert.Equal(t, int32(bridge.StatusNullArgument), int32(GetNumberStatus(nil, nil, nil)))
	assert.Equal(t, int32(bridge.StatusNullArgument), int32(ExportNumericEntriesIPC(nil, nil, nil)))

	assert.Equal(t, before, lib.Store().Stats(), "NULL names must not create collections")
}

func TestLegacyNamesDelegate(t *testing.T) {
	assert.False(t, bool(TryAddDoubleToMap(nil, nil, 1)))
	assert.False(t, bool(TryAddStringToMap(nil, nil, nil)))
	assert.False(t, bool(TryAddStringToSet(nil, nil)))
	assert.False(t, bool(TryRemoveFromMap(nil, nil)))
	assert.False(t, bool(TryRemoveFromSet(nil, nil)))
	assert.False(t, bool(IsInMap(nil, nil)))
	assert.False(t, bool(IsInSet(nil, nil)))
	assert.Zero(t, int64(GetMapSize(nil)))
	assert.Zero(t, int64(GetSetSize(nil)))
	assert.Nil(t, GetStringMapValue(nil, nil))
	assert.Equal(t, bridge.NumberSentinel, float64(GetDoubleMapValue(nil, nil)))
	assert.Nil(t, GetDoubleMapEntries(nil, nil))
}

func TestFreeNilIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		FreeText(nil)
		FreeEntries(nil, 0)
		FreeBuffer(nil)
	})
}

func TestOwnedStrings(t *testing.T) {
	v := CacheVersion()
	require.NotNil(t, v)
	assert.Equal(t, Version, bridge.ReadText(unsafe.Pointer(v)))
	FreeText(v)

	lib.CreateMap("exports-test")
	doc := StatsJSON()
	require.NotNil(t, doc)
	assert.True(t, strings.Contains(bridge.ReadText(unsafe.Pointer(doc)), `"exports-test"`))
	FreeText(doc)
}

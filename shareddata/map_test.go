// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

// map_test.go — type gate and deep-copy isolation of shared containers.
package shareddata

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-runtime/api"
	"github.com/momentics/hioload-runtime/buffer"
)

func TestSharedMap_AllowedValueTypes(t *testing.T) {
	m := NewSharedMap()
	allowed := []any{
		"text", true, 42, int8(1), int16(2), int32(3), int64(4),
		uint(5), uint8(6), uint16(7), uint32(8), uint64(9),
		float32(1.5), 2.5,
		decimal.NewFromFloat(3.14),
		[]byte{1, 2, 3},
		buffer.NewFromString("buf"),
	}
	for i, v := range allowed {
		require.NoError(t, m.Put(i, v), "value %T must be accepted", v)
	}
	assert.Equal(t, len(allowed), m.Size())
}

func TestSharedMap_TypeGateRejectsAndLeavesUnchanged(t *testing.T) {
	m := NewSharedMap()
	require.NoError(t, m.Put("k", "v"))

	type opaque struct{ n int }
	err := m.Put("k2", opaque{1})
	require.ErrorIs(t, err, api.ErrInvalidSharedType)

	var se *api.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, api.ErrCodeTypeRejected, se.Code)

	assert.Equal(t, 1, m.Size(), "rejected insert must not modify the map")
	require.ErrorIs(t, m.Put(opaque{1}, "v"), api.ErrInvalidSharedType, "keys are gated too")
	require.ErrorIs(t, m.Put("slice-key", map[string]int{}), api.ErrInvalidSharedType)
}

func TestSharedMap_ByteSliceDeepCopied(t *testing.T) {
	m := NewSharedMap()
	original := []byte{1, 2, 3}
	require.NoError(t, m.Put("blob", original))

	// Mutating the caller's slice must not reach the stored copy.
	original[0] = 99
	stored, ok := m.Get("blob")
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, stored)
}

func TestSharedMap_BufferDeepCopied(t *testing.T) {
	m := NewSharedMap()
	buf := buffer.NewFromString("abc")
	require.NoError(t, m.Put("buf", buf))

	buf.SetByte(0, 'z')
	stored, ok := m.Get("buf")
	require.True(t, ok)
	assert.Equal(t, "abc", stored.(*buffer.Buffer).String())
}

func TestSharedMap_PutIfAbsent(t *testing.T) {
	m := NewSharedMap()
	prev, err := m.PutIfAbsent("k", 1)
	require.NoError(t, err)
	assert.Nil(t, prev)

	prev, err = m.PutIfAbsent("k", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, prev)

	v, _ := m.Get("k")
	assert.Equal(t, 1, v, "second put must not overwrite")
}

func TestSharedMap_RemoveAndClear(t *testing.T) {
	m := NewSharedMap()
	require.NoError(t, m.Put("a", 1))
	require.NoError(t, m.Put("b", 2))

	assert.True(t, m.Remove("a"))
	assert.False(t, m.Remove("a"))
	assert.ElementsMatch(t, []any{"b"}, m.Keys())

	m.Clear()
	assert.Zero(t, m.Size())
}

func TestSharedSet_Basics(t *testing.T) {
	s := NewSharedSet()
	added, err := s.Add("x")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Add("x")
	require.NoError(t, err)
	assert.False(t, added, "duplicate add")

	_, err = s.Add([]byte{1})
	require.ErrorIs(t, err, api.ErrInvalidSharedType, "non-comparable members are rejected")
	assert.Equal(t, 1, s.Size())

	assert.True(t, s.Contains("x"))
	assert.True(t, s.Remove("x"))
	assert.False(t, s.Remove("x"))
}

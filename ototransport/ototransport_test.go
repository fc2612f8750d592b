package ototransport

import (
	"io"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jennydigital/audioengine"
)

func newTestReader(buf []int16, onHalf func(audioengine.BufferHalf)) (*bufferReader, *atomic.Bool) {
	stopped := &atomic.Bool{}
	return &bufferReader{buf: buf, onHalf: onHalf, stopped: stopped}, stopped
}

func TestBufferReaderEncodesLittleEndian(t *testing.T) {
	buf := []int16{0x1234, -2}
	r, _ := newTestReader(buf, func(audioengine.BufferHalf) {})

	p := make([]byte, 2)
	n, err := r.Read(p)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	assert.Equal(t, []byte{0x34, 0x12}, p)

	n, err = r.Read(p)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	assert.Equal(t, []byte{0xFE, 0xFF}, p)
}

func TestBufferReaderFiresCallbackPerHalf(t *testing.T) {
	buf := make([]int16, 8)
	var halves []audioengine.BufferHalf
	r, _ := newTestReader(buf, func(h audioengine.BufferHalf) {
		halves = append(halves, h)
	})

	// Two halves of 4 samples each, pulled in one read per half.
	p := make([]byte, 8)
	for i := 0; i < 2; i++ {
		n, err := r.Read(p)
		require.NoError(t, err)
		require.Equal(t, 8, n)
	}

	assert.Equal(t, []audioengine.BufferHalf{
		audioengine.FirstHalf,
		audioengine.SecondHalf,
	}, halves)
	assert.Equal(t, 0, r.pos, "cursor should wrap after the second half")
}

func TestBufferReaderNeverCrossesHalfBoundary(t *testing.T) {
	buf := make([]int16, 8)
	calls := 0
	r, _ := newTestReader(buf, func(audioengine.BufferHalf) { calls++ })

	// A read larger than one half must be truncated at the boundary.
	p := make([]byte, 64)
	n, err := r.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, 1, calls)
}

func TestBufferReaderShortReadsWithinHalf(t *testing.T) {
	buf := make([]int16, 8)
	calls := 0
	r, _ := newTestReader(buf, func(audioengine.BufferHalf) { calls++ })

	p := make([]byte, 4)
	for i := 0; i < 2; i++ {
		n, err := r.Read(p)
		require.NoError(t, err)
		require.Equal(t, 4, n)
	}

	// Callback fires only once the half's final byte has been served.
	assert.Equal(t, 1, calls)
}

func TestBufferReaderStopReturnsEOF(t *testing.T) {
	buf := make([]int16, 8)
	r, stopped := newTestReader(buf, func(audioengine.BufferHalf) {})

	stopped.Store(true)
	n, err := r.Read(make([]byte, 8))
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestBufferReaderStopFromCallback(t *testing.T) {
	buf := make([]int16, 8)
	var stopped *atomic.Bool
	r, s := newTestReader(buf, func(audioengine.BufferHalf) {
		stopped.Store(true)
	})
	stopped = s

	// The half that triggered the stop is still delivered in full.
	p := make([]byte, 8)
	n, err := r.Read(p)
	assert.Equal(t, 8, n)
	assert.ErrorIs(t, err, io.EOF)

	n, err = r.Read(p)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedTraceGenerator_ReturnsSameID(t *testing.T) {
	gen := NewFixedTraceGenerator("test-trace-123")

	assert.Equal(t, "test-trace-123", gen.Generate())
	assert.Equal(t, "test-trace-123", gen.Generate())
}

func TestFixedTraceGenerator_EmptyIDDefault(t *testing.T) {
	gen := NewFixedTraceGenerator("")
	assert.Equal(t, "test-trace-default", gen.Generate())
}

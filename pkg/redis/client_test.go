package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientUnreachable(t *testing.T) {
	c, err := NewClient(context.Background(), "127.0.0.1:1", "", 0, nil)
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "redis ping")
}

func TestHealthyNil(t *testing.T) {
	var c *Client
	assert.False(t, c.Healthy(context.Background()))
}

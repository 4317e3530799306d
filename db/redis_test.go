package db

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/assert/v2"
)

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		url  string
	}{
		{"url form", "redis://" + mr.Addr() + "/0"},
		{"bare address", mr.Addr()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := ConnectRedis(context.Background(), tt.url)
			assert.Equal(t, nil, err)
			defer CloseRedis(client)

			assert.Equal(t, "PONG", client.Ping(context.Background()).Val())
		})
	}
}

func TestConnectRedis_Empty(t *testing.T) {
	client, err := ConnectRedis(context.Background(), "")
	assert.NotEqual(t, nil, err)
	assert.Equal(t, true, client == nil)
}

package utils

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFromDBURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "full", url: "postgresql://user:pw@db.local:5433/toolkit", want: "db.local:5433"},
		{name: "default port", url: "postgresql://user:pw@db.local/toolkit", want: "db.local:5432"},
		{name: "short scheme", url: "postgres://user@localhost:5432/x?sslmode=disable", want: "localhost:5432"},
		{name: "no user", url: "postgresql://localhost/x", want: "localhost:5432"},
		{name: "other scheme", url: "mysql://localhost/x", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractFromDBURL(tt.url))
		})
	}
}

func TestWaitForTCP(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	assert.NoError(t, WaitForTCP(context.Background(), addr, time.Second))

	l.Close()
	assert.Error(t, WaitForTCP(context.Background(), addr, 300*time.Millisecond))
}

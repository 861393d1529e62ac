package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"crmapi/internal/config"
)

func TestEnabled(t *testing.T) {
	assert.False(t, Enabled(config.MinIOConfig{}))
	assert.True(t, Enabled(config.MinIOConfig{Endpoint: "minio:9000"}))
}

func TestNewMinIO_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
		want string
	}{
		{name: "no endpoint", cfg: config.MinIOConfig{}, want: "endpoint"},
		{name: "no credentials", cfg: config.MinIOConfig{Endpoint: "minio:9000", Bucket: "exports"}, want: "credentials"},
		{name: "no bucket", cfg: config.MinIOConfig{Endpoint: "minio:9000", AccessKey: "a", SecretKey: "b"}, want: "bucket"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewMinIO(context.Background(), tt.cfg)
			assert.ErrorContains(t, err, tt.want)
			assert.Nil(t, s)
		})
	}
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{
		"STORAGE_DRIVER": "memory",
		"JWT_SECRET":     "s",
	}))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "20000", cfg.Auth.InitialBalance.String())
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, BrokerNone, cfg.Broker.Kind)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Broker.KafkaBrokers)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestFromEnv_Postgres(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{
		"POSTGRES_USER":     "cinema",
		"POSTGRES_PASSWORD": "pw",
		"POSTGRES_DB":       "cinema",
		"POSTGRES_PORT":     "6543",
		"JWT_SECRET":        "s",
		"BROKER":            "Kafka",
		"KAFKA_BROKERS":     "k1:9092, k2:9092,",
		"REDIS_ENABLED":     "false",
	}))
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, 6543, cfg.Postgres.Port)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.Equal(t, BrokerKafka, cfg.Broker.Kind)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Broker.KafkaBrokers)
	assert.False(t, cfg.Redis.Enabled)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"missing postgres user", map[string]string{"JWT_SECRET": "s"}, "missing POSTGRES_USER"},
		{"missing secret", map[string]string{"STORAGE_DRIVER": "memory"}, "missing JWT_SECRET"},
		{"bad port", map[string]string{"STORAGE_DRIVER": "memory", "JWT_SECRET": "s", "SERVER_PORT": "x"}, "invalid SERVER_PORT"},
		{"bad driver", map[string]string{"STORAGE_DRIVER": "sqlite", "JWT_SECRET": "s"}, "invalid STORAGE_DRIVER"},
		{"bad broker", map[string]string{"STORAGE_DRIVER": "memory", "JWT_SECRET": "s", "BROKER": "nats"}, "invalid BROKER"},
		{"negative balance", map[string]string{"STORAGE_DRIVER": "memory", "JWT_SECRET": "s", "INITIAL_BALANCE": "-1"}, "INITIAL_BALANCE"},
		{"bad duration", map[string]string{"STORAGE_DRIVER": "memory", "JWT_SECRET": "s", "JWT_TTL": "soon"}, "invalid JWT_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(lookupFrom(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

package redis_test

import (
	"testing"

	"studio/config"
	"studio/infras/redis"

	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	options := redis.Options(config.Redis{Host: "cache", Port: "6380", Password: "secret", DB: 2})

	assert.Equal(t, "cache:6380", options.Addr)
	assert.Equal(t, "secret", options.Password)
	assert.Equal(t, 2, options.DB)
}

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workingDay struct {
	Day      int    `json:"day"`
	OpenTime string `json:"open_time"`
}

func TestEncodeDecode(t *testing.T) {
	payload, err := encode([]workingDay{{Day: 4, OpenTime: "09:00"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"day":4,"open_time":"09:00"}]`, string(payload))

	var days []workingDay
	require.NoError(t, decode(payload, &days))
	assert.Equal(t, []workingDay{{Day: 4, OpenTime: "09:00"}}, days)
}

func TestEncodeDecode_Strings(t *testing.T) {
	payload, err := encode("3")
	require.NoError(t, err)
	assert.Equal(t, []byte("3"), payload)

	var count string
	require.NoError(t, decode(payload, &count))
	assert.Equal(t, "3", count)
}

func TestDecode_Invalid(t *testing.T) {
	var day workingDay

	assert.Error(t, decode([]byte("not json"), &day))
}

package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSample_Success(t *testing.T) {
	payload := []byte(`{"device_id": "dev-1", "latitude": 32.505, "longitude": -92.1239, "accuracy": 5.0, "timestamp": 1735689600}`)

	sample, err := decodeSample(payload)

	require.NoError(t, err)
	assert.Equal(t, 32.505, sample.Coordinate.Latitude)
	assert.Equal(t, -92.1239, sample.Coordinate.Longitude)
	assert.Equal(t, 5.0, sample.AccuracyMeters)
	assert.Equal(t, time.Unix(1735689600, 0), sample.Timestamp)
}

func TestDecodeSample_InvalidJSON(t *testing.T) {
	_, err := decodeSample([]byte(`{"latitude": `))

	require.Error(t, err)
	assert.ErrorContains(t, err, "invalid location payload")
}

func TestDecodeSample_OutOfRangeCoordinates(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"широта за пределами", `{"latitude": 95, "longitude": 0, "timestamp": 1735689600}`},
		{"долгота за пределами", `{"latitude": 0, "longitude": -181, "timestamp": 1735689600}`},
		{"нулевой timestamp", `{"latitude": 0, "longitude": 0, "timestamp": 0}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeSample([]byte(tc.payload))
			assert.Error(t, err)
		})
	}
}

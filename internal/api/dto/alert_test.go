package dto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestAlertRequestCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		lat     float64
		lng     float64
		wantErr bool
	}{
		{"nested", `{"location":{"lat":7.29,"lng":80.63}}`, 7.29, 80.63, false},
		{"flat numbers", `{"lat":7.29,"lng":80.63}`, 7.29, 80.63, false},
		{"flat strings", `{"lat":" 7.29","lng":"80.63"}`, 7.29, 80.63, false},
		{"nested wins", `{"location":{"lat":1,"lng":2},"lat":7.29,"lng":80.63}`, 1, 2, false},
		{"lng missing", `{"lat":7.29}`, 0, 0, true},
		{"none", `{}`, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req IngestAlertRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			c, err := req.Coordinates()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrMissingLocation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lat, c.Lat)
			assert.Equal(t, tt.lng, c.Lng)
		})
	}
}

func TestFlexFloatRejectsGarbage(t *testing.T) {
	var f FlexFloat
	assert.Error(t, json.Unmarshal([]byte(`"north"`), &f))
	assert.Error(t, json.Unmarshal([]byte(`true`), &f))
}

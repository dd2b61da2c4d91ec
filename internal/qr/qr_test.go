package qr

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURI(t *testing.T) {
	uri, err := DataURI("https://parking.example.com/parking/5", 128)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())
}

func TestEncodePNG_EmptyContent(t *testing.T) {
	_, err := EncodePNG("", 64)
	assert.Error(t, err)
}

func TestParkingURL(t *testing.T) {
	assert.Equal(t, "https://p.example.com/parking/7", ParkingURL("https://p.example.com/", 7))
	assert.Equal(t, "/parking/7", ParkingURL("", 7))
}

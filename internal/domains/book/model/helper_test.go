package model

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImagePayload(t *testing.T) {
	raw := []byte("fake-image-bytes")
	encoded := base64.StdEncoding.EncodeToString(raw)

	t.Run("data URI with content type", func(t *testing.T) {
		data, contentType, err := DecodeImagePayload("data:image/png;base64," + encoded)
		require.NoError(t, err)
		assert.Equal(t, raw, data)
		assert.Equal(t, "image/png", contentType)
	})

	t.Run("bare base64 defaults to jpeg", func(t *testing.T) {
		data, contentType, err := DecodeImagePayload(encoded)
		require.NoError(t, err)
		assert.Equal(t, raw, data)
		assert.Equal(t, "image/jpeg", contentType)
	})

	t.Run("malformed data URI", func(t *testing.T) {
		_, _, err := DecodeImagePayload("data:image/png;base64")
		assert.Error(t, err)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, _, err := DecodeImagePayload("not!!valid!!base64")
		assert.Error(t, err)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, _, err := DecodeImagePayload("")
		assert.Error(t, err)
	})
}

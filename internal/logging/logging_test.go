package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSONAddsService(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("media-access", "", &buf)

	logger.With("media_id", 3).Info("media deleted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "media-access", entry["service"])
	assert.Equal(t, "media deleted", entry["msg"])
	assert.EqualValues(t, 3, entry["media_id"])
}

func TestSetup_Text(t *testing.T) {
	var buf bytes.Buffer
	Setup("media-access", "text", &buf).Info("hello")

	assert.Contains(t, buf.String(), "service=media-access")
	assert.Contains(t, buf.String(), "msg=hello")
}

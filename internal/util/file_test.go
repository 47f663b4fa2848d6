package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMimeType(t *testing.T) {
	// PNG 魔数
	png := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 32)...)

	mime, err := ValidateMimeType(bytes.NewReader(png), []string{"image/"})
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	_, err = ValidateMimeType(bytes.NewReader(png), []string{"audio/"})
	assert.Error(t, err)
}

func TestValidateMimeTypeRejectsDisguisedText(t *testing.T) {
	_, err := ValidateMimeType(bytes.NewReader([]byte("#!/bin/sh\nrm -rf /")), []string{"image/", "audio/"})
	assert.Error(t, err)
}

func TestIsImageIsAudio(t *testing.T) {
	assert.True(t, IsImage("image/jpeg"))
	assert.False(t, IsImage("audio/mpeg"))
	assert.True(t, IsAudio("audio/mpeg"))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00", FormatDuration(0))
	assert.Equal(t, "01:05", FormatDuration(65))
	assert.Equal(t, "20:00", FormatDuration(1200))
	assert.Equal(t, "00:00", FormatDuration(-5))
}

package main

import (
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubfsw/digitpad/classify"
)

func writeDigit(t *testing.T, dir string) string {
	img := imaging.New(56, 56, color.White)
	for y := 8; y < 48; y++ {
		img.Set(28, y, color.Black)
	}
	name := filepath.Join(dir, "seven.png")
	require.NoError(t, imaging.Save(image.Image(img), name))
	return name
}

func TestClassifyFileWrapsFailure(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "server error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	out := filepath.Join(dir, "raster")
	err := classifyFile(writeDigit(t, dir), out, 7, srv.URL, true)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "predict: "), err.Error())

	var httpErr *classify.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)

	_, statErr := os.Stat(out + ".png")
	assert.NoError(t, statErr)
}

func TestClassifyFileRejectsBadInput(t *testing.T) {
	assert.Error(t, classifyFile("", "", 0, "", true))
	assert.Error(t, classifyFile("x.png", "", 12, "", true))
}

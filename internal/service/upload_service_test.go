package service

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	pngHeader  = "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"
	jpegHeader = "\xff\xd8\xff\xe0\x00\x10JFIF\x00"
	gifHeader  = "GIF89a\x01\x00\x01\x00"
)

func TestUpload(t *testing.T) {
	images := &fakeImages{}
	svc := NewUploadService(images, nopLogger())
	ctx := context.Background()

	image, err := svc.Upload(ctx, "lip.png", strings.NewReader(pngHeader+"rest"), "")
	require.NoError(t, err)
	assert.Equal(t, "bafylip.png", image.CID)
	assert.Equal(t, "https://gateway.test/ipfs/bafylip.png", image.URL)
	assert.Equal(t, "image/png", image.MimeType)
	// The sniffed prefix is still forwarded.
	assert.Equal(t, []string{"image/png:" + pngHeader + "rest"}, images.uploaded)

	image, err = svc.Upload(ctx, "blush.jpg", strings.NewReader(jpegHeader), "")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", image.MimeType)

	image, err = svc.Upload(ctx, "glitter.gif", strings.NewReader(gifHeader), "")
	require.NoError(t, err)
	assert.Equal(t, "image/gif", image.MimeType)

	images.uploadErr = errors.New("503")
	_, err = svc.Upload(ctx, "lip.png", strings.NewReader(pngHeader), "")
	assert.EqualError(t, err, "503")

	require.NoError(t, svc.Unpin(ctx, "bafy1"))
	assert.Equal(t, []string{"bafy1"}, images.unpinned)
	var validation *ValidationError
	assert.True(t, errors.As(svc.Unpin(ctx, " "), &validation))
}

func TestUploadRejectsNonImageContent(t *testing.T) {
	images := &fakeImages{}
	svc := NewUploadService(images, nopLogger())

	tests := map[string]string{
		"pdf named as png": "%PDF-1.7\n%\xe2\xe3",
		"html":             "<!DOCTYPE html><html></html>",
		"plain text":       "just some text",
		"empty":            "",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Upload(context.Background(), "photo.png", strings.NewReader(content), "")
			var validation *ValidationError
			assert.True(t, errors.As(err, &validation))
		})
	}
	assert.Empty(t, images.uploaded)
}

func TestUploadDisabled(t *testing.T) {
	svc := NewUploadService(nil, nopLogger())

	_, err := svc.Upload(context.Background(), "a.png", strings.NewReader(pngHeader), "")
	assert.ErrorIs(t, err, ErrUploadsDisabled)
	assert.ErrorIs(t, svc.Unpin(context.Background(), "bafy"), ErrUploadsDisabled)
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Skin Care":        "skin-care",
		"  Lips & Cheeks ": "lips-cheeks",
		"Eau-de-Parfum!!":  "eau-de-parfum",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

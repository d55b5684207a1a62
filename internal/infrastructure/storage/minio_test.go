package storage

import (
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudioObjectName(t *testing.T) {
	id := uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")
	now := time.Unix(1700000000, 0)

	name := AudioObjectName(id, "/tmp/audio/abc-xyz.webm", now)
	assert.Equal(t, "audio/0f8fad5b-d9cb-469f-a165-70867728950e/1700000000-abc-xyz.webm", name)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "audio/webm", ContentType("a.webm"))
	assert.Equal(t, "audio/webm", ContentType("A.WEBM"))
	assert.Equal(t, "audio/mp4", ContentType("a.m4a"))
	assert.Equal(t, "application/octet-stream", ContentType("noext"))
}

func TestRewriteHost(t *testing.T) {
	u, err := url.Parse("http://minio:9000/video-chat/audio/x.webm?X-Amz-Signature=abc")
	require.NoError(t, err)

	got, err := rewriteHost(u, "")
	require.NoError(t, err)
	assert.Equal(t, u.String(), got)

	got, err = rewriteHost(u, "https://files.example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://files.example.com/video-chat/audio/x.webm?X-Amz-Signature=abc", got)

	got, err = rewriteHost(u, "https://example.com/s3")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/s3/video-chat/audio/x.webm?X-Amz-Signature=abc", got)
}

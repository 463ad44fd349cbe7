package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignedURLSignerRoundTrip(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, expiresAt, err := signer.Generate("job-1", "events_20260901.csv")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	jobID, path, parsedExpiry, err := signer.Parse(token, false)
	require.NoError(t, err)
	require.Equal(t, "job-1", jobID)
	require.Equal(t, "events_20260901.csv", path)
	require.WithinDuration(t, expiresAt, parsedExpiry, time.Second)
}

func TestSignedURLSignerRejectsTampering(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, _, err := signer.Generate("job-1", "events_20260901.csv")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	parts[0] = "job-2"
	_, _, _, err = signer.Parse(strings.Join(parts, "."), false)
	require.Error(t, err)

	_, _, _, err = signer.Parse("not-a-token", false)
	require.Error(t, err)
}

func TestSignedURLSignerSecretMismatch(t *testing.T) {
	token, _, err := NewSignedURLSigner("secret-a", time.Hour).Generate("job-1", "file.pdf")
	require.NoError(t, err)

	_, _, _, err = NewSignedURLSigner("secret-b", time.Hour).Parse(token, false)
	require.Error(t, err)
}

func TestSignedURLSignerExpiry(t *testing.T) {
	signer := NewSignedURLSigner("secret", 10*time.Millisecond)
	token, _, err := signer.Generate("job-1", "compliance_20260901.pdf")
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)

	_, _, _, err = signer.Parse(token, false)
	require.Error(t, err)

	jobID, path, _, err := signer.Parse(token, true)
	require.NoError(t, err)
	require.Equal(t, "job-1", jobID)
	require.Equal(t, "compliance_20260901.pdf", path)
}

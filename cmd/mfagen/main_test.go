package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outputValue(t *testing.T, out, prefix string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, prefix); ok {
			return strings.TrimSpace(v)
		}
	}
	t.Fatalf("no %q line in output:\n%s", prefix, out)
	return ""
}

func TestRun_Defaults(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(nil, &out))

	secret := outputValue(t, out.String(), "Your MFA secret (base32) is:")
	url := outputValue(t, out.String(), "QR Code URL (optional):")

	key, err := otp.NewKeyFromURL(url)
	require.NoError(t, err)
	assert.Equal(t, "e-cenovnik.mk (admin)", key.Issuer())
	assert.Equal(t, "admin", key.AccountName())
	assert.Equal(t, secret, key.Secret())

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	assert.True(t, totp.Validate(code, secret))
}

func TestRun_CustomAccount(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"-issuer", "cenovnik", "-account", "ops"}, &out))

	key, err := otp.NewKeyFromURL(outputValue(t, out.String(), "QR Code URL (optional):"))
	require.NoError(t, err)
	assert.Equal(t, "cenovnik", key.Issuer())
	assert.Equal(t, "ops", key.AccountName())
}

func TestRun_EmptyIssuer(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"-issuer", ""}, &out))
}

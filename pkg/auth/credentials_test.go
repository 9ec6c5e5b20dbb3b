package auth

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"binanceapi/pkg/core"
)

const (
	testKey    = "vmPUZE6mv9SD5VNHk4HlWFsOr6aKE2zvsw0MuIgwCIPy6utIco14y7Ju91duEh8A"
	testSecret = "NhqPtmdSJYdKjVHjA7PZj4Mge3R5YNiP1e3UZjInClVN65XAbvqqM6A7H5fATj0j"
)

func TestAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		want    string
		wantErr bool
	}{
		{"anonymous", Anonymous{}, "", true},
		{"key_only", NewAPIKeyOnly(testKey), testKey, false},
		{"key_and_secret", NewAPIKeyAndSecret(testKey, testSecret), testKey, false},
		{"empty_key_only", NewAPIKeyOnly(""), "", true},
		{"empty_key_with_secret", NewAPIKeyAndSecret("", testSecret), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := APIKey(tt.creds)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrMissingCredential)
				assert.Empty(t, key)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, key)
		})
	}
}

func TestAPISecret(t *testing.T) {
	tests := []struct {
		name    string
		creds   Credentials
		want    string
		wantErr bool
	}{
		{"anonymous", Anonymous{}, "", true},
		{"key_only", NewAPIKeyOnly(testKey), "", true},
		{"key_and_secret", NewAPIKeyAndSecret(testKey, testSecret), testSecret, false},
		{"empty_secret", NewAPIKeyAndSecret(testKey, ""), "", true},
		{"secret_without_key", NewAPIKeyAndSecret("", testSecret), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			secret, err := APISecret(tt.creds)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrMissingCredential)
				assert.Equal(t, core.KindMissingCredential, core.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, secret)
		})
	}
}

func TestFromStrings(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		secret   string
		wantKind Kind
		wantErr  error
	}{
		{"neither", "", "", KindAnonymous, nil},
		{"key_only", testKey, "", KindAPIKeyOnly, nil},
		{"both", testKey, testSecret, KindAPIKeyAndSecret, nil},
		{"secret_without_key", "", testSecret, 0, core.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := FromStrings(tt.key, tt.secret)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, creds)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, creds.Kind())
		})
	}
}

func TestSatisfies(t *testing.T) {
	anonymous := Anonymous{}
	keyOnly := NewAPIKeyOnly(testKey)
	full := NewAPIKeyAndSecret(testKey, testSecret)

	assert.True(t, Satisfies(anonymous, core.SecurityNone))
	assert.False(t, Satisfies(anonymous, core.SecurityAPIKey))
	assert.False(t, Satisfies(anonymous, core.SecuritySigned))

	assert.True(t, Satisfies(keyOnly, core.SecurityAPIKey))
	assert.False(t, Satisfies(keyOnly, core.SecuritySigned))

	assert.True(t, Satisfies(full, core.SecurityAPIKey))
	assert.True(t, Satisfies(full, core.SecuritySigned))

	assert.False(t, Satisfies(NewAPIKeyOnly(""), core.SecurityAPIKey))
	assert.False(t, Satisfies(NewAPIKeyAndSecret("", testSecret), core.SecurityAPIKey))
	assert.False(t, Satisfies(NewAPIKeyAndSecret("", testSecret), core.SecuritySigned))
	assert.False(t, Satisfies(NewAPIKeyAndSecret(testKey, ""), core.SecuritySigned))
}

func TestCredentials_NeverRevealSecret(t *testing.T) {
	creds := NewAPIKeyAndSecret(testKey, testSecret)

	outputs := map[string]string{
		"String": creds.String(),
		"%v":     fmt.Sprintf("%v", creds),
		"%+v":    fmt.Sprintf("%+v", creds),
		"%#v":    fmt.Sprintf("%#v", creds),
		"%s":     fmt.Sprintf("%s", creds),
	}

	data, err := sonic.Marshal(creds)
	require.NoError(t, err)
	outputs["json"] = string(data)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Info().Object("credentials", creds).Msg("test")
	outputs["zerolog"] = buf.String()

	for name, out := range outputs {
		t.Run(name, func(t *testing.T) {
			assert.NotContains(t, out, testSecret)
			assert.NotContains(t, out, testKey)
			assert.Contains(t, out, "vmPU****Eh8A")
		})
	}
}

func TestCredentials_String(t *testing.T) {
	assert.Equal(t, "Anonymous", Anonymous{}.String())
	assert.Equal(t, "APIKeyOnly{key: vmPU****Eh8A}", NewAPIKeyOnly(testKey).String())
	assert.Equal(t, "APIKeyAndSecret{key: vmPU****Eh8A, secret: ****}", NewAPIKeyAndSecret(testKey, testSecret).String())
	assert.Equal(t, "APIKeyOnly{key: ****}", NewAPIKeyOnly("short").String())
}

func TestCredentials_MarshalJSON(t *testing.T) {
	data, err := sonic.Marshal(NewAPIKeyOnly(testKey))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"api_key","key":"vmPU****Eh8A"}`, string(data))

	data, err = sonic.Marshal(Anonymous{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"anonymous"}`, string(data))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "anonymous", KindAnonymous.String())
	assert.Equal(t, "api_key", KindAPIKeyOnly.String())
	assert.Equal(t, "api_key_and_secret", KindAPIKeyAndSecret.String())
}

// Package auth holds the credentials a client authenticates with.
//
// A credential value is exactly one of Anonymous, APIKeyOnly or
// APIKeyAndSecret. A secret without an API key cannot be represented.
// Values are immutable once built, and none of them reveals its secret
// through formatting, JSON or structured logging.
package auth

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"binanceapi/pkg/core"
)

// Credentials is implemented by Anonymous, APIKeyOnly and APIKeyAndSecret only.
type Credentials interface {
	fmt.Stringer
	zerolog.LogObjectMarshaler
	// Kind names the variant.
	Kind() Kind

	sealed()
}

// Kind identifies a Credentials variant.
type Kind int

const (
	KindAnonymous Kind = iota
	KindAPIKeyOnly
	KindAPIKeyAndSecret
)

// String returns the string representation of the credential kind.
func (k Kind) String() string {
	return [...]string{
		"anonymous",
		"api_key",
		"api_key_and_secret",
	}[k]
}

// Anonymous carries no credentials and can call public endpoints only.
type Anonymous struct{}

// APIKeyOnly carries an API key for keyed, unsigned endpoints.
type APIKeyOnly struct {
	key string
}

// APIKeyAndSecret carries an API key and the secret used to sign requests.
type APIKeyAndSecret struct {
	key    string
	secret string
}

// NewAPIKeyOnly returns key-only credentials.
func NewAPIKeyOnly(key string) APIKeyOnly {
	return APIKeyOnly{key: key}
}

// NewAPIKeyAndSecret returns credentials able to sign requests.
func NewAPIKeyAndSecret(key, secret string) APIKeyAndSecret {
	return APIKeyAndSecret{key: key, secret: secret}
}

// FromStrings picks the variant for an optional key and secret, where an
// empty string means absent. A secret without a key is rejected.
func FromStrings(key, secret string) (Credentials, error) {
	switch {
	case key == "" && secret == "":
		return Anonymous{}, nil
	case key == "":
		return nil, core.ErrInvalidCredentials
	case secret == "":
		return NewAPIKeyOnly(key), nil
	default:
		return NewAPIKeyAndSecret(key, secret), nil
	}
}

// APIKey returns the API key. Anonymous and an empty key fail with
// core.ErrMissingCredential.
func APIKey(c Credentials) (string, error) {
	var key string
	switch v := c.(type) {
	case APIKeyOnly:
		key = v.key
	case APIKeyAndSecret:
		key = v.key
	}
	if key == "" {
		return "", fmt.Errorf("api key: %w", core.ErrMissingCredential)
	}
	return key, nil
}

// APISecret returns the secret key, or core.ErrMissingCredential unless c is
// APIKeyAndSecret with a non-empty key and secret.
func APISecret(c Credentials) (string, error) {
	v, ok := c.(APIKeyAndSecret)
	if !ok || v.secret == "" {
		return "", fmt.Errorf("secret key: %w", core.ErrMissingCredential)
	}
	if v.key == "" {
		return "", fmt.Errorf("api key: %w", core.ErrMissingCredential)
	}
	return v.secret, nil
}

// Satisfies reports whether c carries what a request of the given security level needs.
func Satisfies(c Credentials, security core.Security) bool {
	switch security {
	case core.SecurityNone:
		return true
	case core.SecurityAPIKey:
		_, err := APIKey(c)
		return err == nil
	case core.SecuritySigned:
		_, err := APISecret(c)
		return err == nil
	}
	return false
}

func (Anonymous) Kind() Kind       { return KindAnonymous }
func (APIKeyOnly) Kind() Kind      { return KindAPIKeyOnly }
func (APIKeyAndSecret) Kind() Kind { return KindAPIKeyAndSecret }

func (Anonymous) sealed()       {}
func (APIKeyOnly) sealed()      {}
func (APIKeyAndSecret) sealed() {}

func (Anonymous) String() string { return "Anonymous" }

func (c APIKeyOnly) String() string {
	return fmt.Sprintf("APIKeyOnly{key: %s}", maskKey(c.key))
}

func (c APIKeyAndSecret) String() string {
	return fmt.Sprintf("APIKeyAndSecret{key: %s, secret: %s}", maskKey(c.key), redacted)
}

func (c Anonymous) GoString() string       { return c.String() }
func (c APIKeyOnly) GoString() string      { return c.String() }
func (c APIKeyAndSecret) GoString() string { return c.String() }

// Format keeps %v, %+v and %#v from printing the raw fields.
func (c APIKeyOnly) Format(f fmt.State, _ rune)      { fmt.Fprint(f, c.String()) }
func (c APIKeyAndSecret) Format(f fmt.State, _ rune) { fmt.Fprint(f, c.String()) }

func (Anonymous) MarshalZerologObject(e *zerolog.Event) {
	e.Str("kind", KindAnonymous.String())
}

func (c APIKeyOnly) MarshalZerologObject(e *zerolog.Event) {
	e.Str("kind", KindAPIKeyOnly.String()).Str("key", maskKey(c.key))
}

func (c APIKeyAndSecret) MarshalZerologObject(e *zerolog.Event) {
	e.Str("kind", KindAPIKeyAndSecret.String()).Str("key", maskKey(c.key)).Str("secret", redacted)
}

type maskedCredentials struct {
	Kind   string `json:"kind"`
	Key    string `json:"key,omitempty"`
	Secret string `json:"secret,omitempty"`
}

func (Anonymous) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(maskedCredentials{Kind: KindAnonymous.String()})
}

func (c APIKeyOnly) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(maskedCredentials{Kind: KindAPIKeyOnly.String(), Key: maskKey(c.key)})
}

func (c APIKeyAndSecret) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(maskedCredentials{
		Kind:   KindAPIKeyAndSecret.String(),
		Key:    maskKey(c.key),
		Secret: redacted,
	})
}

const redacted = "****"

func maskKey(key string) string {
	if len(key) <= 8 {
		return redacted
	}
	return key[:4] + redacted + key[len(key)-4:]
}

package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"binanceapi/pkg/core"
)

// Parameter names added to every signed request.
const (
	ParamTimestamp  = "timestamp"
	ParamRecvWindow = "recvWindow"
	ParamSignature  = "signature"
)

// SignedQuery is a canonical query string with its signature appended.
// It is sent on the wire exactly as produced.
type SignedQuery string

func (q SignedQuery) String() string { return string(q) }

// Payload returns the part of the query the signature covers.
func (q SignedQuery) Payload() string {
	s := string(q)
	if i := strings.LastIndex(s, "&"+ParamSignature+"="); i >= 0 {
		return s[:i]
	}
	if strings.HasPrefix(s, ParamSignature+"=") {
		return ""
	}
	return s
}

// Signature returns the hex signature carried by the query.
func (q SignedQuery) Signature() string {
	s := string(q)
	if i := strings.LastIndex(s, ParamSignature+"="); i >= 0 {
		return s[i+len(ParamSignature)+1:]
	}
	return ""
}

// Signer appends timestamp, recvWindow and an HMAC-SHA256 signature to
// request parameters. It is safe for concurrent use.
type Signer struct {
	secret string
	now    func() time.Time
}

// Option configures a Signer.
type Option func(*Signer)

// WithClock replaces the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		s.now = now
	}
}

// New returns a signer keyed with secret. An empty secret fails with
// core.ErrMissingCredential.
func New(secret string, opts ...Option) (*Signer, error) {
	if secret == "" {
		return nil, fmt.Errorf("secret key: %w", core.ErrMissingCredential)
	}

	s := &Signer{
		secret: secret,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Sign inserts the current timestamp and recvWindow into a copy of params,
// encodes the copy canonically and appends its signature. Caller-supplied
// timestamp or recvWindow entries are overwritten.
func (s *Signer) Sign(params core.Params, recvWindow uint64) (SignedQuery, error) {
	now := s.now()
	if now.Before(time.Unix(0, 0)) {
		return "", &core.ClockError{Now: now}
	}

	signed := params.Clone()
	signed.SetInt(ParamTimestamp, now.UnixMilli())
	signed.SetUint(ParamRecvWindow, recvWindow)

	payload := signed.Encode()
	return SignedQuery(appendSignature(payload, s.sign(payload))), nil
}

// Verify reports whether q carries a valid signature for this signer's secret.
func (s *Signer) Verify(q SignedQuery) bool {
	expected := s.sign(q.Payload())
	return hmac.Equal([]byte(expected), []byte(q.Signature()))
}

func (s *Signer) sign(payload string) string {
	return Signature(s.secret, payload)
}

// Signature returns the lowercase hex HMAC-SHA256 of payload keyed with secret.
func Signature(secret, payload string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

func appendSignature(payload, signature string) string {
	if payload == "" {
		return ParamSignature + "=" + signature
	}
	return payload + "&" + ParamSignature + "=" + signature
}

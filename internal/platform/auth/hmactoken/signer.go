// Package hmactoken implements the session token used by the records area:
// "<unix-millis>.<hex hmac-sha256 of the millis>". Tokens expire after a
// configured TTL and carry no claims beyond their mint time — there is a
// single admin identity, so nothing else is needed.
package hmactoken

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	clockport "github.com/browncherrycoffee/gwanak-church/internal/ports/out/clock"
)

var (
	ErrMalformed = errors.New("malformed token")
	ErrExpired   = errors.New("token expired")
	ErrBadSig    = errors.New("token signature mismatch")
)

type Signer struct {
	secret []byte
	ttl    time.Duration
	clk    clockport.Clock
}

func New(secret string, ttl time.Duration, clk clockport.Clock) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl, clk: clk}
}

// Mint issues a token stamped with the current time.
func (s *Signer) Mint() string {
	ts := strconv.FormatInt(s.clk.Now().UnixMilli(), 10)
	return ts + "." + s.sign(ts)
}

// Verify checks the token's shape, signature, and age. A token from the
// future is rejected like an expired one.
func (s *Signer) Verify(token string) error {
	ts, sig, ok := strings.Cut(token, ".")
	if !ok || ts == "" || sig == "" {
		return ErrMalformed
	}
	millis, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ErrMalformed
	}

	age := s.clk.Now().Sub(time.UnixMilli(millis))
	if age < 0 || age > s.ttl {
		return ErrExpired
	}

	if !hmac.Equal([]byte(s.sign(ts)), []byte(sig)) {
		return ErrBadSig
	}
	return nil
}

func (s *Signer) sign(message string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrTokenMalformed = errors.New("invalid token format")
	ErrTokenSignature = errors.New("invalid token signature")
	ErrTokenExpired   = errors.New("token expired")
)

// SignedURLSigner creates and validates expiring download tokens for exports.
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSignedURLSigner constructs a signer with the provided secret and TTL.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SignedURLSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Token describes the claims embedded in a download token.
type Token struct {
	ExportID  string
	Path      string
	ExpiresAt time.Time
}

// Generate returns a signed token referencing the export and its stored path.
func (s *SignedURLSigner) Generate(exportID, relPath string) (string, time.Time, error) {
	if exportID == "" || relPath == "" {
		return "", time.Time{}, fmt.Errorf("export id and path required")
	}
	if strings.Contains(exportID, ".") {
		return "", time.Time{}, fmt.Errorf("export id must not contain dots")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	expiresAt := s.now().Add(s.ttl).Truncate(time.Second)
	ts := strconv.FormatInt(expiresAt.Unix(), 10)
	encodedPath := base64.RawURLEncoding.EncodeToString([]byte(relPath))
	signature := s.sign(exportID, ts, encodedPath)
	return strings.Join([]string{exportID, ts, encodedPath, signature}, "."), expiresAt, nil
}

// Parse validates a token. Expired tokens are rejected unless allowExpired is set.
func (s *SignedURLSigner) Parse(token string, allowExpired bool) (Token, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 {
		return Token{}, ErrTokenMalformed
	}
	exportID, ts, encodedPath, signature := parts[0], parts[1], parts[2], parts[3]

	if !hmac.Equal([]byte(s.sign(exportID, ts, encodedPath)), []byte(signature)) {
		return Token{}, ErrTokenSignature
	}
	rawPath, err := base64.RawURLEncoding.DecodeString(encodedPath)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	expUnix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return Token{}, ErrTokenMalformed
	}
	expiresAt := time.Unix(expUnix, 0)
	if !allowExpired && s.now().After(expiresAt) {
		return Token{}, ErrTokenExpired
	}
	return Token{ExportID: exportID, Path: string(rawPath), ExpiresAt: expiresAt}, nil
}

func (s *SignedURLSigner) sign(exportID, ts, encodedPath string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(exportID + "|" + ts + "|" + encodedPath))
	return hex.EncodeToString(mac.Sum(nil))
}

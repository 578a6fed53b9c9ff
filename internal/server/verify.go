package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// signatureVersion is the Slack signing scheme version prefix
const signatureVersion = "v0"

// maxTimestampSkew bounds how old (or future-dated) a signed request may be
const maxTimestampSkew = 5 * time.Minute

// VerifySignature checks an inbound webhook request against the platform
// signing contract: the timestamp must be within maxTimestampSkew of now and
// the signature must equal v0=HMAC-SHA256(secret, "v0:<ts>:<body>"),
// compared in constant time.
func VerifySignature(signingSecret, timestamp, signature string, body []byte, now time.Time) bool {
	if signingSecret == "" || timestamp == "" || signature == "" {
		return false
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	skew := now.Sub(time.Unix(ts, 0))
	if skew > maxTimestampSkew || skew < -maxTimestampSkew {
		return false
	}

	mac := hmac.New(sha256.New, []byte(signingSecret))
	mac.Write([]byte(signatureVersion + ":" + timestamp + ":"))
	mac.Write(body)
	expected := signatureVersion + "=" + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

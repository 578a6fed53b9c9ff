package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"
)

const testSecret = "8f742231b10e8888abcd99yyyzzz85a5"

func sign(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "v0:%s:", timestamp)
	mac.Write(body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureValid(t *testing.T) {
	now := time.Unix(1700000000, 0)
	ts := "1700000000"
	body := []byte(`{"type":"event_callback"}`)

	if !VerifySignature(testSecret, ts, sign(testSecret, ts, body), body, now) {
		t.Error("Expected valid signature to verify")
	}
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)
	ts := "1700000000"
	body := []byte(`{}`)

	if VerifySignature(testSecret, ts, sign("other-secret", ts, body), body, now) {
		t.Error("Expected signature from wrong secret to fail")
	}
}

func TestVerifySignatureTamperedBody(t *testing.T) {
	now := time.Unix(1700000000, 0)
	ts := "1700000000"

	sig := sign(testSecret, ts, []byte(`{"a":1}`))
	if VerifySignature(testSecret, ts, sig, []byte(`{"a":2}`), now) {
		t.Error("Expected tampered body to fail verification")
	}
}

func TestVerifySignatureTimestampSkew(t *testing.T) {
	now := time.Unix(1700000000, 0)
	body := []byte(`{}`)

	// Just inside the window
	ts := fmt.Sprintf("%d", now.Unix()-299)
	if !VerifySignature(testSecret, ts, sign(testSecret, ts, body), body, now) {
		t.Error("Expected timestamp inside skew window to verify")
	}

	// Too old
	ts = fmt.Sprintf("%d", now.Unix()-301)
	if VerifySignature(testSecret, ts, sign(testSecret, ts, body), body, now) {
		t.Error("Expected stale timestamp to fail")
	}

	// Future-dated beyond the window
	ts = fmt.Sprintf("%d", now.Unix()+301)
	if VerifySignature(testSecret, ts, sign(testSecret, ts, body), body, now) {
		t.Error("Expected future timestamp to fail")
	}
}

func TestVerifySignatureMalformedInputs(t *testing.T) {
	now := time.Unix(1700000000, 0)
	body := []byte(`{}`)
	ts := "1700000000"
	sig := sign(testSecret, ts, body)

	if VerifySignature("", ts, sig, body, now) {
		t.Error("Expected empty secret to fail")
	}
	if VerifySignature(testSecret, "", sig, body, now) {
		t.Error("Expected empty timestamp to fail")
	}
	if VerifySignature(testSecret, ts, "", body, now) {
		t.Error("Expected empty signature to fail")
	}
	if VerifySignature(testSecret, "not-a-number", sig, body, now) {
		t.Error("Expected non-numeric timestamp to fail")
	}
}

package tripay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// RequestSignature signs an outbound transaction-create payload.
// Tripay expects HMAC-SHA256(private_key, merchant_code + merchant_ref + amount).
func RequestSignature(privateKey, merchantCode, merchantRef string, amount int64) string {
	mac := hmac.New(sha256.New, []byte(privateKey))
	mac.Write([]byte(merchantCode + merchantRef + strconv.FormatInt(amount, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}

// CallbackSignature computes the expected X-Callback-Signature for a raw
// callback body.
func CallbackSignature(privateKey string, rawBody []byte) string {
	mac := hmac.New(sha256.New, []byte(privateKey))
	mac.Write(rawBody)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyCallback recomputes the callback signature and compares it in
// constant time. A mismatch means the body was tampered with or the callback
// did not originate from the gateway.
func VerifyCallback(privateKey string, rawBody []byte, signatureHeader string) error {
	expected := CallbackSignature(privateKey, rawBody)
	if !hmac.Equal([]byte(expected), []byte(signatureHeader)) {
		return ErrInvalidSignature
	}
	return nil
}

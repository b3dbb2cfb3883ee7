// Package telegram verifies and parses the signed initData payload a
// Telegram Mini App client sends as proof of identity.
package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

// hmacKeySeed is the fixed key Telegram prescribes for deriving the
// per-bot signing key from the bot token.
const hmacKeySeed = "WebAppData"

// ParseInitData splits a raw initData string into its key/value fields.
// Pairs are separated by '&', key and value by the first '='; both sides are
// percent-decoded independently. A pair that fails to decode is kept
// verbatim, parsing never fails.
func ParseInitData(raw string) map[string]string {
	params := make(map[string]string)
	for _, pair := range strings.Split(raw, "&") {
		key, value, _ := strings.Cut(pair, "=")
		params[decode(key)] = decode(value)
	}
	return params
}

// VerifyInitData reports whether raw carries a valid signature for the given
// bot token. The check string is built from all fields except "hash", sorted
// lexicographically by key and joined as "key=value" lines; the signing key
// is HMAC-SHA256(key="WebAppData", message=token). Any missing or malformed
// piece fails the check, never panics.
func VerifyInitData(raw, botToken string) bool {
	if raw == "" {
		return false
	}

	params := ParseInitData(raw)
	receivedHash, ok := params["hash"]
	if !ok {
		return false
	}
	delete(params, "hash")

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var checkString strings.Builder
	for i, k := range keys {
		if i > 0 {
			checkString.WriteByte('\n')
		}
		checkString.WriteString(k)
		checkString.WriteByte('=')
		checkString.WriteString(params[k])
	}

	mac := hmac.New(sha256.New, []byte(hmacKeySeed))
	mac.Write([]byte(botToken))
	secretKey := mac.Sum(nil)

	mac = hmac.New(sha256.New, secretKey)
	mac.Write([]byte(checkString.String()))
	calculatedHash := hex.EncodeToString(mac.Sum(nil))

	return calculatedHash == receivedHash
}

func decode(value string) string {
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return value
	}
	return decoded
}

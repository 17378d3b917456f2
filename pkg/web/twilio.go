package web

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"sort"

	"github.com/gofiber/fiber/v2"
)

var errBadSignature = errors.New("invalid twilio signature")

// validateTwilioSignature checks the X-Twilio-Signature header against the
// request. Twilio signs the full public URL plus every POST parameter
// concatenated in sorted key order, HMAC-SHA1 with the auth token.
func validateTwilioSignature(c *fiber.Ctx, authToken string) error {
	signature := c.Get("X-Twilio-Signature")
	if signature == "" {
		return errors.New("missing twilio signature")
	}

	expected := computeTwilioSignature(authToken, requestURL(c), formParams(c))
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return errBadSignature
	}
	return nil
}

// requestURL reconstructs the URL Twilio actually called. Behind a tunnel
// or proxy the forwarded headers carry the public scheme and host.
func requestURL(c *fiber.Ctx) string {
	proto := c.Get("X-Forwarded-Proto")
	if proto == "" {
		return c.BaseURL() + c.OriginalURL()
	}
	host := c.Get("X-Forwarded-Host")
	if host == "" {
		host = c.Hostname()
	}
	return proto + "://" + host + c.OriginalURL()
}

func formParams(c *fiber.Ctx) map[string]string {
	params := make(map[string]string)
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		params[string(key)] = string(value)
	})
	return params
}

func computeTwilioSignature(authToken, url string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	mac := hmac.New(sha1.New, []byte(authToken))
	mac.Write([]byte(url))
	for _, key := range keys {
		mac.Write([]byte(key))
		mac.Write([]byte(params[key]))
	}
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/spec-kit/users-service/internal/config"
)

// mastersCookieSuffix names the cookie used by the frontend served from the apex domain.
const mastersCookieSuffix = "masters"

// CookieName derives the per-frontend cookie name from the request Origin so several
// frontends can share one backend without clobbering each other's tokens.
//
//	https://lead-schem.ru       -> access_token_masters
//	https://core.lead-schem.ru  -> access_token_core
//	(no or malformed origin)    -> access_token
func CookieName(baseName, origin, apexDomain string) string {
	if origin == "" {
		return baseName
	}
	parsed, err := url.Parse(origin)
	if err != nil {
		return baseName
	}
	hostname := parsed.Hostname()
	if hostname == "" {
		return baseName
	}
	if apexDomain != "" && strings.EqualFold(hostname, apexDomain) {
		return baseName + "_" + mastersCookieSuffix
	}
	parts := strings.Split(hostname, ".")
	if len(parts) >= 2 && parts[0] != "" {
		return baseName + "_" + parts[0]
	}
	return baseName
}

// SignCookie appends an HMAC-SHA256 signature: "<value>.<base64 signature without padding>".
func SignCookie(value string, secret []byte) string {
	return value + "." + cookieSignature(value, secret)
}

// UnsignCookie splits a signed cookie and reports whether its signature is valid.
func UnsignCookie(signed string, secret []byte) (string, bool) {
	idx := strings.LastIndexByte(signed, '.')
	if idx <= 0 {
		return "", false
	}
	value := signed[:idx]
	expected := cookieSignature(value, secret)
	if !hmac.Equal([]byte(signed[idx+1:]), []byte(expected)) {
		return "", false
	}
	return value, true
}

func cookieSignature(value string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(value))
	return base64.RawStdEncoding.EncodeToString(mac.Sum(nil))
}

// CookieExtractor pulls an access token out of the httpOnly access cookie.
type CookieExtractor struct {
	baseName   string
	apexDomain string
	signing    bool
	unsign     func(string) (string, bool)
}

// NewCookieExtractor builds an extractor from cookie configuration. Signature checks
// run only when signing is enabled and a cookie secret is configured.
func NewCookieExtractor(cfg config.CookieConfig) *CookieExtractor {
	e := &CookieExtractor{
		baseName:   cfg.AccessTokenName,
		apexDomain: cfg.ApexDomain,
		signing:    cfg.SigningEnabled,
	}
	if e.baseName == "" {
		e.baseName = "access_token"
	}
	if cfg.Secret != "" {
		secret := []byte(cfg.Secret)
		e.unsign = func(signed string) (string, bool) {
			return UnsignCookie(signed, secret)
		}
	}
	return e
}

// NameFor returns the cookie name used for the given Origin.
func (e *CookieExtractor) NameFor(origin string) string {
	return CookieName(e.baseName, origin, e.apexDomain)
}

// Extract returns the token carried by the access cookie, or "" when there is none.
// The origin-derived cookie is preferred over the unsuffixed base name. A signed
// cookie whose signature does not verify yields ErrInvalidCookieSignature.
func (e *CookieExtractor) Extract(cookie func(name string) string, origin string) (string, error) {
	if cookie == nil {
		return "", nil
	}

	value := ""
	if name := e.NameFor(origin); name != e.baseName {
		value = cookie(name)
	}
	if value == "" {
		value = cookie(e.baseName)
	}
	if value == "" {
		return "", nil
	}

	if e.signing && e.unsign != nil {
		token, valid := e.unsign(value)
		if !valid {
			return "", ErrInvalidCookieSignature
		}
		return token, nil
	}
	return value, nil
}

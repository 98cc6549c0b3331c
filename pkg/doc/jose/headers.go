/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jose

import (
	"fmt"
)

// IANA registered JOSE headers (https://tools.ietf.org/html/rfc7515#section-4.1)
const (
	// HeaderAlgorithm identifies the cryptographic algorithm used to secure the JWS.
	HeaderAlgorithm = "alg" // string
	// HeaderJWKSetURL is a URI that refers to a resource for a set of JSON-encoded public keys.
	HeaderJWKSetURL = "jku" // string
	// HeaderJSONWebKey is the public key that corresponds to the key used to digitally sign the JWS.
	HeaderJSONWebKey = "jwk" // JSON
	// HeaderKeyID is a hint indicating which key was used to secure the JWS.
	HeaderKeyID = "kid" // string
	// HeaderX509URL is a URI that refers to a resource for the X.509 public key certificate or certificate chain.
	HeaderX509URL = "x5u"
	// HeaderX509CertificateChain contains the X.509 public key certificate or certificate chain.
	HeaderX509CertificateChain = "x5c"
	// HeaderX509CertificateDigestSha1 is the SHA-1 thumbprint of the DER encoding of the X.509 certificate.
	HeaderX509CertificateDigestSha1 = "x5t"
	// HeaderX509CertificateDigestSha256 is the SHA-256 thumbprint of the DER encoding of the X.509 certificate.
	HeaderX509CertificateDigestSha256 = "x5t#S256" // string
	// HeaderType declares the media type of the complete JWS.
	HeaderType = "typ" // string
	// HeaderContentType declares the media type of the secured content (the payload).
	HeaderContentType = "cty" // string
	// HeaderCritical lists extensions that MUST be understood and processed.
	HeaderCritical = "crit" // array
)

// HeaderB64Payload determines whether the payload is represented in the JWS and the JWS Signing
// Input as ASCII(BASE64URL(JWS Payload)) or as the JWS Payload value itself (https://tools.ietf.org/html/rfc7797).
const HeaderB64Payload = "b64" // bool

// reservedHeaders are the header parameter names defined by the JWS, JWE and JWA specifications.
// They may never be listed in "crit".
var reservedHeaders = map[string]struct{}{ //nolint:gochecknoglobals
	HeaderAlgorithm:                   {},
	HeaderJWKSetURL:                   {},
	HeaderJSONWebKey:                  {},
	HeaderKeyID:                       {},
	HeaderX509URL:                     {},
	HeaderX509CertificateChain:        {},
	HeaderX509CertificateDigestSha1:   {},
	HeaderX509CertificateDigestSha256: {},
	HeaderType:                        {},
	HeaderContentType:                 {},
	HeaderCritical:                    {},
	"enc":                             {},
	"zip":                             {},
	"epk":                             {},
	"apu":                             {},
	"apv":                             {},
	"iv":                              {},
	"tag":                             {},
	"p2s":                             {},
	"p2c":                             {},
}

// IsReservedHeader reports whether name is a header parameter defined by the JOSE specifications.
func IsReservedHeader(name string) bool {
	_, ok := reservedHeaders[name]

	return ok
}

// Headers represents JOSE headers.
type Headers map[string]interface{}

// KeyID gets Key ID from JOSE headers.
func (h Headers) KeyID() (string, bool) {
	return h.stringValue(HeaderKeyID)
}

// Algorithm gets Algorithm from JOSE headers.
func (h Headers) Algorithm() (string, bool) {
	return h.stringValue(HeaderAlgorithm)
}

// Type gets the media type from JOSE headers.
func (h Headers) Type() (string, bool) {
	return h.stringValue(HeaderType)
}

// ContentType gets the payload content type from JOSE headers.
func (h Headers) ContentType() (string, bool) {
	return h.stringValue(HeaderContentType)
}

// Critical returns the "crit" header as a string slice.
func (h Headers) Critical() ([]string, bool, error) {
	raw, ok := h[HeaderCritical]
	if !ok {
		return nil, false, nil
	}

	switch v := raw.(type) {
	case []string:
		return v, true, nil
	case []interface{}:
		names := make([]string, 0, len(v))

		for _, item := range v {
			name, isStr := item.(string)
			if !isStr {
				return nil, true, fmt.Errorf("crit entry is not a string: %v", item)
			}

			names = append(names, name)
		}

		return names, true, nil
	default:
		return nil, true, fmt.Errorf("crit header is not an array")
	}
}

// Base64Payload returns the value of the "b64" header. It defaults to true when absent.
func (h Headers) Base64Payload() (bool, error) {
	raw, ok := h[HeaderB64Payload]
	if !ok {
		return true, nil
	}

	b64, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("invalid b64 header")
	}

	return b64, nil
}

// Clone returns a shallow copy of the headers.
func (h Headers) Clone() Headers {
	c := make(Headers, len(h))

	for k, v := range h {
		c[k] = v
	}

	return c
}

func (h Headers) stringValue(key string) (string, bool) {
	raw, ok := h[key]
	if !ok {
		return "", false
	}

	str, ok := raw.(string)

	return str, ok
}

// mergeHeaders merges header sets. The sets must already be known to be disjoint.
func mergeHeaders(sets ...Headers) Headers {
	merged := Headers{}

	for _, set := range sets {
		for k, v := range set {
			merged[k] = v
		}
	}

	return merged
}

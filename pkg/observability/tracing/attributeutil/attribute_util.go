/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package attributeutil

import (
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.opentelemetry.io/otel/attribute"

	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

const redacted = "[REDACTED]"

// JSON returns attribute with the value marshaled to JSON. Value can be redacted using WithRedacted option.
func JSON(key string, value interface{}, opts ...Opt) attribute.KeyValue {
	b, err := json.Marshal(value)
	if err != nil {
		return attribute.KeyValue{
			Key:   attribute.Key(key),
			Value: attribute.Value{},
		}
	}

	return attribute.String(key, string(redact(b, opts)))
}

// JWTClaims returns attribute with the unverified claims of a compact JWT or SD-JWT. The signature and any
// disclosures are never recorded. An empty value is returned when the token cannot be decoded.
func JWTClaims(key, token string, opts ...Opt) attribute.KeyValue {
	payload, err := vc.UnverifiedPayload(token)
	if err != nil || !gjson.ValidBytes(payload) {
		return attribute.KeyValue{
			Key:   attribute.Key(key),
			Value: attribute.Value{},
		}
	}

	return attribute.String(key, string(redact(payload, opts)))
}

func redact(b []byte, opts []Opt) []byte {
	op := &options{}

	for _, opt := range opts {
		opt(op)
	}

	for _, path := range op.redacted {
		if gjson.GetBytes(b, path).Exists() {
			b, _ = sjson.SetBytes(b, path, redacted)
		}
	}

	return b
}

type options struct {
	redacted []string
}

type Opt func(*options)

// WithRedacted returns option that replaces value with [REDACTED] for the given path.
// Refer to https://github.com/tidwall/gjson/blob/master/SYNTAX.md for path syntax.
func WithRedacted(path string) Opt {
	return func(o *options) {
		o.redacted = append(o.redacted, path)
	}
}

// ErrorKinds returns attribute with the validation error kinds contained in err, in order.
func ErrorKinds(key string, err error) attribute.KeyValue {
	var kinds []string

	for _, e := range validation.Flatten(err) {
		kinds = append(kinds, string(e.Kind))
	}

	return attribute.StringSlice(key, kinds)
}

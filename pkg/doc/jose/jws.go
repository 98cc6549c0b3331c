/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jose

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/go-jose/go-jose/v3/json"

	"github.com/trustbloc/vc-verifier/pkg/validation"
)

const (
	jwsPartsCount    = 3
	jwsHeaderPart    = 0
	jwsPayloadPart   = 1
	jwsSignaturePart = 2
)

// Serialization identifies the JWS serialization a token was decoded from.
type Serialization int

const (
	// Compact is header.payload.signature.
	Compact Serialization = iota
	// Flattened is the single-signature JSON serialization.
	Flattened
	// General is the multi-signature JSON serialization.
	General
)

// Signature is one signature of a JWS together with the header sets that apply to it.
type Signature struct {
	// ProtectedHeaders are integrity protected.
	ProtectedHeaders Headers
	// SharedHeaders are unprotected headers shared by every signature (general serialization only).
	SharedHeaders Headers
	// UnprotectedHeaders are the per-signature unprotected headers.
	UnprotectedHeaders Headers
	// Value is the decoded signature.
	Value []byte

	protected    string
	signingInput []byte
}

// Headers returns protected ∪ shared ∪ per-signature unprotected headers.
func (s *Signature) Headers() Headers {
	return mergeHeaders(s.SharedHeaders, s.UnprotectedHeaders, s.ProtectedHeaders)
}

// SigningInput returns the exact bytes the signature was computed over.
func (s *Signature) SigningInput() []byte {
	return s.signingInput
}

// JSONWebSignature defines JSON Web Signature (https://tools.ietf.org/html/rfc7515)
type JSONWebSignature struct {
	Payload       []byte
	Signatures    []*Signature
	Serialization Serialization
	Detached      bool
}

// ProtectedHeaders returns the protected headers of the first signature.
func (j *JSONWebSignature) ProtectedHeaders() Headers {
	if len(j.Signatures) == 0 {
		return Headers{}
	}

	return j.Signatures[0].ProtectedHeaders
}

// Headers returns the merged headers of the first signature.
func (j *JSONWebSignature) Headers() Headers {
	if len(j.Signatures) == 0 {
		return Headers{}
	}

	return j.Signatures[0].Headers()
}

type parseOpts struct {
	detachedPayload []byte
	detached        bool
	critical        map[string]struct{}
}

// ParseOpt is a JWS decoder option.
type ParseOpt func(opts *parseOpts)

// WithDetachedPayload requests detached-payload mode: the serialized token must omit the payload
// and the given payload is used in its place.
func WithDetachedPayload(payload []byte) ParseOpt {
	return func(opts *parseOpts) {
		opts.detachedPayload = payload
		opts.detached = true
	}
}

// WithCriticalHeaders registers header extensions (besides b64) the caller understands and processes.
func WithCriticalHeaders(names ...string) ParseOpt {
	return func(opts *parseOpts) {
		for _, name := range names {
			opts.critical[name] = struct{}{}
		}
	}
}

func newParseOpts(opts []ParseOpt) *parseOpts {
	pOpts := &parseOpts{
		critical: map[string]struct{}{HeaderB64Payload: {}},
	}

	for _, opt := range opts {
		opt(pOpts)
	}

	return pOpts
}

// IsCompactJWS checks weather input is a compact JWS (based on https://tools.ietf.org/html/rfc7516#section-9)
func IsCompactJWS(s string) bool {
	return strings.Count(s, ".") == jwsPartsCount-1
}

// Decode decodes a JWS in compact, flattened JSON or general JSON serialization.
// It checks header rules but does not verify signatures.
func Decode(raw string, opts ...ParseOpt) (*JSONWebSignature, error) {
	pOpts := newParseOpts(opts)

	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		return decodeJSON([]byte(trimmed), pOpts)
	}

	return decodeCompact(raw, pOpts)
}

func decodeCompact(raw string, opts *parseOpts) (*JSONWebSignature, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != jwsPartsCount {
		return nil, validation.Errorf(validation.EncodingError, "invalid JWS compact format")
	}

	protected, err := decodeHeaders(parts[jwsHeaderPart])
	if err != nil {
		return nil, err
	}

	if err = checkHeaders(protected, nil, nil, opts); err != nil {
		return nil, err
	}

	b64, _ := protected.Base64Payload() //nolint:errcheck // validated by checkHeaders

	payload, err := decodePayload(parts[jwsPayloadPart], b64, opts)
	if err != nil {
		return nil, err
	}

	sigValue, err := decodeSegment(parts[jwsSignaturePart], "signature")
	if err != nil {
		return nil, err
	}

	sig := &Signature{
		ProtectedHeaders: protected,
		Value:            sigValue,
		protected:        parts[jwsHeaderPart],
	}

	sig.signingInput, err = signingInput(sig.protected, payload, b64)
	if err != nil {
		return nil, err
	}

	return &JSONWebSignature{
		Payload:       payload,
		Signatures:    []*Signature{sig},
		Serialization: Compact,
		Detached:      opts.detached,
	}, nil
}

type jsonSignature struct {
	Protected string                 `json:"protected,omitempty"`
	Header    map[string]interface{} `json:"header,omitempty"`
	Signature string                 `json:"signature"`
}

type jsonJWS struct {
	Payload    *string                `json:"payload,omitempty"`
	Protected  string                 `json:"protected,omitempty"`
	Header     map[string]interface{} `json:"header,omitempty"`
	Signature  *string                `json:"signature,omitempty"`
	Signatures []jsonSignature        `json:"signatures,omitempty"`
}

func decodeJSON(raw []byte, opts *parseOpts) (*JSONWebSignature, error) {
	var envelope jsonJWS

	d := json.NewDecoder(bytes.NewReader(raw))
	d.UseNumber()

	if err := d.Decode(&envelope); err != nil {
		return nil, validation.Errorf(validation.EncodingError, "unmarshal JWS JSON serialization: %w", err)
	}

	var (
		serialization Serialization
		rawSigs       []jsonSignature
		shared        Headers
	)

	switch {
	case envelope.Signatures != nil && envelope.Signature != nil:
		return nil, validation.Errorf(validation.EncodingError, "JWS has both signature and signatures members")
	case envelope.Signatures != nil:
		if len(envelope.Signatures) == 0 {
			return nil, validation.Errorf(validation.EncodingError, "JWS signatures member is empty")
		}

		if envelope.Protected != "" {
			return nil, validation.Errorf(validation.EncodingError,
				"protected member is not allowed at the top level of general serialization")
		}

		serialization = General
		rawSigs = envelope.Signatures
		shared = envelope.Header
	case envelope.Signature != nil:
		serialization = Flattened
		rawSigs = []jsonSignature{{
			Protected: envelope.Protected,
			Header:    envelope.Header,
			Signature: *envelope.Signature,
		}}
	default:
		return nil, validation.Errorf(validation.EncodingError, "JWS has no signature")
	}

	sigs := make([]*Signature, 0, len(rawSigs))

	var payloadB64 *bool

	for i := range rawSigs {
		sig, b64, err := decodeJSONSignature(&rawSigs[i], shared, opts)
		if err != nil {
			return nil, err
		}

		if payloadB64 != nil && *payloadB64 != b64 {
			return nil, validation.Errorf(validation.HeaderError, "b64 header value differs between signatures")
		}

		payloadB64 = &b64

		sigs = append(sigs, sig)
	}

	var payloadSegment string

	switch {
	case envelope.Payload != nil:
		payloadSegment = *envelope.Payload
	case !opts.detached:
		return nil, validation.Errorf(validation.EncodingError, "JWS has no payload member")
	}

	payload, err := decodePayload(payloadSegment, *payloadB64, opts)
	if err != nil {
		return nil, err
	}

	for _, sig := range sigs {
		sig.signingInput, err = signingInput(sig.protected, payload, *payloadB64)
		if err != nil {
			return nil, err
		}
	}

	return &JSONWebSignature{
		Payload:       payload,
		Signatures:    sigs,
		Serialization: serialization,
		Detached:      opts.detached,
	}, nil
}

func decodeJSONSignature(raw *jsonSignature, shared Headers, opts *parseOpts) (*Signature, bool, error) {
	protected := Headers{}

	if raw.Protected != "" {
		var err error

		protected, err = decodeHeaders(raw.Protected)
		if err != nil {
			return nil, false, err
		}
	}

	unprotected := Headers(raw.Header)

	if err := checkHeaders(protected, shared, unprotected, opts); err != nil {
		return nil, false, err
	}

	b64, _ := protected.Base64Payload() //nolint:errcheck // validated by checkHeaders

	value, err := decodeSegment(raw.Signature, "signature")
	if err != nil {
		return nil, false, err
	}

	return &Signature{
		ProtectedHeaders:   protected,
		SharedHeaders:      shared,
		UnprotectedHeaders: unprotected,
		Value:              value,
		protected:          raw.Protected,
	}, b64, nil
}

func decodePayload(segment string, b64 bool, opts *parseOpts) ([]byte, error) {
	if opts.detached {
		if segment != "" {
			return nil, validation.Errorf(validation.EncodingError,
				"detached payload requested but JWS carries a payload")
		}

		return opts.detachedPayload, nil
	}

	if !b64 {
		return []byte(segment), nil
	}

	return decodeSegment(segment, "payload")
}

func decodeSegment(segment, name string) ([]byte, error) {
	b, err := base64.RawURLEncoding.Strict().DecodeString(segment)
	if err != nil {
		return nil, validation.Errorf(validation.EncodingError, "decode base64url %s: %w", name, err)
	}

	return b, nil
}

func decodeHeaders(segment string) (Headers, error) {
	b, err := decodeSegment(segment, "header")
	if err != nil {
		return nil, err
	}

	var headers Headers

	d := json.NewDecoder(bytes.NewReader(b))
	d.UseNumber()

	if err = d.Decode(&headers); err != nil {
		return nil, validation.Errorf(validation.EncodingError, "unmarshal JOSE headers: %w", err)
	}

	if headers == nil {
		return nil, validation.Errorf(validation.EncodingError, "JOSE header is not a JSON object")
	}

	return headers, nil
}

// signingInput builds ASCII(BASE64URL(protected)) || '.' || payload where payload is either
// BASE64URL(payload) or the raw payload when b64 is false.
func signingInput(protected string, payload []byte, b64 bool) ([]byte, error) {
	if !b64 {
		return append([]byte(protected+"."), payload...), nil
	}

	return []byte(protected + "." + base64.RawURLEncoding.EncodeToString(payload)), nil
}

// checkHeaders enforces the JWS header rules for one signature.
func checkHeaders(protected, shared, unprotected Headers, opts *parseOpts) error {
	if err := checkDisjoint(protected, shared, unprotected); err != nil {
		return err
	}

	for _, set := range []Headers{shared, unprotected} {
		if _, ok := set[HeaderCritical]; ok {
			return validation.Errorf(validation.HeaderError, "crit header must be integrity protected")
		}

		if _, ok := set[HeaderB64Payload]; ok {
			return validation.Errorf(validation.HeaderError, "b64 header must be integrity protected")
		}
	}

	crit, hasCrit, err := protected.Critical()
	if err != nil {
		return validation.NewError(validation.HeaderError, err)
	}

	if hasCrit {
		if err = checkCritical(crit, protected, opts); err != nil {
			return err
		}
	}

	if _, ok := protected[HeaderB64Payload]; ok {
		if _, err = protected.Base64Payload(); err != nil {
			return validation.NewError(validation.HeaderError, err)
		}

		if !contains(crit, HeaderB64Payload) {
			return validation.Errorf(validation.HeaderError, "b64 header must be listed in crit")
		}
	}

	if _, ok := mergeHeaders(shared, unprotected, protected).Algorithm(); !ok {
		return validation.Errorf(validation.HeaderError, "alg header is not defined")
	}

	return nil
}

func checkCritical(crit []string, protected Headers, opts *parseOpts) error {
	if len(crit) == 0 {
		return validation.Errorf(validation.HeaderError, "crit header must not be empty")
	}

	seen := make(map[string]struct{}, len(crit))

	for _, name := range crit {
		if IsReservedHeader(name) {
			return validation.Errorf(validation.HeaderError, "crit lists reserved header %q", name)
		}

		if _, ok := opts.critical[name]; !ok {
			return validation.Errorf(validation.HeaderError, "crit lists unsupported header %q", name)
		}

		if _, ok := protected[name]; !ok {
			return validation.Errorf(validation.HeaderError, "crit header %q is not present", name)
		}

		if _, dup := seen[name]; dup {
			return validation.Errorf(validation.HeaderError, "crit lists %q more than once", name)
		}

		seen[name] = struct{}{}
	}

	return nil
}

func checkDisjoint(sets ...Headers) error {
	owner := map[string]int{}

	for i, set := range sets {
		for name := range set {
			if j, ok := owner[name]; ok && j != i {
				return validation.Errorf(validation.HeaderError,
					"header %q is present in more than one header set", name)
			}

			owner[name] = i
		}
	}

	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}

	return false
}

func (s Serialization) String() string {
	switch s {
	case Compact:
		return "compact"
	case Flattened:
		return "flattened"
	case General:
		return "general"
	default:
		return fmt.Sprintf("Serialization(%d)", int(s))
	}
}

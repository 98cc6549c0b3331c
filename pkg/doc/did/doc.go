/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"fmt"
	"strings"

	"github.com/go-jose/go-jose/v3/json"
	afgdid "github.com/hyperledger/aries-framework-go/component/models/did"
)

// ContextV1 is the DID core v1 JSON-LD context.
const ContextV1 = afgdid.ContextV1

// MethodScope restricts which verification relationship a key must be listed under.
type MethodScope int

const (
	// ScopeAny accepts any verification method of the document.
	ScopeAny MethodScope = iota
	// ScopeAssertionMethod accepts only methods referenced or embedded under assertionMethod.
	ScopeAssertionMethod
	// ScopeAuthentication accepts only methods referenced or embedded under authentication.
	ScopeAuthentication
)

func (s MethodScope) String() string {
	switch s {
	case ScopeAny:
		return "any"
	case ScopeAssertionMethod:
		return "assertionMethod"
	case ScopeAuthentication:
		return "authentication"
	default:
		return fmt.Sprintf("MethodScope(%d)", int(s))
	}
}

// Doc is a read-only view of a DID Document, with relationships resolved to their verification methods.
type Doc struct {
	Context            []string
	ID                 string
	VerificationMethod []VerificationMethod
	Authentication     []VerificationMethod
	AssertionMethod    []VerificationMethod
	Service            []Service
}

// VerificationMethod DID doc verification method.
type VerificationMethod struct {
	ID         string
	Type       string
	Controller string

	// PublicKeyJwk is set for JWK encoded keys, Value holds the raw key bytes otherwise.
	PublicKeyJwk map[string]interface{}
	Value        []byte
}

// Service DID doc service.
type Service struct {
	ID              string
	Type            []string
	ServiceEndpoint interface{}
	Properties      map[string]interface{}
}

// ParseDocument creates an instance of Doc by reading a JSON document from bytes.
func ParseDocument(data []byte) (*Doc, error) {
	parsed, err := afgdid.ParseDocument(data)
	if err != nil {
		return nil, err
	}

	if _, err = Parse(parsed.ID); err != nil {
		return nil, fmt.Errorf("did doc id: %w", err)
	}

	return FromDocument(parsed)
}

// FromDocument converts a parsed aries DID document.
func FromDocument(doc *afgdid.Doc) (*Doc, error) {
	methods := make([]VerificationMethod, 0, len(doc.VerificationMethod))

	for i := range doc.VerificationMethod {
		vm, err := methodFromDocument(doc.ID, &doc.VerificationMethod[i])
		if err != nil {
			return nil, fmt.Errorf("populate verification methods failed: %w", err)
		}

		methods = append(methods, *vm)
	}

	authentication, err := relationshipFromDocument(doc.ID, doc.Authentication)
	if err != nil {
		return nil, fmt.Errorf("populate authentication failed: %w", err)
	}

	assertion, err := relationshipFromDocument(doc.ID, doc.AssertionMethod)
	if err != nil {
		return nil, fmt.Errorf("populate assertionMethod failed: %w", err)
	}

	services, err := servicesFromDocument(doc.ID, doc.Service)
	if err != nil {
		return nil, fmt.Errorf("populate services failed: %w", err)
	}

	return &Doc{
		Context:            stringArray(doc.Context),
		ID:                 doc.ID,
		VerificationMethod: methods,
		Authentication:     authentication,
		AssertionMethod:    assertion,
		Service:            services,
	}, nil
}

func methodFromDocument(docID string, vm *afgdid.VerificationMethod) (*VerificationMethod, error) {
	method := &VerificationMethod{
		ID:         absoluteID(docID, vm.ID),
		Type:       vm.Type,
		Controller: vm.Controller,
	}

	if j := vm.JSONWebKey(); j != nil {
		if !j.IsPublic() {
			return nil, fmt.Errorf("verification method %s: publicKeyJwk must not contain private key material",
				method.ID)
		}

		jwkBytes, err := j.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("verification method %s: marshal publicKeyJwk: %w", method.ID, err)
		}

		if err = json.Unmarshal(jwkBytes, &method.PublicKeyJwk); err != nil {
			return nil, fmt.Errorf("verification method %s: unmarshal publicKeyJwk: %w", method.ID, err)
		}

		return method, nil
	}

	if len(vm.Value) == 0 {
		return nil, fmt.Errorf("verification method %s: public key encoding not supported", method.ID)
	}

	method.Value = vm.Value

	return method, nil
}

func relationshipFromDocument(docID string, rel []afgdid.Verification) ([]VerificationMethod, error) {
	var result []VerificationMethod

	for i := range rel {
		vm, err := methodFromDocument(docID, &rel[i].VerificationMethod)
		if err != nil {
			return nil, err
		}

		result = append(result, *vm)
	}

	return result, nil
}

func servicesFromDocument(docID string, services []afgdid.Service) ([]Service, error) {
	result := make([]Service, 0, len(services))

	for i := range services {
		svc := Service{
			ID:         absoluteID(docID, services[i].ID),
			Type:       stringArray(services[i].Type),
			Properties: services[i].Properties,
		}

		if uri, err := services[i].ServiceEndpoint.URI(); err == nil {
			svc.ServiceEndpoint = uri
		} else {
			raw, mErr := services[i].ServiceEndpoint.MarshalJSON()
			if mErr != nil {
				return nil, fmt.Errorf("service %s endpoint: %w", svc.ID, mErr)
			}

			if mErr = json.Unmarshal(raw, &svc.ServiceEndpoint); mErr != nil {
				return nil, fmt.Errorf("service %s endpoint: %w", svc.ID, mErr)
			}
		}

		result = append(result, svc)
	}

	return result, nil
}

// VerificationMethodByKID selects the verification method named by a JWS "kid" header.
// kid is either an absolute DID URL of this document or a "#fragment" reference.
func (doc *Doc) VerificationMethodByKID(kid string, scope MethodScope) (*VerificationMethod, error) {
	if kid == "" {
		return nil, ErrKeyNotFound
	}

	id := kid

	if !strings.HasPrefix(kid, "#") {
		u, err := ParseDIDURL(kid)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, err.Error())
		}

		if u.DID.String() != doc.ID {
			return nil, fmt.Errorf("%w: key %s does not belong to %s", ErrKeyNotFound, kid, doc.ID)
		}
	}

	id = absoluteID(doc.ID, id)

	var candidates []VerificationMethod

	switch scope {
	case ScopeAssertionMethod:
		candidates = doc.AssertionMethod
	case ScopeAuthentication:
		candidates = doc.Authentication
	default:
		candidates = append(append(append(candidates, doc.VerificationMethod...), doc.AssertionMethod...),
			doc.Authentication...)
	}

	method, ok := findMethod(candidates, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s (scope %s)", ErrKeyNotFound, kid, scope)
	}

	return method, nil
}

// ServiceByID returns the service named by an absolute DID URL or a "#fragment" reference.
func (doc *Doc) ServiceByID(id string) (*Service, bool) {
	id = absoluteID(doc.ID, id)

	for i := range doc.Service {
		if doc.Service[i].ID == id {
			return &doc.Service[i], true
		}
	}

	return nil, false
}

// HasType reports whether the service has the given type.
func (s *Service) HasType(t string) bool {
	for _, st := range s.Type {
		if st == t {
			return true
		}
	}

	return false
}

// EndpointURI returns the service endpoint when it is a single URI.
func (s *Service) EndpointURI() (string, error) {
	switch v := s.ServiceEndpoint.(type) {
	case string:
		return v, nil
	case []interface{}:
		if len(v) == 1 {
			if uri, ok := v[0].(string); ok {
				return uri, nil
			}
		}
	}

	return "", fmt.Errorf("service %s endpoint is not a single URI", s.ID)
}

func findMethod(methods []VerificationMethod, id string) (*VerificationMethod, bool) {
	for i := range methods {
		if methods[i].ID == id {
			return &methods[i], true
		}
	}

	return nil, false
}

func absoluteID(docID, id string) string {
	if strings.HasPrefix(id, "#") {
		return docID + id
	}

	return id
}

func stringArray(entry interface{}) []string {
	switch v := entry.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []interface{}:
		var result []string

		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}

		return result
	default:
		return nil
	}
}

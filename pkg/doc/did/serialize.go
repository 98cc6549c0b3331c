/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"fmt"

	"github.com/go-jose/go-jose/v3/json"
	"github.com/hyperledger/aries-framework-go/component/kmscrypto/doc/jose/jwk"
	afgdid "github.com/hyperledger/aries-framework-go/component/models/did"
	"github.com/hyperledger/aries-framework-go/component/models/did/endpoint"
)

// JSONBytes converts document to json bytes.
func (doc *Doc) JSONBytes() ([]byte, error) {
	raw, err := doc.ToDocument()
	if err != nil {
		return nil, err
	}

	return raw.JSONBytes()
}

// ToDocument converts the view back to an aries DID document.
func (doc *Doc) ToDocument() (*afgdid.Doc, error) {
	methods := make([]afgdid.VerificationMethod, 0, len(doc.VerificationMethod))

	for i := range doc.VerificationMethod {
		vm, err := methodToDocument(&doc.VerificationMethod[i])
		if err != nil {
			return nil, err
		}

		methods = append(methods, *vm)
	}

	authentication, err := doc.relationshipToDocument(doc.Authentication, afgdid.Authentication)
	if err != nil {
		return nil, err
	}

	assertion, err := doc.relationshipToDocument(doc.AssertionMethod, afgdid.AssertionMethod)
	if err != nil {
		return nil, err
	}

	context := doc.Context
	if len(context) == 0 {
		context = []string{ContextV1}
	}

	return &afgdid.Doc{
		Context:            context,
		ID:                 doc.ID,
		VerificationMethod: methods,
		Authentication:     authentication,
		AssertionMethod:    assertion,
		Service:            servicesToDocument(doc.Service),
	}, nil
}

// MarshalJSON implements json.Marshaler.
func (doc *Doc) MarshalJSON() ([]byte, error) {
	return doc.JSONBytes()
}

// UnmarshalJSON implements json.Unmarshaler.
func (doc *Doc) UnmarshalJSON(data []byte) error {
	parsed, err := ParseDocument(data)
	if err != nil {
		return err
	}

	*doc = *parsed

	return nil
}

func methodToDocument(vm *VerificationMethod) (*afgdid.VerificationMethod, error) {
	if vm.PublicKeyJwk == nil {
		return afgdid.NewVerificationMethodFromBytes(vm.ID, vm.Type, vm.Controller, vm.Value), nil
	}

	jwkBytes, err := json.Marshal(vm.PublicKeyJwk)
	if err != nil {
		return nil, fmt.Errorf("verification method %s: marshal publicKeyJwk: %w", vm.ID, err)
	}

	j := &jwk.JWK{}

	if err = j.UnmarshalJSON(jwkBytes); err != nil {
		return nil, fmt.Errorf("verification method %s: unmarshal publicKeyJwk: %w", vm.ID, err)
	}

	return afgdid.NewVerificationMethodFromJWK(vm.ID, vm.Type, vm.Controller, j)
}

// relationshipToDocument references methods listed under verificationMethod and embeds the others.
func (doc *Doc) relationshipToDocument(methods []VerificationMethod,
	rel afgdid.VerificationRelationship) ([]afgdid.Verification, error) {
	result := make([]afgdid.Verification, 0, len(methods))

	for i := range methods {
		vm, err := methodToDocument(&methods[i])
		if err != nil {
			return nil, err
		}

		if _, listed := findMethod(doc.VerificationMethod, methods[i].ID); listed {
			result = append(result, *afgdid.NewReferencedVerification(vm, rel))
		} else {
			result = append(result, *afgdid.NewEmbeddedVerification(vm, rel))
		}
	}

	return result, nil
}

func servicesToDocument(services []Service) []afgdid.Service {
	result := make([]afgdid.Service, 0, len(services))

	for i := range services {
		svc := afgdid.Service{
			ID:         services[i].ID,
			Properties: services[i].Properties,
		}

		if len(services[i].Type) == 1 {
			svc.Type = services[i].Type[0]
		} else {
			svc.Type = services[i].Type
		}

		if uri, ok := services[i].ServiceEndpoint.(string); ok {
			svc.ServiceEndpoint = endpoint.NewDIDCommV1Endpoint(uri)
		} else {
			svc.ServiceEndpoint = endpoint.NewDIDCoreEndpoint(services[i].ServiceEndpoint)
		}

		result = append(result, svc)
	}

	return result
}

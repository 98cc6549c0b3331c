/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"context"
	"errors"
	"fmt"

	"github.com/trustbloc/vc-verifier/pkg/validation"
)

// ErrNotFound is returned when a DID does not exist.
var ErrNotFound = errors.New("DID does not exist")

// ErrKeyNotFound is returned when a verification method is not present in a DID document.
var ErrKeyNotFound = errors.New("key not found")

// Resolver resolves a DID to its document.
type Resolver interface {
	Resolve(ctx context.Context, did string) (*Doc, error)
}

// ResolverFunc is a function wrapper for Resolver.
type ResolverFunc func(ctx context.Context, did string) (*Doc, error)

// Resolve calls f(ctx, did).
func (f ResolverFunc) Resolve(ctx context.Context, did string) (*Doc, error) {
	return f(ctx, did)
}

// StaticResolver resolves DIDs from a fixed set of documents.
type StaticResolver struct {
	docs map[string]*Doc
}

// NewStaticResolver returns a resolver serving the given documents.
func NewStaticResolver(docs ...*Doc) *StaticResolver {
	r := &StaticResolver{docs: make(map[string]*Doc, len(docs))}

	for _, doc := range docs {
		r.docs[doc.ID] = doc
	}

	return r
}

// Resolve returns the document with the given id or ErrNotFound.
func (r *StaticResolver) Resolve(_ context.Context, did string) (*Doc, error) {
	doc, ok := r.docs[did]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, did)
	}

	return doc, nil
}

// ResolutionError classifies a resolver failure as NotFound or ResolutionError.
func ResolutionError(did string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return validation.Errorf(validation.NotFound, "resolve %s: %w", did, err)
	}

	if validation.IsKind(err, validation.NotFound) || validation.IsKind(err, validation.ResolutionError) {
		return err
	}

	return validation.Errorf(validation.ResolutionError, "resolve %s: %w", did, err)
}

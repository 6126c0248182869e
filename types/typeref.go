// Package types holds the schema type model: the type-reference algebra
// over wrapper strings ("Int", "Int!", "[Int!]!"), the type definition
// variants owned by the registry, and cache control hints.
package types

import (
	"strings"

	"github.com/veldt-io/graphql/errors"
)

type RefKind int

const (
	// Named is a bare type name such as "Product".
	Named RefKind = iota
	// List wraps an inner reference in brackets, "[Product]".
	List
	// NonNull marks an inner reference with a trailing "!", "Product!".
	NonNull
)

// TypeRef is the parsed structure of one wrapper level of a type
// reference string. It is never stored; callers reparse from the
// canonical string form on demand.
type TypeRef struct {
	Kind RefKind
	// Of is the wrapped reference for List and NonNull, or the bare
	// type name for Named.
	Of string
}

// ParseTypeRef peels a single wrapper off ref. A trailing "!" wins over
// bracket wrapping, so "[Int]!" parses as NonNull of "[Int]".
func ParseTypeRef(ref string) (TypeRef, *errors.GraphQLError) {
	if strings.HasSuffix(ref, "!") {
		inner := ref[:len(ref)-1]
		if inner == "" || strings.HasSuffix(inner, "!") {
			return TypeRef{}, errors.MalformedTypeRef(ref)
		}
		return TypeRef{Kind: NonNull, Of: inner}, nil
	}
	if strings.HasPrefix(ref, "[") {
		if !strings.HasSuffix(ref, "]") || len(ref) < 3 {
			return TypeRef{}, errors.MalformedTypeRef(ref)
		}
		return TypeRef{Kind: List, Of: ref[1 : len(ref)-1]}, nil
	}
	if !validName(ref) {
		return TypeRef{}, errors.MalformedTypeRef(ref)
	}
	return TypeRef{Kind: Named, Of: ref}, nil
}

// String is the exact inverse of ParseTypeRef.
func (r TypeRef) String() string {
	switch r.Kind {
	case NonNull:
		return r.Of + "!"
	case List:
		return "[" + r.Of + "]"
	default:
		return r.Of
	}
}

// ConcreteName strips every wrapper from ref down to the declared
// type name.
func ConcreteName(ref string) (string, *errors.GraphQLError) {
	parsed, err := ParseTypeRef(ref)
	if err != nil {
		return "", err
	}
	if parsed.Kind == Named {
		return parsed.Of, nil
	}
	return ConcreteName(parsed.Of)
}

// IsSubtype reports whether a value typed sub may be used where super is
// expected. NonNull satisfies a nullable or non-null expectation of the
// same inner relation, lists are covariant element-wise, and named types
// require exact equality. Malformed references are never subtypes.
func IsSubtype(super, sub string) bool {
	p, perr := ParseTypeRef(super)
	s, serr := ParseTypeRef(sub)
	if perr != nil || serr != nil {
		return false
	}
	switch {
	case p.Kind == NonNull && s.Kind == NonNull:
		return IsSubtype(p.Of, s.Of)
	case s.Kind == NonNull:
		return IsSubtype(super, s.Of)
	case p.Kind == List && s.Kind == List:
		return IsSubtype(p.Of, s.Of)
	case p.Kind == Named && s.Kind == Named:
		return p.Of == s.Of
	default:
		return false
	}
}

// IsNonNull reports whether the outermost wrapper of ref is a "!".
func IsNonNull(ref string) bool {
	parsed, err := ParseTypeRef(ref)
	return err == nil && parsed.Kind == NonNull
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

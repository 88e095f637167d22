package dag

import "strings"

// AliasResolver maps a bare short dependency name to a fully-qualified module
// id. Implementations are consulted before suffix matching.
type AliasResolver interface {
	// Resolve returns the qualified id for a short name, and whether the
	// name is a known alias.
	Resolve(name string) (string, bool)
}

// AliasTable is the simplest AliasResolver: a fixed name-to-id map.
//
// Deprecated: short-name aliases are a transitional convenience. Declare
// fully-qualified module ids in the genome instead.
type AliasTable map[string]string

// Resolve implements AliasResolver.
func (t AliasTable) Resolve(name string) (string, bool) {
	id, ok := t[name]
	return id, ok
}

// normalizeDependency resolves a raw dependency reference to a qualified
// module id. Already-qualified ids (containing a path separator) pass
// through untouched. Bare names consult the alias resolver, then fall back
// to suffix matching against the known id list; a bare name matching zero or
// multiple ids is unresolved.
func normalizeDependency(raw string, resolver AliasResolver, known []string) (string, bool) {
	if strings.Contains(raw, "/") {
		return raw, true
	}

	if resolver != nil {
		if id, ok := resolver.Resolve(raw); ok {
			return id, true
		}
	}

	var match string
	count := 0
	for _, id := range known {
		if id == raw || strings.HasSuffix(id, "/"+raw) {
			match = id
			count++
		}
	}
	if count == 1 {
		return match, true
	}
	return raw, false
}

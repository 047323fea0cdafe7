// Package domain holds the resource hierarchy and event shapes shared by the
// subject codec, bus adapter, and both gRPC services.
package domain

import "github.com/pkg/errors"

// ResourceKind is the closed enumeration of hierarchy levels a notification
// can be scoped to. Unspecified and All are wire sentinels and must be
// rejected at every entry point.
type ResourceKind int32

const (
	ResourceKindUnspecified ResourceKind = iota
	ResourceKindProject
	ResourceKindCollection
	ResourceKindObjectGroup
	ResourceKindObject
	ResourceKindAll
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceKindProject:
		return "PROJECT"
	case ResourceKindCollection:
		return "COLLECTION"
	case ResourceKindObjectGroup:
		return "OBJECTGROUP"
	case ResourceKindObject:
		return "OBJECT"
	case ResourceKindAll:
		return "ALL"
	default:
		return "UNSPECIFIED"
	}
}

// ErrUnsupportedResourceKind is returned wherever a request carries
// Unspecified or All, which the wire schema allows but the domain rejects.
var ErrUnsupportedResourceKind = errors.New("resource kind Unspecified and All are not valid for this operation")

// Validate rejects the two sentinel values; every other caller-supplied
// resource kind must pass through this before being used.
func (k ResourceKind) Validate() error {
	switch k {
	case ResourceKindProject, ResourceKindCollection, ResourceKindObjectGroup, ResourceKindObject:
		return nil
	default:
		return ErrUnsupportedResourceKind
	}
}

// EventType mirrors the wire schema's update-kind enumeration. The
// notification layer treats it as an opaque tag; only the Internal Emitter
// and codec care about ResourceKind.
type EventType int32

const (
	EventTypeUnspecified EventType = iota
	EventTypeCreated
	EventTypeAvailable
	EventTypeUpdated
	EventTypeDeleted
	EventTypeAll
)

// ObjectGroupRef is one parent object-group entry in a Relation.
type ObjectGroupRef struct {
	SharedObjectGroupID string
}

// Relation carries the ancestor ids needed to build subjects for a
// non-Project event. Which fields are populated depends on ResourceKind:
// Collection needs Project; Object/ObjectGroup need Project, Collection, and
// either SharedObject or ObjectGroups (or both, for Object).
type Relation struct {
	Project      string
	Collection   string
	SharedObject string
	ObjectGroups []ObjectGroupRef
}

// Event is what the Internal Emitter Service hands to the Event Handler for
// one relation entry.
type Event struct {
	Kind       ResourceKind
	ResourceID string
	Type       EventType
	Relation   Relation
}

// Hierarchy is the ancestor chain returned by the resource-hierarchy
// service, used to fill in ids a stream-group creation query needs but the
// public request itself doesn't carry (e.g. a Collection's ProjectID).
// SharedObjectID/SharedObjectGroupID are only populated, and only needed,
// when the request's ResourceKind is Object/ObjectGroup respectively.
type Hierarchy struct {
	ProjectID           string
	CollectionID        string
	SharedObjectID      string
	SharedObjectGroupID string
}

// StreamGroup is the durable-consumer abstraction minted by the Registry and
// created on the bus. Its ID doubles as the bus consumer name.
type StreamGroup struct {
	ID                string
	Kind              ResourceKind
	ResourceID        string
	IncludeSubresource bool
	EventType         EventType
}

// NotificationMessage is the decoded payload of a single bus message,
// exposed to clients via read_stream_group_messages.
type NotificationMessage struct {
	Resource    ResourceKind
	ResourceID  string
	UpdatedType EventType
}

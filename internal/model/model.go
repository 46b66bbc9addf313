package model

// Package model contains the domain records managed by the API.
// These are pure value types with no database-specific dependencies or tags,
// usable across layers (HTTP, service, repository) without coupling to persistence.

// Entity is implemented by every persisted record type. It exposes the record's
// unique identifier so generic repositories and handlers can work over any entity.
type Entity interface {
	EntityID() string
}

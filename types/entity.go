package types

// EntityID is the process-local handle of an entity. Destroyed entity IDs are recycled
// for later creations, so an EntityID is only meaningful while the entity is live.
type EntityID uint64

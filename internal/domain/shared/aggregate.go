package shared

// AggregateRoot is the base interface for all aggregate roots
type AggregateRoot interface {
	Entity
	GetVersion() int
}

// BaseAggregateRoot provides common fields for aggregate roots.
// The version column backs optimistic locking in the persistence layer:
// Version holds the value the row was loaded at, and SaveWithLock writes
// Version+1 while refusing to overwrite a row whose stored version moved
// on. A command may apply any number of domain mutations before the save;
// the version steps once per save, not once per mutation.
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

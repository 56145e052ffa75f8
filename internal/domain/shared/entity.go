package shared

import (
	"time"

	"github.com/google/uuid"
)

// timestampPrecision matches PostgreSQL's timestamptz resolution so that a
// saved entity compares equal to the one loaded back.
const timestampPrecision = time.Microsecond

// BaseEntity carries the identity and audit timestamps every record has
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity returns a fresh identity stamped with the current UTC time
func NewBaseEntity() BaseEntity {
	now := Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch records a modification
func (e *BaseEntity) Touch() {
	e.UpdatedAt = Now()
}

// Now is the clock used for entity timestamps
func Now() time.Time {
	return time.Now().UTC().Truncate(timestampPrecision)
}

package domain

import "time"

// Idempotency records the resource produced by a POST carrying an
// Idempotency-Key, keyed by (scope, key). Scope is the request method and
// path, so the same key may be reused across different routes. A retry within
// the TTL returns the recorded resource instead of creating a new one.
type Idempotency struct {
	ID         string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Scope      string    `gorm:"column:scope;type:varchar(255);not null;uniqueIndex:ux_idem_scope_key,priority:1"`
	Key        string    `gorm:"column:idem_key;type:varchar(255);not null;uniqueIndex:ux_idem_scope_key,priority:2"`
	ResourceID int64     `gorm:"column:resource_id;not null"`
	Status     int       `gorm:"column:status;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;not null"`
	ExpiresAt  time.Time `gorm:"column:expires_at;not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }

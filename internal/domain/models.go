// Package domain defines the persistence models for operators, sources,
// users, weights, and requests. These types are mapped with GORM and form
// the core data layer of the CRM backend.
package domain

import "time"

// Request status values. A request starts as pending, and the distribution
// engine moves it exactly once to assigned or waiting. Completed is reached
// only through the explicit release action, never automatically.
const (
	StatusPending   = "pending"
	StatusAssigned  = "assigned"
	StatusWaiting   = "waiting"
	StatusCompleted = "completed"
)

// Operator represents a human agent who can be assigned incoming requests.
//
// Fields:
//   - ID: autoincrement primary key.
//   - Name: display name (non-empty, validated at the service layer).
//   - IsActive: whether the operator receives new assignments.
//   - MaxLoadLimit: capacity cap for concurrent assignments.
//   - CurrentLoad: number of currently assigned requests; mutated only by
//     the distribution engine (increment) and the release path (decrement).
//   - CreatedAt: creation timestamp.
//
// The (is_active, current_load) composite index backs the availability
// filter query.
type Operator struct {
	ID           uint      `json:"id"             gorm:"primaryKey"`
	Name         string    `json:"name"           gorm:"type:varchar(255);not null"`
	IsActive     bool      `json:"is_active"      gorm:"not null;default:true;index:idx_operator_availability,priority:1"`
	MaxLoadLimit int       `json:"max_load_limit" gorm:"not null"`
	CurrentLoad  int       `json:"current_load"   gorm:"not null;default:0;index:idx_operator_availability,priority:2"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for Operator.
func (Operator) TableName() string { return "operators" }

// Source represents a communication channel (bot, email, phone, …) through
// which user requests arrive. Its identifier is a stable external key and
// never changes after creation.
type Source struct {
	ID         uint      `json:"id"         gorm:"primaryKey"`
	Name       string    `json:"name"       gorm:"type:varchar(255);not null"`
	Identifier string    `json:"identifier" gorm:"type:varchar(255);not null;uniqueIndex:ux_source_identifier"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table name for Source.
func (Source) TableName() string { return "sources" }

// User represents an end user who submits requests. Users are created
// lazily on the first request carrying an unseen identifier (email, phone,
// messenger handle, …) and reused afterwards; the unique index guarantees
// exactly one row per distinct identifier.
type User struct {
	ID         uint      `json:"id"         gorm:"primaryKey"`
	Identifier string    `json:"identifier" gorm:"type:varchar(255);not null;uniqueIndex:ux_user_identifier"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Weight configures the relative selection probability of an operator for
// requests arriving from a given source. At most one row exists per
// (operator, source) pair; configuring the pair again updates it in place.
//
// Weight values are constrained to [1,100] both here (check constraint) and
// at the service layer. Weight rows are removed together with their
// operator or source.
type Weight struct {
	ID         uint      `json:"id"          gorm:"primaryKey"`
	OperatorID uint      `json:"operator_id" gorm:"not null;uniqueIndex:ux_operator_source,priority:1"`
	SourceID   uint      `json:"source_id"   gorm:"not null;uniqueIndex:ux_operator_source,priority:2;index"`
	Weight     int       `json:"weight"      gorm:"not null;check:weight >= 1 AND weight <= 100"`
	CreatedAt  time.Time `json:"created_at"`

	Operator Operator `json:"-" gorm:"foreignKey:OperatorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Source   Source   `json:"-" gorm:"foreignKey:SourceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Weight.
func (Weight) TableName() string { return "operator_source_weights" }

// Request represents a single inbound user message awaiting or holding an
// operator assignment.
//
// Fields:
//   - UserID / SourceID: required and immutable after creation.
//   - OperatorID: nil until the distribution engine assigns an operator;
//     remains nil for waiting requests.
//   - Status: see the status constants above.
//
// The operator and source foreign keys RESTRICT deletion: an operator or
// source referenced by any request cannot be removed.
//
// The (operator_id, source_id, status) composite index supports the
// distribution statistics aggregations.
type Request struct {
	ID         uint      `json:"id"          gorm:"primaryKey"`
	UserID     uint      `json:"user_id"     gorm:"not null;index"`
	SourceID   uint      `json:"source_id"   gorm:"not null;index;index:idx_requests_dispatch,priority:2"`
	OperatorID *uint     `json:"operator_id" gorm:"index;index:idx_requests_dispatch,priority:1"`
	Message    string    `json:"message"     gorm:"type:text;not null"`
	Status     string    `json:"status"      gorm:"type:varchar(50);not null;default:'pending';index;index:idx_requests_dispatch,priority:3"`
	CreatedAt  time.Time `json:"created_at"`

	User     User      `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Source   Source    `json:"-" gorm:"foreignKey:SourceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Operator *Operator `json:"-" gorm:"foreignKey:OperatorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Request.
func (Request) TableName() string { return "requests" }

package entity

import "time"

// UnitPreference selects the distance/speed units shown in the UI.
type UnitPreference string

const (
	UnitImperial UnitPreference = "imperial"
	UnitMetric   UnitPreference = "metric"
)

// Role controls access level within the application.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents an account in the flight log.
type User struct {
	ID           string         `bson:"_id,omitempty"`
	Username     string         `bson:"username"`
	PasswordHash string         `bson:"passwordHash"`
	DisplayName  string         `bson:"displayName"`
	Unit         UnitPreference `bson:"unit"`
	Role         Role           `bson:"role"`
	CreatedAt    time.Time      `bson:"createdAt"`
	UpdatedAt    time.Time      `bson:"updatedAt"`
}

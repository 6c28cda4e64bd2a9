package domain

import "time"

// UserRole identifies which of the three supply chain roles a user acts as.
type UserRole string

const (
	RoleFarmer      UserRole = "farmer"
	RoleDistributor UserRole = "distributor"
	RoleConsumer    UserRole = "consumer"
)

// User represents one identity in the demo directory.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (e.g., UUID)
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         UserRole `json:"role"`
	Phone        string   `json:"phone,omitempty"`
	Verified     bool     `json:"verified"`
	Badges       []string `json:"badges,omitempty"`
	PasswordHash string   `json:"-"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

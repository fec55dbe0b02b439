package models

// UserRole is the console role carried by backend users and session claims.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// UserStatus is the account state toggled from the administration screen.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// Toggle returns the opposite status. Anything other than active becomes active.
func (s UserStatus) Toggle() UserStatus {
	if s == UserStatusActive {
		return UserStatusInactive
	}
	return UserStatusActive
}

// UnknownSectorName is shown when a user's sector cannot be resolved.
const UnknownSectorName = "---"

// User is a backend user record as received.
type User struct {
	ID       string     `json:"_id"`
	FullName string     `json:"fullname"`
	Username string     `json:"username"`
	Role     UserRole   `json:"role"`
	Sector   Ref        `json:"sector"`
	Status   UserStatus `json:"status"`
}

// UserView is a user normalised for the administration table.
type UserView struct {
	ID         string     `json:"_id"`
	FullName   string     `json:"fullname"`
	Username   string     `json:"username"`
	Role       UserRole   `json:"role"`
	Sector     string     `json:"sector"`
	SectorName string     `json:"sectorName"`
	Status     UserStatus `json:"status"`
}

// Sector is an organisational department.
type Sector struct {
	ID     string `json:"_id"`
	Sector string `json:"sector"`
}

// UserFilter captures the administration screen filters.
type UserFilter struct {
	Search string
	Sector string
}

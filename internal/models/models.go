package models

// Role is the closed set of actor roles. A typed constant set keeps the
// policy evaluator exhaustive; a missing case is a test-time gap, not a
// silent fallthrough on a free-form string.
type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
	RoleCoworker Role = "coworker"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleEmployee, RoleCoworker:
		return true
	}
	return false
}

// AbsenceStatus is the closed set of absence request states.
type AbsenceStatus string

const (
	AbsencePending  AbsenceStatus = "pending"
	AbsenceApproved AbsenceStatus = "approved"
	AbsenceRejected AbsenceStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s AbsenceStatus) Valid() bool {
	switch s {
	case AbsencePending, AbsenceApproved, AbsenceRejected:
		return true
	}
	return false
}

// Terminal reports whether s has no outgoing transitions.
func (s AbsenceStatus) Terminal() bool {
	return s == AbsenceApproved || s == AbsenceRejected
}

type User struct {
	ID           int64  `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	Name         string `json:"name" db:"name"`
	Role         Role   `json:"role" db:"role"`
	PasswordHash string `json:"-" db:"password_hash"`
	Created      int64  `json:"created" db:"created"`
}

type EmployeeProfile struct {
	ID         int64   `json:"id" db:"id"`
	UserID     int64   `json:"user_id" db:"user_id"`
	Position   string  `json:"position" db:"position"`
	Department string  `json:"department" db:"department"`
	Salary     float64 `json:"salary" db:"salary"`
	Phone      string  `json:"phone" db:"phone"`
	Address    string  `json:"address" db:"address"`
	HireDate   int64   `json:"hire_date" db:"hire_date"`
	Updated    int64   `json:"updated" db:"updated"`
}

// ProfileView is the shape returned to callers. Sensitive fields are
// pointers with omitempty so a redacted field is absent from the JSON
// output entirely; a consumer cannot distinguish "empty" from "redacted".
type ProfileView struct {
	ID         int64    `json:"id"`
	UserID     int64    `json:"user_id"`
	Position   string   `json:"position"`
	Department string   `json:"department"`
	HireDate   int64    `json:"hire_date"`
	Salary     *float64 `json:"salary,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Address    *string  `json:"address,omitempty"`
}

type AbsenceRequest struct {
	ID        int64         `json:"id" db:"id"`
	UserID    int64         `json:"user_id" db:"user_id"`
	StartDate int64         `json:"start_date" db:"start_date"`
	EndDate   int64         `json:"end_date" db:"end_date"`
	Reason    string        `json:"reason" db:"reason"`
	Status    AbsenceStatus `json:"status" db:"status"`
	Created   int64         `json:"created" db:"created"`
}

type DataItem struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	OwnerID     int64  `json:"owner_id" db:"owner_id"`
	IsDeleted   bool   `json:"is_deleted" db:"is_deleted"`
	Created     int64  `json:"created" db:"created"`
	Updated     int64  `json:"updated" db:"updated"`
}

// Feedback is immutable once created; there is no update or delete path.
type Feedback struct {
	ID              int64   `json:"id" db:"id"`
	DataItemID      int64   `json:"data_item_id" db:"data_item_id"`
	FromUserID      int64   `json:"from_user_id" db:"from_user_id"`
	Content         string  `json:"content" db:"content"`
	PolishedContent *string `json:"polished_content,omitempty" db:"polished_content"`
	Created         int64   `json:"created" db:"created"`
}

// ValidationError reports a field-level precondition failure. It is a
// different class from an authorization denial: the caller surfaces it to
// the actor directly and must not apply the mutation.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

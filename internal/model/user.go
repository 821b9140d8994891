package model

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account record as persisted in the users collection.
//
// Password is kept on the record (plaintext unless auth.hash_passwords is
// enabled) and must never leave the API boundary; handlers return Sanitized
// copies only.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role"`
}

// Sanitized returns a copy of the user with the password cleared.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

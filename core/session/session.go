package session

// User is the authenticated admin's profile as issued by the marketplace
// backend at login.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Contact   string `json:"contact,omitempty"`
}

// StoreProfile identifies the store a store-scoped admin belongs to.
// It is nil for marketplace-wide admins.
type StoreProfile struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Session is the credential and profile snapshot for the current admin.
// The zero value is the unauthenticated default.
type Session struct {
	// Token is the opaque bearer credential. Empty means unauthenticated.
	Token string `json:"token"`

	User  *User         `json:"user"`
	Store *StoreProfile `json:"store"`

	// Message carries the backend's login response message, if any.
	Message string `json:"message"`
}

// IsAuthenticated reports whether the session carries a credential.
func (s Session) IsAuthenticated() bool {
	return s.Token != ""
}

// valid enforces the write-time invariant: a credential implies a user
// profile and vice versa.
func (s Session) valid() bool {
	return (s.Token != "") == (s.User != nil)
}

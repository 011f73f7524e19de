package types

// User represents a registered account.
type User struct {
	// ID is the unique identifier of the user, generated by the store.
	ID int `json:"-" db:"id"`

	// Username is the unique login name chosen by the user.
	Username string `json:"username" db:"username"`

	// Name is the user's first or display name.
	Name string `json:"name" db:"name"`

	// LastName is optional and may be null in the store.
	LastName *string `json:"lastName" db:"last_name"`

	// PasswordHash stores the salted hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password"`
}

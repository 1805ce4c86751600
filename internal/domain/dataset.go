package domain

import (
	"fmt"
	"strings"
)

// Dataset is an immutable, ordered collection of users keyed by lowercase id.
type Dataset struct {
	users []User
	index map[string]int
}

// NewDataset builds a dataset from users in the given order. Later entries
// with a duplicate key are ignored.
func NewDataset(users []User) *Dataset {
	d := &Dataset{
		users: make([]User, 0, len(users)),
		index: make(map[string]int, len(users)),
	}
	for _, u := range users {
		key := UserKey(u.ID)
		if _, exists := d.index[key]; exists {
			continue
		}
		d.index[key] = len(d.users)
		d.users = append(d.users, u)
	}
	return d
}

// UserKey normalizes a user identifier into its dataset key.
func UserKey(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Users returns the users in dataset order. Callers must not modify them.
func (d *Dataset) Users() []User {
	if d == nil {
		return nil
	}
	return d.users
}

// Len reports the number of users.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.users)
}

// User looks up a user by identifier, case-insensitively.
func (d *Dataset) User(id string) (*User, error) {
	if d != nil {
		if i, ok := d.index[UserKey(id)]; ok {
			return &d.users[i], nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", id, ErrNotFound)
}

// Certificate looks up one certificate of a user by its identifier.
func (u *User) Certificate(id string) (*Certificate, error) {
	for i := range u.Certificates {
		if u.Certificates[i].ID == id {
			return &u.Certificates[i], nil
		}
	}
	return nil, fmt.Errorf("certificate %q: %w", id, ErrNotFound)
}

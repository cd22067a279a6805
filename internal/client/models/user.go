// Package models defines the records exchanged with the GoBarber API.
package models

import (
	"encoding/json"
	"maps"
)

// User is a signed-in account. Fields the client does not know about are kept
// in Extra and written back unchanged, so a user round-trips through local
// storage without losing profile data.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`

	Extra map[string]json.RawMessage `json:"-"`
}

var knownUserFields = []string{"id", "name", "email", "avatar_url"}

func (u User) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(u.Extra)+len(knownUserFields))
	for k, v := range u.Extra {
		m[k] = v
	}
	m["id"] = u.ID
	m["name"] = u.Name
	m["email"] = u.Email
	m["avatar_url"] = u.AvatarURL
	return json.Marshal(m)
}

func (u *User) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	type plain User
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}

	for _, k := range knownUserFields {
		delete(raw, k)
	}
	*u = User(p)
	if len(raw) > 0 {
		u.Extra = raw
	}
	return nil
}

// Clone returns a copy that shares no mutable state with u.
func (u User) Clone() User {
	u.Extra = maps.Clone(u.Extra)
	return u
}

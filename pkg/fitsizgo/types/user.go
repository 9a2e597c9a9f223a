package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// User is the account record held by the fitsiz service.
type User struct {
	ID         ID      `json:"id,omitempty"`
	TelegramID ID      `json:"telegramId,omitempty"`
	FirstName  string  `json:"first_name,omitempty"`
	LastName   string  `json:"last_name,omitempty"`
	Username   string  `json:"username,omitempty"`
	PhotoURL   string  `json:"photo_url,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Email      *string `json:"email,omitempty"`
	Quiz       *bool   `json:"quiz,omitempty"`
	Add        *bool   `json:"add,omitempty"`

	fields map[string]json.RawMessage
}

type plainUser User

// UnmarshalJSON never fails on a key with an unexpected type. The key is
// left unset on the struct and kept as sent in Fields.
func (u *User) UnmarshalJSON(data []byte) error {
	fields, err := decodeObject(data, (*plainUser)(u))
	if err != nil {
		return err
	}
	u.fields = fields
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	fields, err := u.Fields()
	if err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// Fields returns every key of the record, including ones the service
// sent that User has no field for.
func (u User) Fields() (map[string]json.RawMessage, error) {
	return objectFields(u.fields, (*plainUser)(&u))
}

// Field decodes a single key of the record into target. It reports false
// when the key is absent or null.
func (u *User) Field(key string, target any) (bool, error) {
	raw, ok := u.fields[key]
	if !ok || isNull(raw) {
		return false, nil
	}
	return true, json.Unmarshal(raw, target)
}

// OnboardingComplete reports whether the user has finished the quiz.
func (u *User) OnboardingComplete() bool {
	return u != nil && u.Quiz != nil && *u.Quiz
}

// MergeUser overlays the keys of the server record onto the identity.
// Keys the server omitted or sent as null keep the identity value, so the
// display fields Telegram provided survive a sparse server response.
func MergeUser(identity *Identity, server *User) (*User, error) {
	if identity == nil {
		return nil, fmt.Errorf("can't merge user without an identity")
	}
	merged, err := identity.Fields()
	if err != nil {
		return nil, fmt.Errorf("failed to flatten identity: %w", err)
	}
	if server != nil {
		overlay, err := server.Fields()
		if err != nil {
			return nil, fmt.Errorf("failed to flatten server user: %w", err)
		}
		for key, value := range overlay {
			if isNull(value) {
				continue
			}
			merged[key] = value
		}
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	user := &User{}
	if err = json.Unmarshal(data, user); err != nil {
		return nil, fmt.Errorf("failed to decode merged user: %w", err)
	}
	return user, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

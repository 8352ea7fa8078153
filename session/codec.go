package session

import (
	"encoding/json"
	"errors"
)

const (
	// CurrentSchemaVersion is the envelope version written by Encode.
	CurrentSchemaVersion = 2

	schemaVersionV2 = 2
	schemaVersionV1 = 1
)

type envelope struct {
	Version   int             `json:"v"`
	Token     string          `json:"token"`
	User      json.RawMessage `json:"user"`
	CreatedAt int64           `json:"createdAt"`
	ExpiresAt int64           `json:"expiresAt"`
}

// Encode serializes a session into the current envelope format.
func Encode(s *Session) ([]byte, error) {
	if s == nil || s.Token == "" {
		return nil, errors.New("session token required")
	}

	user, err := json.Marshal(s.User)
	if err != nil {
		return nil, err
	}

	return json.Marshal(envelope{
		Version:   CurrentSchemaVersion,
		Token:     s.Token,
		User:      user,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	})
}

// Decode parses an envelope of any supported schema version. Malformed payloads,
// unknown versions, and envelopes missing the token or the profile return
// [ErrCorrupt]: callers treat the stored session as absent and wipe it.
func Decode(data []byte) (*Session, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, ErrCorrupt
	}

	switch env.Version {
	case schemaVersionV2, schemaVersionV1:
	default:
		return nil, ErrCorrupt
	}

	if env.Token == "" || len(env.User) == 0 {
		return nil, ErrCorrupt
	}

	s := &Session{
		Token:     env.Token,
		CreatedAt: env.CreatedAt,
		ExpiresAt: env.ExpiresAt,
	}

	if env.Version == schemaVersionV1 {
		// v1 stored the profile the way the browser kept it: a JSON string
		// holding serialized JSON.
		var nested string
		if err := json.Unmarshal(env.User, &nested); err != nil {
			return nil, ErrCorrupt
		}
		if err := json.Unmarshal([]byte(nested), &s.User); err != nil {
			return nil, ErrCorrupt
		}
		return s, nil
	}

	if err := json.Unmarshal(env.User, &s.User); err != nil {
		return nil, ErrCorrupt
	}
	return s, nil
}

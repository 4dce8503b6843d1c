// Package model defines the core domain types shared by the activities API
// and the activity board.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Activity is a schedulable group activity with a participant capacity.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// SpotsLeft returns the number of open places. It is not clamped: a server
// that overfills an activity yields a negative value.
func (a Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// HasParticipant reports whether email is enrolled.
func (a Activity) HasParticipant(email string) bool {
	for _, p := range a.Participants {
		if p == email {
			return true
		}
	}
	return false
}

// Catalog maps activity names to activities and remembers the order in
// which names were added, so a catalog decoded from JSON re-encodes (and
// renders) in server order.
type Catalog struct {
	names  []string
	byName map[string]Activity
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]Activity)}
}

// Set adds or replaces an activity. A new name is appended to the order.
func (c *Catalog) Set(name string, a Activity) {
	if c.byName == nil {
		c.byName = make(map[string]Activity)
	}
	if _, ok := c.byName[name]; !ok {
		c.names = append(c.names, name)
	}
	c.byName[name] = a
}

// Get returns the activity called name.
func (c *Catalog) Get(name string) (Activity, bool) {
	a, ok := c.byName[name]
	return a, ok
}

// Names returns activity names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of activities.
func (c *Catalog) Len() int {
	return len(c.names)
}

// MarshalJSON encodes the catalog as a JSON object keyed by name.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		a := c.byName[name]
		if a.Participants == nil {
			a.Participants = []string{}
		}
		val, err := json.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("encode activity %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keyed by name, keeping key order.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decode catalog: expected object, got %v", tok)
	}

	*c = Catalog{byName: make(map[string]Activity)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode catalog key: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("decode catalog: unexpected key %v", tok)
		}
		var a Activity
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("decode activity %q: %w", name, err)
		}
		c.Set(name, a)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}
	return nil
}

// MessageResponse is the success body of the mutation endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

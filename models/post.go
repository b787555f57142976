package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList persists an ordered list of strings as a JSON text column,
// so the same model works on MySQL and the sqlite test database.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// ExternalLink points at the author's presence on another platform.
type ExternalLink struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// ExternalLinkList persists external links as a JSON text column.
type ExternalLinkList []ExternalLink

// Value implements driver.Valuer.
func (l ExternalLinkList) Value() (driver.Value, error) {
	if l == nil {
		l = ExternalLinkList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

// Scan implements sql.Scanner.
func (l *ExternalLinkList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into ExternalLinkList", src)
	}
}

// Post represents one shared piece of code: description, screenshots,
// technologies, and optionally a repository link or inline code.
// Posts are append-only; nothing in the API mutates or deletes them.
type Post struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	Username      string           `gorm:"size:64;not null" json:"username"`
	Title         string           `gorm:"size:255;not null" json:"title"`
	Description   string           `gorm:"type:text;not null" json:"description"`
	Technologies  StringList       `gorm:"type:text;not null" json:"technologies"`
	Screenshots   StringList       `gorm:"type:text;not null" json:"screenshots"`
	Github        string           `gorm:"size:512" json:"github,omitempty"`
	Code          string           `gorm:"type:text" json:"code,omitempty"`
	ExternalLinks ExternalLinkList `gorm:"type:text" json:"externalLinks,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

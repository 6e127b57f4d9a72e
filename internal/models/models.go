package models

import (
	"strconv"
	"time"
)

// DefaultAvatar is the placeholder photo used when a profile has none
const DefaultAvatar = "https://images.unsplash.com/photo-1524504388940-b1c1722653e1?auto=format&fit=crop&w=500&q=80"

// Identity is the platform user the store acts on behalf of
type Identity struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// IsZero reports whether the identity is absent
func (i Identity) IsZero() bool {
	return i.ID == 0
}

// Key returns the identity's string form used for record ids and namespaces
func (i Identity) Key() string {
	return strconv.FormatInt(i.ID, 10)
}

// Candidate represents a prospective match shown in the swipe deck
type Candidate struct {
	ID        string   `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name,omitempty"`
	Username  string   `json:"username,omitempty"`
	Age       int      `json:"age"`
	Bio       string   `json:"bio,omitempty"`
	Photos    []string `json:"photos"`
}

// Preferences holds the search preferences of a profile
type Preferences struct {
	MinAge      int `json:"min_age"`
	MaxAge      int `json:"max_age"`
	MaxDistance int `json:"max_distance"`
}

// UserProfile represents the local user's own profile
type UserProfile struct {
	Candidate
	PlatformUserID int64        `json:"platform_user_id"`
	Preferences    *Preferences `json:"preferences,omitempty"`
	IsActive       bool         `json:"is_active"`
	LastSeen       time.Time    `json:"last_seen"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// MatchPreview is a denormalized snapshot of a matched candidate
type MatchPreview struct {
	MatchID   string    `json:"match_id"`
	User      Candidate `json:"user"`
	MatchedAt time.Time `json:"matched_at"`
}

// MessageKind is the content type of a chat message
type MessageKind string

const (
	MessageKindText  MessageKind = "text"
	MessageKindImage MessageKind = "image"
	MessageKindGIF   MessageKind = "gif"
)

// ChatMessage represents one message in a thread
type ChatMessage struct {
	ID        string      `json:"id"`
	Sender    Candidate   `json:"sender"`
	Content   string      `json:"content"`
	Kind      MessageKind `json:"kind"`
	IsRead    bool        `json:"is_read"`
	CreatedAt time.Time   `json:"created_at"`
}

// ChatPreview is an entry of the chat list
type ChatPreview struct {
	ID          string    `json:"id"`
	User        Candidate `json:"user"`
	LastMessage string    `json:"last_message"`
	UpdatedAt   time.Time `json:"updated_at"`
	UnreadCount int       `json:"unread_count"`
}

// SwipeOutcome is the transient result of a swipe
type SwipeOutcome struct {
	Matched bool   `json:"matched"`
	MatchID string `json:"match_id,omitempty"`
}

// Event is a community or game event listed in the community tab
type Event struct {
	Slug        string   `json:"slug"`
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Cover       string   `json:"cover"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Agenda      []string `json:"agenda"`
	Tag         string   `json:"tag"`
}

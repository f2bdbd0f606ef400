package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ------------------------------
// Core Domain Entities
// ------------------------------

// ID is an entity identifier. The backend emits numeric ids; other
// deployments emit strings. Both decode into the same type so callers never
// see the difference.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("id: empty value")
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: expected string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	// Prefer the numeric form the backend expects when the id is numeric.
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return json.Marshal(n)
	}
	return json.Marshal(string(id))
}

func (id ID) String() string { return string(id) }

// Session is the locally held proof of authentication plus resolved
// identity. Token absent means no session.
type Session struct {
	Token        string
	RefreshToken string
	UserID       ID
	Username     string
}

// Post is a feed entry owned by the feed cache. LikedByMe is derived once
// at ingest from the like records and maintained incrementally afterwards.
type Post struct {
	ID              ID
	AuthorID        ID
	AuthorName      string
	AuthorAvatarURL string
	Text            string
	ImageURL        string
	Location        string
	Tags            []string
	IsPublished     bool
	LikesCount      int
	LikedByMe       bool
	Comments        []Comment
	CommentsCount   int
}

// Comment is append-only from the client's perspective; ordering is
// arrival order.
type Comment struct {
	ID         ID
	PostID     ID
	AuthorID   ID
	AuthorName string
	Text       string
}

// Chat is loaded lazily; the list view carries only ID and Title.
type Chat struct {
	ID               ID
	Title            string
	ParticipantNames []string
	Messages         []Message
}

// Message is append-only, ordered by arrival.
type Message struct {
	ID         ID
	AuthorName string
	Text       string
	CreatedAt  string
}

// Profile is mutable only by its owner.
type Profile struct {
	UserID      ID
	Name        string
	Email       string
	Bio         string
	Location    string
	Website     string
	DateOfBirth string
	AvatarURL   string
}

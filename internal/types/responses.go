package types

// ------------------------------
// Wire Response Types
// ------------------------------
//
// Each endpoint has an explicit schema; the resource client decodes into
// these and converts to domain entities, so malformed payloads fail at the
// boundary instead of surfacing as zero values deep in the cache.

// TokenResponse mirrors POST /api/v1/token/.
type TokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterResponse mirrors POST /api/v1/auth/register/.
type RegisterResponse struct {
	UserID ID `json:"user_id"`
}

// WireLike is a like record attached to a post. Author is the liking
// user's id.
type WireLike struct {
	ID     ID `json:"id"`
	Author ID `json:"author"`
	Post   ID `json:"post"`
}

// WireComment mirrors the comment shape nested in posts and returned by
// POST /api/v1/comments/.
type WireComment struct {
	ID         ID     `json:"id"`
	Post       ID     `json:"post"`
	Author     ID     `json:"author,omitempty"`
	AuthorName string `json:"author_name"`
	Text       string `json:"text"`
}

// Domain converts a wire comment to its domain form.
func (w WireComment) Domain() Comment {
	return Comment{
		ID:         w.ID,
		PostID:     w.Post,
		AuthorID:   w.Author,
		AuthorName: w.AuthorName,
		Text:       w.Text,
	}
}

// WirePost mirrors the post shape from GET/POST /api/v1/posts/ and the
// posts array of a profile response.
type WirePost struct {
	ID                   ID            `json:"id"`
	AuthorID             ID            `json:"author_id"`
	AuthorName           string        `json:"author_name"`
	AuthorProfilePicture string        `json:"author_profile_picture"`
	Text                 string        `json:"text"`
	Image                string        `json:"image"`
	Location             string        `json:"location"`
	Tags                 []ID          `json:"tags"`
	IsPublished          bool          `json:"is_published"`
	Likes                []WireLike    `json:"likes"`
	LikesNum             int           `json:"likes_num"`
	Comments             []WireComment `json:"comments"`
	CommentsNum          int           `json:"comments_num"`
}

// Domain converts a wire post to its domain form. viewerID is the session
// user id; LikedByMe is true when one of the like records was authored by
// the viewer. This is the only place the derivation happens - afterwards the
// flag is maintained incrementally by the engine.
func (w WirePost) Domain(viewerID ID) Post {
	liked := false
	for _, l := range w.Likes {
		if viewerID != "" && l.Author == viewerID {
			liked = true
			break
		}
	}
	comments := make([]Comment, 0, len(w.Comments))
	for _, c := range w.Comments {
		comments = append(comments, c.Domain())
	}
	tags := make([]string, 0, len(w.Tags))
	for _, t := range w.Tags {
		tags = append(tags, t.String())
	}
	return Post{
		ID:              w.ID,
		AuthorID:        w.AuthorID,
		AuthorName:      w.AuthorName,
		AuthorAvatarURL: w.AuthorProfilePicture,
		Text:            w.Text,
		ImageURL:        w.Image,
		Location:        w.Location,
		Tags:            tags,
		IsPublished:     w.IsPublished,
		LikesCount:      w.LikesNum,
		LikedByMe:       liked,
		Comments:        comments,
		CommentsCount:   w.CommentsNum,
	}
}

// WireProfile mirrors a profile resource. Name doubles as the account
// username; ID is the identifier login resolves the session user id from.
type WireProfile struct {
	ID             ID     `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profile_picture"`
	Location       string `json:"location"`
	Website        string `json:"website"`
	DateOfBirth    string `json:"date_of_birth"`
}

// Domain converts a wire profile to its domain form.
func (w WireProfile) Domain() Profile {
	return Profile{
		UserID:      w.ID,
		Name:        w.Name,
		Email:       w.Email,
		Bio:         w.Bio,
		Location:    w.Location,
		Website:     w.Website,
		DateOfBirth: w.DateOfBirth,
		AvatarURL:   w.ProfilePicture,
	}
}

// ProfileEnvelope mirrors GET /api/v1/profiles/{id}/ which returns the
// profile together with the owner's posts.
type ProfileEnvelope struct {
	Profile WireProfile `json:"profile"`
	Posts   []WirePost  `json:"posts"`
}

// WireMessage mirrors a chat message.
type WireMessage struct {
	ID         ID     `json:"id"`
	Chat       ID     `json:"chat"`
	AuthorName string `json:"author_name"`
	Text       string `json:"text"`
	CreatedAt  string `json:"created_at"`
}

// Domain converts a wire message to its domain form.
func (w WireMessage) Domain() Message {
	return Message{
		ID:         w.ID,
		AuthorName: w.AuthorName,
		Text:       w.Text,
		CreatedAt:  w.CreatedAt,
	}
}

// WireChat mirrors GET /api/v1/chats/ items and GET /api/v1/chats/{id}/.
// The list endpoint may omit messages.
type WireChat struct {
	ID               ID            `json:"id"`
	Title            string        `json:"title"`
	ParticipantNames []string      `json:"participant_names"`
	Messages         []WireMessage `json:"messages"`
}

// Domain converts a wire chat to its domain form.
func (w WireChat) Domain() Chat {
	msgs := make([]Message, 0, len(w.Messages))
	for _, m := range w.Messages {
		msgs = append(msgs, m.Domain())
	}
	return Chat{
		ID:               w.ID,
		Title:            w.Title,
		ParticipantNames: append([]string(nil), w.ParticipantNames...),
		Messages:         msgs,
	}
}

package types

// ------------------------------
// Request Types
// ------------------------------

// TokenRequest holds login credentials for POST /api/v1/token/.
type TokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest holds parameters for POST /api/v1/auth/register/.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LikeRequest is the body of POST and DELETE /api/v1/likes/.
type LikeRequest struct {
	Post ID `json:"post"`
}

// CommentRequest holds parameters for POST /api/v1/comments/.
type CommentRequest struct {
	Post ID     `json:"post"`
	Text string `json:"text"`
}

// MessageRequest holds parameters for POST /api/v1/messages/.
type MessageRequest struct {
	Text string `json:"text"`
	Chat ID     `json:"chat"`
}

// ProfilePatch is the partial update body of PATCH /api/v1/profiles/{id}/.
type ProfilePatch struct {
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	Website     string `json:"website"`
	DateOfBirth string `json:"date_of_birth"`
}

// PostDraft holds the compose-form fields for a new post. Tags is the raw
// comma-separated input; it is split on submission. Image is the raw file
// content, empty when no image is attached.
type PostDraft struct {
	Text        string
	Image       []byte
	ImageName   string
	Location    string
	Tags        string
	IsPublished bool
}

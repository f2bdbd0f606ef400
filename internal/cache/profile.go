package cache

import (
	"sync"

	"github.com/feedkit/feedkit-go/internal/types"
)

// ProfileView caches the currently viewed profile and its posts
// (most-recent-first). It holds one profile at a time; opening another
// user's profile replaces it.
type ProfileView struct {
	mu      sync.Mutex
	profile *types.Profile
	posts   []types.Post
}

// NewProfileView returns an empty profile cache.
func NewProfileView() *ProfileView {
	return &ProfileView{}
}

// Set replaces the cached profile and its posts.
func (v *ProfileView) Set(p types.Profile, posts []types.Post) {
	v.mu.Lock()
	defer v.mu.Unlock()
	cp := p
	v.profile = &cp
	v.posts = make([]types.Post, 0, len(posts))
	for i := range posts {
		v.posts = append(v.posts, copyPost(posts[i]))
	}
}

// Profile returns a copy of the cached profile.
func (v *ProfileView) Profile() (types.Profile, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.profile == nil {
		return types.Profile{}, false
	}
	return *v.profile, true
}

// Posts returns deep copies of the cached posts.
func (v *ProfileView) Posts() []types.Post {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]types.Post, 0, len(v.posts))
	for i := range v.posts {
		out = append(out, copyPost(v.posts[i]))
	}
	return out
}

// PrependPost puts a newly created post at the head of the list.
func (v *ProfileView) PrependPost(p types.Post) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.posts = append([]types.Post{copyPost(p)}, v.posts...)
}

// Clear drops the cached profile, e.g. when the view unmounts.
func (v *ProfileView) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.profile = nil
	v.posts = nil
}

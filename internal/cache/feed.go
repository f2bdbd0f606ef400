// Package cache holds the in-memory normalized collections the engine
// mutates. Entities are keyed by id so concurrent updates to different
// entities never race on shared state; reads hand out deep copies so a
// snapshot can never be mutated behind a subscriber's back.
package cache

import (
	"sync"

	"github.com/feedkit/feedkit-go/internal/types"
)

// Feed is the normalized post collection backing the feed view.
type Feed struct {
	mu    sync.Mutex
	order []types.ID
	posts map[types.ID]*types.Post
}

// NewFeed returns an empty feed cache.
func NewFeed() *Feed {
	return &Feed{posts: make(map[types.ID]*types.Post)}
}

// ReplaceAll swaps the whole collection, preserving server order.
func (f *Feed) ReplaceAll(posts []types.Post) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.order = f.order[:0]
	f.posts = make(map[types.ID]*types.Post, len(posts))
	for i := range posts {
		p := copyPost(posts[i])
		f.order = append(f.order, p.ID)
		f.posts[p.ID] = &p
	}
}

// Get returns a copy of the post with the given id.
func (f *Feed) Get(id types.ID) (types.Post, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return types.Post{}, false
	}
	return copyPost(*p), true
}

// Apply mutates one post in place under the cache lock. The likes count is
// clamped at zero afterwards. Returns false when the id is unknown.
func (f *Feed) Apply(id types.ID, fn func(*types.Post)) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return false
	}
	fn(p)
	if p.LikesCount < 0 {
		p.LikesCount = 0
	}
	return true
}

// Snapshot returns deep copies of all posts in order.
func (f *Feed) Snapshot() []types.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]types.Post, 0, len(f.order))
	for _, id := range f.order {
		if p, ok := f.posts[id]; ok {
			out = append(out, copyPost(*p))
		}
	}
	return out
}

// Len reports how many posts are cached.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.posts)
}

func copyPost(p types.Post) types.Post {
	p.Tags = append([]string(nil), p.Tags...)
	p.Comments = append([]types.Comment(nil), p.Comments...)
	return p
}

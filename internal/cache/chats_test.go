package cache

import (
	"testing"

	"github.com/feedkit/feedkit-go/internal/types"
)

func TestChats_PutUpsertsAndKeepsOrder(t *testing.T) {
	t.Parallel()

	c := NewChats()
	c.ReplaceAll([]types.Chat{{ID: "1", Title: "a"}, {ID: "2", Title: "b"}})

	// Loading a chat's detail replaces the shallow list entry in place.
	c.Put(types.Chat{ID: "1", Title: "a", Messages: []types.Message{{ID: "m1", Text: "hi"}}})

	snap := c.Snapshot()
	if len(snap) != 2 || snap[0].ID != "1" || snap[1].ID != "2" {
		t.Fatalf("order disturbed: %+v", snap)
	}
	if len(snap[0].Messages) != 1 {
		t.Fatal("detail messages lost on upsert")
	}

	// A chat not in the list is appended.
	c.Put(types.Chat{ID: "3", Title: "c"})
	if got := c.Snapshot(); len(got) != 3 || got[2].ID != "3" {
		t.Fatalf("new chat not appended: %+v", got)
	}
}

func TestChats_AppendMessage(t *testing.T) {
	t.Parallel()

	c := NewChats()
	c.ReplaceAll([]types.Chat{{ID: "1"}})

	if !c.AppendMessage("1", types.Message{ID: "m1", Text: "first"}) {
		t.Fatal("append to known chat must succeed")
	}
	if !c.AppendMessage("1", types.Message{ID: "m2", Text: "second"}) {
		t.Fatal("append to known chat must succeed")
	}
	if c.AppendMessage("missing", types.Message{ID: "m3"}) {
		t.Fatal("append to unknown chat must report false")
	}

	ch, _ := c.Get("1")
	if len(ch.Messages) != 2 || ch.Messages[0].ID != "m1" || ch.Messages[1].ID != "m2" {
		t.Fatalf("arrival order broken: %+v", ch.Messages)
	}
}

func TestChats_GetReturnsDeepCopy(t *testing.T) {
	t.Parallel()

	c := NewChats()
	c.ReplaceAll([]types.Chat{{ID: "1", ParticipantNames: []string{"alice"}}})
	c.AppendMessage("1", types.Message{ID: "m1", Text: "hi"})

	ch, _ := c.Get("1")
	ch.ParticipantNames[0] = "mallory"
	ch.Messages[0].Text = "mutated"

	again, _ := c.Get("1")
	if again.ParticipantNames[0] != "alice" || again.Messages[0].Text != "hi" {
		t.Fatal("Get must hand out deep copies")
	}
}

func TestProfileView_SetAndPrepend(t *testing.T) {
	t.Parallel()

	v := NewProfileView()
	if _, ok := v.Profile(); ok {
		t.Fatal("empty view must report no profile")
	}

	v.Set(types.Profile{UserID: "7", Name: "alice"}, []types.Post{{ID: "1"}, {ID: "2"}})
	prof, ok := v.Profile()
	if !ok || prof.Name != "alice" {
		t.Fatalf("profile = %+v ok=%v", prof, ok)
	}

	v.PrependPost(types.Post{ID: "3"})
	posts := v.Posts()
	if len(posts) != 3 || posts[0].ID != "3" {
		t.Fatalf("new post must lead the list: %+v", posts)
	}

	v.Clear()
	if _, ok := v.Profile(); ok {
		t.Fatal("cleared view must report no profile")
	}
	if len(v.Posts()) != 0 {
		t.Fatal("cleared view must have no posts")
	}
}

func TestProfileView_PostsAreCopies(t *testing.T) {
	t.Parallel()

	v := NewProfileView()
	v.Set(types.Profile{UserID: "7"}, []types.Post{{ID: "1", Tags: []string{"go"}}})
	posts := v.Posts()
	posts[0].Tags[0] = "mutated"
	if v.Posts()[0].Tags[0] != "go" {
		t.Fatal("Posts must hand out deep copies")
	}
}

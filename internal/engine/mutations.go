package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/feedkit/feedkit-go/internal/api"
	"github.com/feedkit/feedkit-go/internal/errors"
	"github.com/feedkit/feedkit-go/internal/job"
	"github.com/feedkit/feedkit-go/internal/types"
	"github.com/feedkit/feedkit-go/uimsg"
)

// likeDelta is the pending optimistic change of one like toggle. It is
// kept until the request settles so a failure can be reverted precisely
// instead of leaving the visible state as the only source of truth.
type likeDelta struct {
	postID types.ID
	delta  int // +1 like, -1 unlike
}

// ToggleLike flips the session user's like on a post. The direction is
// captured from the cached state at invocation time, so a second click
// mid-flight reads the already-flipped state and issues the opposite verb;
// per-post FIFO ordering then keeps the server in step. The flip is applied
// optimistically and reverted exactly on failure.
func (e *Engine) ToggleLike(ctx context.Context, postID types.ID) error {
	if _, err := e.requireSession(); err != nil {
		return err
	}

	e.mu.Lock()
	post, ok := e.feed.Get(postID)
	if !ok {
		e.mu.Unlock()
		return errors.ErrUnknownEntity
	}
	wasLiked := post.LikedByMe
	delta := +1
	if wasLiked {
		delta = -1
	}
	token := uuid.NewString()
	e.pendingLikes[token] = likeDelta{postID: postID, delta: delta}
	e.feed.Apply(postID, func(p *types.Post) {
		p.LikedByMe = !wasLiked
		p.LikesCount += delta
	})
	e.mu.Unlock()
	e.publish()

	j := job.New(func(jc context.Context) error {
		var err error
		if wasLiked {
			err = api.DeleteLike(jc, e.httpClient, e.baseURL, postID)
		} else {
			err = api.CreateLike(jc, e.httpClient, e.baseURL, postID)
		}
		if err != nil {
			e.revertLike(token)
			mutationsRolledBack.WithLabelValues("like").Inc()
			e.fail("toggle like", uimsg.LikeFailed, err)
			return err
		}
		e.commitLike(token)
		mutationsCommitted.WithLabelValues("like").Inc()
		return nil
	})
	if err := e.exec.Submit(ctx, job.LikeKey(postID.String()), j); err != nil {
		// The job will never run, so nothing else reverts the flip.
		e.revertLike(token)
		mutationsRolledBack.WithLabelValues("like").Inc()
		e.publish()
		return err
	}
	return nil
}

// SyncLikes blocks until every previously submitted like toggle for the
// post has settled.
func (e *Engine) SyncLikes(ctx context.Context, postID types.ID) error {
	return e.exec.Barrier(ctx, job.LikeKey(postID.String()))
}

func (e *Engine) revertLike(token string) {
	e.mu.Lock()
	d, ok := e.pendingLikes[token]
	delete(e.pendingLikes, token)
	if ok {
		e.feed.Apply(d.postID, func(p *types.Post) {
			p.LikesCount -= d.delta
			// Each toggle flipped the flag once; undoing one toggle
			// flips it back, however many others are still pending.
			p.LikedByMe = !p.LikedByMe
		})
	}
	e.mu.Unlock()
}

func (e *Engine) commitLike(token string) {
	e.mu.Lock()
	delete(e.pendingLikes, token)
	e.mu.Unlock()
}

// AddComment appends a comment to a post. Empty input (after trimming) is
// rejected locally with no network call. On success the server-returned
// comment is appended and the input buffer for that post alone is cleared.
func (e *Engine) AddComment(ctx context.Context, postID types.ID, text string) error {
	if _, err := e.requireSession(); err != nil {
		return err
	}
	text, ok := types.NormalizeText(text)
	if !ok {
		return errors.ErrEmptyInput
	}

	key := job.Key("comment", postID.String())
	if err := e.begin(key); err != nil {
		return err
	}
	wire, err := api.CreateComment(ctx, e.httpClient, e.baseURL, postID, text)
	e.end(key)
	if err != nil {
		mutationsRolledBack.WithLabelValues("comment").Inc()
		e.fail("add comment", uimsg.CommentFailed, err)
		return err
	}

	comment := wire.Domain()
	e.mu.Lock()
	e.feed.Apply(postID, func(p *types.Post) {
		p.Comments = append(p.Comments, comment)
		p.CommentsCount++
	})
	delete(e.commentDrafts, postID)
	e.mu.Unlock()
	mutationsCommitted.WithLabelValues("comment").Inc()
	e.publish()
	return nil
}

// SendMessage posts a message to a chat. Empty input is rejected locally.
// On success the server-returned message is appended in arrival order and
// the chat's input buffer is cleared.
func (e *Engine) SendMessage(ctx context.Context, chatID types.ID, text string) error {
	if _, err := e.requireSession(); err != nil {
		return err
	}
	text, ok := types.NormalizeText(text)
	if !ok {
		return errors.ErrEmptyInput
	}

	key := job.ChatKey(chatID.String())
	if err := e.begin(key); err != nil {
		return err
	}
	wire, err := api.SendMessage(ctx, e.httpClient, e.baseURL, chatID, text)
	e.end(key)
	if err != nil {
		mutationsRolledBack.WithLabelValues("message").Inc()
		e.fail("send message", uimsg.MessageFailed, err)
		return err
	}

	msg := wire.Domain()
	e.mu.Lock()
	if !e.chats.AppendMessage(chatID, msg) {
		// The server accepted the message, so the chat exists even if
		// the local list has not seen it yet.
		e.chats.Put(types.Chat{ID: chatID, Messages: []types.Message{msg}})
	}
	delete(e.messageDrafts, chatID)
	e.mu.Unlock()
	mutationsCommitted.WithLabelValues("message").Inc()
	e.publish()
	return nil
}

// SetCommentDraft stores the comment input buffer for one post.
func (e *Engine) SetCommentDraft(postID types.ID, text string) {
	e.mu.Lock()
	e.commentDrafts[postID] = text
	e.mu.Unlock()
	e.publish()
}

// SetMessageDraft stores the message input buffer for one chat.
func (e *Engine) SetMessageDraft(chatID types.ID, text string) {
	e.mu.Lock()
	e.messageDrafts[chatID] = text
	e.mu.Unlock()
	e.publish()
}

// begin marks an entity mutation as in flight. A second invocation for the
// same entity while one is pending is rejected; the UI disables the
// affordance for the duration of its own request.
func (e *Engine) begin(key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending[key] {
		return errors.ErrMutationInFlight
	}
	e.pending[key] = true
	return nil
}

func (e *Engine) end(key string) {
	e.mu.Lock()
	delete(e.pending, key)
	e.mu.Unlock()
}

package engine

import (
	"context"

	"github.com/feedkit/feedkit-go/internal/api"
	"github.com/feedkit/feedkit-go/internal/errors"
	"github.com/feedkit/feedkit-go/internal/ownership"
	"github.com/feedkit/feedkit-go/internal/types"
	"github.com/feedkit/feedkit-go/uimsg"
)

// BeginEdit enters profile edit mode, seeding the form from the
// last-committed profile. Only the owner may edit.
func (e *Engine) BeginEdit() error {
	sess, err := e.requireSession()
	if err != nil {
		return err
	}
	e.mu.Lock()
	prof, ok := e.profile.Profile()
	if !ok {
		e.mu.Unlock()
		return errors.ErrUnknownEntity
	}
	if !ownership.IsOwner(prof.UserID, sess) {
		e.mu.Unlock()
		return errors.ErrNotOwner
	}
	e.editing = true
	e.form = formFrom(prof)
	e.mu.Unlock()
	e.publish()
	return nil
}

// CancelEdit leaves edit mode, restoring the form from the last-committed
// profile snapshot and discarding unsaved input.
func (e *Engine) CancelEdit() {
	e.mu.Lock()
	if prof, ok := e.profile.Profile(); ok {
		e.form = formFrom(prof)
	}
	e.editing = false
	e.mu.Unlock()
	e.publish()
}

// UpdateProfile sends a partial update of the editable fields. On success
// the profile is re-fetched so the cache reflects exactly what the server
// holds, and edit mode ends. On failure edit mode persists with the
// attempted values kept for retry.
func (e *Engine) UpdateProfile(ctx context.Context, form types.ProfilePatch) error {
	sess, err := e.requireSession()
	if err != nil {
		return err
	}
	e.mu.Lock()
	prof, ok := e.profile.Profile()
	if !ok {
		e.mu.Unlock()
		return errors.ErrUnknownEntity
	}
	if !ownership.IsOwner(prof.UserID, sess) {
		e.mu.Unlock()
		return errors.ErrNotOwner
	}
	e.form = form
	userID := prof.UserID
	e.mu.Unlock()

	key := "profile:" + userID.String()
	if err := e.begin(key); err != nil {
		return err
	}
	_, err = api.UpdateProfile(ctx, e.httpClient, e.baseURL, userID, form)
	if err != nil {
		e.end(key)
		mutationsRolledBack.WithLabelValues("profile").Inc()
		e.fail("update profile", uimsg.ProfileUpdateFailed, err)
		return err
	}

	// Re-fetch rather than trusting the PATCH response; strictly
	// consistent with the server.
	env, err := api.GetProfile(ctx, e.httpClient, e.baseURL, userID)
	e.end(key)
	if err != nil {
		e.fail("update profile", uimsg.ProfileLoadFailed, err)
		return err
	}
	updated := env.Profile.Domain()
	posts := make([]types.Post, 0, len(env.Posts))
	for _, w := range env.Posts {
		posts = append(posts, w.Domain(sess.UserID))
	}

	e.mu.Lock()
	e.profile.Set(updated, posts)
	e.form = formFrom(updated)
	e.editing = false
	e.mu.Unlock()
	mutationsCommitted.WithLabelValues("profile").Inc()
	e.publish()
	return nil
}

// SetPostDraft replaces the compose-form state.
func (e *Engine) SetPostDraft(d types.PostDraft) {
	e.mu.Lock()
	e.draft = d
	e.mu.Unlock()
	e.publish()
}

// CreatePost submits the compose form as a multipart request. On success
// the new post is prepended to the owner's post list (most-recent-first)
// and the form resets to its defaults. On failure the server's detail
// message is surfaced when present and the form is preserved for retry.
func (e *Engine) CreatePost(ctx context.Context) error {
	sess, err := e.requireSession()
	if err != nil {
		return err
	}
	e.mu.Lock()
	prof, ok := e.profile.Profile()
	if !ok {
		e.mu.Unlock()
		return errors.ErrUnknownEntity
	}
	if !ownership.IsOwner(prof.UserID, sess) {
		e.mu.Unlock()
		return errors.ErrNotOwner
	}
	draft := e.draft
	e.mu.Unlock()

	const key = "post:create"
	if err := e.begin(key); err != nil {
		return err
	}
	wire, err := api.CreatePost(ctx, e.httpClient, e.baseURL, draft)
	e.end(key)
	if err != nil {
		mutationsRolledBack.WithLabelValues("post").Inc()
		// Prefer the server's detail message when it sent one.
		if detail := errors.Detail(err); detail != "" && !errors.IsUnauthorized(err) {
			e.log.Warn().Err(err).Str("op", "create post").Msg("operation failed")
			e.setNotice(detail)
		} else {
			e.fail("create post", uimsg.PostCreateFailed, err)
		}
		return err
	}

	post := wire.Domain(sess.UserID)
	e.mu.Lock()
	e.profile.PrependPost(post)
	e.draft = defaultDraft()
	e.mu.Unlock()
	mutationsCommitted.WithLabelValues("post").Inc()
	e.publish()
	return nil
}

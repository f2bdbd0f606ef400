// Package ownership decides whether the session identity may mutate a
// profile. The relation gates the edit-profile affordance, the edit form,
// and the post-create form.
package ownership

import "github.com/feedkit/feedkit-go/internal/types"

// IsOwner reports whether the session's resolved user id equals the
// profile's owning-user id. False whenever there is no session. The result
// must be recomputed whenever either the viewed profile or the session
// changes.
func IsOwner(profileUserID types.ID, sess *types.Session) bool {
	if sess == nil || sess.Token == "" {
		return false
	}
	return profileUserID != "" && profileUserID == sess.UserID
}

package service

import "epicode/internal/api/models"

// CommentOwnership carries the facts the moderation policy needs: who wrote
// the comment (nil for anonymous) and who owns the parent post.
type CommentOwnership struct {
	CommentAuthorID *string
	PostAuthorID    string
}

// Decision is an allow/deny outcome with a machine-readable reason code.
type Decision struct {
	Allowed bool
	Reason  string
}

// Moderation reason codes.
const (
	ReasonAdmin        = "admin"
	ReasonCommentOwner = "comment_owner"
	ReasonPostAuthor   = "post_author"
	ReasonNotEntitled  = "not_entitled"
)

// CanModerateComment decides whether actor may edit or delete a comment.
// Allowed when the actor is an admin, the comment's own registered author, or
// holds the author role and owns the comment's parent post. Evaluated fresh on
// every mutating request.
func CanModerateComment(actor Actor, facts CommentOwnership) Decision {
	if actor.Role == models.RoleAdmin {
		return Decision{Allowed: true, Reason: ReasonAdmin}
	}
	if facts.CommentAuthorID != nil && *facts.CommentAuthorID == actor.ID {
		return Decision{Allowed: true, Reason: ReasonCommentOwner}
	}
	if actor.Role == models.RoleAuthor && facts.PostAuthorID == actor.ID {
		return Decision{Allowed: true, Reason: ReasonPostAuthor}
	}
	return Decision{Allowed: false, Reason: ReasonNotEntitled}
}

package policy

import (
	"github.com/spec-kit/ticket-tracker/internal/domain"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util"
)

// RequireCommentParticipation gates reading and posting comments on a
// ticket. A comment is never visible to someone who cannot see the ticket.
func RequireCommentParticipation(actor domain.Actor, ticket *domain.Ticket) error {
	return RequireRead(actor, ticket)
}

// CanModerateComment reports whether the actor may edit or delete the
// comment: the author, or any manager. Note this is narrower than ticket
// read access: a support actor assigned to the ticket can read and post but
// cannot touch another user's comment.
func CanModerateComment(actor domain.Actor, comment *domain.Comment) bool {
	if actor.Role == domain.RoleManager {
		return true
	}
	return comment.UserID == actor.ID
}

// RequireCommentModeration turns a failed moderation check into a Forbidden
// outcome. Evaluated only after the comment has been found.
func RequireCommentModeration(actor domain.Actor, comment *domain.Comment) error {
	if !CanModerateComment(actor, comment) {
		return apperrors.NewForbidden("you can only modify your own comments")
	}
	return nil
}

package service

import (
	"context"
	"testing"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
)

func newCommentFixture() (*CommentService, *TicketService, *fakeUserRepo, *fakeDispatcher) {
	tickets := newFakeTicketRepo()
	users := newFakeUserRepo()
	dispatcher := &fakeDispatcher{}
	ticketSvc := NewTicketService(TicketDependencies{
		TicketRepo:    tickets,
		UserRepo:      users,
		StatusLogRepo: &fakeStatusLogRepo{tickets: tickets},
		Dispatcher:    dispatcher,
	})
	commentSvc := NewCommentService(CommentDependencies{
		CommentRepo: newFakeCommentRepo(),
		TicketRepo:  tickets,
		Dispatcher:  dispatcher,
	})
	return commentSvc, ticketSvc, users, dispatcher
}

// A support agent assigned to a ticket can discuss it with the creator,
// while an unrelated user can neither read nor post.
func TestCommentParticipation(t *testing.T) {
	comments, tickets, users, dispatcher := newCommentFixture()
	manager, support, user := seedUsers(users)
	outsider := users.add(domain.User{ID: "u2", Name: "Omar", Email: "omar@example.com", Role: domain.RoleUser})
	ctx := context.Background()

	ticket, err := tickets.CreateTicket(ctx, user.AsActor(), TicketCreateInput{Title: "laptop dead"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tickets.AssignTicket(ctx, manager.AsActor(), ticket.ID, support.ID); err != nil {
		t.Fatal(err)
	}

	posted, err := comments.AddComment(ctx, support.AsActor(), ticket.ID, "have you tried turning it off and on again?")
	if err != nil {
		t.Fatalf("assigned support posts: %v", err)
	}
	if posted.UserID != support.ID {
		t.Fatalf("comment author = %s, want %s", posted.UserID, support.ID)
	}

	listed, err := comments.ListComments(ctx, user.AsActor(), ticket.ID)
	if err != nil {
		t.Fatalf("creator reads comments: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != posted.ID {
		t.Fatalf("creator sees %d comments, want the posted one", len(listed))
	}

	_, err = comments.AddComment(ctx, outsider.AsActor(), ticket.ID, "me too")
	assertCode(t, err, "FORBIDDEN")
	_, err = comments.ListComments(ctx, outsider.AsActor(), ticket.ID)
	assertCode(t, err, "FORBIDDEN")

	if got := dispatcher.published(events.EventCommentAdded); len(got) != 1 {
		t.Fatalf("published %d comment_added events, want 1", len(got))
	}
}

func TestCommentsOnMissingTicket(t *testing.T) {
	comments, _, users, _ := newCommentFixture()
	_, _, user := seedUsers(users)
	ctx := context.Background()

	_, err := comments.AddComment(ctx, user.AsActor(), "ticket-999", "hello?")
	assertCode(t, err, "NOT_FOUND")
	_, err = comments.ListComments(ctx, user.AsActor(), "ticket-999")
	assertCode(t, err, "NOT_FOUND")
}

func TestCommentModeration(t *testing.T) {
	comments, tickets, users, _ := newCommentFixture()
	manager, support, user := seedUsers(users)
	ctx := context.Background()

	ticket, err := tickets.CreateTicket(ctx, user.AsActor(), TicketCreateInput{Title: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tickets.AssignTicket(ctx, manager.AsActor(), ticket.ID, support.ID); err != nil {
		t.Fatal(err)
	}
	posted, err := comments.AddComment(ctx, user.AsActor(), ticket.ID, "original")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("author edits own", func(t *testing.T) {
		updated, err := comments.UpdateComment(ctx, user.AsActor(), posted.ID, "clarified")
		if err != nil {
			t.Fatalf("author edit: %v", err)
		}
		if updated.Body != "clarified" {
			t.Fatalf("body = %q, want %q", updated.Body, "clarified")
		}
	})

	t.Run("assigned support cannot edit another's comment", func(t *testing.T) {
		// support can read and post on this ticket, but moderation is
		// narrower than participation
		_, err := comments.UpdateComment(ctx, support.AsActor(), posted.ID, "hijacked")
		assertCode(t, err, "FORBIDDEN")
		assertCode(t, comments.DeleteComment(ctx, support.AsActor(), posted.ID), "FORBIDDEN")
	})

	t.Run("manager moderates any", func(t *testing.T) {
		if _, err := comments.UpdateComment(ctx, manager.AsActor(), posted.ID, "redacted"); err != nil {
			t.Fatalf("manager edit: %v", err)
		}
		if err := comments.DeleteComment(ctx, manager.AsActor(), posted.ID); err != nil {
			t.Fatalf("manager delete: %v", err)
		}
	})

	t.Run("missing comment is not-found before moderation", func(t *testing.T) {
		_, err := comments.UpdateComment(ctx, support.AsActor(), "comment-999", "x")
		assertCode(t, err, "NOT_FOUND")
		assertCode(t, comments.DeleteComment(ctx, support.AsActor(), "comment-999"), "NOT_FOUND")
	})
}

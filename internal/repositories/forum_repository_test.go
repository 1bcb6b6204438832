package repositories

import (
	"context"
	"testing"

	"agrisolve/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestForumToggleLikeAddsThenRemoves(t *testing.T) {
	db, mock := newMock(t)
	repo := NewForumRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT liked_by, COALESCE\\(likes,0\\) FROM forum_posts WHERE id = \\? FOR UPDATE").
		WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{"liked_by", "likes"}).AddRow(`["u-2"]`, 1))
	mock.ExpectExec("UPDATE forum_posts SET liked_by = \\?, likes = \\? WHERE id = \\?").
		WithArgs(`["u-2","u-1"]`, 2, "p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := repo.ToggleLike(context.Background(), "p-1", "u-1")
	if err != nil {
		t.Fatalf("first toggle error: %v", err)
	}
	if !res.Liked || res.Likes != 2 {
		t.Fatalf("unexpected result %+v", res)
	}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT liked_by").WithArgs("p-1").
		WillReturnRows(sqlmock.NewRows([]string{"liked_by", "likes"}).AddRow(`["u-2","u-1"]`, 2))
	mock.ExpectExec("UPDATE forum_posts").WithArgs(`["u-2"]`, 1, "p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err = repo.ToggleLike(context.Background(), "p-1", "u-1")
	if err != nil {
		t.Fatalf("second toggle error: %v", err)
	}
	if res.Liked || res.Likes != 1 {
		t.Fatalf("unexpected result %+v", res)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestForumToggleReplyLikeMissingRollsBack(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT liked_by, COALESCE\\(likes,0\\) FROM forum_replies").WithArgs("r-1", "p-1").
		WillReturnRows(sqlmock.NewRows([]string{"liked_by", "likes"}))
	mock.ExpectRollback()

	_, err := NewForumRepository(db).ToggleReplyLike(context.Background(), "p-1", "r-1", "u-1")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestForumAcceptReply(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM forum_replies WHERE id = \\? AND post_id = \\? FOR UPDATE").
		WithArgs("r-2", "p-1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("r-2"))
	mock.ExpectExec("UPDATE forum_replies SET is_accepted = \\(id = \\?\\) WHERE post_id = \\?").
		WithArgs("r-2", "p-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("UPDATE forum_posts SET status = \\?").
		WithArgs("solved", sqlmock.AnyArg(), "p-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := NewForumRepository(db).AcceptReply(context.Background(), "p-1", "r-2"); err != nil {
		t.Fatalf("AcceptReply error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestForumIncrementViewsMissingPost(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("UPDATE forum_posts SET views").WithArgs("nope").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := NewForumRepository(db).IncrementViews(context.Background(), "nope"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

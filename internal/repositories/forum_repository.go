package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intdb "agrisolve/internal/db"
	"agrisolve/internal/domain"
	"agrisolve/internal/domain/models"
	"agrisolve/internal/utils"

	"github.com/google/uuid"
)

const postColumns = `id, title, content, category, author_id, author_name, author_role,
	images, COALESCE(likes,0), liked_by, COALESCE(views,0), status, created_at, updated_at`

const replyColumns = `id, post_id, content, author_id, author_name, author_role,
	COALESCE(likes,0), liked_by, COALESCE(is_accepted,0), created_at`

type ForumRepository struct {
	DB *sql.DB
}

func NewForumRepository(db *sql.DB) ForumRepository {
	return ForumRepository{DB: db}
}

func scanPost(s rowScanner) (models.ForumPost, error) {
	var (
		p       models.ForumPost
		images  intdb.StringList
		likedBy intdb.StringList
		status  string
	)
	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.Category,
		&p.AuthorID,
		&p.AuthorName,
		&p.AuthorRole,
		&images,
		&p.Likes,
		&likedBy,
		&p.Views,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	p.Images = []string(images)
	p.LikedBy = []string(likedBy)
	p.Status = domain.PostStatus(status)
	return p, err
}

func scanReply(s rowScanner) (models.ForumReply, error) {
	var (
		r       models.ForumReply
		likedBy intdb.StringList
	)
	err := s.Scan(
		&r.ID,
		&r.PostID,
		&r.Content,
		&r.AuthorID,
		&r.AuthorName,
		&r.AuthorRole,
		&r.Likes,
		&likedBy,
		&r.IsAccepted,
		&r.CreatedAt,
	)
	r.LikedBy = []string(likedBy)
	return r, err
}

// ListPosts returns every post, newest first.
func (r ForumRepository) ListPosts(ctx context.Context) ([]models.ForumPost, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+postColumns+` FROM forum_posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query forum posts: %w", err)
	}
	defer rows.Close()

	out := []models.ForumPost{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan forum post: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r ForumRepository) GetPost(ctx context.Context, id string) (models.ForumPost, error) {
	p, err := scanPost(r.DB.QueryRowContext(ctx, `SELECT `+postColumns+` FROM forum_posts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return p, domain.NotFoundError{Resource: "forum post", Err: err}
	}
	if err != nil {
		return p, fmt.Errorf("get forum post %s: %w", id, err)
	}
	return p, nil
}

// CreatePost stores a new open question with zeroed counters.
func (r ForumRepository) CreatePost(ctx context.Context, p models.ForumPost) (models.ForumPost, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	p.Likes, p.Views, p.LikedBy = 0, 0, []string{}
	p.Status = domain.PostOpen
	now := utils.DBNow()
	p.CreatedAt, p.UpdatedAt = now, now

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO forum_posts (id, title, content, category, author_id, author_name, author_role,
			images, likes, liked_by, views, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, ?, 0, ?, ?, ?)`,
		p.ID, p.Title, p.Content, p.Category, p.AuthorID, p.AuthorName, p.AuthorRole,
		intdb.StringList(p.Images), intdb.StringList(p.LikedBy), string(p.Status), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return p, fmt.Errorf("insert forum post: %w", err)
	}
	return p, nil
}

// ListReplies returns replies to postID, oldest first.
func (r ForumRepository) ListReplies(ctx context.Context, postID string) ([]models.ForumReply, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+replyColumns+` FROM forum_replies WHERE post_id = ? ORDER BY created_at ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("query forum replies: %w", err)
	}
	defer rows.Close()

	out := []models.ForumReply{}
	for rows.Next() {
		rep, err := scanReply(rows)
		if err != nil {
			return nil, fmt.Errorf("scan forum reply: %w", err)
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r ForumRepository) CreateReply(ctx context.Context, rep models.ForumReply) (models.ForumReply, error) {
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	rep.Likes, rep.LikedBy, rep.IsAccepted = 0, []string{}, false
	rep.CreatedAt = utils.DBNow()

	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO forum_replies (id, post_id, content, author_id, author_name, author_role,
			likes, liked_by, is_accepted, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 0, ?, 0, ?)`,
		rep.ID, rep.PostID, rep.Content, rep.AuthorID, rep.AuthorName, rep.AuthorRole,
		intdb.StringList(rep.LikedBy), rep.CreatedAt,
	)
	if err != nil {
		return rep, fmt.Errorf("insert forum reply: %w", err)
	}
	return rep, nil
}

// LikeResult is the counter state after a like toggle.
type LikeResult struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

// ToggleLike flips userID in the post's liked_by list and adjusts the counter.
// The row is locked for the read-modify-write.
func (r ForumRepository) ToggleLike(ctx context.Context, postID, userID string) (LikeResult, error) {
	return r.toggleLike(ctx, "forum_posts", "forum post",
		`SELECT liked_by, COALESCE(likes,0) FROM forum_posts WHERE id = ? FOR UPDATE`,
		`UPDATE forum_posts SET liked_by = ?, likes = ? WHERE id = ?`,
		[]any{postID}, userID)
}

func (r ForumRepository) ToggleReplyLike(ctx context.Context, postID, replyID, userID string) (LikeResult, error) {
	return r.toggleLike(ctx, "forum_replies", "forum reply",
		`SELECT liked_by, COALESCE(likes,0) FROM forum_replies WHERE id = ? AND post_id = ? FOR UPDATE`,
		`UPDATE forum_replies SET liked_by = ?, likes = ? WHERE id = ?`,
		[]any{replyID, postID}, userID)
}

func (r ForumRepository) toggleLike(ctx context.Context, table, resource, selectSQL, updateSQL string, keys []any, userID string) (LikeResult, error) {
	var out LikeResult
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		var (
			likedBy intdb.StringList
			likes   int
		)
		err := tx.QueryRowContext(ctx, selectSQL, keys...).Scan(&likedBy, &likes)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: resource, Err: err}
		}
		if err != nil {
			return fmt.Errorf("lock %s: %w", table, err)
		}

		next, count, liked := models.ToggleLike(likedBy, likes, userID)
		if _, err := tx.ExecContext(ctx, updateSQL, intdb.StringList(next), count, keys[0]); err != nil {
			return fmt.Errorf("update %s likes: %w", table, err)
		}
		out = LikeResult{Likes: count, Liked: liked}
		return nil
	})
	return out, err
}

func (r ForumRepository) IncrementViews(ctx context.Context, postID string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE forum_posts SET views = COALESCE(views,0) + 1 WHERE id = ?`, postID)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "forum post"}
	}
	return nil
}

// AcceptReply marks replyID as the only accepted answer and the post as solved.
func (r ForumRepository) AcceptReply(ctx context.Context, postID, replyID string) error {
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		var id string
		err := tx.QueryRowContext(ctx, `SELECT id FROM forum_replies WHERE id = ? AND post_id = ? FOR UPDATE`, replyID, postID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFoundError{Resource: "forum reply", Err: err}
		}
		if err != nil {
			return fmt.Errorf("lock forum reply: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE forum_replies SET is_accepted = (id = ?) WHERE post_id = ?`, replyID, postID); err != nil {
			return fmt.Errorf("accept reply: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE forum_posts SET status = ?, updated_at = ? WHERE id = ?`,
			string(domain.PostSolved), utils.DBNow(), postID); err != nil {
			return fmt.Errorf("mark post solved: %w", err)
		}
		return nil
	})
}

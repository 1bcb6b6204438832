package models

import (
	"time"

	"agrisolve/internal/domain"
)

type ForumPost struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Category   string            `json:"category"`
	AuthorID   string            `json:"author_id"`
	AuthorName string            `json:"author_name"`
	AuthorRole string            `json:"author_role"`
	Images     []string          `json:"images"`
	Likes      int               `json:"likes"`
	LikedBy    []string          `json:"liked_by"`
	Views      int               `json:"views"`
	Status     domain.PostStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type ForumReply struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	AuthorRole string    `json:"author_role"`
	Likes      int       `json:"likes"`
	LikedBy    []string  `json:"liked_by"`
	IsAccepted bool      `json:"is_accepted"`
	CreatedAt  time.Time `json:"created_at"`
}

// ForumThread is a post together with its replies, oldest reply first.
type ForumThread struct {
	ForumPost
	Replies []ForumReply `json:"replies"`
}

// ToggleLike flips userID's membership in likedBy and returns the new list and count.
// The count never drops below zero even if the stored counter drifted.
func ToggleLike(likedBy []string, likes int, userID string) ([]string, int, bool) {
	out := make([]string, 0, len(likedBy)+1)
	found := false
	for _, id := range likedBy {
		if id == userID {
			found = true
			continue
		}
		out = append(out, id)
	}
	if found {
		likes--
		if likes < 0 {
			likes = 0
		}
		return out, likes, false
	}
	out = append(out, userID)
	return out, likes + 1, true
}

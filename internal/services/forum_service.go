package services

import (
	"context"
	"fmt"

	"agrisolve/internal/domain"
	"agrisolve/internal/domain/models"
	"agrisolve/internal/listingview"
	"agrisolve/internal/repositories"
	"agrisolve/internal/utils"
)

type ForumStore interface {
	ListPosts(ctx context.Context) ([]models.ForumPost, error)
	GetPost(ctx context.Context, id string) (models.ForumPost, error)
	CreatePost(ctx context.Context, p models.ForumPost) (models.ForumPost, error)
	ListReplies(ctx context.Context, postID string) ([]models.ForumReply, error)
	CreateReply(ctx context.Context, r models.ForumReply) (models.ForumReply, error)
	ToggleLike(ctx context.Context, postID, userID string) (repositories.LikeResult, error)
	ToggleReplyLike(ctx context.Context, postID, replyID, userID string) (repositories.LikeResult, error)
	IncrementViews(ctx context.Context, postID string) error
	AcceptReply(ctx context.Context, postID, replyID string) error
}

// ForumFilter narrows the question list with the same substring rules as listings.
type ForumFilter struct {
	Search   string
	Category string
	Status   string
}

type PostInput struct {
	Title    string   `json:"title" binding:"required,min=10"`
	Content  string   `json:"content" binding:"required,min=20"`
	Category string   `json:"category" binding:"required"`
	Images   []string `json:"images" binding:"max=3"`
}

type replyInput struct {
	Content string `json:"content" binding:"required,min=10"`
}

type ForumService struct {
	Repo      ForumStore
	RequestID string
}

// Browse returns matching posts, newest first.
func (s ForumService) Browse(ctx context.Context, f ForumFilter) ([]models.ForumPost, error) {
	posts, err := s.Repo.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	status := utils.TrimOrEmpty(f.Status)
	out := make([]models.ForumPost, 0, len(posts))
	for _, p := range posts {
		if !listingview.MatchSearch(f.Search, p.Title, p.Content, p.AuthorName) {
			continue
		}
		if !listingview.MatchSelector(p.Category, f.Category) {
			continue
		}
		if status != "" && status != listingview.AllSelector && string(p.Status) != status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s ForumService) Create(ctx context.Context, rc domain.RequestContext, in PostInput) (models.ForumPost, error) {
	if !rc.Authenticated() {
		return models.ForumPost{}, domain.UnauthorizedError{Msg: "login required to ask a question"}
	}
	in = PostInput{
		Title:    utils.NormalizeSpace(in.Title),
		Content:  utils.TrimOrEmpty(in.Content),
		Category: utils.TrimOrEmpty(in.Category),
		Images:   utils.CleanList(in.Images),
	}
	if err := validateInput(in); err != nil {
		return models.ForumPost{}, err
	}
	p := models.ForumPost{
		Title:      in.Title,
		Content:    in.Content,
		Category:   in.Category,
		Images:     in.Images,
		AuthorID:   rc.UserID,
		AuthorName: rc.Name,
		AuthorRole: string(rc.Role),
	}

	created, err := s.Repo.CreatePost(ctx, p)
	if err != nil {
		return models.ForumPost{}, err
	}
	utils.LogEvent(s.RequestID, "forum", "create_post", fmt.Sprintf("post_id=%s author_id=%s", created.ID, rc.UserID))
	return created, nil
}

// Get counts a view and returns the post with its replies.
func (s ForumService) Get(ctx context.Context, id string) (models.ForumThread, error) {
	if err := s.Repo.IncrementViews(ctx, id); err != nil {
		return models.ForumThread{}, err
	}
	post, err := s.Repo.GetPost(ctx, id)
	if err != nil {
		return models.ForumThread{}, err
	}
	replies, err := s.Repo.ListReplies(ctx, id)
	if err != nil {
		return models.ForumThread{}, err
	}
	return models.ForumThread{ForumPost: post, Replies: replies}, nil
}

func (s ForumService) Reply(ctx context.Context, rc domain.RequestContext, postID, content string) (models.ForumReply, error) {
	if !rc.Authenticated() {
		return models.ForumReply{}, domain.UnauthorizedError{Msg: "login required to reply"}
	}
	content = utils.TrimOrEmpty(content)
	if err := validateInput(replyInput{Content: content}); err != nil {
		return models.ForumReply{}, err
	}
	post, err := s.Repo.GetPost(ctx, postID)
	if err != nil {
		return models.ForumReply{}, err
	}
	if post.Status == domain.PostClosed {
		return models.ForumReply{}, domain.ConflictError{Resource: "forum post", Msg: "post is closed"}
	}

	reply, err := s.Repo.CreateReply(ctx, models.ForumReply{
		PostID:     postID,
		Content:    content,
		AuthorID:   rc.UserID,
		AuthorName: rc.Name,
		AuthorRole: string(rc.Role),
	})
	if err != nil {
		return models.ForumReply{}, err
	}
	utils.LogEvent(s.RequestID, "forum", "reply", fmt.Sprintf("post_id=%s reply_id=%s", postID, reply.ID))
	return reply, nil
}

// ToggleLike persists the like on the post record itself.
func (s ForumService) ToggleLike(ctx context.Context, rc domain.RequestContext, postID string) (repositories.LikeResult, error) {
	if !rc.Authenticated() {
		return repositories.LikeResult{}, domain.UnauthorizedError{Msg: "login required to like"}
	}
	res, err := s.Repo.ToggleLike(ctx, postID, rc.UserID)
	if err != nil {
		utils.LogFailure(s.RequestID, "forum", "like_post", err)
		return res, err
	}
	return res, nil
}

func (s ForumService) ToggleReplyLike(ctx context.Context, rc domain.RequestContext, postID, replyID string) (repositories.LikeResult, error) {
	if !rc.Authenticated() {
		return repositories.LikeResult{}, domain.UnauthorizedError{Msg: "login required to like"}
	}
	res, err := s.Repo.ToggleReplyLike(ctx, postID, replyID, rc.UserID)
	if err != nil {
		utils.LogFailure(s.RequestID, "forum", "like_reply", err)
		return res, err
	}
	return res, nil
}

// AcceptReply lets the question's author mark the answer that solved it.
func (s ForumService) AcceptReply(ctx context.Context, rc domain.RequestContext, postID, replyID string) error {
	if !rc.Authenticated() {
		return domain.UnauthorizedError{Msg: "login required"}
	}
	post, err := s.Repo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != rc.UserID {
		return domain.ForbiddenError{Resource: "forum post", Msg: "only the author can accept an answer"}
	}
	if err := s.Repo.AcceptReply(ctx, postID, replyID); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "forum", "accept_reply", fmt.Sprintf("post_id=%s reply_id=%s", postID, replyID))
	return nil
}

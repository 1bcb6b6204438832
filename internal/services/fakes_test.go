package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agrisolve/internal/domain"
	"agrisolve/internal/domain/models"
	"agrisolve/internal/repositories"
)

type fakeListings struct {
	items   []models.Listing
	listErr error
	lists   int
	nextID  int
}

func (f *fakeListings) List(context.Context) ([]models.Listing, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Listing(nil), f.items...), nil
}

func (f *fakeListings) ListBySeller(_ context.Context, sellerID string) ([]models.Listing, error) {
	out := []models.Listing{}
	for _, l := range f.items {
		if l.SellerID == sellerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeListings) GetByID(_ context.Context, id string) (models.Listing, error) {
	for _, l := range f.items {
		if l.ID == id {
			return l, nil
		}
	}
	return models.Listing{}, domain.NotFoundError{Resource: "listing"}
}

func (f *fakeListings) Create(_ context.Context, l models.Listing) (models.Listing, error) {
	f.nextID++
	l.ID = fmt.Sprintf("l-%d", f.nextID)
	l.CreatedAt = time.Date(2024, 5, 1, 0, 0, f.nextID, 0, time.UTC)
	l.UpdatedAt = l.CreatedAt
	f.items = append([]models.Listing{l}, f.items...)
	return l, nil
}

func (f *fakeListings) Update(_ context.Context, l models.Listing) (models.Listing, error) {
	for i := range f.items {
		if f.items[i].ID == l.ID {
			f.items[i] = l
			return l, nil
		}
	}
	return models.Listing{}, domain.NotFoundError{Resource: "listing"}
}

func (f *fakeListings) Delete(_ context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "listing"}
}

type fakeForum struct {
	posts    []models.ForumPost
	replies  map[string][]models.ForumReply
	accepted map[string]string
	views    map[string]int
}

func newFakeForum(posts ...models.ForumPost) *fakeForum {
	return &fakeForum{
		posts:    posts,
		replies:  map[string][]models.ForumReply{},
		accepted: map[string]string{},
		views:    map[string]int{},
	}
}

func (f *fakeForum) ListPosts(context.Context) ([]models.ForumPost, error) {
	return append([]models.ForumPost(nil), f.posts...), nil
}

func (f *fakeForum) GetPost(_ context.Context, id string) (models.ForumPost, error) {
	for _, p := range f.posts {
		if p.ID == id {
			p.Views += f.views[id]
			return p, nil
		}
	}
	return models.ForumPost{}, domain.NotFoundError{Resource: "forum post"}
}

func (f *fakeForum) CreatePost(_ context.Context, p models.ForumPost) (models.ForumPost, error) {
	p.ID = fmt.Sprintf("p-%d", len(f.posts)+1)
	p.Status = domain.PostOpen
	f.posts = append(f.posts, p)
	return p, nil
}

func (f *fakeForum) ListReplies(_ context.Context, postID string) ([]models.ForumReply, error) {
	return append([]models.ForumReply{}, f.replies[postID]...), nil
}

func (f *fakeForum) CreateReply(_ context.Context, r models.ForumReply) (models.ForumReply, error) {
	r.ID = fmt.Sprintf("r-%d", len(f.replies[r.PostID])+1)
	f.replies[r.PostID] = append(f.replies[r.PostID], r)
	return r, nil
}

func (f *fakeForum) ToggleLike(_ context.Context, postID, userID string) (repositories.LikeResult, error) {
	for i := range f.posts {
		if f.posts[i].ID == postID {
			var liked bool
			f.posts[i].LikedBy, f.posts[i].Likes, liked = models.ToggleLike(f.posts[i].LikedBy, f.posts[i].Likes, userID)
			return repositories.LikeResult{Likes: f.posts[i].Likes, Liked: liked}, nil
		}
	}
	return repositories.LikeResult{}, domain.NotFoundError{Resource: "forum post"}
}

func (f *fakeForum) ToggleReplyLike(_ context.Context, postID, replyID, userID string) (repositories.LikeResult, error) {
	rs := f.replies[postID]
	for i := range rs {
		if rs[i].ID == replyID {
			var liked bool
			rs[i].LikedBy, rs[i].Likes, liked = models.ToggleLike(rs[i].LikedBy, rs[i].Likes, userID)
			return repositories.LikeResult{Likes: rs[i].Likes, Liked: liked}, nil
		}
	}
	return repositories.LikeResult{}, domain.NotFoundError{Resource: "forum reply"}
}

func (f *fakeForum) IncrementViews(_ context.Context, postID string) error {
	f.views[postID]++
	return nil
}

func (f *fakeForum) AcceptReply(_ context.Context, postID, replyID string) error {
	f.accepted[postID] = replyID
	return nil
}

type fakeUsers struct {
	byID map[string]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[string]models.User{}}
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (models.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, domain.NotFoundError{Resource: "user"}
}

func (f *fakeUsers) Create(ctx context.Context, u models.User) (models.User, error) {
	if _, err := f.GetByEmail(ctx, u.Email); err == nil {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	}
	u.ID = fmt.Sprintf("u-%d", len(f.byID)+1)
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id, name, location, phone string) error {
	u, ok := f.byID[id]
	if !ok {
		return domain.NotFoundError{Resource: "user"}
	}
	u.Name, u.Location, u.Phone = name, location, phone
	f.byID[id] = u
	return nil
}

var errStoreDown = errors.New("store down")

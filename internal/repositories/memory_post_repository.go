package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/anonto42/public-space/backend/internal/models"
	"github.com/anonto42/public-space/backend/internal/policy"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryPostRepository keeps posts in process. Every read returns a deep
// copy so callers never observe a later mutation.
type MemoryPostRepository struct {
	mu      sync.RWMutex
	posts   map[primitive.ObjectID]models.Post
	offline bool
}

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{posts: make(map[primitive.ObjectID]models.Post)}
}

// SetOffline makes every call fail with ErrStoreUnavailable.
func (r *MemoryPostRepository) SetOffline(offline bool) {
	r.mu.Lock()
	r.offline = offline
	r.mu.Unlock()
}

func (r *MemoryPostRepository) check(op string) error {
	if r.offline {
		return storeError(op, errMemoryOffline)
	}
	return nil
}

func clonePost(p models.Post) models.Post {
	p.Likes = append([]string{}, p.Likes...)
	p.Comments = append([]models.Comment{}, p.Comments...)
	return p
}

func (r *MemoryPostRepository) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("insert post"); err != nil {
		return err
	}
	post.ID = primitive.NewObjectID()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	r.posts[post.ID] = clonePost(*post)
	return nil
}

func (r *MemoryPostRepository) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.check("get post"); err != nil {
		return nil, err
	}
	p, ok := r.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	p = clonePost(p)
	return &p, nil
}

func (r *MemoryPostRepository) lookup(id string) (models.Post, bool) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Post{}, false
	}
	p, ok := r.posts[objID]
	return p, ok
}

func (r *MemoryPostRepository) GetAllPosts(_ context.Context) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.check("list posts"); err != nil {
		return nil, err
	}
	posts := make([]models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		posts = append(posts, clonePost(p))
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID.Hex() > posts[j].ID.Hex()
	})
	return posts, nil
}

func (r *MemoryPostRepository) CountPostsByAuthorBetween(_ context.Context, authorID string, start, end time.Time) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if err := r.check("count posts"); err != nil {
		return 0, err
	}
	var n int64
	for _, p := range r.posts {
		if p.AuthorID == authorID && !p.CreatedAt.Before(start) && p.CreatedAt.Before(end) {
			n++
		}
	}
	return n, nil
}

func (r *MemoryPostRepository) ToggleLike(_ context.Context, postID, userID string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("toggle like"); err != nil {
		return nil, err
	}
	p, ok := r.lookup(postID)
	if !ok {
		return nil, ErrNotFound
	}
	p.Likes, _ = policy.ToggleLike(p.Likes, userID)
	r.posts[p.ID] = p
	p = clonePost(p)
	return &p, nil
}

func (r *MemoryPostRepository) AddComment(_ context.Context, postID string, comment models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("add comment"); err != nil {
		return err
	}
	p, ok := r.lookup(postID)
	if !ok {
		return ErrNotFound
	}
	p.Comments = append(append([]models.Comment{}, p.Comments...), comment)
	r.posts[p.ID] = p
	return nil
}

func (r *MemoryPostRepository) DeletePost(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("delete post"); err != nil {
		return err
	}
	p, ok := r.lookup(id)
	if !ok {
		return ErrNotFound
	}
	delete(r.posts, p.ID)
	return nil
}

func (r *MemoryPostRepository) DeleteAllPosts(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.check("delete posts"); err != nil {
		return err
	}
	r.posts = make(map[primitive.ObjectID]models.Post)
	return nil
}

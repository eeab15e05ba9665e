package repositories

import (
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// postCountsSelect annotates each post with its reply/quote/like/repost
// counts via correlated subqueries, all computed within the same statement.
const postCountsSelect = `posts.*,
(SELECT COUNT(*) FROM posts r WHERE r.replied_post_id = posts.id) AS replies_count,
(SELECT COUNT(*) FROM posts q WHERE q.quoted_post_id = posts.id) AS quotes_count,
(SELECT COUNT(*) FROM post_interactions li WHERE li.post_id = posts.id AND li.type = 'like') AS likes_count,
(SELECT COUNT(*) FROM post_interactions re WHERE re.post_id = posts.id AND re.type = 'repost') AS reposts_count`

// PostFilter composes the optional find-posts predicates. Every set field
// tightens the result set via AND.
type PostFilter struct {
	Content         string
	AuthorUsername  string
	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
	RepliedToPostID *uint
	RepliedToAuthor string
	QuotedPostID    *uint
	QuotedAuthor    string
}

// PostRepository defines the interface for post data operations and the
// aggregate-enriched feed queries.
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPostDetail(id uint) (*models.PostWithCounts, error)
	DeletePost(id uint) error
	ListFollowingFeed(profileID uint, cursor uint, limit int) ([]models.PostWithCounts, error)
	ListTrendingFeed(since time.Time, cursor uint, limit int) ([]models.PostWithCounts, error)
	ListReplies(postID uint, cursor uint, limit int) ([]models.PostWithCounts, error)
	ListQuotes(postID uint, cursor uint, limit int) ([]models.PostWithCounts, error)
	ListByProfile(profileID uint, cursor uint, limit int) ([]models.PostWithCounts, error)
	FindPosts(filter PostFilter) ([]models.PostWithCounts, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post with its author profile
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Profile").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostDetail retrieves a post annotated with its aggregate counts
func (r *PostgresPostRepository) GetPostDetail(id uint) (*models.PostWithCounts, error) {
	var detail models.PostWithCounts
	err := r.db.Table("posts").
		Select(postCountsSelect).
		Where("posts.id = ?", id).
		Scan(&detail).Error
	if err != nil {
		return nil, err
	}
	if detail.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &detail, nil
}

func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

// annotated starts an aggregate-enriched post query ordered for keyset
// pagination (descending id, strict less-than cursor predicate).
func (r *PostgresPostRepository) annotated(cursor uint) *gorm.DB {
	q := r.db.Table("posts").Select(postCountsSelect)
	if cursor > 0 {
		q = q.Where("posts.id < ?", cursor)
	}
	return q
}

// ListFollowingFeed lists posts authored by profiles the caller follows,
// plus the caller's own posts.
func (r *PostgresPostRepository) ListFollowingFeed(profileID uint, cursor uint, limit int) ([]models.PostWithCounts, error) {
	followed := r.db.Table("profile_interactions").
		Select("target_profile_id").
		Where("source_profile_id = ? AND type = ?", profileID, models.InteractionFollow)

	var posts []models.PostWithCounts
	err := r.annotated(cursor).
		Where("posts.profile_id IN (?) OR posts.profile_id = ?", followed, profileID).
		Order("posts.id DESC").
		Limit(limit).
		Scan(&posts).Error
	return posts, err
}

// ListTrendingFeed ranks recent posts by their interaction volume inside the
// window, ties broken by descending id. The cursor pages on id alone, not on
// (trend_score, id): a later page can omit a higher-scoring post whose id
// exceeds the cursor. The ranking itself already shifts between requests as
// the window slides.
func (r *PostgresPostRepository) ListTrendingFeed(since time.Time, cursor uint, limit int) ([]models.PostWithCounts, error) {
	q := r.db.Table("posts").
		Select(postCountsSelect+`,
(SELECT COUNT(*) FROM post_interactions ti WHERE ti.post_id = posts.id AND ti.created_at >= ?) AS trend_score`, since).
		Where("posts.created_at >= ?", since)
	if cursor > 0 {
		q = q.Where("posts.id < ?", cursor)
	}
	var posts []models.PostWithCounts
	err := q.Order("trend_score DESC, posts.id DESC").Limit(limit).Scan(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) ListReplies(postID uint, cursor uint, limit int) ([]models.PostWithCounts, error) {
	var posts []models.PostWithCounts
	err := r.annotated(cursor).
		Where("posts.replied_post_id = ?", postID).
		Order("posts.id DESC").
		Limit(limit).
		Scan(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) ListQuotes(postID uint, cursor uint, limit int) ([]models.PostWithCounts, error) {
	var posts []models.PostWithCounts
	err := r.annotated(cursor).
		Where("posts.quoted_post_id = ?", postID).
		Order("posts.id DESC").
		Limit(limit).
		Scan(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) ListByProfile(profileID uint, cursor uint, limit int) ([]models.PostWithCounts, error) {
	var posts []models.PostWithCounts
	err := r.annotated(cursor).
		Where("posts.profile_id = ?", profileID).
		Order("posts.id DESC").
		Limit(limit).
		Scan(&posts).Error
	return posts, err
}

// FindPosts composes the optional filter predicates additively. The base
// variant is unpaginated, ordered by creation descending.
func (r *PostgresPostRepository) FindPosts(filter PostFilter) ([]models.PostWithCounts, error) {
	q := r.db.Table("posts").Select(postCountsSelect)

	if filter.Content != "" {
		q = q.Where("posts.content LIKE ?", "%"+filter.Content+"%")
	}
	if filter.AuthorUsername != "" {
		q = q.Where("posts.profile_id IN (?)",
			r.db.Table("profiles").Select("id").Where("username = ?", filter.AuthorUsername))
	}
	if filter.CreatedAfter != nil {
		q = q.Where("posts.created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		q = q.Where("posts.created_at <= ?", *filter.CreatedBefore)
	}
	if filter.RepliedToPostID != nil {
		q = q.Where("posts.replied_post_id = ?", *filter.RepliedToPostID)
	}
	if filter.RepliedToAuthor != "" {
		q = q.Where("posts.replied_post_id IN (?)",
			r.db.Table("posts AS parents").Select("parents.id").
				Joins("JOIN profiles ON profiles.id = parents.profile_id").
				Where("profiles.username = ?", filter.RepliedToAuthor))
	}
	if filter.QuotedPostID != nil {
		q = q.Where("posts.quoted_post_id = ?", *filter.QuotedPostID)
	}
	if filter.QuotedAuthor != "" {
		q = q.Where("posts.quoted_post_id IN (?)",
			r.db.Table("posts AS parents").Select("parents.id").
				Joins("JOIN profiles ON profiles.id = parents.profile_id").
				Where("profiles.username = ?", filter.QuotedAuthor))
	}

	var posts []models.PostWithCounts
	err := q.Order("posts.id DESC").Scan(&posts).Error
	return posts, err
}

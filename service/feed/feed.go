package feed

import (
	"errors"

	"github.com/google/uuid"
	"github.com/pulsefeed/pulse-server/cmd/models"
	"gorm.io/gorm"
)

// DefaultPageSize is applied when a caller passes limit <= 0.
const DefaultPageSize = 20

// Engine answers all read queries over posts, comments and shares.
//
// Pagination is offset/limit, which costs O(offset) on large tables. That is
// acceptable at this service's scale target; moving to cursors would change
// the total/has_next contract and is deliberately not done here.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

type Page struct {
	Items   []models.Post `json:"items"`
	HasNext bool          `json:"has_next"`
	Total   int64         `json:"total"`
}

// GetPost excludes soft-deleted posts.
func (e *Engine) GetPost(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := e.db.Where("id = ? AND deleted_at IS NULL", id).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostAsOwner returns the post even when soft-deleted, provided the actor
// is the author or staff. This is the administrative access path for deleted
// rows; outsiders get ErrNotFound rather than a permission error so the
// row's existence is not leaked.
func (e *Engine) GetPostAsOwner(actor models.Actor, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := e.db.Where("id = ?", id).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !models.CanModify(actor, post.AuthorID) {
		return nil, models.ErrNotFound
	}
	return &post, nil
}

// GlobalFeed pages over all non-deleted posts, newest first. Ties on
// created_at break by id descending so page boundaries are deterministic.
// Total is the full non-deleted count, not the page length.
func (e *Engine) GlobalFeed(limit, offset int) (*Page, error) {
	return e.page(limit, offset, "deleted_at IS NULL")
}

// AuthorFeed is GlobalFeed scoped to one author.
func (e *Engine) AuthorFeed(authorID uuid.UUID, limit, offset int) (*Page, error) {
	return e.page(limit, offset, "author_id = ? AND deleted_at IS NULL", authorID)
}

func (e *Engine) page(limit, offset int, cond string, args ...interface{}) (*Page, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	var total int64
	if err := e.db.Model(&models.Post{}).Where(cond, args...).Count(&total).Error; err != nil {
		return nil, err
	}

	items := []models.Post{}
	err := e.db.Where(cond, args...).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &Page{
		Items:   items,
		HasNext: int64(offset+limit) < total,
		Total:   total,
	}, nil
}

// Replies lists direct (not transitive) non-deleted replies to a post,
// oldest first. Replies to a soft-deleted post are still listed; rendering
// the removed parent is the adapter's concern.
func (e *Engine) Replies(postID uuid.UUID) ([]models.Post, error) {
	replies := []models.Post{}
	err := e.db.Where("reply_to_post_id = ? AND deleted_at IS NULL", postID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

// Comments lists top-level non-deleted comments, newest first. Comments
// under a soft-deleted post are suppressed from the listing (they remain
// fetchable by ID through the store).
func (e *Engine) Comments(postID uuid.UUID) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := e.db.
		Joins("JOIN posts ON posts.id = comments.post_id AND posts.deleted_at IS NULL").
		Where("comments.post_id = ? AND comments.parent_comment_id IS NULL AND comments.deleted_at IS NULL", postID).
		Order("comments.created_at DESC").
		Find(&comments).Error
	return comments, err
}

// CommentReplies lists direct children of a comment, oldest first.
func (e *Engine) CommentReplies(commentID uuid.UUID) ([]models.Comment, error) {
	replies := []models.Comment{}
	err := e.db.Where("parent_comment_id = ? AND deleted_at IS NULL", commentID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

// CommentCount counts all non-deleted comments of a non-deleted post. It is
// computed at query time from the same predicate as the listings; no
// denormalized counter exists to drift.
func (e *Engine) CommentCount(postID uuid.UUID) (int64, error) {
	var count int64
	err := e.db.Model(&models.Comment{}).
		Joins("JOIN posts ON posts.id = comments.post_id AND posts.deleted_at IS NULL").
		Where("comments.post_id = ? AND comments.deleted_at IS NULL", postID).
		Count(&count).Error
	return count, err
}

// Shares lists all share rows for a post.
func (e *Engine) Shares(postID uuid.UUID) ([]models.Share, error) {
	shares := []models.Share{}
	err := e.db.Where("post_id = ?", postID).Order("created_at DESC").Find(&shares).Error
	return shares, err
}

// ShareCount counts live over all share rows.
func (e *Engine) ShareCount(postID uuid.UUID) (int64, error) {
	var count int64
	err := e.db.Model(&models.Share{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// SearchPosts runs full-text search over non-deleted posts. On Postgres the
// stored search text is matched and ranked with tsvector/tsquery (a GIN
// expression index is created at migration time); other dialects fall back
// to a substring match so the engine stays portable.
func (e *Engine) SearchPosts(query string, limit, offset int) (*Page, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	norm := models.SearchText(query)
	if norm == "" {
		return &Page{Items: []models.Post{}}, nil
	}

	if e.db.Dialector.Name() == "postgres" {
		cond := "deleted_at IS NULL AND to_tsvector('simple', search_index) @@ plainto_tsquery('simple', ?)"

		var total int64
		if err := e.db.Model(&models.Post{}).Where(cond, norm).Count(&total).Error; err != nil {
			return nil, err
		}

		items := []models.Post{}
		err := e.db.Model(&models.Post{}).
			Select("*, ts_rank(to_tsvector('simple', search_index), plainto_tsquery('simple', ?)) AS search_rank", norm).
			Where(cond, norm).
			Order("search_rank DESC").
			Order("created_at DESC, id DESC").
			Limit(limit).Offset(offset).
			Find(&items).Error
		if err != nil {
			return nil, err
		}
		return &Page{Items: items, HasNext: int64(offset+limit) < total, Total: total}, nil
	}

	return e.page(limit, offset, "deleted_at IS NULL AND search_index LIKE ?", "%"+norm+"%")
}

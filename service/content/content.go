package content

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pulsefeed/pulse-server/cmd/models"
	"gorm.io/gorm"
)

// Engine owns post and comment mutations: creation, partial update and soft
// deletion, with author-or-staff authorization. Any change to content also
// refreshes the derived search text in the same transaction, so an author's
// own writes are immediately searchable.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

type CreatePostInput struct {
	Content       string
	Language      *string
	IsPrivate     *bool
	Visibility    *string
	ReplyToPostID *uuid.UUID
}

func (e *Engine) CreatePost(actor models.Actor, in CreatePostInput) (*models.Post, error) {
	post := &models.Post{
		AuthorID:    actor.ID,
		Content:     in.Content,
		Language:    in.Language,
		Visibility:  models.VisibilityPublic,
		SearchIndex: models.SearchText(in.Content),
	}
	if in.IsPrivate != nil {
		post.IsPrivate = *in.IsPrivate
	}
	if in.Visibility != nil {
		post.Visibility = *in.Visibility
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		if in.ReplyToPostID != nil {
			var parent models.Post
			err := tx.Select("id").
				Where("id = ? AND deleted_at IS NULL", *in.ReplyToPostID).
				First(&parent).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			if err != nil {
				return err
			}
			post.ReplyToPostID = in.ReplyToPostID
		}
		return tx.Create(post).Error
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

type UpdatePostInput struct {
	Content    *string
	Language   *string
	IsPrivate  *bool
	Visibility *string
}

// UpdatePost applies only the fields present in the input. updated_at is
// refreshed on any successful call, matching the store's save semantics.
func (e *Engine) UpdatePost(actor models.Actor, postID uuid.UUID, in UpdatePostInput) (*models.Post, error) {
	var post models.Post

	err := e.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ? AND deleted_at IS NULL", postID).First(&post).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		if err != nil {
			return err
		}
		if !models.CanModify(actor, post.AuthorID) {
			return models.ErrPermissionDenied
		}

		updates := map[string]interface{}{
			"updated_at": time.Now().UTC(),
		}
		if in.Content != nil {
			updates["content"] = *in.Content
			updates["search_index"] = models.SearchText(*in.Content)
		}
		if in.Language != nil {
			updates["language"] = *in.Language
		}
		if in.IsPrivate != nil {
			updates["is_private"] = *in.IsPrivate
		}
		if in.Visibility != nil {
			updates["visibility"] = *in.Visibility
		}
		return tx.Model(&post).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost soft-deletes. A second call reports ErrNotFound rather than
// success: deletion is not idempotent at this level.
func (e *Engine) DeletePost(actor models.Actor, postID uuid.UUID) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.Where("id = ? AND deleted_at IS NULL", postID).First(&post).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		if err != nil {
			return err
		}
		if !models.CanModify(actor, post.AuthorID) {
			return models.ErrPermissionDenied
		}
		now := time.Now().UTC()
		return tx.Model(&post).Update("deleted_at", &now).Error
	})
}

type CreateCommentInput struct {
	PostID          uuid.UUID
	Content         string
	ParentCommentID *uuid.UUID
}

func (e *Engine) CreateComment(actor models.Actor, in CreateCommentInput) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:   in.PostID,
		AuthorID: actor.ID,
		Content:  in.Content,
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		err := tx.Select("id").
			Where("id = ? AND deleted_at IS NULL", in.PostID).
			First(&post).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		if err != nil {
			return err
		}

		if in.ParentCommentID != nil {
			var parent models.Comment
			err := tx.Select("id").
				Where("id = ? AND deleted_at IS NULL", *in.ParentCommentID).
				First(&parent).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			if err != nil {
				return err
			}
			comment.ParentCommentID = in.ParentCommentID
		}
		return tx.Create(comment).Error
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (e *Engine) DeleteComment(actor models.Actor, commentID uuid.UUID) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		err := tx.Where("id = ? AND deleted_at IS NULL", commentID).First(&comment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		if err != nil {
			return err
		}
		if !models.CanModify(actor, comment.AuthorID) {
			return models.ErrPermissionDenied
		}
		now := time.Now().UTC()
		return tx.Model(&comment).Update("deleted_at", &now).Error
	})
}

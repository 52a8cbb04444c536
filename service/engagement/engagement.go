package engagement

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pulsefeed/pulse-server/cmd/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Engine implements the idempotent upsert protocol shared by likes, shares
// and follows: insert with ON CONFLICT DO NOTHING, and when the insert loses
// to an existing row, fetch and refresh that row inside the same transaction.
// The unique index absorbs the duplicate-insert race; there is no
// check-then-act window in application code.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// LikePost records a like. Re-liking updates the reaction and timestamp on
// the existing row. The returned bool reports whether a new row was created.
func (e *Engine) LikePost(actor models.Actor, postID uuid.UUID, reaction string) (*models.Like, bool, error) {
	if reaction == "" {
		reaction = "like"
	}

	var like models.Like
	created := false

	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := requirePost(tx, postID); err != nil {
			return err
		}

		row := models.Like{UserID: actor.ID, PostID: postID, Reaction: reaction}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			like = row
			created = true
			return nil
		}

		// Lost the insert to an existing row; refresh it.
		if err := tx.Where("user_id = ? AND post_id = ?", actor.ID, postID).First(&like).Error; err != nil {
			return err
		}
		return tx.Model(&like).Updates(map[string]interface{}{
			"reaction":   reaction,
			"created_at": time.Now().UTC(),
		}).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &like, created, nil
}

// UnlikePost removes the like if present. Removing twice is safe: the second
// call reports removed=false, not an error.
func (e *Engine) UnlikePost(actor models.Actor, postID uuid.UUID) (bool, error) {
	res := e.db.Where("user_id = ? AND post_id = ?", actor.ID, postID).Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// SharePost records a share; re-sharing refreshes the timestamp.
func (e *Engine) SharePost(actor models.Actor, postID uuid.UUID) (*models.Share, bool, error) {
	var share models.Share
	created := false

	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := requirePost(tx, postID); err != nil {
			return err
		}

		row := models.Share{UserID: actor.ID, PostID: postID}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			share = row
			created = true
			return nil
		}

		if err := tx.Where("user_id = ? AND post_id = ?", actor.ID, postID).First(&share).Error; err != nil {
			return err
		}
		return tx.Model(&share).Update("created_at", time.Now().UTC()).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &share, created, nil
}

func (e *Engine) UnsharePost(actor models.Actor, postID uuid.UUID) (bool, error) {
	res := e.db.Where("user_id = ? AND post_id = ?", actor.ID, postID).Delete(&models.Share{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// FollowUser creates a follow edge. Self-follows are rejected before the
// upsert so the error is consistent even under races; the check constraint on
// the table is only a backstop. The target must exist.
func (e *Engine) FollowUser(actor models.Actor, followedID uuid.UUID) (*models.Follow, bool, error) {
	if actor.ID == followedID {
		return nil, false, models.ErrInvalidArgument
	}

	var follow models.Follow
	created := false

	err := e.db.Transaction(func(tx *gorm.DB) error {
		var target models.User
		err := tx.Select("id").Where("id = ?", followedID).First(&target).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrNotFound
		}
		if err != nil {
			return err
		}

		row := models.Follow{FollowerID: actor.ID, FollowedID: followedID}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "followed_id"}},
			DoNothing: true,
		}).Create(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			follow = row
			created = true
			return nil
		}

		// Existing edge wins; following is not timestamp-refreshed.
		return tx.Where("follower_id = ? AND followed_id = ?", actor.ID, followedID).First(&follow).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &follow, created, nil
}

func (e *Engine) UnfollowUser(actor models.Actor, followedID uuid.UUID) (bool, error) {
	res := e.db.Where("follower_id = ? AND followed_id = ?", actor.ID, followedID).Delete(&models.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func requirePost(tx *gorm.DB, postID uuid.UUID) error {
	var post models.Post
	err := tx.Select("id").Where("id = ? AND deleted_at IS NULL", postID).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	return err
}

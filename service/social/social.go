package social

import (
	"github.com/google/uuid"
	"github.com/pulsefeed/pulse-server/cmd/models"
	"gorm.io/gorm"
)

// DefaultPageSize for follower/following listings.
const DefaultPageSize = 50

// Engine answers follow-graph reads. Listings order by follow edge recency
// (follows.id descending, stable because edge IDs are monotonic); counts are
// computed live from the same table the listings read.
type Engine struct {
	db *gorm.DB
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// Followers lists users who follow userID, most recent follower first.
func (e *Engine) Followers(userID uuid.UUID, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	users := []models.User{}
	err := e.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Order("follows.id DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, err
}

// Following lists users that userID follows, most recently followed first.
func (e *Engine) Following(userID uuid.UUID, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	users := []models.User{}
	err := e.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.id DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, err
}

func (e *Engine) FollowerCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := e.db.Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&count).Error
	return count, err
}

func (e *Engine) FollowingCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := e.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a simple directed edge: unique per ordered pair, and a check
// constraint keeps self-follows out even if application code is bypassed.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uuid.UUID `gorm:"column:follower_id;type:uuid;not null;uniqueIndex:idx_follows_pair,priority:1;index;check:chk_follows_no_self,follower_id <> followed_id" json:"follower_id"`
	FollowedID uuid.UUID `gorm:"column:followed_id;type:uuid;not null;uniqueIndex:idx_follows_pair,priority:2;index" json:"followed_id"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`

	Follower *User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"follower,omitempty"`
	Followed *User `gorm:"foreignKey:FollowedID;constraint:OnDelete:CASCADE" json:"followed,omitempty"`
}

func (Follow) TableName() string {
	return "follows"
}

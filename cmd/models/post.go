package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VisibilityPublic    = "public"
	VisibilityFollowers = "followers"
	VisibilityPrivate   = "private"
)

// Post IDs are random UUIDs so they cannot be enumerated. Soft deletion is an
// explicit timestamp rather than gorm.DeletedAt: the query engines need to
// spell out their deleted-row predicates (admin access, replies-to-deleted)
// instead of relying on implicit scoping.
type Post struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID      uuid.UUID  `gorm:"column:author_id;type:uuid;not null;index:idx_posts_author_created,priority:1" json:"author_id"`
	Content       string     `gorm:"column:content;type:text;not null" json:"content"`
	Language      *string    `gorm:"column:language;size:10" json:"language,omitempty"`
	IsPrivate     bool       `gorm:"column:is_private;not null;default:false" json:"is_private"`
	Visibility    string     `gorm:"column:visibility;size:20;not null;default:public" json:"visibility"`
	CreatedAt     time.Time  `gorm:"column:created_at;index:idx_posts_created;index:idx_posts_author_created,priority:2" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt     *time.Time `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
	ReplyToPostID *uuid.UUID `gorm:"column:reply_to_post_id;type:uuid;index" json:"reply_to_post_id,omitempty"`

	// SearchIndex is the derived text-search representation of Content. It is
	// refreshed in the same transaction as any content change.
	SearchIndex string `gorm:"column:search_index;type:text" json:"-"`

	Author      *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	ReplyToPost *Post `gorm:"foreignKey:ReplyToPostID" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Post) Deleted() bool {
	return p.DeletedAt != nil
}

type Comment struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PostID          uuid.UUID  `gorm:"column:post_id;type:uuid;not null;index:idx_comments_post_created,priority:1" json:"post_id"`
	AuthorID        uuid.UUID  `gorm:"column:author_id;type:uuid;not null;index" json:"author_id"`
	Content         string     `gorm:"column:content;type:text;not null" json:"content"`
	ParentCommentID *uuid.UUID `gorm:"column:parent_comment_id;type:uuid;index" json:"parent_comment_id,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at;index:idx_comments_post_created,priority:2" json:"created_at"`
	DeletedAt       *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	Author        *User    `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Post          *Post    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	ParentComment *Comment `gorm:"foreignKey:ParentCommentID" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// SearchText normalizes content into the stored search representation:
// lowercased with runs of whitespace collapsed.
func SearchText(content string) string {
	return strings.Join(strings.Fields(strings.ToLower(content)), " ")
}

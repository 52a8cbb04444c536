package engagement

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/pulsefeed/pulse-server/cmd/models"
	"github.com/pulsefeed/pulse-server/db/dbtest"
	"github.com/pulsefeed/pulse-server/service/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createPost(t *testing.T, db *gorm.DB, author *models.User, text string) *models.Post {
	t.Helper()
	post, err := content.NewEngine(db).CreatePost(
		models.Actor{ID: author.ID},
		content.CreatePostInput{Content: text},
	)
	require.NoError(t, err)
	return post
}

func TestLikePostIdempotent(t *testing.T) {
	db := dbtest.Open(t)
	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")
	post := createPost(t, db, alice, "hello")

	engine := NewEngine(db)
	actor := models.Actor{ID: bob.ID}

	first, created, err := engine.LikePost(actor, post.ID, "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "like", first.Reaction)

	second, created, err := engine.LikePost(actor, post.ID, "love")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "love", second.Reaction)

	var count int64
	require.NoError(t, db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", bob.ID, post.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLikePostConcurrent(t *testing.T) {
	db := dbtest.Open(t)
	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")
	post := createPost(t, db, alice, "hello")

	engine := NewEngine(db)
	actor := models.Actor{ID: bob.ID}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = engine.LikePost(actor, post.ID, "like")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", bob.ID, post.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLikeDeletedPost(t *testing.T) {
	db := dbtest.Open(t)
	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")
	post := createPost(t, db, alice, "hello")

	require.NoError(t, content.NewEngine(db).DeletePost(models.Actor{ID: alice.ID}, post.ID))

	_, _, err := NewEngine(db).LikePost(models.Actor{ID: bob.ID}, post.ID, "")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUnlikeTwice(t *testing.T) {
	db := dbtest.Open(t)
	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")
	post := createPost(t, db, alice, "hello")

	engine := NewEngine(db)
	actor := models.Actor{ID: bob.ID}

	_, _, err := engine.LikePost(actor, post.ID, "")
	require.NoError(t, err)

	removed, err := engine.UnlikePost(actor, post.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = engine.UnlikePost(actor, post.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSharePostIdempotent(t *testing.T) {
	db := dbtest.Open(t)
	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")
	post := createPost(t, db, alice, "hello")

	engine := NewEngine(db)
	actor := models.Actor{ID: bob.ID}

	first, created, err := engine.SharePost(actor, post.ID)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := engine.SharePost(actor, post.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Share{}).Where("post_id = ?", post.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	removed, err := engine.UnsharePost(actor, post.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = engine.UnsharePost(actor, post.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFollowSelf(t *testing.T) {
	db := dbtest.Open(t)
	alice := dbtest.CreateUser(t, db, "alice")

	_, _, err := NewEngine(db).FollowUser(models.Actor{ID: alice.ID}, alice.ID)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestFollowIdempotent(t *testing.T) {
	db := dbtest.Open(t)
	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")

	engine := NewEngine(db)
	actor := models.Actor{ID: bob.ID}

	first, created, err := engine.FollowUser(actor, alice.ID)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := engine.FollowUser(actor, alice.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFollowMissingUser(t *testing.T) {
	db := dbtest.Open(t)
	bob := dbtest.CreateUser(t, db, "bob")

	_, _, err := NewEngine(db).FollowUser(models.Actor{ID: bob.ID}, uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUnfollowTwice(t *testing.T) {
	db := dbtest.Open(t)
	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")

	engine := NewEngine(db)
	actor := models.Actor{ID: bob.ID}

	_, _, err := engine.FollowUser(actor, alice.ID)
	require.NoError(t, err)

	removed, err := engine.UnfollowUser(actor, alice.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = engine.UnfollowUser(actor, alice.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

package social

import (
	"testing"

	"github.com/pulsefeed/pulse-server/cmd/models"
	"github.com/pulsefeed/pulse-server/db/dbtest"
	"github.com/pulsefeed/pulse-server/service/engagement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func follow(t *testing.T, db *gorm.DB, follower, followed *models.User) {
	t.Helper()
	_, _, err := engagement.NewEngine(db).FollowUser(models.Actor{ID: follower.ID}, followed.ID)
	require.NoError(t, err)
}

func TestFollowersNewestFirst(t *testing.T) {
	db := dbtest.Open(t)
	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")
	carol := dbtest.CreateUser(t, db, "carol")

	follow(t, db, bob, alice)
	follow(t, db, carol, alice)

	engine := NewEngine(db)

	followers, err := engine.Followers(alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	assert.Equal(t, carol.ID, followers[0].ID)
	assert.Equal(t, bob.ID, followers[1].ID)

	count, err := engine.FollowerCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestFollowersPagination(t *testing.T) {
	db := dbtest.Open(t)
	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")
	carol := dbtest.CreateUser(t, db, "carol")
	dave := dbtest.CreateUser(t, db, "dave")

	follow(t, db, bob, alice)
	follow(t, db, carol, alice)
	follow(t, db, dave, alice)

	engine := NewEngine(db)

	first, err := engine.Followers(alice.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, first, 2)

	rest, err := engine.Followers(alice.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)

	assert.Equal(t, dave.ID, first[0].ID)
	assert.Equal(t, carol.ID, first[1].ID)
	assert.Equal(t, bob.ID, rest[0].ID)
}

func TestFollowing(t *testing.T) {
	db := dbtest.Open(t)
	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")
	carol := dbtest.CreateUser(t, db, "carol")

	follow(t, db, alice, bob)
	follow(t, db, alice, carol)

	engine := NewEngine(db)

	following, err := engine.Following(alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, following, 2)
	assert.Equal(t, carol.ID, following[0].ID)
	assert.Equal(t, bob.ID, following[1].ID)

	count, err := engine.FollowingCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// The edge is directed: bob follows nobody.
	count, err = engine.FollowingCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	count, err = engine.FollowerCount(bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUnfollowShrinksListings(t *testing.T) {
	db := dbtest.Open(t)
	alice := dbtest.CreateUser(t, db, "alice")
	bob := dbtest.CreateUser(t, db, "bob")

	follow(t, db, bob, alice)

	removed, err := engagement.NewEngine(db).UnfollowUser(models.Actor{ID: bob.ID}, alice.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	engine := NewEngine(db)
	followers, err := engine.Followers(alice.ID, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, followers)

	count, err := engine.FollowerCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

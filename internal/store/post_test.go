package store_test

import (
	"context"
	"testing"

	"github.com/d9705996/teamconnect/internal/apperr"
	"github.com/d9705996/teamconnect/internal/model"
	"github.com/d9705996/teamconnect/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost_TagsDeduplicated(t *testing.T) {
	s, gormDB := newStore(t)
	acme := register(t, s, "acme")

	post, err := s.CreatePost(context.Background(), acme.CompanyID, store.NewPost{
		Content:  "hello",
		Type:     "status",
		AuthorID: acme.AdminID,
		Tags:     []string{"a", " a ", "", "b"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, post.Tags)
	assert.Equal(t, acme.AdminID, post.Author.ID)
	assert.Equal(t, int64(2), count[model.Tag](t, gormDB))
	assert.Equal(t, int64(2), count[model.Tag](t, gormDB, "company_id = ?", acme.CompanyID))
}

func TestCreatePost_ReusesTenantTags(t *testing.T) {
	s, gormDB := newStore(t)
	ctx := context.Background()
	acme := register(t, s, "acme")
	globex := register(t, s, "globex")

	for range 2 {
		_, err := s.CreatePost(ctx, acme.CompanyID, store.NewPost{Content: "x", AuthorID: acme.AdminID, Tags: []string{"news"}})
		require.NoError(t, err)
	}
	_, err := s.CreatePost(ctx, globex.CompanyID, store.NewPost{Content: "y", AuthorID: globex.AdminID, Tags: []string{"news"}})
	require.NoError(t, err)

	assert.Equal(t, int64(1), count[model.Tag](t, gormDB, "company_id = ?", acme.CompanyID))
	assert.Equal(t, int64(1), count[model.Tag](t, gormDB, "company_id = ?", globex.CompanyID))
}

func TestCreatePost_AuthorOfOtherTenant(t *testing.T) {
	s, gormDB := newStore(t)
	acme := register(t, s, "acme")
	globex := register(t, s, "globex")

	_, err := s.CreatePost(context.Background(), acme.CompanyID, store.NewPost{
		Content:  "sneaky",
		AuthorID: globex.AdminID,
		Tags:     []string{"t"},
	})
	require.ErrorIs(t, err, apperr.ErrAuthorNotInTenant)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Equal(t, int64(0), count[model.Post](t, gormDB))
	assert.Equal(t, int64(0), count[model.Tag](t, gormDB))
}

func TestCreatePost_EmptyContent(t *testing.T) {
	s, _ := newStore(t)
	acme := register(t, s, "acme")

	_, err := s.CreatePost(context.Background(), acme.CompanyID, store.NewPost{Content: "  ", AuthorID: acme.AdminID})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestListPosts_TenantOnlyNewestFirst(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	acme := register(t, s, "acme")
	globex := register(t, s, "globex")

	first, err := s.CreatePost(ctx, acme.CompanyID, store.NewPost{Content: "first", AuthorID: acme.AdminID})
	require.NoError(t, err)
	_, err = s.CreatePost(ctx, globex.CompanyID, store.NewPost{Content: "other", AuthorID: globex.AdminID})
	require.NoError(t, err)
	second, err := s.CreatePost(ctx, acme.CompanyID, store.NewPost{Content: "second", AuthorID: acme.AdminID, Tags: []string{"z", "a"}})
	require.NoError(t, err)

	_, err = s.ToggleLike(ctx, acme.CompanyID, second.ID, acme.AdminID)
	require.NoError(t, err)
	_, err = s.CreateComment(ctx, acme.CompanyID, second.ID, acme.AdminID, "nice")
	require.NoError(t, err)

	posts, err := s.ListPosts(ctx, acme.CompanyID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second.ID, posts[0].ID)
	assert.Equal(t, first.ID, posts[1].ID)

	assert.Equal(t, []string{"a", "z"}, posts[0].Tags)
	assert.Equal(t, int64(1), posts[0].LikeCount)
	assert.Equal(t, int64(1), posts[0].CommentCount)
	assert.Equal(t, "Admin acme", posts[0].Author.Name)
	assert.Equal(t, int64(0), posts[1].LikeCount)
	assert.Empty(t, posts[1].Tags)
}

func TestToggleLike_Twice(t *testing.T) {
	s, gormDB := newStore(t)
	ctx := context.Background()
	acme := register(t, s, "acme")
	post, err := s.CreatePost(ctx, acme.CompanyID, store.NewPost{Content: "like me", AuthorID: acme.AdminID})
	require.NoError(t, err)

	liked, err := s.ToggleLike(ctx, acme.CompanyID, post.ID, acme.AdminID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), count[model.PostLike](t, gormDB))

	liked, err = s.ToggleLike(ctx, acme.CompanyID, post.ID, acme.AdminID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, int64(0), count[model.PostLike](t, gormDB))
}

func TestToggleLike_TenantChecks(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	acme := register(t, s, "acme")
	globex := register(t, s, "globex")
	post, err := s.CreatePost(ctx, acme.CompanyID, store.NewPost{Content: "p", AuthorID: acme.AdminID})
	require.NoError(t, err)

	_, err = s.ToggleLike(ctx, globex.CompanyID, post.ID, globex.AdminID)
	require.ErrorIs(t, err, apperr.ErrPostNotFound)

	_, err = s.ToggleLike(ctx, acme.CompanyID, post.ID, globex.AdminID)
	require.ErrorIs(t, err, apperr.ErrUserNotInTenant)
}

func TestComments(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	acme := register(t, s, "acme")
	globex := register(t, s, "globex")
	post, err := s.CreatePost(ctx, acme.CompanyID, store.NewPost{Content: "p", AuthorID: acme.AdminID})
	require.NoError(t, err)

	c1, err := s.CreateComment(ctx, acme.CompanyID, post.ID, acme.AdminID, "one")
	require.NoError(t, err)
	c2, err := s.CreateComment(ctx, acme.CompanyID, post.ID, acme.AdminID, "two")
	require.NoError(t, err)
	assert.Equal(t, "AA", c1.Author.AvatarInitials)

	comments, err := s.ListComments(ctx, acme.CompanyID, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, c1.ID, comments[0].ID)
	assert.Equal(t, c2.ID, comments[1].ID)

	_, err = s.ListComments(ctx, globex.CompanyID, post.ID)
	require.ErrorIs(t, err, apperr.ErrPostNotFound)

	_, err = s.CreateComment(ctx, globex.CompanyID, post.ID, globex.AdminID, "x")
	require.ErrorIs(t, err, apperr.ErrPostNotFound)

	_, err = s.CreateComment(ctx, acme.CompanyID, post.ID, globex.AdminID, "x")
	require.ErrorIs(t, err, apperr.ErrAuthorNotInTenant)

	_, err = s.CreateComment(ctx, acme.CompanyID, post.ID, acme.AdminID, "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

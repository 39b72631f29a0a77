package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/devconnect-api/internal/domain/entity"
)

type postFixture struct {
	users  *fakeUserRepo
	posts  *fakePostRepo
	svc    *PostService
	author string
	other  string
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	users := newFakeUserRepo()
	posts := newFakePostRepo()

	author := &entity.User{Name: "Ada", Email: "ada@example.com", Password: "hash", AvatarURL: "https://gravatar.com/avatar/a"}
	other := &entity.User{Name: "Grace", Email: "grace@example.com", Password: "hash"}
	require.NoError(t, users.Create(context.Background(), author))
	require.NoError(t, users.Create(context.Background(), other))

	return &postFixture{
		users:  users,
		posts:  posts,
		svc:    NewPostService(posts, users, nil),
		author: author.ID,
		other:  other.ID,
	}
}

func TestCreatePostSnapshotsAuthor(t *testing.T) {
	f := newPostFixture(t)

	p, err := f.svc.Create(context.Background(), f.author, "first post")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, "https://gravatar.com/avatar/a", p.AvatarURL)
	assert.NotNil(t, p.Likes)
	assert.NotNil(t, p.Comments)
}

func TestCreatePostRejectsEmptyText(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.Create(context.Background(), f.author, "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListNewestFirst(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.Create(context.Background(), f.author, "older")
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), f.author, "newer")
	require.NoError(t, err)

	out, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "newer", out[0].Text)
	assert.Equal(t, "older", out[1].Text)
}

func TestGetUnknownPost(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePostOwnership(t *testing.T) {
	f := newPostFixture(t)
	p, err := f.svc.Create(context.Background(), f.author, "mine")
	require.NoError(t, err)

	err = f.svc.Delete(context.Background(), p.ID, f.other)
	assert.ErrorIs(t, err, ErrForbidden)

	still, err := f.svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", still.Text)

	require.NoError(t, f.svc.Delete(context.Background(), p.ID, f.author))
	_, err = f.svc.Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestLikeAndUnlike(t *testing.T) {
	f := newPostFixture(t)
	p, err := f.svc.Create(context.Background(), f.author, "likeable")
	require.NoError(t, err)

	likes, err := f.svc.Like(context.Background(), p.ID, f.other)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, f.other, likes[0].UserID)

	_, err = f.svc.Like(context.Background(), p.ID, f.other)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	stored, err := f.svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Likes, 1)

	likes, err = f.svc.Unlike(context.Background(), p.ID, f.other)
	require.NoError(t, err)
	assert.Empty(t, likes)

	_, err = f.svc.Unlike(context.Background(), p.ID, f.other)
	assert.ErrorIs(t, err, ErrNotLiked)
}

func TestLikesAreNewestFirst(t *testing.T) {
	f := newPostFixture(t)
	p, err := f.svc.Create(context.Background(), f.author, "popular")
	require.NoError(t, err)

	_, err = f.svc.Like(context.Background(), p.ID, f.author)
	require.NoError(t, err)
	likes, err := f.svc.Like(context.Background(), p.ID, f.other)
	require.NoError(t, err)

	require.Len(t, likes, 2)
	assert.Equal(t, f.other, likes[0].UserID)
	assert.Equal(t, f.author, likes[1].UserID)
}

func TestCommentsLifecycle(t *testing.T) {
	f := newPostFixture(t)
	p, err := f.svc.Create(context.Background(), f.author, "discuss")
	require.NoError(t, err)

	comments, err := f.svc.AddComment(context.Background(), p.ID, f.other, "nice one")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "Grace", comments[0].Name)
	assert.NotEmpty(t, comments[0].ID)

	comments, err = f.svc.AddComment(context.Background(), p.ID, f.author, "thanks")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "thanks", comments[0].Text)

	// Only the comment's author may remove it.
	_, err = f.svc.DeleteComment(context.Background(), p.ID, comments[1].ID, f.author)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.DeleteComment(context.Background(), p.ID, "missing", f.other)
	assert.ErrorIs(t, err, ErrCommentNotFound)

	comments, err = f.svc.DeleteComment(context.Background(), p.ID, comments[1].ID, f.other)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "thanks", comments[0].Text)
}

func TestAddCommentRejectsEmptyText(t *testing.T) {
	f := newPostFixture(t)
	p, err := f.svc.Create(context.Background(), f.author, "discuss")
	require.NoError(t, err)

	_, err = f.svc.AddComment(context.Background(), p.ID, f.other, " ")
	assert.ErrorIs(t, err, ErrValidation)
}

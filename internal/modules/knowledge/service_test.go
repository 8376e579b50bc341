package knowledge

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"courseportal/internal/database"
	"courseportal/internal/domain"
	"courseportal/internal/repository"
)

func newService(t *testing.T) (*Service, *gorm.DB, *domain.User) {
	t.Helper()

	db, err := database.Connect("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := NewService(repository.NewKnowledgeRepository(db), repository.NewUserRepository(db))

	author := &domain.User{Email: "author@ur.ac.rw", Name: "Author", Role: domain.RoleStudent, IsActive: true}
	require.NoError(t, db.Create(author).Error)
	return svc, db, author
}

func questionRequest() CreatePostRequest {
	return CreatePostRequest{
		Title:    "How does recursion terminate?",
		Content:  "I keep getting stack overflows.",
		PostType: "question",
	}
}

func TestCreatePostValidatesType(t *testing.T) {
	svc, _, author := newService(t)
	ctx := context.Background()

	p, err := svc.CreatePost(ctx, author.ID, questionRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.PostTypeQuestion, p.PostType)

	bad := questionRequest()
	bad.PostType = "rant"
	_, err = svc.CreatePost(ctx, author.ID, bad)
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestGetPostCountsView(t *testing.T) {
	svc, _, author := newService(t)
	ctx := context.Background()

	p, err := svc.CreatePost(ctx, author.ID, questionRequest())
	require.NoError(t, err)

	view, _, err := svc.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.Views)
	assert.Equal(t, "Author", view.AuthorName)

	view, _, err = svc.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), view.Views)
}

func TestAnonymousPostHidesAuthor(t *testing.T) {
	svc, _, author := newService(t)
	ctx := context.Background()

	req := questionRequest()
	req.IsAnonymous = true
	p, err := svc.CreatePost(ctx, author.ID, req)
	require.NoError(t, err)

	view, _, err := svc.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), view.AuthorID)
	assert.Equal(t, "Anonymous", view.AuthorName)
}

func TestLikePostOncePerUser(t *testing.T) {
	svc, db, author := newService(t)
	ctx := context.Background()

	p, err := svc.CreatePost(ctx, author.ID, questionRequest())
	require.NoError(t, err)

	liker := &domain.User{Email: "liker@ur.ac.rw", Role: domain.RoleStudent, IsActive: true}
	require.NoError(t, db.Create(liker).Error)

	require.NoError(t, svc.LikePost(ctx, p.ID, liker.ID))
	assert.ErrorIs(t, svc.LikePost(ctx, p.ID, liker.ID), ErrAlreadyLiked)

	var reloaded domain.KnowledgePost
	require.NoError(t, db.First(&reloaded, p.ID).Error)
	assert.Equal(t, int64(1), reloaded.Likes)
}

func TestLikeUnknownPost(t *testing.T) {
	svc, _, author := newService(t)

	assert.ErrorIs(t, svc.LikePost(context.Background(), 9999, author.ID), ErrPostNotFound)
}

func TestAnswerAndVerify(t *testing.T) {
	svc, db, author := newService(t)
	ctx := context.Background()

	p, err := svc.CreatePost(ctx, author.ID, questionRequest())
	require.NoError(t, err)

	responder := &domain.User{Email: "responder@ur.ac.rw", Role: domain.RoleStudent, IsActive: true}
	require.NoError(t, db.Create(responder).Error)

	a, err := svc.CreateAnswer(ctx, p.ID, responder.ID, "Base case first.")
	require.NoError(t, err)
	assert.False(t, a.IsVerified)

	// A random student cannot verify someone else's answer.
	err = svc.VerifyAnswer(ctx, responder.ID, "student", a.ID)
	assert.ErrorIs(t, err, ErrNotPermitted)

	// The question's author can.
	require.NoError(t, svc.VerifyAnswer(ctx, author.ID, "student", a.ID))

	var reloaded domain.KnowledgeAnswer
	require.NoError(t, db.First(&reloaded, a.ID).Error)
	assert.True(t, reloaded.IsVerified)
}

func TestVerifyAnswerAsInstructor(t *testing.T) {
	svc, _, author := newService(t)
	ctx := context.Background()

	p, err := svc.CreatePost(ctx, author.ID, questionRequest())
	require.NoError(t, err)
	a, err := svc.CreateAnswer(ctx, p.ID, author.ID, "Self answer.")
	require.NoError(t, err)

	assert.NoError(t, svc.VerifyAnswer(ctx, 0, "instructor", a.ID))
}

func TestListPostsFilter(t *testing.T) {
	svc, _, author := newService(t)
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, author.ID, questionRequest())
	require.NoError(t, err)

	resource := questionRequest()
	resource.Title = "Lecture notes archive"
	resource.PostType = "resource"
	_, err = svc.CreatePost(ctx, author.ID, resource)
	require.NoError(t, err)

	posts, total, err := svc.ListPosts(ctx, ListPostsQuery{PostType: "resource"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, domain.PostTypeResource, posts[0].PostType)
}

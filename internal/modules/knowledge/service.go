package knowledge

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"courseportal/internal/domain"
	"courseportal/internal/repository"
)

type Service struct {
	posts *repository.KnowledgeRepository
	users *repository.UserRepository
}

func NewService(posts *repository.KnowledgeRepository, users *repository.UserRepository) *Service {
	return &Service{posts: posts, users: users}
}

func (s *Service) CreatePost(ctx context.Context, authorID int64, req CreatePostRequest) (*domain.KnowledgePost, error) {
	postType, ok := domain.ParsePostType(req.PostType)
	if !ok {
		return nil, ErrInvalidType
	}
	p := &domain.KnowledgePost{
		AuthorID:    authorID,
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		PostType:    postType,
		CollegeCode: strings.ToUpper(strings.TrimSpace(req.CollegeCode)),
		ModuleCode:  strings.ToUpper(strings.TrimSpace(req.ModuleCode)),
		Tags:        req.Tags,
		IsAnonymous: req.IsAnonymous,
	}
	if err := s.posts.CreatePost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPosts(ctx context.Context, q ListPostsQuery) ([]PostView, int64, error) {
	list, total, err := s.posts.ListPosts(ctx, repository.PostFilter{
		PostType:    q.PostType,
		CollegeCode: q.CollegeCode,
		Search:      q.Search,
		Page:        q.Page,
		Limit:       q.Limit,
	})
	if err != nil {
		return nil, 0, err
	}

	views := make([]PostView, 0, len(list))
	for _, p := range list {
		views = append(views, NewPostView(p, s.authorName(ctx, p)))
	}
	return views, total, nil
}

// GetPost loads a post and counts the view.
func (s *Service) GetPost(ctx context.Context, id int64) (*PostView, []domain.KnowledgeAnswer, error) {
	p, err := s.posts.GetPost(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrPostNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if err := s.posts.IncrementViews(ctx, p.ID); err != nil {
		return nil, nil, err
	}
	p.Views++

	answers, err := s.posts.ListAnswers(ctx, p.ID)
	if err != nil {
		return nil, nil, err
	}
	view := NewPostView(*p, s.authorName(ctx, *p))
	return &view, answers, nil
}

// LikePost records one like per user per post.
func (s *Service) LikePost(ctx context.Context, postID, userID int64) error {
	if _, err := s.posts.GetPost(ctx, postID); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPostNotFound
	} else if err != nil {
		return err
	}
	if err := s.posts.LikePost(ctx, postID, userID); err != nil {
		if errors.Is(err, repository.ErrAlreadyLiked) {
			return ErrAlreadyLiked
		}
		return err
	}
	return nil
}

func (s *Service) CreateAnswer(ctx context.Context, postID, authorID int64, content string) (*domain.KnowledgeAnswer, error) {
	if _, err := s.posts.GetPost(ctx, postID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	} else if err != nil {
		return nil, err
	}
	a := &domain.KnowledgeAnswer{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.posts.CreateAnswer(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// VerifyAnswer marks an answer as verified. Staff only; the post author may
// also verify answers on their own question.
func (s *Service) VerifyAnswer(ctx context.Context, userID int64, role string, answerID int64) error {
	a, err := s.posts.GetAnswer(ctx, answerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrAnswerNotFound
	}
	if err != nil {
		return err
	}

	if role != string(domain.RoleAdmin) && role != string(domain.RoleInstructor) {
		p, err := s.posts.GetPost(ctx, a.PostID)
		if err != nil {
			return err
		}
		if p.AuthorID != userID {
			return ErrNotPermitted
		}
	}
	return s.posts.SetAnswerVerified(ctx, answerID, true)
}

func (s *Service) authorName(ctx context.Context, p domain.KnowledgePost) string {
	if p.IsAnonymous {
		return ""
	}
	u, err := s.users.GetByID(ctx, p.AuthorID)
	if err != nil {
		return ""
	}
	return u.Name
}

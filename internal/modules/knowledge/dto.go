package knowledge

import "courseportal/internal/domain"

type CreatePostRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Content     string `json:"content" binding:"required"`
	PostType    string `json:"post_type" binding:"required"`
	CollegeCode string `json:"college_code"`
	ModuleCode  string `json:"module_code"`
	Tags        string `json:"tags"`
	IsAnonymous bool   `json:"is_anonymous"`
}

type CreateAnswerRequest struct {
	Content string `json:"content" binding:"required"`
}

type ListPostsQuery struct {
	PostType    string `form:"post_type"`
	CollegeCode string `form:"college_code"`
	Search      string `form:"search"`
	Page        int    `form:"page"`
	Limit       int    `form:"limit"`
}

// PostView hides the author of anonymous posts from responses while the
// server keeps real ownership for moderation.
type PostView struct {
	domain.KnowledgePost
	AuthorName string `json:"author_name,omitempty"`
}

func NewPostView(p domain.KnowledgePost, authorName string) PostView {
	v := PostView{KnowledgePost: p, AuthorName: authorName}
	if p.IsAnonymous {
		v.AuthorID = 0
		v.AuthorName = "Anonymous"
	}
	return v
}

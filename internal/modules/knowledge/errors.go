package knowledge

import "errors"

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrAnswerNotFound = errors.New("answer not found")
	ErrAlreadyLiked   = errors.New("post already liked")
	ErrInvalidType    = errors.New("invalid post type")
	ErrNotPermitted   = errors.New("not permitted")
)

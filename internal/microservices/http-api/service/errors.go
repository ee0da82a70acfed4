package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto HTTP
// status codes; anything not listed here is treated as an internal error.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrPostNotFound        = errors.New("post not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrReplyNotFound       = errors.New("reply not found")
	ErrDiseaseInfoNotFound = errors.New("disease information not found")

	ErrForbidden      = errors.New("you do not have permission to perform this action")
	ErrParentMismatch = errors.New("parent comment does not belong to this post")

	ErrNoImage          = errors.New("no image provided")
	ErrInvalidImageType = errors.New("only JPEG and PNG images are allowed")
	ErrImageTooLarge    = errors.New("image size should be less than 10MB")

	ErrNoDetection = errors.New("no detection")
	ErrNotALeaf    = errors.New("the uploaded image does not appear to contain a leaf")
	ErrUpstream    = errors.New("upstream classification error")
)

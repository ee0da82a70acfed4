package service

import (
	"errors"
	"sort"

	"agriconnect/internal/microservices/http-api/dto"
	"agriconnect/internal/microservices/http-api/models"
	"agriconnect/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

// CommentService covers comments, both reply mechanisms, and their likes.
// An empty viewerID means the request is anonymous; is_liked is then
// always false.
type CommentService interface {
	CreateComment(userID string, postID int64, req *dto.CreateCommentDTO) (*dto.CommentResponse, error)
	GetComment(commentID int64, viewerID string) (*dto.CommentResponse, error)
	UpdateComment(userID string, commentID int64, content string) (*dto.CommentResponse, error)
	DeleteComment(userID string, commentID int64) error
	ListByPost(postID int64, viewerID string) ([]dto.CommentResponse, error)
	ToggleCommentLike(userID string, commentID int64) (bool, error)
	CreateReply(userID string, commentID int64, content string) (*dto.ReplyResponse, error)
	ToggleReplyLike(userID string, replyID int64) (bool, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	replyRepo   repository.ReplyRepository
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
	userRepo    repository.UserRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	replyRepo repository.ReplyRepository,
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	userRepo repository.UserRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		replyRepo:   replyRepo,
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		userRepo:    userRepo,
	}
}

// CreateComment creates a top-level comment, or a nested one when
// req.Parent is set. The parent must exist and belong to the same post.
func (s *commentService) CreateComment(userID string, postID int64, req *dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if req.Parent != nil {
		parent, err := s.commentRepo.GetByID(*req.Parent)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCommentNotFound
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, ErrParentMismatch
		}
	}

	comment := &models.Comment{
		UserID:   userID,
		PostID:   postID,
		Content:  req.Content,
		ParentID: req.Parent,
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	created, err := s.commentRepo.GetByID(comment.ID)
	if err != nil {
		return nil, err
	}

	return s.buildCommentResponse(created, userID)
}

func (s *commentService) GetComment(commentID int64, viewerID string) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return s.buildCommentResponse(comment, viewerID)
}

func (s *commentService) UpdateComment(userID string, commentID int64, content string) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if comment.UserID != userID {
		return nil, ErrForbidden
	}

	comment.Content = content
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}

	return s.buildCommentResponse(comment, userID)
}

// DeleteComment removes a comment; nested comments, replies and likes
// cascade at the database level.
func (s *commentService) DeleteComment(userID string, commentID int64) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.UserID != userID {
		return ErrForbidden
	}

	return s.commentRepo.Delete(commentID)
}

func (s *commentService) ListByPost(postID int64, viewerID string) ([]dto.CommentResponse, error) {
	comments, err := s.commentRepo.GetTopLevelByPost(postID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp, err := s.buildCommentResponse(&comments[i], viewerID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}

	return responses, nil
}

// ToggleCommentLike flips the viewer's like on a comment and reports the
// resulting state. A duplicate-key error on insert means a concurrent
// request won the race, which still leaves the comment liked.
func (s *commentService) ToggleCommentLike(userID string, commentID int64) (bool, error) {
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrCommentNotFound
		}
		return false, err
	}

	existing, err := s.likeRepo.GetByUserAndComment(userID, commentID)
	if err == nil {
		if err := s.likeRepo.Delete(existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	like := &models.Like{UserID: userID, CommentID: &commentID}
	if err := s.likeRepo.Create(like); err != nil {
		if repository.IsDuplicateKey(err) {
			return true, nil
		}
		return false, err
	}

	return true, nil
}

// CreateReply creates a standalone reply attached directly to a comment.
func (s *commentService) CreateReply(userID string, commentID int64, content string) (*dto.ReplyResponse, error) {
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	reply := &models.Reply{
		CommentID: commentID,
		UserID:    userID,
		Content:   content,
	}

	if err := s.replyRepo.Create(reply); err != nil {
		return nil, err
	}

	created, err := s.replyRepo.GetByID(reply.ID)
	if err != nil {
		return nil, err
	}

	resp, err := s.replyToResponse(created, userID)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *commentService) ToggleReplyLike(userID string, replyID int64) (bool, error) {
	if _, err := s.replyRepo.GetByID(replyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrReplyNotFound
		}
		return false, err
	}

	existing, err := s.likeRepo.GetReplyLike(userID, replyID)
	if err == nil {
		if err := s.likeRepo.DeleteReplyLike(existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	like := &models.ReplyLike{UserID: userID, ReplyID: replyID}
	if err := s.likeRepo.CreateReplyLike(like); err != nil {
		if repository.IsDuplicateKey(err) {
			return true, nil
		}
		return false, err
	}

	return true, nil
}

// buildCommentResponse assembles a comment with its like state and a
// merged reply list. Nested comments and standalone replies render to the
// same shape and interleave newest-first.
func (s *commentService) buildCommentResponse(comment *models.Comment, viewerID string) (*dto.CommentResponse, error) {
	likesCount, err := s.likeRepo.CountByComment(comment.ID)
	if err != nil {
		return nil, err
	}

	isLiked := false
	if viewerID != "" {
		isLiked, err = s.likeRepo.ExistsByUserAndComment(viewerID, comment.ID)
		if err != nil {
			return nil, err
		}
	}

	replies, err := s.collectReplies(comment.ID, viewerID)
	if err != nil {
		return nil, err
	}

	return &dto.CommentResponse{
		ID:         comment.ID,
		User:       dto.FromModelToUserResponse(&comment.User),
		Content:    comment.Content,
		CreatedAt:  comment.CreatedAt,
		Parent:     comment.ParentID,
		Replies:    replies,
		LikesCount: likesCount,
		IsLiked:    isLiked,
	}, nil
}

func (s *commentService) collectReplies(commentID int64, viewerID string) ([]dto.ReplyResponse, error) {
	children, err := s.commentRepo.GetChildren(commentID)
	if err != nil {
		return nil, err
	}

	standalone, err := s.replyRepo.GetByComment(commentID)
	if err != nil {
		return nil, err
	}

	replies := make([]dto.ReplyResponse, 0, len(children)+len(standalone))

	for i := range children {
		child := &children[i]

		likesCount, err := s.likeRepo.CountByComment(child.ID)
		if err != nil {
			return nil, err
		}
		isLiked := false
		if viewerID != "" {
			isLiked, err = s.likeRepo.ExistsByUserAndComment(viewerID, child.ID)
			if err != nil {
				return nil, err
			}
		}

		replies = append(replies, dto.ReplyResponse{
			ID:         child.ID,
			User:       dto.FromModelToUserResponse(&child.User),
			Content:    child.Content,
			CreatedAt:  child.CreatedAt,
			LikesCount: likesCount,
			IsLiked:    isLiked,
		})
	}

	for i := range standalone {
		resp, err := s.replyToResponse(&standalone[i], viewerID)
		if err != nil {
			return nil, err
		}
		replies = append(replies, resp)
	}

	sort.SliceStable(replies, func(i, j int) bool {
		return replies[i].CreatedAt.After(replies[j].CreatedAt)
	})

	return replies, nil
}

func (s *commentService) replyToResponse(reply *models.Reply, viewerID string) (dto.ReplyResponse, error) {
	likesCount, err := s.likeRepo.CountByReply(reply.ID)
	if err != nil {
		return dto.ReplyResponse{}, err
	}

	isLiked := false
	if viewerID != "" {
		isLiked, err = s.likeRepo.ExistsByUserAndReply(viewerID, reply.ID)
		if err != nil {
			return dto.ReplyResponse{}, err
		}
	}

	return dto.ReplyResponse{
		ID:         reply.ID,
		User:       dto.FromModelToUserResponse(&reply.User),
		Content:    reply.Content,
		CreatedAt:  reply.CreatedAt,
		LikesCount: likesCount,
		IsLiked:    isLiked,
	}, nil
}

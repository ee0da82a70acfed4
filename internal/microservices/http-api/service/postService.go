package service

import (
	"errors"

	"agriconnect/internal/media"
	"agriconnect/internal/microservices/http-api/dto"
	"agriconnect/internal/microservices/http-api/models"
	"agriconnect/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

// PostService covers the community feed: posts, post likes, and typed
// reactions. An empty viewerID means the request is anonymous.
type PostService interface {
	CreatePost(userID, caption string, image *ImageUpload) (*dto.PostResponse, error)
	GetPost(postID int64, viewerID string) (*dto.PostResponse, error)
	ListPosts(page, pageSize int, viewerID string) (*dto.PaginatedPostResponse, error)
	UpdatePost(userID string, postID int64, caption string) (*dto.PostResponse, error)
	DeletePost(userID string, postID int64) error
	TogglePostLike(userID string, postID int64) (bool, error)
	SetReaction(userID string, postID int64, reactionType string) (*dto.ReactionResponse, error)
}

type postService struct {
	postRepo     repository.PostRepository
	likeRepo     repository.LikeRepository
	reactionRepo repository.ReactionRepository
	userRepo     repository.UserRepository
	commentSvc   CommentService
	store        MediaStore
}

func NewPostService(
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	reactionRepo repository.ReactionRepository,
	userRepo repository.UserRepository,
	commentSvc CommentService,
	store MediaStore,
) PostService {
	return &postService{
		postRepo:     postRepo,
		likeRepo:     likeRepo,
		reactionRepo: reactionRepo,
		userRepo:     userRepo,
		commentSvc:   commentSvc,
		store:        store,
	}
}

func (s *postService) CreatePost(userID, caption string, image *ImageUpload) (*dto.PostResponse, error) {
	post := &models.Post{
		UserID:  userID,
		Caption: caption,
	}

	if image != nil {
		path, err := s.store.Save("community_posts", media.ExtForContentType(image.ContentType), image.Data)
		if err != nil {
			return nil, err
		}
		post.Image = &path
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	created, err := s.postRepo.GetByID(post.ID)
	if err != nil {
		return nil, err
	}

	return s.buildPostResponse(created, userID)
}

func (s *postService) GetPost(postID int64, viewerID string) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return s.buildPostResponse(post, viewerID)
}

func (s *postService) ListPosts(page, pageSize int, viewerID string) (*dto.PaginatedPostResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	posts, total, err := s.postRepo.List(page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		resp, err := s.buildPostResponse(&posts[i], viewerID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}

	return dto.NewPaginatedPostResponse(responses, int(total), page, pageSize), nil
}

func (s *postService) UpdatePost(userID string, postID int64, caption string) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if post.UserID != userID {
		return nil, ErrForbidden
	}

	post.Caption = caption
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}

	return s.buildPostResponse(post, userID)
}

// DeletePost removes a post; comments, likes and reactions cascade at the
// database level.
func (s *postService) DeletePost(userID string, postID int64) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if post.UserID != userID {
		return ErrForbidden
	}

	return s.postRepo.Delete(postID)
}

// TogglePostLike flips the viewer's like on a post and reports the
// resulting state. A duplicate-key error on insert means a concurrent
// request won the race, which still leaves the post liked.
func (s *postService) TogglePostLike(userID string, postID int64) (bool, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrPostNotFound
		}
		return false, err
	}

	existing, err := s.likeRepo.GetByUserAndPost(userID, postID)
	if err == nil {
		if err := s.likeRepo.Delete(existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	like := &models.Like{UserID: userID, PostID: &postID}
	if err := s.likeRepo.Create(like); err != nil {
		if repository.IsDuplicateKey(err) {
			return true, nil
		}
		return false, err
	}

	return true, nil
}

// SetReaction sets the viewer's reaction on a post. A user holds at most
// one reaction per post: a differing type replaces the current one, the
// same type is a no-op. The (user, post) unique index resolves concurrent
// first reactions to a single row.
func (s *postService) SetReaction(userID string, postID int64, reactionType string) (*dto.ReactionResponse, error) {
	if !models.IsValidReactionType(reactionType) {
		return nil, errors.New("invalid reaction type")
	}

	if _, err := s.postRepo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	reaction, err := s.reactionRepo.GetByUserAndPost(userID, postID)
	switch {
	case err == nil:
		if reaction.ReactionType != reactionType {
			reaction.ReactionType = reactionType
			if err := s.reactionRepo.Update(reaction); err != nil {
				return nil, err
			}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		reaction = &models.Reaction{
			UserID:       userID,
			PostID:       postID,
			ReactionType: reactionType,
		}
		if err := s.reactionRepo.Create(reaction); err != nil {
			if !repository.IsDuplicateKey(err) {
				return nil, err
			}
			// Lost the race to a concurrent insert; update that row instead.
			reaction, err = s.reactionRepo.GetByUserAndPost(userID, postID)
			if err != nil {
				return nil, err
			}
			if reaction.ReactionType != reactionType {
				reaction.ReactionType = reactionType
				if err := s.reactionRepo.Update(reaction); err != nil {
					return nil, err
				}
			}
		}
	default:
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	reaction.User = *user

	resp := dto.FromModelToReactionResponse(reaction)
	return &resp, nil
}

func (s *postService) buildPostResponse(post *models.Post, viewerID string) (*dto.PostResponse, error) {
	comments, err := s.commentSvc.ListByPost(post.ID, viewerID)
	if err != nil {
		return nil, err
	}

	likeCount, err := s.likeRepo.CountByPost(post.ID)
	if err != nil {
		return nil, err
	}

	isLiked := false
	if viewerID != "" {
		isLiked, err = s.likeRepo.ExistsByUserAndPost(viewerID, post.ID)
		if err != nil {
			return nil, err
		}
	}

	reactions, err := s.reactionRepo.GetByPost(post.ID)
	if err != nil {
		return nil, err
	}
	reactionResponses := make([]dto.ReactionResponse, 0, len(reactions))
	for i := range reactions {
		reactionResponses = append(reactionResponses, dto.FromModelToReactionResponse(&reactions[i]))
	}

	commentCount, err := s.postRepo.CountComments(post.ID)
	if err != nil {
		return nil, err
	}

	return &dto.PostResponse{
		ID:           post.ID,
		User:         dto.FromModelToUserResponse(&post.User),
		Caption:      post.Caption,
		Image:        post.Image,
		CreatedAt:    post.CreatedAt,
		Comments:     comments,
		IsLiked:      isLiked,
		LikeCount:    likeCount,
		Reactions:    reactionResponses,
		CommentCount: commentCount,
	}, nil
}

package service

import (
	"testing"

	"agriconnect/internal/microservices/http-api/dto"
	"agriconnect/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockPostRepository mocks the post store
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(post *models.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(postID int64) error {
	args := m.Called(postID)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(postID int64) (*models.Post, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(page, pageSize int) ([]models.Post, int64, error) {
	args := m.Called(page, pageSize)
	return args.Get(0).([]models.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) CountComments(postID int64) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

// MockLikeRepository mocks the like store
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Create(like *models.Like) error {
	args := m.Called(like)
	return args.Error(0)
}

func (m *MockLikeRepository) Delete(likeID int64) error {
	args := m.Called(likeID)
	return args.Error(0)
}

func (m *MockLikeRepository) GetByUserAndPost(userID string, postID int64) (*models.Like, error) {
	args := m.Called(userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Like), args.Error(1)
}

func (m *MockLikeRepository) GetByUserAndComment(userID string, commentID int64) (*models.Like, error) {
	args := m.Called(userID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Like), args.Error(1)
}

func (m *MockLikeRepository) CountByPost(postID int64) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) CountByComment(commentID int64) (int64, error) {
	args := m.Called(commentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) ExistsByUserAndPost(userID string, postID int64) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) ExistsByUserAndComment(userID string, commentID int64) (bool, error) {
	args := m.Called(userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) CreateReplyLike(like *models.ReplyLike) error {
	args := m.Called(like)
	return args.Error(0)
}

func (m *MockLikeRepository) DeleteReplyLike(likeID int64) error {
	args := m.Called(likeID)
	return args.Error(0)
}

func (m *MockLikeRepository) GetReplyLike(userID string, replyID int64) (*models.ReplyLike, error) {
	args := m.Called(userID, replyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReplyLike), args.Error(1)
}

func (m *MockLikeRepository) CountByReply(replyID int64) (int64, error) {
	args := m.Called(replyID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) ExistsByUserAndReply(userID string, replyID int64) (bool, error) {
	args := m.Called(userID, replyID)
	return args.Bool(0), args.Error(1)
}

// MockReactionRepository mocks the reaction store
type MockReactionRepository struct {
	mock.Mock
}

func (m *MockReactionRepository) Create(reaction *models.Reaction) error {
	args := m.Called(reaction)
	return args.Error(0)
}

func (m *MockReactionRepository) Update(reaction *models.Reaction) error {
	args := m.Called(reaction)
	return args.Error(0)
}

func (m *MockReactionRepository) Delete(userID string, postID int64) error {
	args := m.Called(userID, postID)
	return args.Error(0)
}

func (m *MockReactionRepository) GetByUserAndPost(userID string, postID int64) (*models.Reaction, error) {
	args := m.Called(userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reaction), args.Error(1)
}

func (m *MockReactionRepository) GetByPost(postID int64) ([]models.Reaction, error) {
	args := m.Called(postID)
	return args.Get(0).([]models.Reaction), args.Error(1)
}

func (m *MockReactionRepository) CountByPost(postID int64) (int64, error) {
	args := m.Called(postID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository mocks the user store
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(userID string) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockCommentService mocks the comment service for post assembly
type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) CreateComment(userID string, postID int64, req *dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	args := m.Called(userID, postID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) GetComment(commentID int64, viewerID string) (*dto.CommentResponse, error) {
	args := m.Called(commentID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) UpdateComment(userID string, commentID int64, content string) (*dto.CommentResponse, error) {
	args := m.Called(userID, commentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) DeleteComment(userID string, commentID int64) error {
	args := m.Called(userID, commentID)
	return args.Error(0)
}

func (m *MockCommentService) ListByPost(postID int64, viewerID string) ([]dto.CommentResponse, error) {
	args := m.Called(postID, viewerID)
	return args.Get(0).([]dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) ToggleCommentLike(userID string, commentID int64) (bool, error) {
	args := m.Called(userID, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentService) CreateReply(userID string, commentID int64, content string) (*dto.ReplyResponse, error) {
	args := m.Called(userID, commentID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReplyResponse), args.Error(1)
}

func (m *MockCommentService) ToggleReplyLike(userID string, replyID int64) (bool, error) {
	args := m.Called(userID, replyID)
	return args.Bool(0), args.Error(1)
}

func newTestPostService(postRepo *MockPostRepository, likeRepo *MockLikeRepository, reactionRepo *MockReactionRepository, userRepo *MockUserRepository, commentSvc *MockCommentService) PostService {
	return NewPostService(postRepo, likeRepo, reactionRepo, userRepo, commentSvc, new(MockMediaStore))
}

func TestUpdatePost_NonAuthorForbidden(t *testing.T) {
	postRepo := new(MockPostRepository)
	likeRepo := new(MockLikeRepository)
	reactionRepo := new(MockReactionRepository)
	userRepo := new(MockUserRepository)
	commentSvc := new(MockCommentService)
	svc := newTestPostService(postRepo, likeRepo, reactionRepo, userRepo, commentSvc)

	postRepo.On("GetByID", int64(1)).Return(&models.Post{ID: 1, UserID: "author"}, nil)

	_, err := svc.UpdatePost("someone-else", 1, "new caption")

	assert.ErrorIs(t, err, ErrForbidden)
	postRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestDeletePost_NotFound(t *testing.T) {
	postRepo := new(MockPostRepository)
	likeRepo := new(MockLikeRepository)
	reactionRepo := new(MockReactionRepository)
	userRepo := new(MockUserRepository)
	commentSvc := new(MockCommentService)
	svc := newTestPostService(postRepo, likeRepo, reactionRepo, userRepo, commentSvc)

	postRepo.On("GetByID", int64(42)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.DeletePost("author", 42)

	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestTogglePostLike_CreatesThenRemoves(t *testing.T) {
	postRepo := new(MockPostRepository)
	likeRepo := new(MockLikeRepository)
	reactionRepo := new(MockReactionRepository)
	userRepo := new(MockUserRepository)
	commentSvc := new(MockCommentService)
	svc := newTestPostService(postRepo, likeRepo, reactionRepo, userRepo, commentSvc)

	postRepo.On("GetByID", int64(1)).Return(&models.Post{ID: 1, UserID: "author"}, nil)

	// First toggle: no existing like, create one.
	likeRepo.On("GetByUserAndPost", "viewer", int64(1)).Return(nil, gorm.ErrRecordNotFound).Once()
	likeRepo.On("Create", mock.MatchedBy(func(l *models.Like) bool {
		return l.UserID == "viewer" && l.PostID != nil && *l.PostID == 1 && l.CommentID == nil
	})).Return(nil).Once()

	liked, err := svc.TogglePostLike("viewer", 1)
	assert.NoError(t, err)
	assert.True(t, liked)

	// Second toggle: the like exists now, delete it.
	likeRepo.On("GetByUserAndPost", "viewer", int64(1)).Return(&models.Like{ID: 7}, nil).Once()
	likeRepo.On("Delete", int64(7)).Return(nil).Once()

	liked, err = svc.TogglePostLike("viewer", 1)
	assert.NoError(t, err)
	assert.False(t, liked)

	likeRepo.AssertExpectations(t)
}

func TestTogglePostLike_DuplicateInsertTreatedAsLiked(t *testing.T) {
	postRepo := new(MockPostRepository)
	likeRepo := new(MockLikeRepository)
	reactionRepo := new(MockReactionRepository)
	userRepo := new(MockUserRepository)
	commentSvc := new(MockCommentService)
	svc := newTestPostService(postRepo, likeRepo, reactionRepo, userRepo, commentSvc)

	postRepo.On("GetByID", int64(1)).Return(&models.Post{ID: 1, UserID: "author"}, nil)
	likeRepo.On("GetByUserAndPost", "viewer", int64(1)).Return(nil, gorm.ErrRecordNotFound)
	// A concurrent request inserted the row first; the unique index
	// reports a duplicate and the toggle settles on "liked".
	likeRepo.On("Create", mock.Anything).Return(gorm.ErrDuplicatedKey)

	liked, err := svc.TogglePostLike("viewer", 1)

	assert.NoError(t, err)
	assert.True(t, liked)
}

func TestSetReaction_ReplacesDifferingType(t *testing.T) {
	postRepo := new(MockPostRepository)
	likeRepo := new(MockLikeRepository)
	reactionRepo := new(MockReactionRepository)
	userRepo := new(MockUserRepository)
	commentSvc := new(MockCommentService)
	svc := newTestPostService(postRepo, likeRepo, reactionRepo, userRepo, commentSvc)

	postRepo.On("GetByID", int64(1)).Return(&models.Post{ID: 1, UserID: "author"}, nil)
	reactionRepo.On("GetByUserAndPost", "viewer", int64(1)).
		Return(&models.Reaction{ID: 3, UserID: "viewer", PostID: 1, ReactionType: "like"}, nil)
	reactionRepo.On("Update", mock.MatchedBy(func(r *models.Reaction) bool {
		return r.ID == 3 && r.ReactionType == "love"
	})).Return(nil)
	userRepo.On("FindByID", "viewer").Return(&models.User{ID: "viewer", Username: "viewer"}, nil)

	resp, err := svc.SetReaction("viewer", 1, "love")

	assert.NoError(t, err)
	assert.Equal(t, "love", resp.ReactionType)
	reactionRepo.AssertExpectations(t)
}

func TestSetReaction_SameTypeIsNoOp(t *testing.T) {
	postRepo := new(MockPostRepository)
	likeRepo := new(MockLikeRepository)
	reactionRepo := new(MockReactionRepository)
	userRepo := new(MockUserRepository)
	commentSvc := new(MockCommentService)
	svc := newTestPostService(postRepo, likeRepo, reactionRepo, userRepo, commentSvc)

	postRepo.On("GetByID", int64(1)).Return(&models.Post{ID: 1, UserID: "author"}, nil)
	reactionRepo.On("GetByUserAndPost", "viewer", int64(1)).
		Return(&models.Reaction{ID: 3, UserID: "viewer", PostID: 1, ReactionType: "love"}, nil)
	userRepo.On("FindByID", "viewer").Return(&models.User{ID: "viewer", Username: "viewer"}, nil)

	resp, err := svc.SetReaction("viewer", 1, "love")

	assert.NoError(t, err)
	assert.Equal(t, "love", resp.ReactionType)
	reactionRepo.AssertNotCalled(t, "Update", mock.Anything)
	reactionRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestSetReaction_ConcurrentInsertFallsThroughToUpdate(t *testing.T) {
	postRepo := new(MockPostRepository)
	likeRepo := new(MockLikeRepository)
	reactionRepo := new(MockReactionRepository)
	userRepo := new(MockUserRepository)
	commentSvc := new(MockCommentService)
	svc := newTestPostService(postRepo, likeRepo, reactionRepo, userRepo, commentSvc)

	postRepo.On("GetByID", int64(1)).Return(&models.Post{ID: 1, UserID: "author"}, nil)
	reactionRepo.On("GetByUserAndPost", "viewer", int64(1)).
		Return(nil, gorm.ErrRecordNotFound).Once()
	reactionRepo.On("Create", mock.Anything).Return(gorm.ErrDuplicatedKey)
	reactionRepo.On("GetByUserAndPost", "viewer", int64(1)).
		Return(&models.Reaction{ID: 9, UserID: "viewer", PostID: 1, ReactionType: "wow"}, nil).Once()
	reactionRepo.On("Update", mock.MatchedBy(func(r *models.Reaction) bool {
		return r.ID == 9 && r.ReactionType == "sad"
	})).Return(nil)
	userRepo.On("FindByID", "viewer").Return(&models.User{ID: "viewer", Username: "viewer"}, nil)

	resp, err := svc.SetReaction("viewer", 1, "sad")

	assert.NoError(t, err)
	assert.Equal(t, "sad", resp.ReactionType)
	reactionRepo.AssertExpectations(t)
}

func TestSetReaction_InvalidType(t *testing.T) {
	postRepo := new(MockPostRepository)
	likeRepo := new(MockLikeRepository)
	reactionRepo := new(MockReactionRepository)
	userRepo := new(MockUserRepository)
	commentSvc := new(MockCommentService)
	svc := newTestPostService(postRepo, likeRepo, reactionRepo, userRepo, commentSvc)

	_, err := svc.SetReaction("viewer", 1, "meh")

	assert.Error(t, err)
	postRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestGetPost_AssemblesCountsAndComments(t *testing.T) {
	postRepo := new(MockPostRepository)
	likeRepo := new(MockLikeRepository)
	reactionRepo := new(MockReactionRepository)
	userRepo := new(MockUserRepository)
	commentSvc := new(MockCommentService)
	svc := newTestPostService(postRepo, likeRepo, reactionRepo, userRepo, commentSvc)

	postRepo.On("GetByID", int64(1)).Return(&models.Post{
		ID:      1,
		UserID:  "author",
		Caption: "First harvest",
		User:    models.User{ID: "author", Username: "farmer"},
	}, nil)
	commentSvc.On("ListByPost", int64(1), "viewer").Return([]dto.CommentResponse{}, nil)
	likeRepo.On("CountByPost", int64(1)).Return(int64(3), nil)
	likeRepo.On("ExistsByUserAndPost", "viewer", int64(1)).Return(true, nil)
	reactionRepo.On("GetByPost", int64(1)).Return([]models.Reaction{}, nil)
	postRepo.On("CountComments", int64(1)).Return(int64(5), nil)

	post, err := svc.GetPost(1, "viewer")

	assert.NoError(t, err)
	assert.Equal(t, int64(3), post.LikeCount)
	assert.True(t, post.IsLiked)
	assert.Equal(t, int64(5), post.CommentCount)
	assert.Equal(t, "farmer", post.User.Username)
}

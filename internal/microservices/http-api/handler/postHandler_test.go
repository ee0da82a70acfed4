package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agriconnect/internal/microservices/http-api/dto"
	"agriconnect/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPostService mocks the PostService interface
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(userID, caption string, image *service.ImageUpload) (*dto.PostResponse, error) {
	args := m.Called(userID, caption, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostResponse), args.Error(1)
}

func (m *MockPostService) GetPost(postID int64, viewerID string) (*dto.PostResponse, error) {
	args := m.Called(postID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostResponse), args.Error(1)
}

func (m *MockPostService) ListPosts(page, pageSize int, viewerID string) (*dto.PaginatedPostResponse, error) {
	args := m.Called(page, pageSize, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedPostResponse), args.Error(1)
}

func (m *MockPostService) UpdatePost(userID string, postID int64, caption string) (*dto.PostResponse, error) {
	args := m.Called(userID, postID, caption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PostResponse), args.Error(1)
}

func (m *MockPostService) DeletePost(userID string, postID int64) error {
	args := m.Called(userID, postID)
	return args.Error(0)
}

func (m *MockPostService) TogglePostLike(userID string, postID int64) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostService) SetReaction(userID string, postID int64, reactionType string) (*dto.ReactionResponse, error) {
	args := m.Called(userID, postID, reactionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReactionResponse), args.Error(1)
}

func asUser(userID string, fn gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		fn(c)
	}
}

func TestToggleLike_CreatedReturns201(t *testing.T) {
	mockService := new(MockPostService)
	h := NewPostHandler(mockService)
	router := setupRouter()
	router.POST("/posts/:id/like", asUser("user-123", h.ToggleLike))

	mockService.On("TogglePostLike", "user-123", int64(1)).Return(true, nil)

	req, _ := http.NewRequest("POST", "/posts/1/like", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Post liked", response["detail"])
	assert.Equal(t, true, response["liked"])
}

func TestToggleLike_RemovedReturns200(t *testing.T) {
	mockService := new(MockPostService)
	h := NewPostHandler(mockService)
	router := setupRouter()
	router.POST("/posts/:id/like", asUser("user-123", h.ToggleLike))

	mockService.On("TogglePostLike", "user-123", int64(1)).Return(false, nil)

	req, _ := http.NewRequest("POST", "/posts/1/like", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Post unliked", response["detail"])
	assert.Equal(t, false, response["liked"])
}

func TestUpdatePost_NonAuthorGets403(t *testing.T) {
	mockService := new(MockPostService)
	h := NewPostHandler(mockService)
	router := setupRouter()
	router.PUT("/posts/:id", asUser("intruder", h.Update))

	mockService.On("UpdatePost", "intruder", int64(1), "hijacked").
		Return(nil, service.ErrForbidden)

	body, _ := json.Marshal(dto.UpdatePostDTO{Caption: "hijacked"})
	req, _ := http.NewRequest("PUT", "/posts/1", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeletePost_MissingGets404(t *testing.T) {
	mockService := new(MockPostService)
	h := NewPostHandler(mockService)
	router := setupRouter()
	router.DELETE("/posts/:id", asUser("user-123", h.Delete))

	mockService.On("DeletePost", "user-123", int64(42)).Return(service.ErrPostNotFound)

	req, _ := http.NewRequest("DELETE", "/posts/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReact_InvalidTypeRejectedByBinding(t *testing.T) {
	mockService := new(MockPostService)
	h := NewPostHandler(mockService)
	router := setupRouter()
	router.POST("/posts/:id/react", asUser("user-123", h.React))

	body, _ := json.Marshal(map[string]string{"reaction_type": "meh"})
	req, _ := http.NewRequest("POST", "/posts/1/react", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "SetReaction", mock.Anything, mock.Anything, mock.Anything)
}

func TestReact_Success(t *testing.T) {
	mockService := new(MockPostService)
	h := NewPostHandler(mockService)
	router := setupRouter()
	router.POST("/posts/:id/react", asUser("user-123", h.React))

	mockService.On("SetReaction", "user-123", int64(1), "love").
		Return(&dto.ReactionResponse{ID: 3, User: "testuser", PostID: 1, ReactionType: "love"}, nil)

	body, _ := json.Marshal(dto.SetReactionDTO{ReactionType: "love"})
	req, _ := http.NewRequest("POST", "/posts/1/react", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.ReactionResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "love", response.ReactionType)
}

func TestListPosts_DefaultsPagination(t *testing.T) {
	mockService := new(MockPostService)
	h := NewPostHandler(mockService)
	router := setupRouter()
	router.GET("/posts", h.List)

	mockService.On("ListPosts", 1, 20, "").
		Return(&dto.PaginatedPostResponse{Data: []dto.PostResponse{}, Page: 1, PageSize: 20}, nil)

	req, _ := http.NewRequest("GET", "/posts", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

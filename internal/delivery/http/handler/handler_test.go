package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nightingale/internal/delivery/dto"
	"nightingale/internal/delivery/http/middleware"
	"nightingale/internal/domain/entity"
	"nightingale/pkg/response"
	"nightingale/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
	Meta    *response.Meta    `json:"meta"`
}

// serve routes one request through a mux router so path variables resolve.
// A non-nil userID is placed in the request context as the authenticated user.
func serve(pattern string, h http.HandlerFunc, method, target, body string, userID uuid.UUID) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc(pattern, h).Methods(method)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID != uuid.Nil {
		req = req.WithContext(middleware.WithUser(req.Context(), userID, "nurse_joy", "access-id"))
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func newTestValidator() *validator.CustomValidator {
	return validator.NewValidator()
}

type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.AuthResponse)
	return res, args.Error(1)
}

func (m *mockAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.AuthResponse)
	return res, args.Error(1)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, userID uuid.UUID, accessTokenID string, req *dto.LogoutRequest) error {
	args := m.Called(ctx, userID, accessTokenID, req)
	return args.Error(0)
}

func (m *mockAuthUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.TokenResponse)
	return res, args.Error(1)
}

type mockPostUsecase struct {
	mock.Mock
}

func (m *mockPostUsecase) CreatePost(ctx context.Context, userID uuid.UUID, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	args := m.Called(ctx, userID, req)
	res, _ := args.Get(0).(*dto.PostResponse)
	return res, args.Error(1)
}

func (m *mockPostUsecase) GetAllPosts(ctx context.Context) (*dto.PostListResponse, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*dto.PostListResponse)
	return res, args.Error(1)
}

func (m *mockPostUsecase) GetPost(ctx context.Context, postID uuid.UUID) (*dto.PostResponse, error) {
	args := m.Called(ctx, postID)
	res, _ := args.Get(0).(*dto.PostResponse)
	return res, args.Error(1)
}

func (m *mockPostUsecase) GetPostsByUser(ctx context.Context, userID uuid.UUID) (*dto.PostListResponse, error) {
	args := m.Called(ctx, userID)
	res, _ := args.Get(0).(*dto.PostListResponse)
	return res, args.Error(1)
}

func (m *mockPostUsecase) UpdatePost(ctx context.Context, userID, postID uuid.UUID, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	args := m.Called(ctx, userID, postID, req)
	res, _ := args.Get(0).(*dto.PostResponse)
	return res, args.Error(1)
}

func (m *mockPostUsecase) DeletePost(ctx context.Context, userID, postID uuid.UUID) (*dto.PostResponse, error) {
	args := m.Called(ctx, userID, postID)
	res, _ := args.Get(0).(*dto.PostResponse)
	return res, args.Error(1)
}

type mockCommentUsecase struct {
	mock.Mock
}

func (m *mockCommentUsecase) GetComments(ctx context.Context, postID uuid.UUID) (*dto.CommentListResponse, error) {
	args := m.Called(ctx, postID)
	res, _ := args.Get(0).(*dto.CommentListResponse)
	return res, args.Error(1)
}

func (m *mockCommentUsecase) CreateComment(ctx context.Context, userID, postID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentMutationResponse, error) {
	args := m.Called(ctx, userID, postID, req)
	res, _ := args.Get(0).(*dto.CommentMutationResponse)
	return res, args.Error(1)
}

func (m *mockCommentUsecase) UpdateComment(ctx context.Context, userID, postID, commentID uuid.UUID, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	args := m.Called(ctx, userID, postID, commentID, req)
	res, _ := args.Get(0).(*dto.CommentResponse)
	return res, args.Error(1)
}

func (m *mockCommentUsecase) DeleteComment(ctx context.Context, userID, postID, commentID uuid.UUID) (*dto.CommentMutationResponse, error) {
	args := m.Called(ctx, userID, postID, commentID)
	res, _ := args.Get(0).(*dto.CommentMutationResponse)
	return res, args.Error(1)
}

type mockReactionUsecase struct {
	mock.Mock
}

func (m *mockReactionUsecase) React(ctx context.Context, userID, postID uuid.UUID, kind entity.ReactionKind) (*dto.ReactionResultResponse, error) {
	args := m.Called(ctx, userID, postID, kind)
	res, _ := args.Get(0).(*dto.ReactionResultResponse)
	return res, args.Error(1)
}

func (m *mockReactionUsecase) Unreact(ctx context.Context, userID, postID uuid.UUID, kind entity.ReactionKind) (*dto.ReactionResultResponse, error) {
	args := m.Called(ctx, userID, postID, kind)
	res, _ := args.Get(0).(*dto.ReactionResultResponse)
	return res, args.Error(1)
}

func (m *mockReactionUsecase) CountsFor(ctx context.Context, postID uuid.UUID) (entity.ReactionCounts, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(entity.ReactionCounts), args.Error(1)
}

type mockHospitalUsecase struct {
	mock.Mock
}

func (m *mockHospitalUsecase) CreateHospital(ctx context.Context, req *dto.HospitalRequest) (*dto.HospitalResponse, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*dto.HospitalResponse)
	return res, args.Error(1)
}

func (m *mockHospitalUsecase) GetAllHospitals(ctx context.Context, query *dto.HospitalListQuery) (*dto.HospitalListResponse, error) {
	args := m.Called(ctx, query)
	res, _ := args.Get(0).(*dto.HospitalListResponse)
	return res, args.Error(1)
}

func (m *mockHospitalUsecase) GetHospital(ctx context.Context, id uuid.UUID) (*dto.HospitalResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.HospitalResponse)
	return res, args.Error(1)
}

func (m *mockHospitalUsecase) UpdateHospital(ctx context.Context, id uuid.UUID, req *dto.HospitalRequest) (*dto.HospitalResponse, error) {
	args := m.Called(ctx, id, req)
	res, _ := args.Get(0).(*dto.HospitalResponse)
	return res, args.Error(1)
}

func (m *mockHospitalUsecase) DeleteHospital(ctx context.Context, id uuid.UUID) (*dto.HospitalResponse, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*dto.HospitalResponse)
	return res, args.Error(1)
}

type mockRatingUsecase struct {
	mock.Mock
}

func (m *mockRatingUsecase) GetHospitalRatings(ctx context.Context, hospitalID uuid.UUID) (*dto.RatingListResponse, error) {
	args := m.Called(ctx, hospitalID)
	res, _ := args.Get(0).(*dto.RatingListResponse)
	return res, args.Error(1)
}

func (m *mockRatingUsecase) CreateRating(ctx context.Context, userID, hospitalID uuid.UUID, req *dto.CreateRatingRequest) (*dto.RatingResponse, error) {
	args := m.Called(ctx, userID, hospitalID, req)
	res, _ := args.Get(0).(*dto.RatingResponse)
	return res, args.Error(1)
}

func (m *mockRatingUsecase) UpdateRating(ctx context.Context, userID, ratingID uuid.UUID, req *dto.UpdateRatingRequest) (*dto.RatingResponse, error) {
	args := m.Called(ctx, userID, ratingID, req)
	res, _ := args.Get(0).(*dto.RatingResponse)
	return res, args.Error(1)
}

func (m *mockRatingUsecase) DeleteRating(ctx context.Context, userID, ratingID uuid.UUID) (*dto.RatingResponse, error) {
	args := m.Called(ctx, userID, ratingID)
	res, _ := args.Get(0).(*dto.RatingResponse)
	return res, args.Error(1)
}

type mockReviewUsecase struct {
	mock.Mock
}

func (m *mockReviewUsecase) GetAllReviews(ctx context.Context) (*dto.ReviewListResponse, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*dto.ReviewListResponse)
	return res, args.Error(1)
}

func (m *mockReviewUsecase) GetHospitalReviews(ctx context.Context, hospitalID uuid.UUID) (*dto.ReviewListResponse, error) {
	args := m.Called(ctx, hospitalID)
	res, _ := args.Get(0).(*dto.ReviewListResponse)
	return res, args.Error(1)
}

func (m *mockReviewUsecase) CreateReview(ctx context.Context, userID, hospitalID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, userID, hospitalID, req)
	res, _ := args.Get(0).(*dto.ReviewResponse)
	return res, args.Error(1)
}

func (m *mockReviewUsecase) UpdateReview(ctx context.Context, userID, reviewID uuid.UUID, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, userID, reviewID, req)
	res, _ := args.Get(0).(*dto.ReviewResponse)
	return res, args.Error(1)
}

func (m *mockReviewUsecase) DeleteReview(ctx context.Context, userID, reviewID uuid.UUID) (*dto.ReviewResponse, error) {
	args := m.Called(ctx, userID, reviewID)
	res, _ := args.Get(0).(*dto.ReviewResponse)
	return res, args.Error(1)
}

type mockDirectoryUsecase struct {
	mock.Mock
}

func (m *mockDirectoryUsecase) Search(ctx context.Context, query *dto.DirectorySearchQuery) ([]entity.DirectoryHospital, error) {
	args := m.Called(ctx, query)
	res, _ := args.Get(0).([]entity.DirectoryHospital)
	return res, args.Error(1)
}

func (m *mockDirectoryUsecase) GetFacility(ctx context.Context, facilityID string) (*entity.DirectoryHospital, error) {
	args := m.Called(ctx, facilityID)
	res, _ := args.Get(0).(*entity.DirectoryHospital)
	return res, args.Error(1)
}

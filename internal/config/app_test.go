package config

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ferdian3456/userregistry/internal/constant"
	"github.com/ferdian3456/userregistry/internal/model"
	"github.com/ferdian3456/userregistry/internal/repository"
	"github.com/ferdian3456/userregistry/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testServer struct {
	app       *fiber.App
	uploadDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	log := zaptest.NewLogger(t)
	uploadDir := t.TempDir()

	userStore := repository.NewSQLiteUserRepository(log, testutil.OpenSQLite(t))
	require.NoError(t, userStore.Init(context.Background()))

	assetStore := repository.NewAssetRepository(log, uploadDir, constant.DEFAULT_UPLOAD_PREFIX,
		model.AssetPolicy{MaxSize: constant.MAX_FILE_SIZE})

	app := NewFiber(constant.MAX_FILE_SIZE, log)
	SetupMiddleware(app, log, "*", 1000)
	Server(&ServerConfig{
		Router:          app,
		UserRepository:  userStore,
		AssetRepository: assetStore,
		Log:             log,
		UploadURLPrefix: constant.DEFAULT_UPLOAD_PREFIX,
	})

	return &testServer{app: app, uploadDir: uploadDir}
}

func (s *testServer) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

func (s *testServer) createUser(t *testing.T, file *testutil.FilePart, fields map[string]string) *http.Response {
	t.Helper()

	body, contentType := testutil.CreateMultipartFormData(t, file, fields)
	req := httptest.NewRequest(http.MethodPost, "/api/users", body)
	req.Header.Set("Content-Type", contentType)

	return s.do(t, req)
}

func (s *testServer) files(t *testing.T) []string {
	t.Helper()

	entries, err := os.ReadDir(s.uploadDir)
	require.NoError(t, err)

	names := []string{}
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func pngPart(t *testing.T) *testutil.FilePart {
	return &testutil.FilePart{
		FieldName:   "image",
		FileName:    "avatar.png",
		ContentType: "image/png",
		Data:        testutil.OnePixelPNG(t),
	}
}

func TestUserLifecycle(t *testing.T) {
	s := newTestServer(t)
	png := testutil.OnePixelPNG(t)

	resp := s.createUser(t, pngPart(t), map[string]string{"name": "Alice", "age": "30"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created model.User
	testutil.ParseJSONResponse(t, resp, &created)
	assert.Equal(t, int64(1), created.Id)
	assert.Equal(t, "Alice", created.Name)
	assert.Equal(t, 30, created.Age)
	assert.True(t, strings.HasPrefix(created.ImagePath, "/uploads/image-"), created.ImagePath)
	assert.False(t, created.CreatedAt.IsZero())
	require.Len(t, s.files(t), 1)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []model.User
	testutil.ParseJSONResponse(t, resp, &users)
	require.Len(t, users, 1)
	assert.Equal(t, created.Id, users[0].Id)
	assert.Equal(t, created.ImagePath, users[0].ImagePath)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, created.ImagePath, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Equal(t, constant.ASSET_CACHE_CONTROL, resp.Header.Get("Cache-Control"))
	served, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, png, served)

	resp = s.do(t, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/users/%d", created.Id), nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var deleted model.UserDeleteResponse
	testutil.ParseJSONResponse(t, resp, &deleted)
	assert.Equal(t, constant.USER_DELETED_MESSAGE, deleted.Message)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	users = nil
	testutil.ParseJSONResponse(t, resp, &users)
	assert.Empty(t, users)
	assert.Empty(t, s.files(t), "the image should be removed with its user")

	resp = s.do(t, httptest.NewRequest(http.MethodGet, created.ImagePath, nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/users/%d", created.Id), nil))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	code, _ := testutil.ParseErrorDetail(t, resp)
	assert.Equal(t, constant.ERR_NOT_FOUND_ERROR, code)
}

func TestCreateUserRejections(t *testing.T) {
	testCases := []struct {
		name       string
		file       func(t *testing.T) *testutil.FilePart
		fields     map[string]string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing name",
			file:       pngPart,
			fields:     map[string]string{"age": "30"},
			wantStatus: http.StatusBadRequest,
			wantCode:   constant.ERR_VALIDATION_CODE,
		},
		{
			name:       "missing age",
			file:       pngPart,
			fields:     map[string]string{"name": "Alice"},
			wantStatus: http.StatusBadRequest,
			wantCode:   constant.ERR_VALIDATION_CODE,
		},
		{
			name:       "non numeric age",
			file:       pngPart,
			fields:     map[string]string{"name": "Alice", "age": "old"},
			wantStatus: http.StatusBadRequest,
			wantCode:   constant.ERR_VALIDATION_CODE,
		},
		{
			name:       "missing image",
			file:       func(t *testing.T) *testutil.FilePart { return nil },
			fields:     map[string]string{"name": "Alice", "age": "30"},
			wantStatus: http.StatusBadRequest,
			wantCode:   constant.ERR_VALIDATION_CODE,
		},
		{
			name: "empty image",
			file: func(t *testing.T) *testutil.FilePart {
				part := pngPart(t)
				part.Data = []byte{}
				return part
			},
			fields:     map[string]string{"name": "Alice", "age": "30"},
			wantStatus: http.StatusBadRequest,
			wantCode:   constant.ERR_VALIDATION_CODE,
		},
		{
			name: "text file",
			file: func(t *testing.T) *testutil.FilePart {
				return &testutil.FilePart{FieldName: "image", FileName: "notes.txt", ContentType: "text/plain", Data: []byte("hello")}
			},
			fields:     map[string]string{"name": "Alice", "age": "30"},
			wantStatus: http.StatusBadRequest,
			wantCode:   constant.ERR_INVALID_ASSET_TYPE_CODE,
		},
		{
			name: "oversized image",
			file: func(t *testing.T) *testutil.FilePart {
				part := pngPart(t)
				part.Data = make([]byte, constant.MAX_FILE_SIZE+1)
				return part
			},
			fields:     map[string]string{"name": "Alice", "age": "30"},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   constant.ERR_ASSET_TOO_LARGE_CODE,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t)

			resp := s.createUser(t, tc.file(t), tc.fields)
			require.Equal(t, tc.wantStatus, resp.StatusCode)

			code, message := testutil.ParseErrorDetail(t, resp)
			assert.Equal(t, tc.wantCode, code)
			assert.NotEmpty(t, message)
			assert.Empty(t, s.files(t), "a rejected request must not leave a file behind")

			resp = s.do(t, httptest.NewRequest(http.MethodGet, "/api/users", nil))
			var users []model.User
			testutil.ParseJSONResponse(t, resp, &users)
			assert.Empty(t, users)
		})
	}
}

func TestDeleteUnknownUser(t *testing.T) {
	s := newTestServer(t)

	for _, id := range []string{"999", "abc", "0"} {
		resp := s.do(t, httptest.NewRequest(http.MethodDelete, "/api/users/"+id, nil))
		require.Equal(t, http.StatusNotFound, resp.StatusCode, "id %s", id)

		code, _ := testutil.ParseErrorDetail(t, resp)
		assert.Equal(t, constant.ERR_NOT_FOUND_ERROR, code)
	}
}

func TestServeAssetRejectsUnknownNames(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, httptest.NewRequest(http.MethodGet, "/uploads/image-1-1.png", nil))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	code, _ := testutil.ParseErrorDetail(t, resp)
	assert.Equal(t, constant.ERR_NOT_FOUND_ERROR, code)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/uploads/..%2Fapp.go", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthAndUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health model.HealthResponse
	testutil.ParseJSONResponse(t, resp, &health)
	assert.Equal(t, "OK", health.Status)
	assert.Equal(t, "Server is running", health.Message)

	resp = s.do(t, httptest.NewRequest(http.MethodGet, "/api/nothing-here", nil))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	code, _ := testutil.ParseErrorDetail(t, resp)
	assert.Equal(t, constant.ERR_NOT_FOUND_ERROR, code)
}

func TestRequestIdIsEchoed(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	resp := s.do(t, req)

	assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))
}

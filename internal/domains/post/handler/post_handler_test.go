package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanameee/bloglist-backend/internal/domains/account"
	"github.com/hanameee/bloglist-backend/internal/domains/post"
	"github.com/hanameee/bloglist-backend/internal/domains/post/service"
	"github.com/hanameee/bloglist-backend/internal/shared/auth"
	"github.com/hanameee/bloglist-backend/internal/shared/middleware"
)

// ========================================
// IN-MEMORY STORES
// ========================================

type memPostRepo struct {
	posts  []*post.Post
	owners map[uuid.UUID]post.Owner
}

func (m *memPostRepo) Find(ctx context.Context) ([]post.DTO, error) {
	dtos := []post.DTO{}
	for _, p := range m.posts {
		dtos = append(dtos, p.ToDTO(m.owners[p.AccountID]))
	}
	return dtos, nil
}

func (m *memPostRepo) FindAll(ctx context.Context) ([]post.Post, error) {
	posts := []post.Post{}
	for _, p := range m.posts {
		posts = append(posts, *p)
	}
	return posts, nil
}

func (m *memPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	for _, p := range m.posts {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, post.ErrPostNotFound
}

func (m *memPostRepo) Insert(ctx context.Context, p *post.Post) error {
	copied := *p
	m.posts = append(m.posts, &copied)
	return nil
}

func (m *memPostRepo) UpdateByID(ctx context.Context, id uuid.UUID, patch post.UpdateRequest) (*post.Post, error) {
	for _, p := range m.posts {
		if p.ID != id {
			continue
		}
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.URL != nil {
			p.URL = *patch.URL
		}
		if patch.Author != nil {
			p.Author = *patch.Author
		}
		if patch.Likes != nil {
			p.Likes = *patch.Likes
		}
		copied := *p
		return &copied, nil
	}
	return nil, post.ErrPostNotFound
}

func (m *memPostRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return post.ErrPostNotFound
}

type memAccountRepo struct {
	accounts map[uuid.UUID]*account.Account
	links    map[uuid.UUID][]uuid.UUID
}

func (m *memAccountRepo) Create(ctx context.Context, a *account.Account) error {
	m.accounts[a.ID] = a
	return nil
}

func (m *memAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, account.ErrAccountNotFound
	}
	return a, nil
}

func (m *memAccountRepo) FindByHandle(ctx context.Context, handle string) (*account.Account, error) {
	for _, a := range m.accounts {
		if a.Handle == handle {
			return a, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (m *memAccountRepo) List(ctx context.Context) ([]account.DTO, error) {
	dtos := []account.DTO{}
	for _, a := range m.accounts {
		dtos = append(dtos, a.ToDTO(nil))
	}
	return dtos, nil
}

func (m *memAccountRepo) AppendOwnedPost(ctx context.Context, accountID, postID uuid.UUID) error {
	m.links[accountID] = append(m.links[accountID], postID)
	return nil
}

func (m *memAccountRepo) RemoveOwnedPost(ctx context.Context, accountID, postID uuid.UUID) error {
	return nil
}

// ========================================
// TEST SERVER
// ========================================

type testServer struct {
	router *gin.Engine
	codec  *auth.TokenCodec
	repo   *memPostRepo
	owner  *account.Account
	other  *account.Account
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	accounts := &memAccountRepo{
		accounts: make(map[uuid.UUID]*account.Account),
		links:    make(map[uuid.UUID][]uuid.UUID),
	}
	owner := &account.Account{ID: uuid.New(), Handle: "hanameee", Name: "Hannah"}
	other := &account.Account{ID: uuid.New(), Handle: "someone", Name: "Someone Else"}
	require.NoError(t, accounts.Create(context.Background(), owner))
	require.NoError(t, accounts.Create(context.Background(), other))

	repo := &memPostRepo{owners: map[uuid.UUID]post.Owner{
		owner.ID: {ID: owner.ID, Handle: owner.Handle, Name: owner.Name},
		other.ID: {ID: other.ID, Handle: other.Handle, Name: other.Name},
	}}

	codec := auth.NewTokenCodec("test-secret")
	guard := auth.NewGuard(codec)
	h := NewPostHandler(service.NewPostService(repo, accounts, guard))

	router := gin.New()
	posts := router.Group("/posts")
	{
		posts.GET("", h.List)
		posts.GET("/stats", h.Stats)
		posts.PUT("/:id", h.Update)
		posts.POST("", middleware.Auth(guard), h.Create)
		posts.DELETE("/:id", middleware.Auth(guard), h.Delete)
	}

	return &testServer{router: router, codec: codec, repo: repo, owner: owner, other: other}
}

func (s *testServer) tokenFor(t *testing.T, accountID uuid.UUID) string {
	t.Helper()
	token, err := s.codec.Issue(accountID, time.Hour)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) createPost(t *testing.T, token string, body gin.H) uuid.UUID {
	t.Helper()

	w := s.do(t, http.MethodPost, "/posts", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res struct {
		Data post.DTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.Data.ID
}

// ========================================
// CREATE
// ========================================

func TestCreateWithoutTokenIsUnauthorized(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/posts", "", gin.H{"title": "t", "url": "u"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateWithExpiredTokenIsUnauthorized(t *testing.T) {
	s := newTestServer(t)

	expired, err := s.codec.Issue(s.owner.ID, -time.Minute)
	require.NoError(t, err)

	w := s.do(t, http.MethodPost, "/posts", expired, gin.H{"title": "t", "url": "u"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateMissingTitleNamesField(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/posts", s.tokenFor(t, s.owner.ID), gin.H{"url": "https://example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"title"`)
}

func TestCreateMissingURLNamesField(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/posts", s.tokenFor(t, s.owner.ID), gin.H{"title": "no url"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"url"`)
}

func TestCreateDefaultsLikes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/posts", s.tokenFor(t, s.owner.ID), gin.H{
		"title": "Go To Statement Considered Harmful",
		"url":   "https://example.com/goto",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var res struct {
		Data post.DTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 0, res.Data.Likes)
	assert.Equal(t, s.owner.ID, res.Data.Owner.ID)
}

// ========================================
// UPDATE
// ========================================

func TestUpdateUnknownIDNotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPut, "/posts/"+uuid.NewString(), "", gin.H{"likes": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateLikesOnly(t *testing.T) {
	s := newTestServer(t)
	id := s.createPost(t, s.tokenFor(t, s.owner.ID), gin.H{
		"title":  "original",
		"url":    "https://example.com",
		"author": "Hannah",
	})

	// No token on purpose: update is a public action.
	w := s.do(t, http.MethodPut, "/posts/"+id.String(), "", gin.H{"likes": 100})
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data post.DTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 100, res.Data.Likes)
	assert.Equal(t, "original", res.Data.Title)
	assert.Equal(t, "https://example.com", res.Data.URL)
	assert.Equal(t, "Hannah", res.Data.Author)
}

// ========================================
// DELETE
// ========================================

func TestDeleteByNonOwnerForbidden(t *testing.T) {
	s := newTestServer(t)
	id := s.createPost(t, s.tokenFor(t, s.owner.ID), gin.H{"title": "t", "url": "u"})

	w := s.do(t, http.MethodDelete, "/posts/"+id.String(), s.tokenFor(t, s.other.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The post must still be listed.
	list := s.do(t, http.MethodGet, "/posts", "", nil)
	assert.Contains(t, list.Body.String(), id.String())
}

func TestDeleteByOwnerRemovesPost(t *testing.T) {
	s := newTestServer(t)
	id := s.createPost(t, s.tokenFor(t, s.owner.ID), gin.H{"title": "t", "url": "u"})

	w := s.do(t, http.MethodDelete, "/posts/"+id.String(), s.tokenFor(t, s.owner.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	list := s.do(t, http.MethodGet, "/posts", "", nil)
	assert.NotContains(t, list.Body.String(), id.String())
}

func TestDeleteWithoutTokenIsUnauthorized(t *testing.T) {
	s := newTestServer(t)
	id := s.createPost(t, s.tokenFor(t, s.owner.ID), gin.H{"title": "t", "url": "u"})

	w := s.do(t, http.MethodDelete, "/posts/"+id.String(), "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteUnknownIDNotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodDelete, "/posts/"+uuid.NewString(), s.tokenFor(t, s.owner.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ========================================
// LIST & STATS
// ========================================

func TestListJoinsOwnerPublicFields(t *testing.T) {
	s := newTestServer(t)
	s.createPost(t, s.tokenFor(t, s.owner.ID), gin.H{"title": "t", "url": "u"})

	w := s.do(t, http.MethodGet, "/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data []post.DTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Data, 1)
	assert.Equal(t, "hanameee", res.Data[0].Owner.Handle)
}

func TestStatsEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.tokenFor(t, s.owner.ID)
	for i, author := range []string{"Hannah", "Hannah", "Jeongho"} {
		s.createPost(t, token, gin.H{
			"title":  fmt.Sprintf("post %d", i),
			"url":    "https://example.com",
			"author": author,
			"likes":  (i + 1) * 100,
		})
	}

	w := s.do(t, http.MethodGet, "/posts/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Data struct {
			TotalLikes int `json:"total_likes"`
			MostBlogs  *struct {
				Author string `json:"author"`
				Blogs  int    `json:"blogs"`
			} `json:"most_blogs"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 600, res.Data.TotalLikes)
	require.NotNil(t, res.Data.MostBlogs)
	assert.Equal(t, "Hannah", res.Data.MostBlogs.Author)
}

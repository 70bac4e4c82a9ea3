package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/media-blog/api-go/controllers"
	"github.com/media-blog/api-go/models"
	"github.com/media-blog/api-go/routes"
	"github.com/media-blog/api-go/testutil"
	"github.com/media-blog/api-go/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testUsername = "editor"
	testPassword = "s3cret-pass"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	seed   *testutil.Seed
	tokens *utils.TokenIssuer
}

type envelope struct {
	Count    int64           `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  json.RawMessage `json:"results"`
}

func newTestServer(t *testing.T, pageSize int) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	srv := &testServer{
		router: gin.New(),
		db:     db,
		seed:   testutil.SeedTaxonomy(t, db),
		tokens: utils.NewTokenIssuer("test-secret", 15*time.Minute, time.Hour),
	}
	routes.SetupRoutes(srv.router, routes.Options{
		DB:       db,
		Media:    testutil.NewMemoryMedia("/media/"),
		Tokens:   srv.tokens,
		PageSize: pageSize,
	})
	srv.createUser(t, testUsername, testPassword, true)
	return srv
}

func (s *testServer) createUser(t *testing.T, username, password string, active bool) *models.User {
	t.Helper()
	hash, err := controllers.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{Username: username, Email: username + "@example.com", Password: hash}
	require.NoError(t, s.db.Create(user).Error)
	if !active {
		require.NoError(t, s.db.Model(user).Update("is_active", false).Error)
	}
	return user
}

func (s *testServer) do(t *testing.T, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, username, password string) controllers.TokenPairResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/token/", "", controllers.TokenObtainRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var pair controllers.TokenPairResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	return pair
}

func (s *testServer) getPage(t *testing.T, target, token string) envelope {
	t.Helper()
	w := s.do(t, http.MethodGet, target, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

var contentRoutes = []string{
	"/api/groups/",
	"/api/groups/1/",
	"/api/categories/",
	"/api/categories/1/",
	"/api/posts/",
	"/api/posts/1/",
	"/api/random-post/",
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, 10)
	w := srv.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestContentRoutesRequireAuthentication(t *testing.T) {
	srv := newTestServer(t, 10)
	srv.seed.CreatePost(t, srv.db, testutil.PostOptions{Title: "post"})
	forged, _, err := utils.NewTokenIssuer("other-secret", time.Minute, time.Hour).Issue(1, testUsername, 1, utils.TokenTypeAccess, "")
	require.NoError(t, err)

	for _, path := range contentRoutes {
		for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
			w := srv.do(t, method, path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s without credentials", method, path)
		}
		w := srv.do(t, http.MethodGet, path, forged, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "GET %s with forged token", path)
	}
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	srv := newTestServer(t, 10)
	pair := srv.login(t, testUsername, testPassword)

	w := srv.do(t, http.MethodGet, "/api/posts/", pair.Refresh, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = srv.do(t, http.MethodGet, "/api/posts/", pair.Access, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMutatingMethodsNotAllowed(t *testing.T) {
	srv := newTestServer(t, 10)
	srv.seed.CreatePost(t, srv.db, testutil.PostOptions{Title: "post"})
	token := srv.login(t, testUsername, testPassword).Access

	payload := map[string]interface{}{"title": "new post", "group": 1}
	for _, path := range contentRoutes {
		for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
			w := srv.do(t, method, path, token, payload)
			assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "%s %s", method, path)
			assert.Equal(t, controllers.AllowedMethods, w.Header().Get("Allow"))
		}
	}

	var count int64
	require.NoError(t, srv.db.Model(&models.Post{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	w := srv.do(t, http.MethodOptions, "/api/posts/", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, controllers.AllowedMethods, w.Header().Get("Allow"))
}

func TestUnregisteredMethodsAuthenticateFirst(t *testing.T) {
	srv := newTestServer(t, 10)
	token := srv.login(t, testUsername, testPassword).Access

	for _, path := range contentRoutes {
		for _, method := range []string{http.MethodTrace, "PROPFIND"} {
			w := srv.do(t, method, path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s without credentials", method, path)

			w = srv.do(t, method, path, token, nil)
			assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "%s %s", method, path)
			assert.Equal(t, controllers.AllowedMethods, w.Header().Get("Allow"))
		}
	}

	// token routes are public, so a wrong verb there is a plain 405
	w := srv.do(t, http.MethodTrace, "/api/token/refresh/", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestListPostsFilters(t *testing.T) {
	srv := newTestServer(t, 10)
	token := srv.login(t, testUsername, testPassword).Access

	art, music := srv.seed.Groups[1], srv.seed.Groups[2]
	news, interviews := srv.seed.Categories[0], srv.seed.Categories[1]
	p1 := srv.seed.CreatePost(t, srv.db, testutil.PostOptions{Title: "p1", Group: &art, Category: &news, Duration: 10})
	p2 := srv.seed.CreatePost(t, srv.db, testutil.PostOptions{Title: "p2", Group: &art, Category: &interviews, Duration: 20})
	p3 := srv.seed.CreatePost(t, srv.db, testutil.PostOptions{Title: "p3", Group: &music, Category: &news, Duration: 10})

	tests := []struct {
		query string
		want  []uint
	}{
		{query: "", want: []uint{p1.ID, p2.ID, p3.ID}},
		{query: fmt.Sprintf("group=%d", art.ID), want: []uint{p1.ID, p2.ID}},
		{query: fmt.Sprintf("category=%d", news.ID), want: []uint{p1.ID, p3.ID}},
		{query: fmt.Sprintf("category=%d", interviews.ID), want: []uint{p2.ID}},
		{query: "duration=10", want: []uint{p1.ID, p3.ID}},
		{query: fmt.Sprintf("group=%d&duration=10", art.ID), want: []uint{p1.ID}},
		{query: fmt.Sprintf("group=%d&category=%d&duration=20", music.ID, news.ID), want: []uint{}},
		{query: "group=&duration=", want: []uint{p1.ID, p2.ID, p3.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			env := srv.getPage(t, "/api/posts/?"+tt.query, token)

			var results []struct {
				ID       uint `json:"id"`
				Duration int  `json:"duration"`
			}
			require.NoError(t, json.Unmarshal(env.Results, &results))
			ids := []uint{}
			for _, r := range results {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
			assert.Equal(t, int64(len(tt.want)), env.Count)
			assert.Nil(t, env.Next)
			assert.Nil(t, env.Previous)
		})
	}
}

func TestListPostsRejectsMalformedFilters(t *testing.T) {
	srv := newTestServer(t, 10)
	token := srv.login(t, testUsername, testPassword).Access

	for _, query := range []string{"group=abc", "category=1.5", "duration=ten"} {
		w := srv.do(t, http.MethodGet, "/api/posts/?"+query, token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
	}
}

func TestListPostsDetailShape(t *testing.T) {
	srv := newTestServer(t, 10)
	token := srv.login(t, testUsername, testPassword).Access

	post := srv.seed.CreatePost(t, srv.db, testutil.PostOptions{
		Title:    "full",
		Duration: 20,
		Text:     "body",
		Links:    srv.seed.Links[:2],
		Image:    "images/cover.webp",
		Audio:    "audios/episode.mp3",
	})

	env := srv.getPage(t, "/api/posts/", token)
	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Results, &results))
	require.Len(t, results, 1)

	got := results[0]
	assert.EqualValues(t, post.ID, got["id"])
	assert.EqualValues(t, 20, got["duration"])
	assert.EqualValues(t, srv.seed.Groups[0].ID, got["group"])
	assert.Equal(t, "body", got["text"])
	assert.Equal(t, "http://example.com/media/images/cover.webp", got["image"])
	assert.Equal(t, "http://example.com/media/audios/episode.mp3", got["audio"])
	assert.Nil(t, got["video"])
	assert.NotContains(t, got, "post_type")

	links, ok := got["links"].([]interface{})
	require.True(t, ok)
	require.Len(t, links, 2)
	first := links[0].(map[string]interface{})
	assert.Equal(t, "Instagram", first["name"])
	assert.Equal(t, "https://Instagram.example.com", first["url"])
	assert.Equal(t, "http://example.com/media/icons/Instagram.png", first["icon"])
}

func TestListPostsSummary(t *testing.T) {
	srv := newTestServer(t, 10)
	token := srv.login(t, testUsername, testPassword).Access

	a := srv.seed.CreatePost(t, srv.db, testutil.PostOptions{Title: "A", Video: "videos/a.mp4", Audio: "audios/a.mp3"})
	b := srv.seed.CreatePost(t, srv.db, testutil.PostOptions{Title: "B", Links: srv.seed.Links[:2]})
	c := srv.seed.CreatePost(t, srv.db, testutil.PostOptions{Title: "C", Audio: "audios/c.mp3"})
	d := srv.seed.CreatePost(t, srv.db, testutil.PostOptions{Title: "D", Text: "just text"})

	env := srv.getPage(t, "/api/posts/?summary=true", token)
	want := fmt.Sprintf(`[
		{"id":%d,"title":"A","post_type":"video"},
		{"id":%d,"title":"B","post_type":"social"},
		{"id":%d,"title":"C","post_type":"audio"},
		{"id":%d,"title":"D","post_type":""}
	]`, a.ID, b.ID, c.ID, d.ID)
	assert.JSONEq(t, want, string(env.Results))

	// any other value keeps the detail shape
	for _, value := range []string{"false", "1", "yes"} {
		env = srv.getPage(t, "/api/posts/?summary="+value, token)
		var results []map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Results, &results))
		require.Len(t, results, 4)
		assert.Contains(t, results[0], "links")
		assert.NotContains(t, results[0], "post_type")
	}
}

func TestListPostsPagination(t *testing.T) {
	srv := newTestServer(t, 2)
	token := srv.login(t, testUsername, testPassword).Access

	for _, title := range []string{"one", "two", "three"} {
		srv.seed.CreatePost(t, srv.db, testutil.PostOptions{Title: title})
	}

	first := srv.getPage(t, "/api/posts/?summary=true", token)
	assert.Equal(t, int64(3), first.Count)
	require.NotNil(t, first.Next)
	assert.Equal(t, "http://example.com/api/posts/?page=2&summary=true", *first.Next)
	assert.Nil(t, first.Previous)

	second := srv.getPage(t, "/api/posts/?page=2&summary=true", token)
	assert.Equal(t, int64(3), second.Count)
	assert.Nil(t, second.Next)
	require.NotNil(t, second.Previous)
	assert.Equal(t, "http://example.com/api/posts/?summary=true", *second.Previous)

	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(second.Results, &results))
	require.Len(t, results, 1)
	assert.Equal(t, "three", results[0]["title"])

	for _, page := range []string{"3", "0", "abc"} {
		w := srv.do(t, http.MethodGet, "/api/posts/?page="+page, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, "page=%s", page)
		assert.JSONEq(t, `{"error":"Invalid page."}`, w.Body.String())
	}
}

func TestListPostsEmpty(t *testing.T) {
	srv := newTestServer(t, 10)
	token := srv.login(t, testUsername, testPassword).Access

	env := srv.getPage(t, "/api/posts/", token)
	assert.Zero(t, env.Count)
	assert.JSONEq(t, `[]`, string(env.Results))
}

func TestGetPost(t *testing.T) {
	srv := newTestServer(t, 10)
	token := srv.login(t, testUsername, testPassword).Access
	post := srv.seed.CreatePost(t, srv.db, testutil.PostOptions{Title: "single", Video: "videos/v.mp4"})

	w := srv.do(t, http.MethodGet, fmt.Sprintf("/api/posts/%d/", post.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "single", detail["title"])
	assert.EqualValues(t, 10, detail["duration"])

	w = srv.do(t, http.MethodGet, fmt.Sprintf("/api/posts/%d/?summary=true", post.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"title":"single","post_type":"video"}`, post.ID), w.Body.String())

	for _, path := range []string{"/api/posts/999/", "/api/posts/abc/"} {
		w = srv.do(t, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestRandomPost(t *testing.T) {
	srv := newTestServer(t, 10)
	token := srv.login(t, testUsername, testPassword).Access

	env := srv.getPage(t, "/api/random-post/", token)
	assert.Zero(t, env.Count)
	assert.JSONEq(t, `[]`, string(env.Results))

	art := srv.seed.Groups[1]
	ids := map[uint]bool{}
	for i := 0; i < 4; i++ {
		ids[srv.seed.CreatePost(t, srv.db, testutil.PostOptions{Title: "post", Group: &art}).ID] = true
	}

	seen := map[uint]bool{}
	for i := 0; i < 50; i++ {
		// filters are ignored
		env := srv.getPage(t, "/api/random-post/?group=9999&summary=true", token)
		assert.Equal(t, int64(1), env.Count)
		assert.Nil(t, env.Next)
		assert.Nil(t, env.Previous)

		var results []map[string]interface{}
		require.NoError(t, json.Unmarshal(env.Results, &results))
		require.Len(t, results, 1)
		assert.Contains(t, results[0], "links", "random post is always in detail form")

		id := uint(results[0]["id"].(float64))
		require.True(t, ids[id])
		seen[id] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestListGroupsAndCategories(t *testing.T) {
	srv := newTestServer(t, 10)
	token := srv.login(t, testUsername, testPassword).Access

	env := srv.getPage(t, "/api/groups/", token)
	assert.Equal(t, int64(6), env.Count)
	var groups []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Results, &groups))
	require.Len(t, groups, 6)
	assert.Equal(t, "Art", groups[0]["name"])
	assert.Equal(t, "Podcasts", groups[5]["name"])
	assert.Equal(t, "http://example.com/media/icons/Art.png", groups[0]["icon"])

	env = srv.getPage(t, "/api/categories/", token)
	assert.Equal(t, int64(5), env.Count)
	var categories []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Results, &categories))
	require.Len(t, categories, 5)
	assert.Equal(t, "News", categories[0]["name"])

	w := srv.do(t, http.MethodGet, fmt.Sprintf("/api/categories/%d/", srv.seed.Categories[2].ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Reviews"`)

	w = srv.do(t, http.MethodGet, "/api/groups/999/", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

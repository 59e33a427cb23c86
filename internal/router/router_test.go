package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"roomboard/backend/internal/auth"
	"roomboard/backend/internal/config"
	"roomboard/backend/internal/database"
	"roomboard/backend/internal/handler"
	"roomboard/backend/internal/models"
	"roomboard/backend/internal/moby"
	"roomboard/backend/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	store  *database.Store
	clock  *testutil.Clock
}

type serverOptions struct {
	seed        bool
	roomExpiry  bool
	prefix      string
	moby        *moby.Client
	redisClient *redis.Client
}

func newTestServer(t *testing.T, opts serverOptions) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := testutil.NewClock(time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
	db := testutil.NewTestDB(t)
	store := database.NewStore(db, database.Options{
		MessageTTL: 24 * time.Hour,
		RoomExpiry: opts.roomExpiry,
		Seed:       opts.seed,
		Now:        clock.Now,
	})
	cfg := &config.Config{
		APIPrefix:         opts.prefix,
		RateLimitRequests: 2,
		RateLimitWindow:   time.Minute,
	}
	h := handler.New(store, auth.SHA256Hasher{}, opts.moby)

	return &testServer{
		router: NewRouter(cfg, h, opts.redisClient),
		db:     db,
		store:  store,
		clock:  clock,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (s *testServer) createRoom(t *testing.T, body string) int64 {
	t.Helper()
	w := s.do(t, http.MethodPost, "/rooms", body, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[handler.CreateRoomResponse](t, w).ID
}

func messagesPath(id int64) string {
	return fmt.Sprintf("/rooms/%d/messages", id)
}

func TestPing(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	w := s.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestCreateRoomThenList(t *testing.T) {
	s := newTestServer(t, serverOptions{roomExpiry: true})

	w := s.do(t, http.MethodPost, "/rooms", `{"name":"Test"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	created := decode[map[string]any](t, w)
	require.Contains(t, created, "id")
	id := int64(created["id"].(float64))

	w = s.do(t, http.MethodGet, "/rooms", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[handler.RoomListResponse](t, w)
	require.Len(t, list.Rooms, 1)
	assert.Equal(t, id, list.Rooms[0].ID)
	assert.Equal(t, "Test", list.Rooms[0].Name)
	assert.Equal(t, int64(0), list.Rooms[0].ActiveMessages)
	assert.Equal(t, "24h", list.Rooms[0].NextExpiresIn)
	assert.False(t, list.Rooms[0].HasPassword)
}

func TestListRooms_EmptyIsArray(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	w := s.do(t, http.MethodGet, "/rooms", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"rooms":[]}`, w.Body.String())
}

func TestListRooms_SeedsOnFirstRequest(t *testing.T) {
	s := newTestServer(t, serverOptions{seed: true, roomExpiry: true})

	w := s.do(t, http.MethodGet, "/rooms", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[handler.RoomListResponse](t, w)
	require.Len(t, list.Rooms, 4)
	assert.Equal(t, "Sunset Cafe", list.Rooms[0].Name)
	assert.Equal(t, int64(3), list.Rooms[0].ActiveMessages)
}

func TestCreateRoom_Validation(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	for _, body := range []string{"", `{}`, `{"name":""}`, `{"name":"   \t "}`, `{"name":null,"password":"x"}`} {
		w := s.do(t, http.MethodPost, "/rooms", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		assert.JSONEq(t, `{"error":"Room name is empty"}`, w.Body.String())
	}

	long := strings.Repeat("ね", 50)
	id := s.createRoom(t, fmt.Sprintf(`{"name":"  %s  "}`, long))
	var room models.Room
	require.NoError(t, s.db.First(&room, id).Error)
	assert.Equal(t, strings.Repeat("ね", 40), room.Name)
}

func TestCreateRoom_MalformedJSON(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	w := s.do(t, http.MethodPost, "/rooms", `{"name":`, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Server error"}`, w.Body.String())
}

func TestMessages_UnprotectedRoom(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	id := s.createRoom(t, `{"name":"Open","password":"   "}`)

	for _, header := range []map[string]string{nil, {auth.RoomPasswordHeader: "anything"}} {
		w := s.do(t, http.MethodPost, messagesPath(id), `{"author":"ME","body":"hello"}`, header)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())

		w = s.do(t, http.MethodGet, messagesPath(id), "", header)
		require.Equal(t, http.StatusOK, w.Code)
	}

	list := decode[handler.MessageListResponse](t, s.do(t, http.MethodGet, messagesPath(id), "", nil))
	require.Len(t, list.Messages, 2)
	assert.Equal(t, "ME", list.Messages[0].Author)
	assert.Equal(t, "hello", list.Messages[0].Body)
	assert.Equal(t, list.Messages[0].CreatedAt+(24*time.Hour).Milliseconds(), list.Messages[0].ExpiresAt)
}

func TestMessages_ProtectedRoom(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	id := s.createRoom(t, `{"name":"Secret","password":" hunter2 "}`)

	rooms := decode[handler.RoomListResponse](t, s.do(t, http.MethodGet, "/rooms", "", nil))
	require.Len(t, rooms.Rooms, 1)
	assert.True(t, rooms.Rooms[0].HasPassword)

	wrong := []map[string]string{nil, {auth.RoomPasswordHeader: "hunter3"}, {auth.RoomPasswordHeader: "HUNTER2"}}
	for _, header := range wrong {
		w := s.do(t, http.MethodGet, messagesPath(id), "", header)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"error":"Forbidden"}`, w.Body.String())

		w = s.do(t, http.MethodPost, messagesPath(id), `{"body":"sneaky"}`, header)
		assert.Equal(t, http.StatusForbidden, w.Code)
	}

	right := map[string]string{auth.RoomPasswordHeader: "hunter2"}
	w := s.do(t, http.MethodPost, messagesPath(id), `{"body":"hi"}`, right)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, messagesPath(id), "", right)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[handler.MessageListResponse](t, w).Messages, 1)
}

func TestMessages_Validation(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	id := s.createRoom(t, `{"name":"Room"}`)

	for _, body := range []string{"", `{}`, `{"author":"A","body":"  \n "}`} {
		w := s.do(t, http.MethodPost, messagesPath(id), body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		assert.JSONEq(t, `{"error":"Message is empty"}`, w.Body.String())
	}

	w := s.do(t, http.MethodPost, messagesPath(id), fmt.Sprintf(`{"body":" %s "}`, strings.Repeat("x", 300)), nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, messagesPath(id), `{"author":"averyveryverylongname","body":"second"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decode[handler.MessageListResponse](t, s.do(t, http.MethodGet, messagesPath(id), "", nil))
	require.Len(t, list.Messages, 2)
	assert.Equal(t, "anon", list.Messages[0].Author)
	assert.Equal(t, strings.Repeat("x", 280), list.Messages[0].Body)
	assert.Equal(t, "averyveryver", list.Messages[1].Author)
}

func TestMessages_InvalidRoom(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	for _, path := range []string{"/rooms/abc/messages", "/rooms/0/messages", "/rooms/-1/messages"} {
		w := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.JSONEq(t, `{"error":"Invalid room id"}`, w.Body.String())
	}

	w := s.do(t, http.MethodPost, "/rooms/77/messages", `{"body":"hello?"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Room not found"}`, w.Body.String())
}

func TestMessages_ExpireAfterRetentionWindow(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	id := s.createRoom(t, `{"name":"Room"}`)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, messagesPath(id), `{"body":"bye soon"}`, nil).Code)

	s.clock.Advance(24*time.Hour - time.Second)
	list := decode[handler.MessageListResponse](t, s.do(t, http.MethodGet, messagesPath(id), "", nil))
	assert.Len(t, list.Messages, 1)
	rooms := decode[handler.RoomListResponse](t, s.do(t, http.MethodGet, "/rooms", "", nil))
	assert.Equal(t, int64(1), rooms.Rooms[0].ActiveMessages)
	assert.Equal(t, "0h", rooms.Rooms[0].NextExpiresIn)

	s.clock.Advance(time.Second)
	list = decode[handler.MessageListResponse](t, s.do(t, http.MethodGet, messagesPath(id), "", nil))
	assert.Empty(t, list.Messages)

	var stored int64
	require.NoError(t, s.db.Model(&models.Message{}).Count(&stored).Error)
	assert.Zero(t, stored, "sweeper removed the expired row")
}

func TestRooms_ExpireAfterRetentionWindow(t *testing.T) {
	s := newTestServer(t, serverOptions{roomExpiry: true})
	id := s.createRoom(t, `{"name":"Short lived"}`)
	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, messagesPath(id), `{"body":"hi"}`, nil).Code)

	s.clock.Advance(24 * time.Hour)

	w := s.do(t, http.MethodGet, "/rooms", "", nil)
	assert.JSONEq(t, `{"rooms":[]}`, w.Body.String())
	w = s.do(t, http.MethodGet, messagesPath(id), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMessageBoard(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	w := s.do(t, http.MethodGet, "/message-board", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"posts":[]}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/message-board", `{"nickname":"kumo","body":"  "}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Message is empty"}`, w.Body.String())

	require.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/message-board", `{"body":"first"}`, nil).Code)
	s.clock.Advance(time.Minute)
	w = s.do(t, http.MethodPost, "/message-board", fmt.Sprintf(`{"nickname":" %s ","body":"second"}`, strings.Repeat("n", 30)), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	s.clock.Advance(48 * time.Hour)
	list := decode[handler.BoardPostListResponse](t, s.do(t, http.MethodGet, "/message-board", "", nil))
	require.Len(t, list.Posts, 2)
	assert.Equal(t, "second", list.Posts[0].Body)
	assert.Equal(t, strings.Repeat("n", 24), list.Posts[0].Nickname)
	assert.Equal(t, "first", list.Posts[1].Body)
	assert.Empty(t, list.Posts[1].Nickname)
}

func TestFeedback(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	w := s.do(t, http.MethodPost, "/feedback", `{"opinion":"hi","email":"bad"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid email format"}`, w.Body.String())

	for _, body := range []string{"", `{"email":"a@b.co"}`, `{"opinion":"   "}`, `{"opinion":" ","email":"bad"}`} {
		w = s.do(t, http.MethodPost, "/feedback", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		assert.JSONEq(t, `{"error":"Opinion is empty"}`, w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/feedback", `{"nickname":" kumo ","email":" Kumo@Example.COM ","opinion":" Lovely "}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	w = s.do(t, http.MethodPost, "/feedback", `{"opinion":"no contact details"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var feedback []models.FeedbackMessage
	require.NoError(t, s.db.Order("id").Find(&feedback).Error)
	require.Len(t, feedback, 2)
	assert.Equal(t, "kumo", feedback[0].Nickname)
	assert.Equal(t, "kumo@example.com", feedback[0].Email)
	assert.Equal(t, "Lovely", feedback[0].Opinion)
	assert.Empty(t, feedback[1].Email)
}

func TestNonStringFields(t *testing.T) {
	s := newTestServer(t, serverOptions{})

	blank := `{"name":" ","body":" ","opinion":" ","password":1234,"nickname":5,"email":7}`
	cases := []struct{ path, want string }{
		{"/rooms", "Room name is empty"},
		{"/message-board", "Message is empty"},
		{"/feedback", "Opinion is empty"},
	}
	for _, tc := range cases {
		w := s.do(t, http.MethodPost, tc.path, blank, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.path)
		assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, tc.want), w.Body.String())
	}

	// A numeric password is hashed as its text.
	id := s.createRoom(t, `{"name":"ok","password":1234}`)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, messagesPath(id), "", nil).Code)
	w := s.do(t, http.MethodPost, messagesPath(id), `{"author":7,"body":"hi"}`, map[string]string{auth.RoomPasswordHeader: "1234"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(t, http.MethodPost, messagesPath(id), `{"author":false,"body":true}`, map[string]string{auth.RoomPasswordHeader: "1234"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	list := decode[handler.MessageListResponse](t, s.do(t, http.MethodGet, messagesPath(id), "", map[string]string{auth.RoomPasswordHeader: "1234"}))
	require.Len(t, list.Messages, 2)
	assert.Equal(t, "7", list.Messages[0].Author)
	assert.Equal(t, "anon", list.Messages[1].Author)
	assert.Equal(t, "true", list.Messages[1].Body)

	w = s.do(t, http.MethodPost, "/message-board", `{"nickname":42,"body":3.5}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	posts := decode[handler.BoardPostListResponse](t, s.do(t, http.MethodGet, "/message-board", "", nil))
	require.Len(t, posts.Posts, 1)
	assert.Equal(t, "42", posts.Posts[0].Nickname)
	assert.Equal(t, "3.5", posts.Posts[0].Body)

	w = s.do(t, http.MethodPost, "/feedback", `{"nickname":5,"email":7,"opinion":"fine"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid email format"}`, w.Body.String())
	w = s.do(t, http.MethodPost, "/feedback", `{"nickname":5,"email":null,"opinion":"fine"}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var feedback []models.FeedbackMessage
	require.NoError(t, s.db.Find(&feedback).Error)
	require.Len(t, feedback, 1)
	assert.Equal(t, "5", feedback[0].Nickname)
	assert.Empty(t, feedback[0].Email)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, serverOptions{})
	id := s.createRoom(t, `{"name":"Room"}`)

	cases := []struct{ method, path string }{
		{http.MethodPut, "/rooms"},
		{http.MethodDelete, "/rooms"},
		{http.MethodPatch, messagesPath(id)},
		{http.MethodPut, "/rooms/abc/messages"},
		{http.MethodDelete, "/message-board"},
		{http.MethodGet, "/feedback"},
		{http.MethodGet, "/moby"},
	}
	for _, tc := range cases {
		w := s.do(t, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, "%s %s", tc.method, tc.path)
		assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
	}
}

func TestAPIPrefix(t *testing.T) {
	s := newTestServer(t, serverOptions{prefix: "/api"})

	w := s.do(t, http.MethodPost, "/api/rooms", `{"name":"Prefixed"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/api/rooms", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[handler.RoomListResponse](t, w).Rooms, 1)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/rooms", "", nil).Code)
}

func TestWriteRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	s := newTestServer(t, serverOptions{redisClient: client})

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/message-board", `{"body":"1"}`, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodPost, "/message-board", `{"body":"2"}`, nil).Code)
	w := s.do(t, http.MethodPost, "/message-board", `{"body":"3"}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Reads are never limited.
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/message-board", "", nil).Code)
}

func TestMoby(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		s := newTestServer(t, serverOptions{})
		w := s.do(t, http.MethodPost, "/moby", `{"messages":[]}`, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	var upstreamStatus atomic.Int32
	upstreamStatus.Store(http.StatusOK)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := int(upstreamStatus.Load())
		w.WriteHeader(status)
		if status == http.StatusOK {
			w.Write([]byte(`{"result":{"response":"こんにちは"}}`))
			return
		}
		w.Write([]byte(`{"errors":["quota"]}`))
	}))
	defer upstream.Close()

	client := moby.NewClient(moby.Config{BaseURL: upstream.URL, AccountID: "a", APIToken: "t", Model: "m", SystemPrompt: "p"})
	s := newTestServer(t, serverOptions{moby: client})

	t.Run("preflight", func(t *testing.T) {
		w := s.do(t, http.MethodOptions, "/moby", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("invalid messages", func(t *testing.T) {
		for _, body := range []string{"", `{}`, `{"messages":"hi"}`, `{"messages":null}`, `{"messages":{"role":"user"}}`} {
			w := s.do(t, http.MethodPost, "/moby", body, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
			assert.JSONEq(t, `{"error":"Invalid messages"}`, w.Body.String())
		}
	})

	t.Run("reply", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/moby", `{"messages":[{"role":"user","content":"hi"}]}`, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"response":"こんにちは"}`, w.Body.String())
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("forwards any array", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/moby", `{"messages":[1,"two",{"role":"user","content":["x"]}]}`, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.JSONEq(t, `{"response":"こんにちは"}`, w.Body.String())
	})

	t.Run("upstream error", func(t *testing.T) {
		upstreamStatus.Store(http.StatusBadGateway)
		defer upstreamStatus.Store(http.StatusOK)

		w := s.do(t, http.MethodPost, "/moby", `{"messages":[{"role":"user","content":"hi"}]}`, nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.JSONEq(t, `{"error":"Cloudflare AI Error","status":502,"details":{"errors":["quota"]}}`, w.Body.String())
	})
}

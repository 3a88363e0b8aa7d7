package api

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
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/XZHHHHHH/NearUliveS/internal/api/handler"
	"github.com/XZHHHHHH/NearUliveS/internal/config"
	"github.com/XZHHHHHH/NearUliveS/internal/model"
	"github.com/XZHHHHHH/NearUliveS/internal/repository"
	"github.com/XZHHHHHH/NearUliveS/internal/service"
)

type testApp struct {
	router *gin.Engine
	cfg    *config.Config
	db     *gorm.DB
	stop   func(context.Context) error
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.UserProfile{},
		&model.Post{}, &model.Like{}, &model.Comment{},
		&model.Notification{},
		&model.Conversation{}, &model.Message{},
	))

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret-0123456789abcdef",
			TokenTTL:   time.Hour,
			CookieName: "nearulives_token",
		},
	}

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	convRepo := repository.NewConversationRepository(db)
	msgRepo := repository.NewMessageRepository(db)

	notifier := service.NewNotifier(notificationRepo, 64)
	stop := notifier.Start(1)

	authService := service.NewAuthService(db, userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	profileService := service.NewProfileService(userRepo, profileRepo)
	postService := service.NewPostService(postRepo, likeRepo, commentRepo, userRepo, notifier)
	chatService := service.NewChatService(convRepo, msgRepo, nil)
	inboxService := service.NewInboxService(chatService, convRepo, msgRepo, profileService)
	notificationService := service.NewNotificationService(notificationRepo)

	h := handler.New(cfg.Auth, authService, profileService, postService, chatService, inboxService, notificationService)
	router := NewRouter(RouterOptions{Config: cfg, Handler: h, AuthService: authService})

	app := &testApp{router: router, cfg: cfg, db: db, stop: stop}
	t.Cleanup(func() { _ = app.stop(context.Background()) })
	return app
}

func (a *testApp) do(t *testing.T, method, path, cookie string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: a.cfg.Auth.CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register 通过 HTTP 注册并登录，返回 (userID, token cookie)
func (a *testApp) register(t *testing.T, email string) (int64, string) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": email, "password": "secret1", "confirmPassword": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			User struct {
				ID int64 `json:"id"`
			} `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == a.cfg.Auth.CookieName {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)
	return resp.Data.User.ID, token
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestChat_FirstContactScenario(t *testing.T) {
	app := newTestApp(t)

	u1, cookie1 := app.register(t, "u1@example.com")
	u2, cookie2 := app.register(t, "u2@example.com")

	// 首次互发：隐式建会话，消息未读
	w := app.do(t, http.MethodPost, "/api/chat/send", cookie1, gin.H{
		"senderId": u1, "receiverId": u2, "content": "hi",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sendResp struct {
		Message model.Message `json:"message"`
	}
	decodeData(t, w, &sendResp)
	require.False(t, sendResp.Message.Seen)
	require.Equal(t, "hi", sendResp.Message.Content)
	convID := sendResp.Message.ConversationID
	require.NotZero(t, convID)

	// 收件人视角：一个 thread，未读 1
	w = app.do(t, http.MethodGet, fmt.Sprintf("/api/chat/threads?userId=%d", u2), cookie2, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var threadsResp struct {
		Threads []struct {
			ConversationID int64          `json:"conversationId"`
			User           model.SafeUser `json:"user"`
			UnreadCount    int64          `json:"unreadCount"`
		} `json:"threads"`
	}
	decodeData(t, w, &threadsResp)
	require.Len(t, threadsResp.Threads, 1)
	require.Equal(t, convID, threadsResp.Threads[0].ConversationID)
	require.Equal(t, u1, threadsResp.Threads[0].User.ID)
	require.Equal(t, int64(1), threadsResp.Threads[0].UnreadCount)

	// 标记已读后未读归零
	w = app.do(t, http.MethodPost, "/api/chat/markSeen", cookie2, gin.H{
		"conversationId": convID, "userId": u2,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(t, http.MethodGet, fmt.Sprintf("/api/chat/threads?userId=%d", u2), cookie2, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &threadsResp)
	require.Zero(t, threadsResp.Threads[0].UnreadCount)
}

func TestChat_EmptyContentRejected(t *testing.T) {
	app := newTestApp(t)
	u1, cookie1 := app.register(t, "u1@example.com")
	u2, _ := app.register(t, "u2@example.com")

	for _, content := range []string{"", "   "} {
		w := app.do(t, http.MethodPost, "/api/chat/send", cookie1, gin.H{
			"senderId": u1, "receiverId": u2, "content": content,
		})
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	}

	// 一条消息都没落库
	var cnt int64
	require.NoError(t, app.db.Model(&model.Message{}).Count(&cnt).Error)
	require.Zero(t, cnt)
}

func TestChat_SelfConversationRejected(t *testing.T) {
	app := newTestApp(t)
	u1, cookie1 := app.register(t, "u1@example.com")

	w := app.do(t, http.MethodPost, "/api/chat/conversation", cookie1, gin.H{
		"userAId": u1, "userBId": u1,
	})
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestChat_ConversationReuse(t *testing.T) {
	app := newTestApp(t)
	u1, cookie1 := app.register(t, "u1@example.com")
	u2, cookie2 := app.register(t, "u2@example.com")

	w := app.do(t, http.MethodPost, "/api/chat/conversation", cookie1, gin.H{
		"userAId": u1, "userBId": u2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		ConversationID int64 `json:"conversationId"`
	}
	decodeData(t, w, &created)

	// 反向再来一次：200 + 同一个 id
	w = app.do(t, http.MethodPost, "/api/chat/conversation", cookie2, gin.H{
		"userAId": u2, "userBId": u1,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var reused struct {
		ConversationID int64 `json:"conversationId"`
	}
	decodeData(t, w, &reused)
	require.Equal(t, created.ConversationID, reused.ConversationID)
}

func TestChat_ThreadParticipantCheck(t *testing.T) {
	app := newTestApp(t)
	u1, cookie1 := app.register(t, "u1@example.com")
	u2, _ := app.register(t, "u2@example.com")
	u3, cookie3 := app.register(t, "u3@example.com")

	w := app.do(t, http.MethodPost, "/api/chat/send", cookie1, gin.H{
		"senderId": u1, "receiverId": u2, "content": "secret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var sendResp struct {
		Message model.Message `json:"message"`
	}
	decodeData(t, w, &sendResp)

	w = app.do(t, http.MethodGet,
		fmt.Sprintf("/api/chat/thread?conversationId=%d&userId=%d", sendResp.Message.ConversationID, u3),
		cookie3, nil)
	require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
}

func TestChat_RequiresAuth(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/api/chat/threads?userId=1", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.do(t, http.MethodGet, "/api/chat/threads?userId=1", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MeAndLogout(t *testing.T) {
	app := newTestApp(t)
	u1, cookie1 := app.register(t, "u1@example.com")

	w := app.do(t, http.MethodGet, "/api/auth/me", cookie1, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var me struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}
	decodeData(t, w, &me)
	require.Equal(t, u1, me.ID)
	require.Equal(t, "u1@example.com", me.Email)

	w = app.do(t, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_DuplicateEmailConflict(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "dup@example.com")

	w := app.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "dup@example.com", "password": "secret1", "confirmPassword": "secret1",
	})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	w := app.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

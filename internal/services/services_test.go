package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tg-dating-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatency_Pick(t *testing.T) {
	assert.Equal(t, time.Duration(0), Latency{}.Pick())
	assert.Equal(t, 5*time.Millisecond, Latency{Min: 5 * time.Millisecond}.Pick())

	l := Latency{Min: 10 * time.Millisecond, Max: 20 * time.Millisecond}
	for i := 0; i < 50; i++ {
		d := l.Pick()
		assert.GreaterOrEqual(t, d, l.Min)
		assert.LessOrEqual(t, d, l.Max)
	}
}

func TestLatency_WaitHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Latency{Min: time.Hour, Max: time.Hour}.Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSessionService_RoundTrip(t *testing.T) {
	s := NewSessionService("secret")

	token, err := s.Issue(user42)
	require.NoError(t, err)

	identity, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, user42, identity)

	_, err = s.Issue(models.Identity{})
	assert.ErrorIs(t, err, ErrIdentityRequired)
}

func TestSessionService_RejectsForeignOrExpiredTokens(t *testing.T) {
	issuer := NewSessionService("secret")
	token, err := issuer.Issue(user42)
	require.NoError(t, err)

	_, err = NewSessionService("other").Parse(token)
	assert.Error(t, err)

	late := NewSessionService("secret")
	late.clock = func() time.Time { return time.Now().Add(sessionTTL + time.Hour) }
	_, err = late.Parse(token)
	assert.Error(t, err)

	_, err = issuer.Parse("not-a-token")
	assert.Error(t, err)
}

func TestPhotoService_PresignUpload(t *testing.T) {
	s, err := NewPhotoService(context.Background(), PhotoOptions{
		Region:    "us-east-1",
		Bucket:    "profile-photos",
		AccessKey: "test",
		SecretKey: "test",
		Endpoint:  "http://localhost:9000",
		PublicURL: "https://cdn.example.com/",
	})
	require.NoError(t, err)

	resp, err := s.PresignUpload(context.Background(), user42, "selfie.PNG", "image/png")
	require.NoError(t, err)

	assert.Contains(t, resp.UploadURL, "localhost:9000/profile-photos/profiles/42/")
	assert.Contains(t, resp.UploadURL, "X-Amz-Signature=")
	assert.Equal(t, "https://cdn.example.com/profiles/42/"+resp.PhotoID+".png", resp.PhotoURL)
	assert.Equal(t, 300, resp.ExpiresIn)

	_, err = s.PresignUpload(context.Background(), models.Identity{}, "a.jpg", "")
	assert.ErrorIs(t, err, ErrIdentityRequired)
}

func TestNewPhotoService_RequiresBucket(t *testing.T) {
	_, err := NewPhotoService(context.Background(), PhotoOptions{Region: "us-east-1"})
	assert.Error(t, err)
}

func TestEventService(t *testing.T) {
	s := NewEventService()

	all := s.List("")
	community := s.List(EventCategoryCommunity)
	games := s.List(EventCategoryGame)
	assert.Len(t, community, 5)
	assert.Len(t, games, 3)
	assert.Len(t, all, len(community)+len(games))
	assert.Empty(t, s.List("unknown"))

	event, err := s.Get("spyfall-night")
	require.NoError(t, err)
	assert.Equal(t, "Spyfall Night", event.Title)
	assert.Equal(t, EventCategoryGame, event.Category)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestWSHub_PushesToRegisteredUser(t *testing.T) {
	hub := NewWSHub()
	upgrader := websocket.Upgrader{}
	registered := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(user42.Key(), conn)
		close(registered)
	}))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer client.Close()

	<-registered
	assert.True(t, hub.IsOnline(user42.Key()))
	assert.False(t, hub.IsOnline("7"))

	hub.MessageAppended(user42, "cand_1", models.ChatMessage{ID: "msg_1", Content: "hi"})

	_ = client.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, raw, err := client.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Type     string             `json:"type"`
		ThreadID string             `json:"thread_id"`
		Data     models.ChatMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, WSTypeMessageCreated, got.Type)
	assert.Equal(t, "cand_1", got.ThreadID)
	assert.Equal(t, "msg_1", got.Data.ID)

	assert.Error(t, hub.SendToUser("7", WSMessage{Type: WSTypePong}))
}

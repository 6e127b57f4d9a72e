package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"tg-dating-backend/internal/kv"
	"tg-dating-backend/internal/metrics"
	"tg-dating-backend/internal/models"
	"tg-dating-backend/internal/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var user42 = models.Identity{ID: 42, FirstName: "Lena", Username: "lena"}

// stepClock advances by one second on every call
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// recordingNotifier remembers every push it was asked to make
type recordingNotifier struct {
	mu       sync.Mutex
	matches  []models.MatchPreview
	messages []models.ChatMessage
}

func (n *recordingNotifier) MatchCreated(_ models.Identity, match models.MatchPreview) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.matches = append(n.matches, match)
}

func (n *recordingNotifier) MessageAppended(_ models.Identity, _ string, message models.ChatMessage) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func newTestStore(t *testing.T) (*Store, kv.Medium) {
	t.Helper()
	medium := kv.NewMemory()
	return NewStore(context.Background(), medium, Options{Clock: newStepClock().Now}), medium
}

func TestStore_FreshInstallScenario(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	profile, err := s.Profiles.GetProfile(ctx, user42)
	require.NoError(t, err)
	assert.Nil(t, profile)

	age := 21
	profile, err = s.Profiles.SaveProfile(ctx, user42, models.ProfilePatch{Age: &age, Photos: []string{"p1"}})
	require.NoError(t, err)
	assert.Equal(t, 21, profile.Age)
	assert.Equal(t, []string{"p1"}, profile.Photos)
	assert.Equal(t, profile.CreatedAt, profile.UpdatedAt)

	outcome, err := s.Matches.Swipe(ctx, user42, "cand_1", true)
	require.NoError(t, err)
	assert.Equal(t, models.SwipeOutcome{Matched: true, MatchID: "cand_1"}, outcome)

	matches, err := s.Matches.ListMatches(ctx, user42)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "cand_1", matches[0].MatchID)
	assert.Equal(t, "Аня", matches[0].User.FirstName)

	thread, err := s.Chats.GetThread(ctx, "cand_1", nil)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, "cand_1", thread[0].Sender.ID)
	assert.Equal(t, matchWelcome, thread[0].Content)
}

func TestProfileService_AbsentIdentity(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	profile, err := s.Profiles.GetProfile(ctx, models.Identity{})
	assert.NoError(t, err)
	assert.Nil(t, profile)

	_, err = s.Profiles.SaveProfile(ctx, models.Identity{}, models.ProfilePatch{})
	assert.ErrorIs(t, err, ErrIdentityRequired)
}

func TestProfileService_PartialSaveKeepsFields(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	age := 24
	first, err := s.Profiles.SaveProfile(ctx, user42, models.ProfilePatch{Age: &age, Photos: []string{"p1", "p2"}})
	require.NoError(t, err)

	bio := "hi"
	second, err := s.Profiles.SaveProfile(ctx, user42, models.ProfilePatch{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, 24, second.Age)
	assert.Equal(t, []string{"p1", "p2"}, second.Photos)
	assert.Equal(t, "hi", second.Bio)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	assert.True(t, second.LastSeen.After(first.LastSeen))

	stored, err := s.Profiles.GetProfile(ctx, user42)
	require.NoError(t, err)
	assert.Equal(t, second.Bio, stored.Bio)
}

func TestProfileService_BackfillsTimestampsOnRead(t *testing.T) {
	ctx := context.Background()
	s, medium := newTestStore(t)

	require.NoError(t, medium.Set(ctx, repository.KeyProfile, []byte(`{"id":"42","first_name":"Lena","age":30,"photos":[]}`)))

	profile, err := s.Profiles.GetProfile(ctx, user42)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.False(t, profile.CreatedAt.IsZero())
	assert.False(t, profile.UpdatedAt.IsZero())
	assert.False(t, profile.LastSeen.IsZero())

	// the fill is not written back
	raw, err := medium.Get(ctx, repository.KeyProfile)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "created_at")
}

func TestCandidateService_SeedStability(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	ids := func(cs []models.Candidate) []string {
		out := make([]string, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.ID)
		}
		return out
	}

	first, err := s.Candidates.ListCandidates(ctx, 3)
	require.NoError(t, err)
	second, err := s.Candidates.ListCandidates(ctx, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"cand_1", "cand_2", "cand_3"}, ids(first))
	assert.Equal(t, ids(first), ids(second))

	all, err := s.Candidates.ListCandidates(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, all, len(DefaultCandidates()))

	none, err := s.Candidates.ListCandidates(ctx, 0)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
	assert.Empty(t, s.Candidates.CachedCandidates(ctx, -1))

	assert.Equal(t, ids(first), ids(s.Candidates.CachedCandidates(ctx, 3)))
}

func TestCandidateService_ReseedsEmptyPool(t *testing.T) {
	ctx := context.Background()
	s, medium := newTestStore(t)

	require.NoError(t, medium.Set(ctx, repository.KeyCandidates, []byte(`[]`)))

	pool := s.Candidates.EnsureSeeded(ctx)
	assert.Len(t, pool, len(DefaultCandidates()))
	assert.Len(t, repository.NewCandidateRepository(medium).List(ctx), len(DefaultCandidates()))
}

func TestMatchService_LikeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	s := NewStore(ctx, kv.NewMemory(), Options{Clock: newStepClock().Now, Notifier: notifier})

	for i := 0; i < 2; i++ {
		outcome, err := s.Matches.Swipe(ctx, user42, "cand_2", true)
		require.NoError(t, err)
		assert.Equal(t, models.SwipeOutcome{Matched: true, MatchID: "cand_2"}, outcome)
	}

	matches, err := s.Matches.ListMatches(ctx, user42)
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	thread, err := s.Chats.GetThread(ctx, "cand_2", nil)
	require.NoError(t, err)
	assert.Len(t, thread, 1)

	assert.Len(t, notifier.matches, 1)
}

func TestMatchService_DislikeLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	outcome, err := s.Matches.Swipe(ctx, user42, "cand_3", false)
	require.NoError(t, err)
	assert.Equal(t, models.SwipeOutcome{}, outcome)

	matches, err := s.Matches.ListMatches(ctx, user42)
	require.NoError(t, err)
	assert.Empty(t, matches)

	thread, err := s.Chats.GetThread(ctx, "cand_3", nil)
	require.NoError(t, err)
	assert.Empty(t, thread)

	// a disliked candidate can still be liked later
	outcome, err = s.Matches.Swipe(ctx, user42, "cand_3", true)
	require.NoError(t, err)
	assert.True(t, outcome.Matched)
}

func TestMatchService_SoftFailures(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	outcome, err := s.Matches.Swipe(ctx, models.Identity{}, "cand_1", true)
	require.NoError(t, err)
	assert.False(t, outcome.Matched)

	outcome, err = s.Matches.Swipe(ctx, user42, "nobody", true)
	require.NoError(t, err)
	assert.False(t, outcome.Matched)

	matches, err := s.Matches.ListMatches(ctx, models.Identity{})
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = s.Matches.ListMatches(ctx, user42)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestMatchService_SnapshotIsDenormalized(t *testing.T) {
	ctx := context.Background()
	s, medium := newTestStore(t)

	_, err := s.Matches.Swipe(ctx, user42, "cand_1", true)
	require.NoError(t, err)

	pool := DefaultCandidates()
	pool[0].FirstName = "Renamed"
	repository.NewCandidateRepository(medium).Replace(ctx, pool)

	matches, err := s.Matches.ListMatches(ctx, user42)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Аня", matches[0].User.FirstName)

	peer, ok := s.Matches.Peer(ctx, "cand_1")
	require.True(t, ok)
	assert.Equal(t, "Аня", peer.FirstName)

	_, ok = s.Matches.Peer(ctx, "cand_4")
	assert.False(t, ok, "unmatched candidates have no peer")

	_, ok = s.Matches.Peer(ctx, "nobody")
	assert.False(t, ok)
}

func TestChatService_AppendOrdering(t *testing.T) {
	ctx := context.Background()
	notifier := &recordingNotifier{}
	s := NewStore(ctx, kv.NewMemory(), Options{Clock: newStepClock().Now, Notifier: notifier})

	_, err := s.Matches.Swipe(ctx, user42, "cand_1", true)
	require.NoError(t, err)

	var sent []string
	for _, text := range []string{"one", "two", "three"} {
		msg, err := s.Chats.AppendMessage(ctx, user42, "cand_1", text)
		require.NoError(t, err)
		assert.Equal(t, text, msg.Content)
		assert.Equal(t, models.MessageKindText, msg.Kind)
		assert.False(t, msg.IsRead)
		sent = append(sent, msg.ID)
	}

	thread, err := s.Chats.GetThread(ctx, "cand_1", nil)
	require.NoError(t, err)
	require.Len(t, thread, 4)

	var got []string
	for i, m := range thread[1:] {
		got = append(got, m.ID)
		assert.False(t, m.CreatedAt.Before(thread[i].CreatedAt))
	}
	assert.Equal(t, sent, got)
	assert.Len(t, notifier.messages, 3)
}

func TestChatService_AppendRequiresThread(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.Chats.AppendMessage(context.Background(), user42, "", "hello")
	assert.ErrorIs(t, err, ErrThreadRequired)
}

func TestChatService_SenderResolution(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	msg, err := s.Chats.AppendMessage(ctx, user42, "chat_anya", "before profile")
	require.NoError(t, err)
	assert.Equal(t, "42", msg.Sender.ID)
	assert.Equal(t, "Lena", msg.Sender.FirstName)
	assert.Equal(t, []string{models.DefaultAvatar}, msg.Sender.Photos)

	anonymous, err := s.Chats.AppendMessage(ctx, models.Identity{}, "chat_anya", "anon")
	require.NoError(t, err)
	assert.Equal(t, "0", anonymous.Sender.ID)
	assert.Equal(t, "Вы", anonymous.Sender.FirstName)

	age := 30
	name := "Елена"
	_, err = s.Profiles.SaveProfile(ctx, user42, models.ProfilePatch{FirstName: &name, Age: &age, Photos: []string{"p9"}})
	require.NoError(t, err)

	msg, err = s.Chats.AppendMessage(ctx, user42, "chat_anya", "after profile")
	require.NoError(t, err)
	assert.Equal(t, "Елена", msg.Sender.FirstName)
	assert.Equal(t, 30, msg.Sender.Age)
	assert.Equal(t, []string{"p9"}, msg.Sender.Photos)
}

func TestChatService_PresetSelfHeal(t *testing.T) {
	ctx := context.Background()
	s, medium := newTestStore(t)

	_, err := s.Matches.Swipe(ctx, user42, "cand_5", true)
	require.NoError(t, err)

	repository.NewMessageRepository(medium).Clear(ctx)

	thread, err := s.Chats.GetThread(ctx, "chat_anya", nil)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, presetGreeting, thread[0].Content)
	assert.Equal(t, "Когда выберемся на кофе? ☕️", thread[2].Content)
}

func TestChatService_PresetHistoryIsNotOverwritten(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.Chats.AppendMessage(ctx, user42, "chat_maria", "hey")
	require.NoError(t, err)

	_, err = s.Matches.Swipe(ctx, user42, "cand_1", true)
	require.NoError(t, err)

	s.Bootstrap(ctx)
	s.Chats.ListPresetChats(ctx)

	thread, err := s.Chats.GetThread(ctx, "chat_maria", nil)
	require.NoError(t, err)
	require.Len(t, thread, 4)
	assert.Equal(t, "hey", thread[3].Content)

	matchThread, err := s.Chats.GetThread(ctx, "cand_1", nil)
	require.NoError(t, err)
	assert.Len(t, matchThread, 1)
}

func TestChatService_GetThreadWithPeer(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	thread, err := s.Chats.GetThread(ctx, "cand_4", nil)
	require.NoError(t, err)
	assert.Empty(t, thread)

	peer := DefaultCandidates()[3]
	thread, err = s.Chats.GetThread(ctx, "cand_4", &peer)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, "cand_4", thread[0].Sender.ID)

	thread, err = s.Chats.GetThread(ctx, "cand_4", &peer)
	require.NoError(t, err)
	assert.Len(t, thread, 1)

	thread, err = s.Chats.GetThread(ctx, "", &peer)
	require.NoError(t, err)
	assert.Empty(t, thread)
}

func TestChatService_ListPresetChats(t *testing.T) {
	s, _ := newTestStore(t)

	chats := s.Chats.ListPresetChats(context.Background())
	require.Len(t, chats, 3)
	assert.Equal(t, "chat_anya", chats[0].ID)
	assert.Equal(t, 2, chats[0].UnreadCount)
	assert.True(t, s.Chats.IsPreset("chat_katya"))
	assert.False(t, s.Chats.IsPreset("cand_1"))
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.Matches.Swipe(ctx, user42, "cand_1", true)
	require.NoError(t, err)

	require.NoError(t, s.Reset(ctx))

	matches, err := s.Matches.ListMatches(ctx, user42)
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Len(t, s.Candidates.CachedCandidates(ctx, DefaultCandidateLimit), len(DefaultCandidates()))
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	var sum float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
	}
	return sum
}

func TestStore_Metrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	s := NewStore(ctx, kv.NewMemory(), Options{Clock: newStepClock().Now, Metrics: m})
	_, err := s.Matches.Swipe(ctx, user42, "cand_1", true)
	require.NoError(t, err)
	_, err = s.Matches.Swipe(ctx, user42, "cand_1", true)
	require.NoError(t, err)
	_, err = s.Matches.Swipe(ctx, user42, "cand_2", false)
	require.NoError(t, err)
	_, err = s.Chats.AppendMessage(ctx, user42, "cand_1", "hi")
	require.NoError(t, err)

	assert.Equal(t, 3.0, counterValue(t, reg, "datingsim_swipes_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "datingsim_matches_created_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "datingsim_messages_appended_total"))
	// one pool seed plus three preset threads at bootstrap
	assert.Equal(t, 4.0, counterValue(t, reg, "datingsim_reseeds_total"))
}

func TestTenants_IsolatePlatformUsers(t *testing.T) {
	ctx := context.Background()
	tenants := NewTenants(kv.NewMemory(), Options{Clock: newStepClock().Now})

	_, err := tenants.For(ctx, models.Identity{})
	assert.ErrorIs(t, err, ErrIdentityRequired)

	a, err := tenants.For(ctx, user42)
	require.NoError(t, err)
	again, err := tenants.For(ctx, user42)
	require.NoError(t, err)
	assert.Same(t, a, again)

	other := models.Identity{ID: 7, FirstName: "Ivan"}
	b, err := tenants.For(ctx, other)
	require.NoError(t, err)

	_, err = a.Matches.Swipe(ctx, user42, "cand_1", true)
	require.NoError(t, err)

	matches, err := b.Matches.ListMatches(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestStore_ConcurrentLikesCreateOneMatch(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Matches.Swipe(ctx, user42, "cand_2", true)
		}()
	}
	wg.Wait()

	matches, err := s.Matches.ListMatches(ctx, user42)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

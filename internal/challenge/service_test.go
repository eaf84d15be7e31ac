package challenge

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StavLobel/whats-the-chance-game/internal/domain"
	"github.com/StavLobel/whats-the-chance-game/internal/event"
	"github.com/StavLobel/whats-the-chance-game/internal/notify"
	"github.com/StavLobel/whats-the-chance-game/internal/store"
)

// notifierRecorder captures realtime messages for assertions
type notifierRecorder struct {
	mu       sync.Mutex
	messages []recordedMessage
}

type recordedMessage struct {
	UserIDs []string
	Message notify.Message
}

func (r *notifierRecorder) Notify(_ context.Context, userIDs []string, msg notify.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, recordedMessage{UserIDs: userIDs, Message: msg})
}

func (r *notifierRecorder) byType(msgType string) []recordedMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []recordedMessage
	for _, m := range r.messages {
		if m.Message.Type == msgType {
			out = append(out, m)
		}
	}
	return out
}

func newTestService(t *testing.T) (Service, *store.Memory, *notifierRecorder) {
	t.Helper()
	st := store.NewMemory()
	rec := &notifierRecorder{}
	return NewService(st, event.NewMemoryBus(), rec, nil), st, rec
}

func mustCreate(t *testing.T, svc Service, fromUser, toUser string) *domain.Challenge {
	t.Helper()
	ch, err := svc.Create(context.Background(), fromUser, toUser, "do a backflip")
	require.NoError(t, err)
	return ch
}

func mustAccept(t *testing.T, svc Service, ch *domain.Challenge) *domain.Challenge {
	t.Helper()
	accepted, err := svc.Respond(context.Background(), ch.ID, ch.ToUser, true, &domain.ChallengeRange{Min: 1, Max: 10})
	require.NoError(t, err)
	return accepted
}

func TestCreate_Success(t *testing.T) {
	svc, st, rec := newTestService(t)
	ctx := context.Background()

	ch, err := svc.Create(ctx, "alice", "bob", "  eat a whole lemon  ")

	require.NoError(t, err)
	assert.NotEmpty(t, ch.ID)
	assert.Equal(t, "alice", ch.FromUser)
	assert.Equal(t, "bob", ch.ToUser)
	assert.Equal(t, "eat a whole lemon", ch.Description)
	assert.Equal(t, domain.StatusPending, ch.Status)
	assert.Nil(t, ch.Range)
	assert.False(t, ch.CreatedAt.IsZero())

	data, err := st.Get(ctx, store.CollectionChallenges, ch.ID)
	require.NoError(t, err)
	var stored domain.Challenge
	require.NoError(t, store.Decode(data, &stored))
	assert.Equal(t, "eat a whole lemon", stored.Description)

	created := rec.byType(notify.TypeChallengeCreated)
	require.Len(t, created, 1)
	assert.Equal(t, []string{"bob"}, created[0].UserIDs)
	assert.Equal(t, ch.ID, created[0].Message.Data["challenge_id"])
}

func TestCreate_SelfChallenge(t *testing.T) {
	svc, _, _ := newTestService(t)

	ch, err := svc.Create(context.Background(), "alice", "alice", "challenge myself")

	assert.Nil(t, ch)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), ErrDetailSelfChallenge)
}

func TestCreate_EmptyDescription(t *testing.T) {
	svc, _, _ := newTestService(t)

	ch, err := svc.Create(context.Background(), "alice", "bob", "   ")

	assert.Nil(t, ch)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), ErrDetailEmptyDescription)
}

func TestCreate_DescriptionTooLong(t *testing.T) {
	svc, _, _ := newTestService(t)

	ch, err := svc.Create(context.Background(), "alice", "bob", strings.Repeat("x", domain.DescriptionMaxLength+1))

	assert.Nil(t, ch)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), ErrDetailDescriptionTooLong)
}

func TestCreate_BlankUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	ch, err := svc.Create(context.Background(), "  ", "bob", "something")

	assert.Nil(t, ch)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRespond_Accept(t *testing.T) {
	svc, _, rec := newTestService(t)
	ctx := context.Background()
	ch := mustCreate(t, svc, "alice", "bob")

	updated, err := svc.Respond(ctx, ch.ID, "bob", true, &domain.ChallengeRange{Min: 1, Max: 50})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, updated.Status)
	require.NotNil(t, updated.Range)
	assert.Equal(t, 1, updated.Range.Min)
	assert.Equal(t, 50, updated.Range.Max)
	require.NotNil(t, updated.AcceptedAt)

	msgs := rec.byType(notify.TypeChallengeUpdated)
	require.Len(t, msgs, 1)
	assert.ElementsMatch(t, []string{"alice", "bob"}, msgs[0].UserIDs)
	assert.Equal(t, "accepted", msgs[0].Message.Data["status"])
}

func TestRespond_Reject(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ch := mustCreate(t, svc, "alice", "bob")

	updated, err := svc.Respond(ctx, ch.ID, "bob", false, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, updated.Status)
	assert.Nil(t, updated.Range)
	assert.Nil(t, updated.AcceptedAt)
}

func TestRespond_NotRecipient(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ch := mustCreate(t, svc, "alice", "bob")

	_, err := svc.Respond(ctx, ch.ID, "alice", true, &domain.ChallengeRange{Min: 1, Max: 10})
	assert.ErrorIs(t, err, domain.ErrNotRecipient)

	_, err = svc.Respond(ctx, ch.ID, "mallory", false, nil)
	assert.ErrorIs(t, err, domain.ErrNotRecipient)
}

func TestRespond_NotPending(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ch := mustCreate(t, svc, "alice", "bob")
	mustAccept(t, svc, ch)

	_, err := svc.Respond(ctx, ch.ID, "bob", true, &domain.ChallengeRange{Min: 1, Max: 10})

	assert.ErrorIs(t, err, domain.ErrChallengeNotPending)
}

func TestRespond_MissingRange(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ch := mustCreate(t, svc, "alice", "bob")

	_, err := svc.Respond(ctx, ch.ID, "bob", true, nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), ErrDetailRangeRequired)
}

func TestRespond_InvalidRange(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		rng  domain.ChallengeRange
	}{
		{"min below bound", domain.ChallengeRange{Min: 0, Max: 10}},
		{"max above bound", domain.ChallengeRange{Min: 1, Max: 101}},
		{"min equals max", domain.ChallengeRange{Min: 5, Max: 5}},
		{"inverted", domain.ChallengeRange{Min: 10, Max: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ch := mustCreate(t, svc, "alice", "bob")
			_, err := svc.Respond(ctx, ch.ID, "bob", true, &tc.rng)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), "range")
		})
	}
}

func TestRespond_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Respond(context.Background(), "missing", "bob", false, nil)

	assert.ErrorIs(t, err, domain.ErrChallengeNotFound)
}

func TestSubmitNumber_FirstMovesToActive(t *testing.T) {
	svc, st, rec := newTestService(t)
	ctx := context.Background()
	ch := mustAccept(t, svc, mustCreate(t, svc, "alice", "bob"))

	updated, err := svc.SubmitNumber(ctx, ch.ID, "alice", 7)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, updated.Status)
	assert.Equal(t, map[string]int{"alice": 7}, updated.Numbers)

	data, err := st.Get(ctx, store.CollectionNumberSelections, ch.ID+domain.SelectionSuffixFrom)
	require.NoError(t, err)
	var sel domain.NumberSelection
	require.NoError(t, store.Decode(data, &sel))
	assert.Equal(t, "alice", sel.UserID)
	assert.Equal(t, 7, sel.Number)
	assert.Equal(t, ch.ID, sel.ChallengeID)

	// The opponent is told someone moved; the submitting user is not.
	msgs := rec.byType(notify.TypeChallengeUpdated)
	submitMsg := msgs[len(msgs)-1]
	assert.Equal(t, []string{"bob"}, submitMsg.UserIDs)
	assert.Equal(t, "alice", submitMsg.Message.Data["submitted_by"])
}

func TestSubmitNumber_SecondCompletesMatch(t *testing.T) {
	svc, st, rec := newTestService(t)
	ctx := context.Background()
	ch := mustAccept(t, svc, mustCreate(t, svc, "alice", "bob"))

	_, err := svc.SubmitNumber(ctx, ch.ID, "alice", 4)
	require.NoError(t, err)
	final, err := svc.SubmitNumber(ctx, ch.ID, "bob", 4)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCompleted, final.Status)
	assert.Equal(t, domain.ResultMatch, final.Result)
	require.NotNil(t, final.CompletedAt)

	data, err := st.Get(ctx, store.CollectionChallengeResults, ch.ID)
	require.NoError(t, err)
	var result domain.ChallengeResult
	require.NoError(t, store.Decode(data, &result))
	assert.Equal(t, "alice", result.Winner)
	assert.Equal(t, 4, result.FromUserNumber)
	assert.Equal(t, 4, result.ToUserNumber)
	require.NotNil(t, result.ResponseTimeFromUser)
	require.NotNil(t, result.ResponseTimeToUser)
	assert.GreaterOrEqual(t, *result.ResponseTimeFromUser, 0.0)

	completed := rec.byType(notify.TypeChallengeCompleted)
	require.Len(t, completed, 1)
	assert.ElementsMatch(t, []string{"alice", "bob"}, completed[0].UserIDs)
	assert.Equal(t, "match", completed[0].Message.Data["result"])
	assert.Equal(t, "alice", completed[0].Message.Data["winner"])
}

func TestSubmitNumber_SecondCompletesNoMatch(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	ch := mustAccept(t, svc, mustCreate(t, svc, "alice", "bob"))

	_, err := svc.SubmitNumber(ctx, ch.ID, "bob", 2)
	require.NoError(t, err)
	final, err := svc.SubmitNumber(ctx, ch.ID, "alice", 9)
	require.NoError(t, err)

	assert.Equal(t, domain.ResultNoMatch, final.Result)

	data, err := st.Get(ctx, store.CollectionChallengeResults, ch.ID)
	require.NoError(t, err)
	var result domain.ChallengeResult
	require.NoError(t, store.Decode(data, &result))
	assert.Empty(t, result.Winner)
}

func TestSubmitNumber_ResubmissionOverwrites(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	ch := mustAccept(t, svc, mustCreate(t, svc, "alice", "bob"))

	_, err := svc.SubmitNumber(ctx, ch.ID, "alice", 3)
	require.NoError(t, err)
	updated, err := svc.SubmitNumber(ctx, ch.ID, "alice", 8)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusActive, updated.Status)
	assert.Equal(t, map[string]int{"alice": 8}, updated.Numbers)

	data, err := st.Get(ctx, store.CollectionNumberSelections, ch.ID+domain.SelectionSuffixFrom)
	require.NoError(t, err)
	var sel domain.NumberSelection
	require.NoError(t, store.Decode(data, &sel))
	assert.Equal(t, 8, sel.Number)
}

func TestSubmitNumber_OutsideRange(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ch := mustAccept(t, svc, mustCreate(t, svc, "alice", "bob"))

	_, err := svc.SubmitNumber(ctx, ch.ID, "alice", 11)

	assert.ErrorIs(t, err, domain.ErrNumberOutside)
}

func TestSubmitNumber_BelowOne(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ch := mustAccept(t, svc, mustCreate(t, svc, "alice", "bob"))

	_, err := svc.SubmitNumber(ctx, ch.ID, "alice", 0)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), ErrDetailNumberTooSmall)
}

func TestSubmitNumber_NotParticipant(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ch := mustAccept(t, svc, mustCreate(t, svc, "alice", "bob"))

	_, err := svc.SubmitNumber(ctx, ch.ID, "mallory", 5)

	assert.ErrorIs(t, err, domain.ErrNotParticipant)
}

func TestSubmitNumber_NotOpen(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ch := mustCreate(t, svc, "alice", "bob")

	_, err := svc.SubmitNumber(ctx, ch.ID, "alice", 5)

	assert.ErrorIs(t, err, domain.ErrChallengeNotOpen)
}

func TestResolve_Success(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	ch := mustAccept(t, svc, mustCreate(t, svc, "alice", "bob"))

	outcome, err := svc.Resolve(ctx, ch.ID, map[string]int{"alice": 6, "bob": 6}, "alice")

	require.NoError(t, err)
	assert.Equal(t, ch.ID, outcome.ChallengeID)
	assert.Equal(t, domain.ResultMatch, outcome.Result)
	assert.Equal(t, map[string]int{"alice": 6, "bob": 6}, outcome.Numbers)
	assert.False(t, outcome.ResolvedAt.IsZero())

	data, err := st.Get(ctx, store.CollectionChallenges, ch.ID)
	require.NoError(t, err)
	var stored domain.Challenge
	require.NoError(t, store.Decode(data, &stored))
	assert.Equal(t, domain.StatusCompleted, stored.Status)

	resultData, err := st.Get(ctx, store.CollectionChallengeResults, ch.ID)
	require.NoError(t, err)
	var result domain.ChallengeResult
	require.NoError(t, store.Decode(resultData, &result))
	assert.Equal(t, "alice", result.Winner)
	// No stored selections, so response times are unknown.
	assert.Nil(t, result.ResponseTimeFromUser)
	assert.Nil(t, result.ResponseTimeToUser)
}

func TestResolve_AfterOneSubmission(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()
	ch := mustAccept(t, svc, mustCreate(t, svc, "alice", "bob"))
	_, err := svc.SubmitNumber(ctx, ch.ID, "alice", 3)
	require.NoError(t, err)

	outcome, err := svc.Resolve(ctx, ch.ID, map[string]int{"alice": 3, "bob": 7}, "bob")

	require.NoError(t, err)
	assert.Equal(t, domain.ResultNoMatch, outcome.Result)

	resultData, err := st.Get(ctx, store.CollectionChallengeResults, ch.ID)
	require.NoError(t, err)
	var result domain.ChallengeResult
	require.NoError(t, store.Decode(resultData, &result))
	require.NotNil(t, result.ResponseTimeFromUser)
	assert.Nil(t, result.ResponseTimeToUser)
}

func TestResolve_NumbersCount(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ch := mustAccept(t, svc, mustCreate(t, svc, "alice", "bob"))

	_, err := svc.Resolve(ctx, ch.ID, map[string]int{"alice": 3}, "alice")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), ErrDetailNumbersCount)
}

func TestResolve_WrongParticipants(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ch := mustAccept(t, svc, mustCreate(t, svc, "alice", "bob"))

	_, err := svc.Resolve(ctx, ch.ID, map[string]int{"alice": 3, "mallory": 3}, "alice")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), ErrDetailNumbersParticipants)
}

func TestResolve_NotParticipant(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ch := mustAccept(t, svc, mustCreate(t, svc, "alice", "bob"))

	_, err := svc.Resolve(ctx, ch.ID, map[string]int{"alice": 3, "bob": 3}, "mallory")

	assert.ErrorIs(t, err, domain.ErrNotParticipant)
}

func TestResolve_AlreadyCompleted(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ch := mustAccept(t, svc, mustCreate(t, svc, "alice", "bob"))
	_, err := svc.Resolve(ctx, ch.ID, map[string]int{"alice": 3, "bob": 3}, "alice")
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, ch.ID, map[string]int{"alice": 5, "bob": 5}, "alice")

	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestResolve_Pending(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ch := mustCreate(t, svc, "alice", "bob")

	_, err := svc.Resolve(ctx, ch.ID, map[string]int{"alice": 3, "bob": 3}, "alice")

	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestGet_Participant(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ch := mustCreate(t, svc, "alice", "bob")

	got, err := svc.Get(ctx, ch.ID, "bob")

	require.NoError(t, err)
	assert.Equal(t, ch.ID, got.ID)
	assert.Equal(t, ch.Description, got.Description)
}

func TestGet_NotParticipant(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	ch := mustCreate(t, svc, "alice", "bob")

	_, err := svc.Get(ctx, ch.ID, "mallory")

	assert.ErrorIs(t, err, domain.ErrNotParticipant)
}

func TestGet_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Get(context.Background(), "missing", "alice")

	assert.ErrorIs(t, err, domain.ErrChallengeNotFound)
}

func TestList_OrderAndPagination(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	first := mustCreate(t, svc, "alice", "bob")
	time.Sleep(2 * time.Millisecond)
	second := mustCreate(t, svc, "carol", "alice")
	time.Sleep(2 * time.Millisecond)
	third := mustCreate(t, svc, "alice", "dave")

	page1, err := svc.List(ctx, "alice", "", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page1.Total)
	require.Len(t, page1.Challenges, 2)
	assert.Equal(t, third.ID, page1.Challenges[0].ID)
	assert.Equal(t, second.ID, page1.Challenges[1].ID)

	page2, err := svc.List(ctx, "alice", "", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page2.Total)
	require.Len(t, page2.Challenges, 1)
	assert.Equal(t, first.ID, page2.Challenges[0].ID)
}

func TestList_StatusFilter(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	pending := mustCreate(t, svc, "alice", "bob")
	accepted := mustCreate(t, svc, "alice", "carol")
	mustAccept(t, svc, accepted)

	list, err := svc.List(ctx, "alice", "pending", 1, 10)

	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	require.Len(t, list.Challenges, 1)
	assert.Equal(t, pending.ID, list.Challenges[0].ID)
}

func TestList_UnknownStatus(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.List(context.Background(), "alice", "bogus", 1, 10)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), ErrDetailUnknownStatus)
}

func TestList_Empty(t *testing.T) {
	svc, _, _ := newTestService(t)

	list, err := svc.List(context.Background(), "nobody", "", 1, 10)

	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
	assert.Empty(t, list.Challenges)
}

func TestList_ClampsPagination(t *testing.T) {
	svc, _, _ := newTestService(t)
	mustCreate(t, svc, "alice", "bob")

	list, err := svc.List(context.Background(), "alice", "", -3, 0)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPage, list.Page)
	assert.Equal(t, domain.DefaultPerPage, list.PerPage)
	assert.Len(t, list.Challenges, 1)
}

func TestStats_CountsSentChallenges(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	won := mustAccept(t, svc, mustCreate(t, svc, "alice", "bob"))
	_, err := svc.Resolve(ctx, won.ID, map[string]int{"alice": 5, "bob": 5}, "alice")
	require.NoError(t, err)

	lost := mustAccept(t, svc, mustCreate(t, svc, "alice", "carol"))
	_, err = svc.Resolve(ctx, lost.ID, map[string]int{"alice": 2, "carol": 9}, "alice")
	require.NoError(t, err)

	mustCreate(t, svc, "alice", "dave")

	// Received challenges do not count toward alice's stats.
	incoming := mustAccept(t, svc, mustCreate(t, svc, "dave", "alice"))
	_, err = svc.Resolve(ctx, incoming.ID, map[string]int{"dave": 1, "alice": 1}, "alice")
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, "alice")

	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalChallenges)
	assert.Equal(t, 1, stats.PendingChallenges)
	assert.Equal(t, 0, stats.ActiveChallenges)
	assert.Equal(t, 2, stats.CompletedChallenges)
	assert.Equal(t, 1, stats.MatchesWon)
	assert.Equal(t, 1, stats.MatchesLost)
}

func TestLifecycleEvents(t *testing.T) {
	st := store.NewMemory()
	bus := event.NewMemoryBus()
	svc := NewService(st, bus, notify.Noop{}, nil)
	ctx := context.Background()

	var mu sync.Mutex
	counts := make(map[event.Type]int)
	statuses := []string{}
	record := func(_ context.Context, evt event.Event) error {
		mu.Lock()
		defer mu.Unlock()
		counts[evt.Type]++
		if s, ok := evt.GetMetadataValue("status").(string); ok {
			statuses = append(statuses, s)
		}
		return nil
	}
	bus.Subscribe(event.ChallengeCreated, record)
	bus.Subscribe(event.ChallengeUpdated, record)
	bus.Subscribe(event.ChallengeCompleted, record)

	ch := mustCreate(t, svc, "alice", "bob")
	mustAccept(t, svc, ch)
	_, err := svc.SubmitNumber(ctx, ch.ID, "alice", 2)
	require.NoError(t, err)
	_, err = svc.SubmitNumber(ctx, ch.ID, "bob", 2)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, counts[event.ChallengeCreated])
	assert.Equal(t, 2, counts[event.ChallengeUpdated])
	assert.Equal(t, 1, counts[event.ChallengeCompleted])
	assert.Equal(t, []string{"accepted", "active"}, statuses)
}

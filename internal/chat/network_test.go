package chat

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/wirechat-gamebot/internal/notify"
)

type staticPolicy map[string]bool

func (p staticPolicy) DeliveryMode(user string) notify.DeliveryMode {
	if p[user] {
		return notify.DeliveryDirect
	}
	return notify.DeliveryNotice
}

type recordingListener struct {
	joined []string
	parted []string
}

func (l *recordingListener) UserJoined(room, nick string) { l.joined = append(l.joined, room+":"+nick) }
func (l *recordingListener) UserParted(room, nick string) { l.parted = append(l.parted, room+":"+nick) }

func drain(c *Client) []Event {
	var out []Event
	for {
		select {
		case ev := <-c.Events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestConnectRejectsDuplicateAndInvalidNicks(t *testing.T) {
	n := NewNetwork("gamebot", nil, clock.NewMock(), nil)

	_, err := n.Connect("alice", "")
	require.NoError(t, err)

	_, err = n.Connect("alice", "")
	require.ErrorIs(t, err, ErrNickInUse)

	_, err = n.Connect("GameBot", "")
	require.ErrorIs(t, err, ErrInvalidNick)

	_, err = n.Connect("two words", "")
	require.ErrorIs(t, err, ErrInvalidNick)
}

func TestJoinSayPart(t *testing.T) {
	n := NewNetwork("gamebot", nil, clock.NewMock(), nil)
	l := &recordingListener{}
	n.AddListener(l)

	alice, _ := n.Connect("alice", "")
	bob, _ := n.Connect("bob", "")
	require.NoError(t, n.JoinRoom(alice, "#games"))
	require.NoError(t, n.JoinRoom(bob, "#games"))
	require.True(t, n.InRoom("#games", "alice"))
	require.Equal(t, []string{"alice", "bob"}, n.Members("#games"))
	drain(alice)

	require.NoError(t, n.Say(bob, "#games", "hello"))
	events := drain(alice)
	require.Len(t, events, 1)
	require.Equal(t, EventRoomMessage, events[0].Kind)
	require.Equal(t, "bob", events[0].From)
	require.Equal(t, "hello", events[0].Text)

	require.NoError(t, n.PartRoom(bob, "#games"))
	require.ErrorIs(t, n.PartRoom(bob, "#games"), ErrNotInRoom)
	require.False(t, n.InRoom("#games", "bob"))

	require.Equal(t, []string{"#games:alice", "#games:bob"}, l.joined)
	require.Equal(t, []string{"#games:bob"}, l.parted)
}

func TestModeratedRoomRequiresVoice(t *testing.T) {
	n := NewNetwork("gamebot", nil, clock.NewMock(), nil)
	alice, _ := n.Connect("alice", "")
	require.NoError(t, n.JoinRoom(alice, "#games"))

	n.SetModerated("#games", true)
	require.True(t, n.Moderated("#games"))
	require.ErrorIs(t, n.Say(alice, "#games", "hi"), ErrCannotSpeak)

	n.Voice("#games", "alice")
	require.True(t, n.Voiced("#games", "alice"))
	require.NoError(t, n.Say(alice, "#games", "hi"))

	n.Devoice("#games", "alice")
	require.False(t, n.Voiced("#games", "alice"))

	n.SetModerated("#games", false)
	require.NoError(t, n.Say(alice, "#games", "hi again"))
}

func TestVoiceRequiresPresence(t *testing.T) {
	n := NewNetwork("gamebot", nil, clock.NewMock(), nil)
	alice, _ := n.Connect("alice", "")
	_, _ = n.Connect("bob", "")
	require.NoError(t, n.JoinRoom(alice, "#games"))

	n.Voice("#games", "bob")
	require.False(t, n.Voiced("#games", "bob"))
}

func TestSendPrivateFollowsDeliveryPolicy(t *testing.T) {
	n := NewNetwork("gamebot", staticPolicy{"bob": true}, clock.NewMock(), nil)
	alice, _ := n.Connect("alice", "")
	bob, _ := n.Connect("bob", "")

	n.SendPrivate("alice", "psst")
	n.SendPrivate("bob", "psst")

	a := drain(alice)
	require.Len(t, a, 1)
	require.Equal(t, EventNotice, a[0].Kind)
	require.Equal(t, "gamebot", a[0].From)

	b := drain(bob)
	require.Len(t, b, 1)
	require.Equal(t, EventPrivateMessage, b[0].Kind)
}

func TestIdleTimeTracksActivity(t *testing.T) {
	clk := clock.NewMock()
	n := NewNetwork("gamebot", nil, clk, nil)
	alice, _ := n.Connect("alice", "")
	require.NoError(t, n.JoinRoom(alice, "#games"))
	ctx := context.Background()

	clk.Add(10 * time.Minute)
	idle, err := n.IdleTime(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, 10*time.Minute, idle)

	require.NoError(t, n.Say(alice, "#games", "still here"))
	idle, err = n.IdleTime(ctx, "alice")
	require.NoError(t, err)
	require.Zero(t, idle)

	clk.Add(time.Minute)
	n.Touch("alice")
	idle, _ = n.IdleTime(ctx, "alice")
	require.Zero(t, idle)

	_, err = n.IdleTime(ctx, "nobody")
	require.ErrorIs(t, err, ErrNoSuchUser)
}

func TestDisconnectPartsEverywhere(t *testing.T) {
	n := NewNetwork("gamebot", nil, clock.NewMock(), nil)
	l := &recordingListener{}
	n.AddListener(l)

	alice, _ := n.Connect("alice", "acct-alice")
	require.NoError(t, n.JoinRoom(alice, "#a"))
	require.NoError(t, n.JoinRoom(alice, "#b"))

	acct, ok := n.Account("alice")
	require.True(t, ok)
	require.Equal(t, "acct-alice", acct)

	n.Disconnect(alice)
	require.False(t, n.Online(context.Background(), "alice"))
	require.Equal(t, []string{"#a:alice", "#b:alice"}, l.parted)

	_, ok = n.Account("alice")
	require.False(t, ok)

	// events channel is closed after the final part events
	for range alice.Events {
	}

	// nick is free again
	_, err := n.Connect("alice", "")
	require.NoError(t, err)
}

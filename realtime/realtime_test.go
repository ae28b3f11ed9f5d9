package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"food-delivery-app/config"
	"food-delivery-app/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChannel(t *testing.T) {
	cases := []struct {
		in       string
		kind, id string
		ok       bool
	}{
		{OrderChannel("ORD-20261018-ABCDEF"), KindOrder, "ORD-20261018-ABCDEF", true},
		{DriverChannel("d1"), KindDriver, "d1", true},
		{RestaurantChannel("r-1"), KindRestaurant, "r-1", true},
		{UserChannel("u1"), KindUser, "u1", true},
		{"orders", "", "", false},
		{"private-order", "", "", false},
		{"private-order-", "", "", false},
	}
	for _, tc := range cases {
		kind, id, ok := ParseChannel(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.Equal(t, tc.kind, kind, tc.in)
			assert.Equal(t, tc.id, id, tc.in)
		}
	}
}

func TestRoutingKey(t *testing.T) {
	ev := Event{Channel: OrderChannel("ORD-1"), Payload: StatusUpdated{OrderNumber: "ORD-1", Status: models.StatusReady}}
	assert.Equal(t, "order.status-updated", RoutingKey(ev))

	ev = Event{Channel: "garbage", Payload: OrderCreated{OrderNumber: "ORD-1"}}
	assert.Equal(t, "unknown.order-created", RoutingKey(ev))
}

type failing struct{ err error }

func (f failing) Publish(context.Context, Event) error { return f.err }

type counting struct{ n int }

func (c *counting) Publish(context.Context, Event) error {
	c.n++
	return nil
}

func TestFanoutPublishesToAllAndJoinsErrors(t *testing.T) {
	errA, errB := errors.New("a down"), errors.New("b down")
	c := &counting{}
	f := Fanout{failing{errA}, c, failing{errB}, Nop{}}

	err := f.Publish(context.Background(), Event{Channel: UserChannel("u1"), Payload: NotificationCreated{ID: "n1"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, 1, c.n)

	assert.NoError(t, Fanout{c}.Publish(context.Background(), Event{Channel: UserChannel("u1"), Payload: NotificationCreated{ID: "n2"}}))
}

func TestBestEffortSwallowsErrors(t *testing.T) {
	assert.NotPanics(t, func() {
		BestEffort(context.Background(), failing{errors.New("down")}, Event{Channel: "x", Payload: OrderCreated{}})
		BestEffort(context.Background(), nil, Event{Channel: "x", Payload: OrderCreated{}})
	})
}

func TestPusherDisabled(t *testing.T) {
	p := NewPusher(config.PusherConfig{})
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Publish(context.Background(), Event{Channel: "x", Payload: OrderCreated{}}))
	_, err := p.Authorize("1.1", UserChannel("u1"))
	assert.ErrorIs(t, err, ErrPusherDisabled)
}

func TestPusherAuthorize(t *testing.T) {
	p := NewPusher(config.PusherConfig{AppID: "1", Key: "key", Secret: "secret"})
	require.True(t, p.Enabled())
	require.NotNil(t, p.client.HTTPClient)
	assert.Equal(t, pusherTimeout, p.client.HTTPClient.Timeout)
	body, err := p.Authorize("1234.5678", UserChannel("u1"))
	require.NoError(t, err)
	var out struct {
		Auth string `json:"auth"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, strings.HasPrefix(out.Auth, "key:"))
}

func TestHubDeliversOnlyToSubscribedChannel(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, r.URL.Query().Get("channel"))
	}))
	defer srv.Close()

	dial := func(channel string) *websocket.Conn {
		conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/?channel="+channel, nil)
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		return conn
	}
	orderCh, otherCh := OrderChannel("ORD-1"), OrderChannel("ORD-2")
	a, b := dial(orderCh), dial(otherCh)
	require.Eventually(t, func() bool {
		return hub.Subscribers(orderCh) == 1 && hub.Subscribers(otherCh) == 1
	}, time.Second, 10*time.Millisecond)

	ev := Event{Channel: orderCh, Payload: StatusUpdated{OrderNumber: "ORD-1", Status: models.StatusReady, PreviousStatus: models.StatusPreparing}}
	require.NoError(t, hub.Publish(context.Background(), ev))

	require.NoError(t, a.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg struct {
		Channel string          `json:"channel"`
		Event   string          `json:"event"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, a.ReadJSON(&msg))
	assert.Equal(t, orderCh, msg.Channel)
	assert.Equal(t, "status-updated", msg.Event)
	assert.JSONEq(t, `{"orderNumber":"ORD-1","status":"ready","previousStatus":"preparing"}`, string(msg.Data))

	require.NoError(t, b.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := b.ReadMessage()
	assert.Error(t, err)

	a.Close()
	assert.Eventually(t, func() bool { return hub.Subscribers(orderCh) == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubPublishDoesNotWaitOnSlowSubscriber(t *testing.T) {
	hub := NewHub()
	channel := DriverChannel("d1")
	// never drained: stands in for a subscriber whose socket has stalled
	stalled := &hubClient{channel: channel, send: make(chan []byte, 1)}
	hub.register(stalled)

	ev := Event{Channel: channel, Payload: DriverLocationUpdated{DriverID: "d1", Latitude: 1, Longitude: 2}}
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 3; i++ {
			assert.NoError(t, hub.Publish(context.Background(), ev))
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a stalled subscriber")
	}

	assert.Zero(t, hub.Subscribers(channel))
	_, ok := <-stalled.send
	assert.True(t, ok, "the queued event is still there")
	_, ok = <-stalled.send
	assert.False(t, ok, "queue closed after the subscriber was dropped")

	assert.NotPanics(t, func() { hub.unregister(stalled) })
}

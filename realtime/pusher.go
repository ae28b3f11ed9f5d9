package realtime

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"food-delivery-app/config"

	"github.com/pusher/pusher-http-go/v5"
)

const pusherTimeout = 5 * time.Second

// ErrPusherDisabled is returned when no Pusher credentials are configured.
var ErrPusherDisabled = errors.New("pusher is not configured")

// Pusher publishes through the hosted Pusher Channels service and signs
// private-channel subscriptions.
type Pusher struct {
	client *pusher.Client
}

func NewPusher(cfg config.PusherConfig) *Pusher {
	if !cfg.Enabled() {
		return &Pusher{}
	}
	return &Pusher{client: &pusher.Client{
		AppID:      cfg.AppID,
		Key:        cfg.Key,
		Secret:     cfg.Secret,
		Cluster:    cfg.Cluster,
		Secure:     true,
		HTTPClient: &http.Client{Timeout: pusherTimeout},
	}}
}

func (p *Pusher) Enabled() bool { return p != nil && p.client != nil }

// Publish triggers ev synchronously. The pusher client takes no context, so
// the call is bounded by pusherTimeout instead of ctx.
func (p *Pusher) Publish(_ context.Context, ev Event) error {
	if !p.Enabled() {
		return nil
	}
	return p.client.Trigger(ev.Channel, ev.Name(), ev.Payload)
}

// Authorize returns the JSON auth body for a private channel subscription.
func (p *Pusher) Authorize(socketID, channelName string) ([]byte, error) {
	if !p.Enabled() {
		return nil, ErrPusherDisabled
	}
	params := url.Values{}
	params.Set("socket_id", socketID)
	params.Set("channel_name", channelName)
	return p.client.AuthorizePrivateChannel([]byte(params.Encode()))
}

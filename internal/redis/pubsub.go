package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// NotificationsPubSub fans out "a notification was created" events so
// connected frontends can refresh their unread badge without polling.
type NotificationsPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewNotificationsPubSub(rdb *redis.Client) *NotificationsPubSub {
	return &NotificationsPubSub{
		rdb:     rdb,
		channel: ChannelNotifications(),
	}
}

type notificationMsg struct {
	Type        string `json:"type"`
	RecipientID int64  `json:"recipient_id"`
	TsUnix      int64  `json:"ts_unix"`
}

func (p *NotificationsPubSub) PublishCreated(ctx context.Context, recipientID int64) error {
	msg := notificationMsg{
		Type:        "notification_created",
		RecipientID: recipientID,
		TsUnix:      time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

func (p *NotificationsPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, recipientID int64)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev notificationMsg
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil &&
				ev.RecipientID != 0 {
				handler(ctx, ev.RecipientID)
			}
		}
	}
}

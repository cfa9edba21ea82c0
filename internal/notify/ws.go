package notify

import (
	"context"
	"encoding/json"

	"talenthub/internal/ws"
)

// WSNotifier pushes events to the recipient's live websocket connections.
// A recipient with no connections simply misses the push; the event is not
// queued.
type WSNotifier struct {
	hub *ws.Hub
}

func NewWSNotifier(hub *ws.Hub) *WSNotifier {
	return &WSNotifier{hub: hub}
}

func (n *WSNotifier) Notify(_ context.Context, evt Event) error {
	if n == nil || n.hub == nil {
		return nil
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	n.hub.Send(evt.RecipientID, b)
	return nil
}

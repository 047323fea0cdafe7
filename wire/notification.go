package wire

import (
	"encoding/json"

	"git.tatikoma.dev/corpix/notify/domain"
	"git.tatikoma.dev/corpix/notify/errors"
)

// notificationPayload is the on-bus JSON representation of a single event,
// one per subject derived by the Event Handler's fan-out. It round-trips
// through domain.NotificationMessage on the read side.
type notificationPayload struct {
	Resource    domain.ResourceKind `json:"resource"`
	ResourceID  string              `json:"resource_id"`
	UpdatedType domain.EventType    `json:"updated_type"`
}

// EncodeNotification serializes the bus payload published for ev.
func EncodeNotification(ev domain.Event) ([]byte, error) {
	payload, err := json.Marshal(notificationPayload{
		Resource:    ev.Kind,
		ResourceID:  ev.ResourceID,
		UpdatedType: ev.Type,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal notification payload")
	}
	return payload, nil
}

// DecodeNotification parses a bus message payload into the shape handed
// back to read_stream_group_messages callers.
func DecodeNotification(payload []byte) (domain.NotificationMessage, error) {
	var p notificationPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return domain.NotificationMessage{}, errors.Wrap(err, "failed to unmarshal notification payload")
	}
	return domain.NotificationMessage{
		Resource:    p.Resource,
		ResourceID:  p.ResourceID,
		UpdatedType: p.UpdatedType,
	}, nil
}

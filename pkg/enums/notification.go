package enums

import "fmt"

// NotificationType categorizes notifications for filtering and display.
type NotificationType string

const (
	NotificationReminder  NotificationType = "reminder"
	NotificationEmergency NotificationType = "emergency"
	NotificationSystem    NotificationType = "system"
)

var validNotificationTypes = []NotificationType{
	NotificationReminder,
	NotificationEmergency,
	NotificationSystem,
}

func (t NotificationType) String() string {
	return string(t)
}

func (t NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}

// SentVia records the delivery channel of a notification.
type SentVia string

const (
	SentViaInApp SentVia = "in_app"
	SentViaEmail SentVia = "email"
)

func (v SentVia) IsValid() bool {
	switch v {
	case SentViaInApp, SentViaEmail:
		return true
	}
	return false
}

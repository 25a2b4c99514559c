// Package notification contains the bounded event log produced as a side
// effect of store mutations. Only the most recent entries are retained.
package notification

import (
	"errors"
	"fmt"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/pkg/errs"
)

// MaxRetained is the number of notifications kept in the log.
// Older entries are dropped first when the bound is exceeded.
const MaxRetained = 10

// ErrNotificationIsNotConstructed is returned when a Notification was not
// created through NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification or RestoreNotification",
)

// Type classifies a notification by the mutation that produced it.
type Type int

const (
	// UnknownType represents an invalid or undefined notification type.
	UnknownType Type = iota

	// NewRequest is emitted when a client submits a shipment request.
	NewRequest

	// StatusUpdate is emitted when a request moves along the workflow.
	StatusUpdate

	// PriceAdjustment is emitted when a request's final price changes.
	PriceAdjustment

	// NewMessage is emitted when a chat message arrives for agency staff.
	NewMessage

	// Info is emitted for general operational notices.
	Info
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		UnknownType:     "unknown",
		NewRequest:      "new_request",
		StatusUpdate:    "status_update",
		PriceAdjustment: "price_adjustment",
		NewMessage:      "new_message",
		Info:            "info",
	}
}

// TypeFromString parses a wire value ("new_request", "info", ...) into a Type.
func TypeFromString(s string) (Type, error) {
	for t, str := range getTypeStrings() {
		if str == s && t != UnknownType {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause(
		"notification type",
		fmt.Errorf("%q is not a valid notification type", s),
	)
}

// Validate checks if the Type value is valid.
func (t Type) Validate() error {
	if _, ok := getTypeStrings()[t]; !ok || t == UnknownType {
		return errs.NewValueIsInvalidErrorWithCause(
			"notification type",
			fmt.Errorf("%d is not a valid notification type", t),
		)
	}
	return nil
}

// String returns the wire representation of the type.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// Notification is one entry of the event log.
type Notification struct {
	id        kernel.UUID
	title     string
	message   string
	kind      Type
	timestamp time.Time
	isRead    bool

	isConstructed bool
}

// NewNotification creates an unread notification. Title and message are required.
func NewNotification(id kernel.UUID, title, message string, kind Type, now time.Time) (*Notification, error) {
	if err := errors.Join(id.Validate(), kind.Validate()); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, errs.NewValueIsRequiredError("title")
	}
	if message == "" {
		return nil, errs.NewValueIsRequiredError("message")
	}

	return &Notification{
		id:            id,
		title:         title,
		message:       message,
		kind:          kind,
		timestamp:     now,
		isConstructed: true,
	}, nil
}

// RestoreNotification reconstructs a notification from persistence.
func RestoreNotification(
	id kernel.UUID,
	title, message string,
	kind Type,
	timestamp time.Time,
	isRead bool,
) (*Notification, error) {
	if err := errors.Join(id.Validate(), kind.Validate()); err != nil {
		return nil, err
	}

	return &Notification{
		id:            id,
		title:         title,
		message:       message,
		kind:          kind,
		timestamp:     timestamp,
		isRead:        isRead,
		isConstructed: true,
	}, nil
}

// Validate ensures the Notification was created through a factory function.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID { return n.id }

// Title returns the short headline.
func (n *Notification) Title() string { return n.title }

// Message returns the notification body.
func (n *Notification) Message() string { return n.message }

// Kind returns the notification type.
func (n *Notification) Kind() Type { return n.kind }

// Timestamp returns when the notification was produced.
func (n *Notification) Timestamp() time.Time { return n.timestamp }

// IsRead reports whether the notification has been read.
func (n *Notification) IsRead() bool { return n.isRead }

// MarkRead flags the notification as read. Reading never deletes an entry.
func (n *Notification) MarkRead() {
	n.isRead = true
}

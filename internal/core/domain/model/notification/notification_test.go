package notification_test

import (
	"fmt"
	"testing"
	"time"

	"expedition/internal/core/domain/model/kernel"
	"expedition/internal/core/domain/model/notification"
	"expedition/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_String(t *testing.T) {
	t.Run("should return correct wire values", func(t *testing.T) {
		testCases := []struct {
			kind     notification.Type
			expected string
		}{
			{notification.NewRequest, "new_request"},
			{notification.StatusUpdate, "status_update"},
			{notification.PriceAdjustment, "price_adjustment"},
			{notification.NewMessage, "new_message"},
			{notification.Info, "info"},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.kind.String())
		}
	})

	t.Run("should return unknown for invalid types", func(t *testing.T) {
		assert.Equal(t, "unknown", notification.UnknownType.String())
		assert.Equal(t, "unknown", notification.Type(42).String())
	})
}

func TestTypeFromString(t *testing.T) {
	t.Run("should round-trip every valid type", func(t *testing.T) {
		validTypes := []notification.Type{
			notification.NewRequest,
			notification.StatusUpdate,
			notification.PriceAdjustment,
			notification.NewMessage,
			notification.Info,
		}

		for _, kind := range validTypes {
			t.Run(fmt.Sprintf("should parse %s", kind), func(t *testing.T) {
				parsed, err := notification.TypeFromString(kind.String())
				require.NoError(t, err)
				assert.Equal(t, kind, parsed)
			})
		}
	})

	t.Run("should reject unrecognized values", func(t *testing.T) {
		for _, wire := range []string{"", "unknown", "INFO", "message"} {
			parsed, err := notification.TypeFromString(wire)

			require.Error(t, err)
			assert.Equal(t, notification.UnknownType, parsed)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})
}

func TestType_Validate(t *testing.T) {
	t.Run("should reject UnknownType and out-of-range values", func(t *testing.T) {
		require.Error(t, notification.UnknownType.Validate())
		require.Error(t, notification.Type(-1).Validate())
		require.Error(t, notification.Type(42).Validate())
	})

	t.Run("should validate concrete types", func(t *testing.T) {
		require.NoError(t, notification.Info.Validate())
		require.NoError(t, notification.NewRequest.Validate())
	})
}

func TestNewNotification(t *testing.T) {
	t.Run("should create unread notification", func(t *testing.T) {
		id := kernel.NewUUID()
		now := time.Now().UTC()

		note, err := notification.NewNotification(id, "New shipment request", "details", notification.NewRequest, now)

		require.NoError(t, err)
		assert.True(t, note.ID().IsEqual(id))
		assert.Equal(t, "New shipment request", note.Title())
		assert.Equal(t, "details", note.Message())
		assert.Equal(t, notification.NewRequest, note.Kind())
		assert.Equal(t, now, note.Timestamp())
		assert.False(t, note.IsRead())
		require.NoError(t, note.Validate())
	})

	t.Run("should require title and message", func(t *testing.T) {
		id := kernel.NewUUID()

		_, err := notification.NewNotification(id, "", "details", notification.Info, time.Now())
		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsRequiredError{}, err)

		_, err = notification.NewNotification(id, "title", "", notification.Info, time.Now())
		require.Error(t, err)
	})

	t.Run("should reject invalid type", func(t *testing.T) {
		_, err := notification.NewNotification(
			kernel.NewUUID(), "title", "message", notification.UnknownType, time.Now())

		require.Error(t, err)
	})

	t.Run("should reject invalid id", func(t *testing.T) {
		var id kernel.UUID

		_, err := notification.NewNotification(id, "title", "message", notification.Info, time.Now())

		require.Error(t, err)
	})
}

func TestRestoreNotification(t *testing.T) {
	t.Run("should restore read notification", func(t *testing.T) {
		id := kernel.NewUUID()
		now := time.Now().UTC()

		note, err := notification.RestoreNotification(id, "title", "message", notification.Info, now, true)

		require.NoError(t, err)
		assert.True(t, note.IsRead())
	})

	t.Run("should reject invalid type", func(t *testing.T) {
		_, err := notification.RestoreNotification(
			kernel.NewUUID(), "title", "message", notification.Type(42), time.Now(), false)

		require.Error(t, err)
	})
}

func TestNotification_MarkRead(t *testing.T) {
	t.Run("should flag as read without deleting anything else", func(t *testing.T) {
		note, err := notification.NewNotification(
			kernel.NewUUID(), "title", "message", notification.Info, time.Now())
		require.NoError(t, err)

		note.MarkRead()

		assert.True(t, note.IsRead())
		assert.Equal(t, "title", note.Title())

		// Marking twice stays read.
		note.MarkRead()
		assert.True(t, note.IsRead())
	})
}

func TestMaxRetained(t *testing.T) {
	t.Run("should retain ten entries", func(t *testing.T) {
		assert.Equal(t, 10, notification.MaxRetained)
	})

	t.Run("should reject zero value notification", func(t *testing.T) {
		var note notification.Notification
		require.Error(t, note.Validate())
		assert.ErrorIs(t, note.Validate(), notification.ErrNotificationIsNotConstructed)
	})
}

package txt

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		Level:   logrus.DebugLevel,
		Message: "dispatching",
		Data: logrus.Fields{
			"source":    "client/internal/dispatcher/dispatcher.go:42",
			"listeners": 3,
			"status":    "MOBILE_4G",
		},
	}

	out, err := NewTextFormatter().Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01T12:30:00.000Z DEBG [listeners: 3, status: MOBILE_4G] client/internal/dispatcher/dispatcher.go:42: dispatching\n", string(out))
}

func TestFormat_UnknownLevel(t *testing.T) {
	f := NewTextFormatter()
	assert.Equal(t, "", f.parseLevel(logrus.Level(42)))
	assert.Equal(t, "TRAC", f.parseLevel(logrus.TraceLevel))
}

package notify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zpiroux/orderetl/entity"
)

const logLevelEnvName = "LOG_LEVEL"

func TestNotify(t *testing.T) {

	sender := "someSender"
	instance := "someId"
	source := "some-bucket/incoming/orders.json"
	expectedMessage := "flattened orders, rows=11"
	fmtstr := "flattened orders, rows=%d"
	fmtval := 11
	ch := make(entity.NotifyChan, 3)
	curLvl := os.Getenv(logLevelEnvName)
	os.Setenv(logLevelEnvName, entity.NotifyLevelStrDebug)
	defer os.Setenv(logLevelEnvName, curLvl)

	notifier := New(ch, nil, 2, sender, instance, source)

	// Test DEBUG
	notifier.Notify(entity.NotifyLevelDebug, fmtstr, fmtval)
	event := <-ch
	expectedEvent := entity.NotificationEvent{
		Level:    "DEBUG",
		Sender:   sender,
		Instance: instance,
		Source:   source,
		Message:  expectedMessage,
		Func:     "notify.TestNotify",
	}
	assert.NotEmpty(t, event.Timestamp)
	event.Timestamp = ""
	assert.Equal(t, expectedEvent, event)

	// Test INFO
	notifier.Notify(entity.NotifyLevelInfo, fmtstr, fmtval)
	event = <-ch
	expectedEvent.Level = "INFO"
	event.Timestamp = ""
	assert.Equal(t, expectedEvent, event)

	// Test WARN
	notifier.Notify(entity.NotifyLevelWarn, fmtstr, fmtval)
	event = <-ch
	expectedEvent.Level = "WARN"
	expectedEvent.File = "notify_test.go"
	assert.Greater(t, event.Line, 0)
	expectedEvent.Line = event.Line
	event.Timestamp = ""
	event.File = filepath.Base(event.File)
	assert.Equal(t, expectedEvent, event)

	// Test ERROR
	notifier.Notify(entity.NotifyLevelError, fmtstr, fmtval)
	event = <-ch
	expectedEvent.Level = "ERROR"
	assert.Greater(t, event.Line, expectedEvent.Line)
	expectedEvent.Line = event.Line
	event.Timestamp = ""
	event.File = filepath.Base(event.File)
	assert.NotEmpty(t, event.StackTrace)
	event.StackTrace = ""
	assert.Equal(t, expectedEvent, event)
}

func TestMinLogLevel(t *testing.T) {

	ch := make(entity.NotifyChan, 3)
	curLvl := os.Getenv(logLevelEnvName)
	defer os.Setenv(logLevelEnvName, curLvl)

	// Empty os env var --> min level INFO
	os.Setenv(logLevelEnvName, "")
	notifier := New(ch, nil, 2, "s", "i", "")
	assert.Equal(t, entity.NotifyLevelInfo, notifier.minNotifyLevel)

	// Invalid os env var --> min level INFO
	os.Setenv(logLevelEnvName, "SOME_INVALID_LEVEL")
	notifier = New(ch, nil, 2, "s", "i", "")
	assert.Equal(t, entity.NotifyLevelInfo, notifier.minNotifyLevel)

	os.Setenv(logLevelEnvName, entity.NotifyLevelStrWarn)
	notifier = New(ch, nil, 2, "s", "i", "")
	assert.Equal(t, entity.NotifyLevelWarn, notifier.minNotifyLevel)

	// Events below min level are not sent
	notifier.Notify(entity.NotifyLevelInfo, "not sent")
	assert.Len(t, ch, 0)
	notifier.Notify(entity.NotifyLevelError, "sent")
	assert.Len(t, ch, 1)
}

func TestNilChannelAndSource(t *testing.T) {

	notifier := New(nil, nil, 2, "s", "i", "")
	assert.NotPanics(t, func() { notifier.Notify(entity.NotifyLevelError, "no channel") })

	ch := make(entity.NotifyChan, 1)
	notifier = New(ch, nil, 2, "s", "i", "")
	withSource := notifier.WithSource("b/k")
	assert.Equal(t, "b/k", withSource.Source())
	assert.Equal(t, "", notifier.Source())
	assert.Equal(t, "i", withSource.Instance())

	// Full channel does not block
	withSource.Notify(entity.NotifyLevelError, "one")
	withSource.Notify(entity.NotifyLevelError, "two")
	event := <-ch
	assert.Equal(t, "one", event.Message)
	assert.Equal(t, "b/k", event.Source)
}

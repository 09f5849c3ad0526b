package entity

// NotificationEvent is the type of the events sent to the notification channel,
// which is accessible externally with orderetl.Handler.NotifyChannel().
type NotificationEvent struct {

	// The notification level
	Level string

	// Timestamp of the event on the format "2006-01-02T15:04:05.000000Z"
	Timestamp string

	// The component sending the event, e.g. "service", "xs3.store", etc
	Sender string

	// The unique ID of the invocation, or of the sender instance if outside an invocation
	Instance string

	// The source object (bucket/key) being processed, if applicable
	Source string

	Message string

	// Location and stack info, from where notification was sent.
	// Func is always provided.
	// File and Line are added when notification level is WARN or above.
	// StackTrace is added when notification level is ERROR.
	Func       string
	File       string
	Line       int
	StackTrace string
}

type NotifyChan chan NotificationEvent

const (
	NotifyLevelInvalid = iota
	NotifyLevelDebug
	NotifyLevelInfo
	NotifyLevelWarn
	NotifyLevelError
)

const (
	NotifyLevelStrInvalid = "INVALID"
	NotifyLevelStrDebug   = "DEBUG"
	NotifyLevelStrInfo    = "INFO"
	NotifyLevelStrWarn    = "WARN"
	NotifyLevelStrError   = "ERROR"
)

var notifyLevelName = map[int]string{
	NotifyLevelInvalid: NotifyLevelStrInvalid,
	NotifyLevelDebug:   NotifyLevelStrDebug,
	NotifyLevelInfo:    NotifyLevelStrInfo,
	NotifyLevelWarn:    NotifyLevelStrWarn,
	NotifyLevelError:   NotifyLevelStrError,
}

var notifyLevel = map[string]int{
	NotifyLevelStrDebug: NotifyLevelDebug,
	NotifyLevelStrInfo:  NotifyLevelInfo,
	NotifyLevelStrWarn:  NotifyLevelWarn,
	NotifyLevelStrError: NotifyLevelError,
}

func NotifyLevelName(level int) string {
	name, ok := notifyLevelName[level]
	if !ok {
		name = NotifyLevelStrInvalid
	}
	return name
}

// NotifyLevel returns the level matching the name, or NotifyLevelInvalid.
func NotifyLevel(name string) int {
	return notifyLevel[name]
}

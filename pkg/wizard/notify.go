package wizard

// NotificationKind classifies host-facing notifications.
type NotificationKind string

const (
	// NotificationSubmitted follows a successful submission.
	NotificationSubmitted NotificationKind = "submitted"
	// NotificationCaptureFailed follows a failed photo capture.
	NotificationCaptureFailed NotificationKind = "capture_failed"
)

// Default notification texts.
const (
	DefaultSuccessTitle  = "Sucesso!"
	CaptureFailedTitle   = "Erro"
	CaptureFailedMessage = "Não foi possível selecionar a imagem"
)

// Notification is a one-shot acknowledgement the host shows to the user.
// Submission is set only for NotificationSubmitted.
type Notification struct {
	Kind       NotificationKind
	Title      string
	Message    string
	Submission *Submission
}

// Notifier receives wizard notifications.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(Notification)

// Notify calls the underlying function.
func (fn NotifierFunc) Notify(n Notification) {
	fn(n)
}

// ChannelNotifier forwards notifications to ch. Sends never block; when ch is
// full the notification is dropped, so callers should buffer it.
func ChannelNotifier(ch chan<- Notification) Notifier {
	return NotifierFunc(func(n Notification) {
		select {
		case ch <- n:
		default:
		}
	})
}

type discardNotifier struct{}

func (discardNotifier) Notify(Notification) {}

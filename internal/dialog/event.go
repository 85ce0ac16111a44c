package dialog

// Event is one inbound user action, already stripped of transport
// detail: either a selection token from a presented option set, or a
// free-text message.
type Event struct {
	Token  string
	Text   string
	IsText bool
}

// Select wraps a structured selection token.
func Select(token string) Event { return Event{Token: token} }

// Text wraps a free-text message.
func Text(s string) Event { return Event{Text: s, IsText: true} }

// Option is one labeled choice to present to the user.
type Option struct {
	Label string
	Token string
}

// Reply is the machine's transport-agnostic answer to one event.
// Options, when present, are the finite choice set to offer next;
// AwaitText signals a free-text prompt; Export asks the adapter to
// render and deliver the schedule. A zero Reply means "say nothing".
type Reply struct {
	Text      string
	Options   []Option
	AwaitText bool
	Export    bool
}

func (r Reply) IsZero() bool {
	return r.Text == "" && len(r.Options) == 0 && !r.AwaitText && !r.Export
}

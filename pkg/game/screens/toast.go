package screens

// ToastDuration is how long a toast stays up, in seconds.
const ToastDuration = 4.0

type toast struct {
	text      string
	remaining float64
}

// Toasts are short messages shown above every screen.
type Toasts struct {
	items []toast
}

// Show adds a message.
func (t *Toasts) Show(text string) {
	t.items = append(t.items, toast{text: text, remaining: ToastDuration})
}

// Update expires old messages.
func (t *Toasts) Update(dt float64) {
	kept := t.items[:0]
	for _, item := range t.items {
		item.remaining -= dt
		if item.remaining > 0 {
			kept = append(kept, item)
		}
	}
	t.items = kept
}

// Active returns the messages currently shown, oldest first.
func (t *Toasts) Active() []string {
	out := make([]string, len(t.items))
	for i, item := range t.items {
		out[i] = item.text
	}
	return out
}

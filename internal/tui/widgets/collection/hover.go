package collection

// HoverService attaches tooltip content to a render target. The returned
// func detaches it.
type HoverService interface {
	SetupDelayedHover(target string, content string) (dispose func())
}

// Tooltips is an in-memory HoverService; the host reads it to show the
// tooltip of whatever target is focused.
type Tooltips struct {
	content map[string]string
}

func NewTooltips() *Tooltips {
	return &Tooltips{content: map[string]string{}}
}

func (t *Tooltips) SetupDelayedHover(target, content string) func() {
	t.content[target] = content
	return func() {
		if t.content[target] == content {
			delete(t.content, target)
		}
	}
}

// Content returns the tooltip attached to target.
func (t *Tooltips) Content(target string) (string, bool) {
	c, ok := t.content[target]
	return c, ok
}

// Len is the number of attached tooltips.
func (t *Tooltips) Len() int { return len(t.content) }

// disposables releases row-scoped resources in reverse acquisition order.
type disposables struct {
	fns []func()
}

func (d *disposables) add(fn func()) {
	if fn != nil {
		d.fns = append(d.fns, fn)
	}
}

func (d *disposables) clear() {
	for i := len(d.fns) - 1; i >= 0; i-- {
		d.fns[i]()
	}
	d.fns = nil
}

package dashboard

const (
	PanelMinWidth     = 240
	PanelMaxWidth     = 600
	PanelDefaultWidth = 256
)

// Panel is the resizable query builder sidebar. It is anchored to the right edge of the
// viewport, so its width is the distance from the pointer to that edge.
type Panel struct {
	Width    int  `json:"width"`
	Dragging bool `json:"dragging"`
}

func NewPanel() Panel {
	return Panel{Width: PanelDefaultWidth}
}

func (p *Panel) Begin() {
	p.Dragging = true
}

// Drag resizes the panel while a drag is in progress.
func (p *Panel) Drag(viewportWidth, pointerX int) {
	if !p.Dragging {
		return
	}
	p.Width = clampWidth(viewportWidth - pointerX)
}

func (p *Panel) End() {
	p.Dragging = false
}

// Reset restores the default width.
func (p *Panel) Reset() {
	p.Width = PanelDefaultWidth
}

func clampWidth(w int) int {
	return max(PanelMinWidth, min(PanelMaxWidth, w))
}

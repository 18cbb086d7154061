package section

// Mode tells whether visible text tracks the computed text or has been frozen
// by a direct edit.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

// Override holds a derived text and the operator-visible text. While the mode
// is ModeAuto the visible text always equals the computed text. In ModeManual
// the computed text keeps updating but stays hidden until the next Reassert.
// The zero value is an empty cell in ModeAuto.
type Override struct {
	computed string
	user     string
	mode     Mode
}

// Reassert stores computed and returns to ModeAuto, discarding any manual
// text.
func (o *Override) Reassert(computed string) {
	o.computed = computed
	o.user = computed
	o.mode = ModeAuto
}

// Sync stores computed without changing the mode. The visible text follows
// only in ModeAuto.
func (o *Override) Sync(computed string) {
	o.computed = computed
	if o.Mode() == ModeAuto {
		o.user = computed
	}
}

// Edit replaces the visible text and freezes it.
func (o *Override) Edit(text string) {
	o.user = text
	o.mode = ModeManual
}

// Reset empties both texts and returns to ModeAuto.
func (o *Override) Reset() {
	*o = Override{}
}

// Text returns the visible text.
func (o *Override) Text() string {
	return o.user
}

// Computed returns the latest derived text, visible or not.
func (o *Override) Computed() string {
	return o.computed
}

// Mode returns the current mode.
func (o *Override) Mode() Mode {
	if o.mode == "" {
		return ModeAuto
	}
	return o.mode
}

package modal

// Layout constants.
const (
	DefaultWidth  = 50
	MinModalWidth = 30
	ModalPadding  = 6 // border(2) + horizontal padding(4)
)

// Variant selects the modal accent color.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDanger
	VariantWarning
	VariantInfo
)

// Option configures a Modal.
type Option func(*Modal)

// WithWidth sets the preferred modal width. It is clamped to the screen.
func WithWidth(w int) Option {
	return func(m *Modal) {
		if w > 0 {
			m.width = w
		}
	}
}

// WithVariant sets the modal variant.
func WithVariant(v Variant) Option {
	return func(m *Modal) { m.variant = v }
}

// WithHints toggles the keyboard hint line.
func WithHints(show bool) Option {
	return func(m *Modal) { m.showHints = show }
}

// WithPrimaryAction sets the action returned by Enter when the focused
// element does not produce one of its own.
func WithPrimaryAction(id string) Option {
	return func(m *Modal) { m.primaryAction = id }
}

// WithFooter sets a fixed footer rendered below the scroll viewport.
func WithFooter(s string) Option {
	return func(m *Modal) { m.customFooter = s }
}

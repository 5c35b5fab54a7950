package fw

// AccessibleState is the normalized set of boolean/enum states a node may
// report.
type AccessibleState struct {
	Focused    bool
	Disabled   bool
	Checked    bool
	Expanded   *bool // nil = not applicable, else expanded/collapsed
	Selected   bool
	ReadOnly   bool
	Pressed    bool
	HasPopup   bool
	Modal      bool
	Editable   bool
	Multiline  bool
	Password   bool
}

// AccessibleNode is one node in the framework's native accessibility tree,
// prior to web-role normalization and ref assignment (done by internal/a11y).
type AccessibleNode struct {
	Role        string // framework-native role name, mapped by internal/a11y
	Name        string // accessible-name, empty if the framework has none
	ToolTip     string
	Bounds      Rect
	States      AccessibleState
	ObjectName  string
	ClassName   string
	Object      Object // backing framework object, for objectId and actions
	Children    []*AccessibleNode
}

// AccessibilityBackend is the contract AccessibilityWalker drives.
type AccessibilityBackend struct {
	// Activate forces the accessibility subsystem active; some platforms
	// keep it lazy until an assistive client connects.
	Activate func()
	// Root returns the accessibility tree root for a top-level window.
	Root func(window Object) *AccessibleNode
	// Invoke performs a named accessible action ("press", "toggle",
	// "increment", "decrement", "setValue", "setText") on a node.
	Invoke func(node *AccessibleNode, action string, arg Variant) error
	// ConsoleMessages returns recently logged console/framework messages,
	// newest-first, for chr.readConsoleMessages.
	ConsoleMessages func() []ConsoleMessage
}

// ConsoleMessage backs chr.readConsoleMessages.
type ConsoleMessage struct {
	Severity  string
	Message   string
	TimestampMs int64
}

package fw

// MetaObject is the reflective facility the framework exposes per object:
// its declared properties, invokable methods, and signals, plus the
// ancestor chain used for objectInfo's inheritance report.
type MetaObject interface {
	ClassName() string
	SuperClasses() []string // immediate-to-root, excluding ClassName() itself

	Properties() []PropertyDescriptor
	Property(name string) (PropertyDescriptor, bool)
	GetProperty(name string) (Variant, error)
	SetProperty(name string, v Variant) error
	// SetDynamicProperty writes an attribute not declared on the class.
	// Frameworks that support this (Qt's setProperty on undeclared names)
	// should make it readable afterward; toykit does.
	SetDynamicProperty(name string, v Variant) error

	Methods() []MethodDescriptor
	// Invoke calls the first method whose simple name and arity match args.
	Invoke(name string, args []Variant) (Variant, error)

	Signals() []SignalDescriptor
	// Connect attaches handler to the named signal, returning a handle that
	// Disconnect can later use. handler is invoked with the signal's
	// emitted arguments (possibly empty — see SignalMonitor's arity-zero
	// relay limitation).
	Connect(signal string, handler func(args []Variant)) (ConnHandle, error)
	Disconnect(ConnHandle) error
}

// ConnHandle identifies an established signal connection.
type ConnHandle uint64

// PropertyDescriptor describes one declared property.
type PropertyDescriptor struct {
	Name       string
	TypeName   string
	Readable   bool
	Writable   bool
	Dynamic    bool // set via SetDynamicProperty rather than declared
}

// MethodDescriptor describes one invokable method (slot or Q_INVOKABLE-style).
type MethodDescriptor struct {
	Name           string
	Signature      string // e.g. "setText(QString)"
	ReturnType     string // "void" for no return
	ParameterTypes []string
	ParameterNames []string
	Access         string // "public", "protected", "private"
}

// SignalDescriptor describes one signal.
type SignalDescriptor struct {
	Name           string
	Signature      string
	ParameterTypes []string
	ParameterNames []string
}

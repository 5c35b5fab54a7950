package fw

import "time"

// VariantKind tags the family of value a Variant carries. This mirrors a
// tagged dynamic value type (Qt's QVariant): a closed set of well-known
// families plus an escape hatch for anything else the binding reports.
type VariantKind int

const (
	KindInvalid VariantKind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindPoint
	KindSize
	KindRect
	KindColor
	KindURL
	KindDateTime
	KindStringList
	KindList
	KindMap
	KindUnknown
)

// Size is a 2-D dimension.
type Size struct{ W, H float64 }

// Color is an RGBA color with 0-255 channels.
type Color struct{ R, G, B, A int }

// Variant is the framework's bidirectional dynamic value carrier. Exactly
// one of the typed fields is meaningful, selected by Kind. Unknown-tag
// values are carried in UnknownType/UnknownText per the codec's lossy,
// informational fallback.
type Variant struct {
	Kind VariantKind

	Bool     bool
	Int      int64
	Float    float64
	Str      string
	Bytes    []byte
	Pt       Point
	Sz       Size
	Rc       Rect
	Col      Color
	Time     time.Time
	StrList  []string
	List     []Variant
	Map      map[string]Variant

	UnknownType string
	UnknownText string // best-effort toString(), empty if unavailable
}

func VBool(b bool) Variant       { return Variant{Kind: KindBool, Bool: b} }
func VInt(i int64) Variant       { return Variant{Kind: KindInt, Int: i} }
func VFloat(f float64) Variant   { return Variant{Kind: KindFloat, Float: f} }
func VString(s string) Variant   { return Variant{Kind: KindString, Str: s} }
func VBytes(b []byte) Variant    { return Variant{Kind: KindBytes, Bytes: b} }
func VPoint(p Point) Variant     { return Variant{Kind: KindPoint, Pt: p} }
func VSize(s Size) Variant       { return Variant{Kind: KindSize, Sz: s} }
func VRect(r Rect) Variant       { return Variant{Kind: KindRect, Rc: r} }
func VColor(c Color) Variant     { return Variant{Kind: KindColor, Col: c} }
func VURL(s string) Variant      { return Variant{Kind: KindURL, Str: s} }
func VDateTime(t time.Time) Variant { return Variant{Kind: KindDateTime, Time: t} }
func VStringList(ss []string) Variant { return Variant{Kind: KindStringList, StrList: ss} }
func VList(vs []Variant) Variant { return Variant{Kind: KindList, List: vs} }
func VMap(m map[string]Variant) Variant { return Variant{Kind: KindMap, Map: m} }
func VUnknown(typeName, text string) Variant {
	return Variant{Kind: KindUnknown, UnknownType: typeName, UnknownText: text}
}
func VInvalid() Variant { return Variant{Kind: KindInvalid} }

package inspect

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/ssss2art/qtmcp/internal/fw"
)

// ToJSON maps a fw.Variant to its JSON-native representation. Unknown-tag
// variants become the lossy, informational {_type, value} shape.
func ToJSON(v fw.Variant) any {
	switch v.Kind {
	case fw.KindInvalid:
		return nil
	case fw.KindBool:
		return v.Bool
	case fw.KindInt:
		return v.Int
	case fw.KindFloat:
		return v.Float
	case fw.KindString:
		return v.Str
	case fw.KindBytes:
		return base64.StdEncoding.EncodeToString(v.Bytes)
	case fw.KindPoint:
		return map[string]any{"x": v.Pt.X, "y": v.Pt.Y}
	case fw.KindSize:
		return map[string]any{"width": v.Sz.W, "height": v.Sz.H}
	case fw.KindRect:
		return map[string]any{"x": v.Rc.X, "y": v.Rc.Y, "width": v.Rc.W, "height": v.Rc.H}
	case fw.KindColor:
		return map[string]any{"r": v.Col.R, "g": v.Col.G, "b": v.Col.B, "a": v.Col.A}
	case fw.KindURL:
		return v.Str
	case fw.KindDateTime:
		return v.Time.UTC().Format(time.RFC3339Nano)
	case fw.KindStringList:
		return append([]string{}, v.StrList...)
	case fw.KindList:
		out := make([]any, len(v.List))
		for i, e := range v.List {
			out[i] = ToJSON(e)
		}
		return out
	case fw.KindMap:
		out := make(map[string]any, len(v.Map))
		for k, e := range v.Map {
			out[k] = ToJSON(e)
		}
		return out
	case fw.KindUnknown:
		var value any
		if v.UnknownText != "" {
			value = v.UnknownText
		}
		return map[string]any{"_type": v.UnknownType, "value": value}
	default:
		return nil
	}
}

// FromJSONHint converts a decoded JSON value back to a Variant. typeHint,
// when non-empty, names the framework type the destination property or
// parameter declares (e.g. "QString", "QRect", "bool") and resolves
// ambiguous shapes (a bare JSON object could be a QRect or a QVariantMap).
// Accepts the explicit shapes from ToJSON, the {_type, value} escape form,
// and coerces numeric/string primitives toward the hinted type.
func FromJSONHint(raw any, typeHint string) (fw.Variant, error) {
	if m, ok := raw.(map[string]any); ok {
		if t, hasType := m["_type"]; hasType {
			typeName, _ := t.(string)
			text := ""
			if s, ok := m["value"].(string); ok {
				text = s
			}
			return fw.VUnknown(typeName, text), nil
		}
		if v, ok := shapedMap(m, typeHint); ok {
			return v, nil
		}
		out := map[string]fw.Variant{}
		for k, val := range m {
			cv, err := FromJSONHint(val, "")
			if err != nil {
				return fw.Variant{}, err
			}
			out[k] = cv
		}
		return fw.VMap(out), nil
	}

	switch val := raw.(type) {
	case nil:
		return fw.VInvalid(), nil
	case bool:
		return fw.VBool(val), nil
	case string:
		switch typeHint {
		case "QUrl":
			return fw.VURL(val), nil
		case "QDateTime", "QDate", "QTime":
			t, err := time.Parse(time.RFC3339Nano, val)
			if err != nil {
				t, err = time.Parse(time.RFC3339, val)
				if err != nil {
					return fw.Variant{}, fmt.Errorf("invalid ISO-8601 datetime %q", val)
				}
			}
			return fw.VDateTime(t), nil
		case "QByteArray":
			b, err := base64.StdEncoding.DecodeString(val)
			if err != nil {
				return fw.Variant{}, fmt.Errorf("invalid base64 for QByteArray: %w", err)
			}
			return fw.VBytes(b), nil
		case "int", "qlonglong", "uint":
			var n int64
			if _, err := fmt.Sscanf(val, "%d", &n); err != nil {
				return fw.Variant{}, fmt.Errorf("cannot coerce %q to int", val)
			}
			return fw.VInt(n), nil
		default:
			return fw.VString(val), nil
		}
	case int64:
		if typeHint == "QString" {
			return fw.VString(fmt.Sprintf("%d", val)), nil
		}
		return fw.VInt(val), nil
	case float64:
		if typeHint == "QString" {
			return fw.VString(fmt.Sprintf("%v", val)), nil
		}
		if isIntegerType(typeHint) || (typeHint == "" && val == float64(int64(val))) {
			return fw.VInt(int64(val)), nil
		}
		return fw.VFloat(val), nil
	case []any:
		if allStrings(val) {
			ss := make([]string, len(val))
			for i, e := range val {
				ss[i] = e.(string)
			}
			return fw.VStringList(ss), nil
		}
		out := make([]fw.Variant, len(val))
		for i, e := range val {
			cv, err := FromJSONHint(e, "")
			if err != nil {
				return fw.Variant{}, err
			}
			out[i] = cv
		}
		return fw.VList(out), nil
	default:
		return fw.Variant{}, fmt.Errorf("unsupported JSON value of type %T", raw)
	}
}

func isIntegerType(hint string) bool {
	switch hint {
	case "int", "qlonglong", "uint", "qulonglong", "short", "long":
		return true
	default:
		return false
	}
}

func allStrings(vs []any) bool {
	for _, v := range vs {
		if _, ok := v.(string); !ok {
			return false
		}
	}
	return len(vs) > 0
}

// shapedMap recognizes the explicit {x,y}/{width,height}/{x,y,width,height}/
// {r,g,b,a} shapes ToJSON produces, disambiguating a bare {x,y} between
// Point and Color is unnecessary since Color always has r/g/b/a.
func shapedMap(m map[string]any, typeHint string) (fw.Variant, bool) {
	has := func(keys ...string) bool {
		for _, k := range keys {
			if _, ok := m[k]; !ok {
				return false
			}
		}
		return true
	}
	num := func(k string) float64 {
		switch n := m[k].(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
		return 0
	}
	switch {
	case has("r", "g", "b", "a"):
		return fw.VColor(fw.Color{R: int(num("r")), G: int(num("g")), B: int(num("b")), A: int(num("a"))}), true
	case has("x", "y", "width", "height"):
		return fw.VRect(fw.Rect{X: num("x"), Y: num("y"), W: num("width"), H: num("height")}), true
	case has("width", "height") && len(m) == 2:
		return fw.VSize(fw.Size{W: num("width"), H: num("height")}), true
	case has("x", "y") && len(m) == 2:
		return fw.VPoint(fw.Point{X: num("x"), Y: num("y")}), true
	case typeHint == "QVariantMap":
		return fw.Variant{}, false
	default:
		return fw.Variant{}, false
	}
}

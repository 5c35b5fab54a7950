package inspect

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/ssss2art/qtmcp/internal/fw"
)

func TestVariantRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("int survives ToJSON/FromJSONHint", prop.ForAll(
		func(n int64) bool {
			out, err := FromJSONHint(ToJSON(fw.VInt(n)), "int")
			return err == nil && out.Kind == fw.KindInt && out.Int == n
		},
		gen.Int64(),
	))

	properties.Property("string survives ToJSON/FromJSONHint", prop.ForAll(
		func(s string) bool {
			out, err := FromJSONHint(ToJSON(fw.VString(s)), "QString")
			return err == nil && out.Kind == fw.KindString && out.Str == s
		},
		gen.AlphaString(),
	))

	properties.Property("rect survives ToJSON/FromJSONHint", prop.ForAll(
		func(x, y, w, h float64) bool {
			rect := fw.Rect{X: x, Y: y, W: w, H: h}
			out, err := FromJSONHint(ToJSON(fw.VRect(rect)), "QRect")
			return err == nil && out.Kind == fw.KindRect && out.Rc == rect
		},
		gen.Float64Range(-1_000_000, 1_000_000),
		gen.Float64Range(-1_000_000, 1_000_000),
		gen.Float64Range(-1_000_000, 1_000_000),
		gen.Float64Range(-1_000_000, 1_000_000),
	))

	properties.TestingRun(t)
}

package native

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ssss2art/qtmcp/internal/fw"
	"github.com/ssss2art/qtmcp/internal/inspect"
	"github.com/ssss2art/qtmcp/internal/input"
	"github.com/ssss2art/qtmcp/internal/model"
	"github.com/ssss2art/qtmcp/internal/rpc"
)

// protocolVersion is reported by qt.version; bump when the wire shape of a
// qt.*/cu.*/chr.* response changes in an incompatible way.
const protocolVersion = "1.0.0"

// Handler is the function signature every qt.* method is registered under.
type Handler func(deps Deps, params json.RawMessage) (any, error)

// Handlers maps qt.* method names to their implementation.
var Handlers = map[string]Handler{
	"qt.ping":    Ping,
	"qt.version": Version,
	"qt.modes":   Modes,

	"qt.objects.tree":        ObjectsTree,
	"qt.objects.find":        ObjectsFind,
	"qt.objects.findByClass": ObjectsFindByClass,
	"qt.objects.query":       ObjectsQuery,
	"qt.objects.info":        ObjectsInfo,
	"qt.objects.inspect":     ObjectsInspect,

	"qt.properties.list": PropertiesList,
	"qt.properties.get":  PropertiesGet,
	"qt.properties.set":  PropertiesSet,

	"qt.methods.list":   MethodsList,
	"qt.methods.invoke": MethodsInvoke,

	"qt.signals.list":         SignalsList,
	"qt.signals.subscribe":    SignalsSubscribe,
	"qt.signals.unsubscribe":  SignalsUnsubscribe,
	"qt.signals.setLifecycle": SignalsSetLifecycle,

	"qt.ui.click":      UIClick,
	"qt.ui.sendKeys":   UISendKeys,
	"qt.ui.screenshot": UIScreenshot,
	"qt.ui.geometry":   UIGeometry,
	"qt.ui.hitTest":    UIHitTest,

	"qt.names.register":   NamesRegister,
	"qt.names.unregister": NamesUnregister,
	"qt.names.list":       NamesList,
	"qt.names.load":       NamesLoad,
	"qt.names.validate":   NamesValidate,

	"qt.qml.inspect": QmlInspect,

	"qt.models.list": ModelsList,
	"qt.models.info": ModelsInfo,
	"qt.models.data": ModelsData,

	"qt.logs.query": LogsQuery,
}

// Ping implements qt.ping: a liveness check with no side effects.
func Ping(Deps, json.RawMessage) (any, error) {
	return map[string]any{"ok": true}, nil
}

// Version implements qt.version.
func Version(Deps, json.RawMessage) (any, error) {
	return map[string]any{"version": protocolVersion}, nil
}

// Modes implements qt.modes: the interaction surfaces this probe registers.
func Modes(Deps, json.RawMessage) (any, error) {
	return map[string]any{"modes": []string{"native", "coordinate", "accessibility"}}, nil
}

// idParams decodes the dual-tolerant "id"/"objectId" field every qt.*
// method accepts.
type idParams struct {
	ID       string `json:"id"`
	ObjectID string `json:"objectId"`
}

func (p idParams) resolve(deps Deps) (fw.Object, error) {
	id := p.ID
	if id == "" {
		id = p.ObjectID
	}
	if id == "" {
		return nil, &rpc.Fault{Code: rpc.ErrObjectNotFound, Message: "missing id"}
	}
	obj, ok := deps.Resolve(id)
	if !ok {
		return nil, &rpc.Fault{Code: rpc.ErrObjectNotFound, Message: id}
	}
	return obj, nil
}

func decode(params json.RawMessage, v any) error {
	if len(params) == 0 {
		return nil
	}
	return json.Unmarshal(params, v)
}

func rootFrom(deps Deps, rootID string) fw.Object {
	if rootID == "" {
		return nil
	}
	if obj, ok := deps.Resolve(rootID); ok {
		return obj
	}
	return nil
}

// ObjectsTree implements qt.objects.tree.
func ObjectsTree(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		RootID   string `json:"rootId"`
		MaxDepth int    `json:"maxDepth"`
	}
	p.MaxDepth = -1
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	root := rootFrom(deps, p.RootID)
	return deps.SerializeObjectTree(root, p.MaxDepth), nil
}

// ObjectsFind implements qt.objects.find: by objectName.
func ObjectsFind(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		Name   string `json:"name"`
		RootID string `json:"rootId"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	root := rootFrom(deps, p.RootID)
	found := deps.FindByName(p.Name, root)
	return infoList(deps, found), nil
}

// ObjectsFindByClass implements qt.objects.findByClass.
func ObjectsFindByClass(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		ClassName string `json:"className"`
		RootID    string `json:"rootId"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	root := rootFrom(deps, p.RootID)
	found := deps.FindAllByClass(p.ClassName, root)
	return infoList(deps, found), nil
}

// ObjectsQuery implements qt.objects.query: objects matching every given
// attribute (className/objectName, and a readable property name/value
// pair).
func ObjectsQuery(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		ClassName  string         `json:"className"`
		ObjectName string         `json:"objectName"`
		Properties map[string]any `json:"properties"`
		RootID     string         `json:"rootId"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	root := rootFrom(deps, p.RootID)
	if root == nil {
		root = fw.Object(deps.Application())
	}

	var matches []fw.Object
	var walk func(fw.Object)
	walk = func(o fw.Object) {
		if matchesQuery(o, p.ClassName, p.ObjectName, p.Properties) {
			matches = append(matches, o)
		}
		for _, ch := range o.Children() {
			walk(ch)
		}
	}
	walk(root)
	return infoList(deps, matches), nil
}

func matchesQuery(o fw.Object, className, objectName string, props map[string]any) bool {
	if className != "" && o.ClassName() != className {
		return false
	}
	if objectName != "" && o.ObjectName() != objectName {
		return false
	}
	for name, want := range props {
		v, err := inspect.GetProperty(o, name)
		if err != nil {
			return false
		}
		if fmt.Sprintf("%v", v) != fmt.Sprintf("%v", want) {
			return false
		}
	}
	return true
}

// ObjectsInfo implements qt.objects.info.
func ObjectsInfo(deps Deps, params json.RawMessage) (any, error) {
	var p idParams
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	return deps.Info(obj), nil
}

// ObjectsInspect implements qt.objects.inspect: a single-call combination
// of info, properties, methods, and signals for one object.
func ObjectsInspect(deps Deps, params json.RawMessage) (any, error) {
	var p idParams
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"info":       deps.Info(obj),
		"properties": inspect.ListProperties(obj),
		"methods":    inspect.ListMethods(obj),
		"signals":    inspect.ListSignals(obj),
	}, nil
}

func infoList(deps Deps, objs []fw.Object) []any {
	out := make([]any, 0, len(objs))
	for _, o := range objs {
		out = append(out, deps.Info(o))
	}
	return out
}

// PropertiesList implements qt.properties.list.
func PropertiesList(deps Deps, params json.RawMessage) (any, error) {
	var p idParams
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	return inspect.ListProperties(obj), nil
}

// PropertiesGet implements qt.properties.get.
func PropertiesGet(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		idParams
		Name string `json:"name"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	v, err := inspect.GetProperty(obj, p.Name)
	if err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"objectId": idOf(deps, obj), "property": p.Name})
	}
	return map[string]any{"value": v}, nil
}

// PropertiesSet implements qt.properties.set.
func PropertiesSet(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		idParams
		Name  string `json:"name"`
		Value any    `json:"value"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	if err := inspect.SetProperty(obj, p.Name, p.Value); err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"objectId": idOf(deps, obj), "property": p.Name})
	}
	return map[string]any{"ok": true}, nil
}

// MethodsList implements qt.methods.list.
func MethodsList(deps Deps, params json.RawMessage) (any, error) {
	var p idParams
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	return inspect.ListMethods(obj), nil
}

// MethodsInvoke implements qt.methods.invoke.
func MethodsInvoke(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		idParams
		Name string `json:"name"`
		Args []any  `json:"args"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	result, err := inspect.InvokeMethod(obj, p.Name, p.Args)
	if err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"objectId": idOf(deps, obj), "method": p.Name})
	}
	return map[string]any{"result": result}, nil
}

// SignalsList implements qt.signals.list.
func SignalsList(deps Deps, params json.RawMessage) (any, error) {
	var p idParams
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	return inspect.ListSignals(obj), nil
}

// SignalsSubscribe implements qt.signals.subscribe.
func SignalsSubscribe(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		idParams
		Signal string `json:"signal"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	subID, err := deps.Subscribe(obj, p.Signal)
	if err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"objectId": idOf(deps, obj), "signal": p.Signal})
	}
	return map[string]any{"subscriptionId": subID}, nil
}

// SignalsUnsubscribe implements qt.signals.unsubscribe.
func SignalsUnsubscribe(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		SubscriptionID string `json:"subscriptionId"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	if err := deps.Unsubscribe(p.SubscriptionID); err != nil {
		return nil, rpc.WrapTagged(err, nil)
	}
	return map[string]any{"ok": true}, nil
}

// SignalsSetLifecycle implements qt.signals.setLifecycle: toggles whether
// qtmcp.objectCreated/objectDestroyed notifications are pushed.
func SignalsSetLifecycle(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		Enabled bool `json:"enabled"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	deps.SetLifecycleEnabled(p.Enabled)
	return map[string]any{"enabled": deps.LifecycleEnabled()}, nil
}

// UIClick implements qt.ui.click: presses the object's own center point via
// the coordinate input synthesizer, addressed by object id rather than raw
// pixels (cu.click's job once there is no id to resolve by).
func UIClick(deps Deps, params json.RawMessage) (any, error) {
	var p idParams
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	g, _ := obj.Geometry()
	center := fw.Point{X: g.W / 2, Y: g.H / 2}
	if err := deps.Synth().Click(obj, center, input.ClickSingle); err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"objectId": idOf(deps, obj)})
	}
	return map[string]any{"ok": true}, nil
}

// UISendKeys implements qt.ui.sendKeys: types text into the currently
// focused widget after the caller has presumably focused obj (e.g. via
// qt.ui.click).
func UISendKeys(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		idParams
		Text string `json:"text"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	if _, err := p.resolve(deps); err != nil {
		return nil, err
	}
	if err := deps.Synth().TypeText(p.Text); err != nil {
		return nil, rpc.WrapTagged(err, nil)
	}
	return map[string]any{"ok": true}, nil
}

// UIScreenshot implements qt.ui.screenshot.
func UIScreenshot(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		idParams
		Physical bool `json:"physical"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	res, err := deps.Capturer().Widget(obj, p.Physical)
	if err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"objectId": idOf(deps, obj)})
	}
	return res, nil
}

// UIGeometry implements qt.ui.geometry.
func UIGeometry(deps Deps, params json.RawMessage) (any, error) {
	var p idParams
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	r, dpr, err := deps.Hit().Geometry(obj)
	if err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"objectId": idOf(deps, obj)})
	}
	return map[string]any{"x": r.X, "y": r.Y, "width": r.W, "height": r.H, "devicePixelRatio": dpr}, nil
}

// UIHitTest implements qt.ui.hitTest: the object-id-returning counterpart
// of cu.widgetAt, reporting a full qt.objects.info-shaped result.
func UIHitTest(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := deps.Hit().WidgetAt(fw.Point{X: p.X, Y: p.Y})
	if err != nil {
		return nil, rpc.WrapTagged(err, nil)
	}
	return deps.Info(obj), nil
}

// NamesRegister implements qt.names.register.
func NamesRegister(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		Name string `json:"name"`
		idParams
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	hid, _ := deps.IDOf(obj)
	deps.RegisterAlias(p.Name, hid)
	return map[string]any{"ok": true}, nil
}

// NamesUnregister implements qt.names.unregister.
func NamesUnregister(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		Name string `json:"name"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	return map[string]any{"removed": deps.UnregisterAlias(p.Name)}, nil
}

// NamesList implements qt.names.list.
func NamesList(deps Deps, _ json.RawMessage) (any, error) {
	return deps.ListAliases(), nil
}

// NamesLoad implements qt.names.load: bulk alias ingest.
func NamesLoad(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		Aliases map[string]string `json:"aliases"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	deps.LoadAliases(p.Aliases)
	return map[string]any{"count": len(p.Aliases)}, nil
}

// NamesValidate implements qt.names.validate.
func NamesValidate(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		Name string `json:"name"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	return map[string]any{"valid": deps.ValidateAlias(p.Name)}, nil
}

// QmlInspect implements qt.qml.inspect: reports declarative metadata for
// items constructed from a QML-like document, or QmlNotAvailable for plain
// objects.
func QmlInspect(deps Deps, params json.RawMessage) (any, error) {
	var p idParams
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	if !obj.IsDeclarativeItem() {
		return nil, &rpc.Fault{Code: rpc.ErrQmlNotAvailable, Message: "object was not constructed from a declarative document"}
	}
	return map[string]any{
		"isQmlItem":   true,
		"qmlId":       obj.DeclarativeID(),
		"qmlFile":     obj.DeclarativeFile(),
		"qmlTypeName": obj.DeclarativeTypeName(),
	}, nil
}

// ModelsList implements qt.models.list: walks every tracked object, keeping
// those that resolve to a data model (directly or via a bound view),
// skipping framework-internal models by class-name filter.
func ModelsList(deps Deps, _ json.RawMessage) (any, error) {
	var out []model.Info
	for _, o := range deps.AllObjects() {
		m, err := model.ResolveModel(o)
		if err != nil {
			continue
		}
		if strings.Contains(m.ClassName(), "Internal") {
			continue
		}
		out = append(out, model.Describe(idOf(deps, o), m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ObjectID < out[j].ObjectID })
	return map[string]any{"models": out}, nil
}

// ModelsInfo implements qt.models.info.
func ModelsInfo(deps Deps, params json.RawMessage) (any, error) {
	var p idParams
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	m, err := model.ResolveModel(obj)
	if err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"objectId": idOf(deps, obj)})
	}
	return model.Describe(idOf(deps, obj), m), nil
}

// ModelsData implements qt.models.data.
func ModelsData(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		idParams
		Offset int `json:"offset"`
		Limit  int `json:"limit"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	obj, err := p.resolve(deps)
	if err != nil {
		return nil, err
	}
	m, err := model.ResolveModel(obj)
	if err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"objectId": idOf(deps, obj)})
	}
	page, err := model.GetData(m, p.Offset, p.Limit)
	if err != nil {
		return nil, rpc.WrapTagged(err, map[string]any{"objectId": idOf(deps, obj)})
	}
	return page, nil
}

// LogsQuery implements qt.logs.query.
func LogsQuery(deps Deps, params json.RawMessage) (any, error) {
	var p struct {
		Pattern    string `json:"pattern"`
		ErrorsOnly bool   `json:"errorsOnly"`
		Limit      int    `json:"limit"`
		Clear      bool   `json:"clear"`
	}
	if err := decode(params, &p); err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	entries, err := deps.Logs().Query(p.Pattern, p.ErrorsOnly, p.Limit, p.Clear)
	if err != nil {
		return nil, rpc.InvalidParams(err.Error())
	}
	return map[string]any{"entries": entries}, nil
}

func idOf(deps Deps, obj fw.Object) string {
	id, _ := deps.IDOf(obj)
	return id
}

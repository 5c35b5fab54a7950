// Package inspect implements MetaInspector and VariantCodec:
// meta-object-driven reading/writing of properties, invocation of methods,
// and JSON<->Variant conversion.
package inspect

import (
	"fmt"

	"github.com/ssss2art/qtmcp/internal/fw"
)

// PropertyInfo is the JSON shape for qt.properties.list entries.
type PropertyInfo struct {
	Name     string `json:"name"`
	TypeName string `json:"type"`
	Readable bool   `json:"readable"`
	Writable bool   `json:"writable"`
	Value    any    `json:"value,omitempty"`
}

// MethodInfo is the JSON shape for qt.methods.list entries.
type MethodInfo struct {
	Name           string   `json:"name"`
	Signature      string   `json:"signature"`
	ReturnType     string   `json:"returnType"`
	ParameterTypes []string `json:"parameterTypes,omitempty"`
	ParameterNames []string `json:"parameterNames,omitempty"`
	Access         string   `json:"access"`
}

// SignalInfo is the JSON shape for qt.signals.list entries.
type SignalInfo struct {
	Name           string   `json:"name"`
	Signature      string   `json:"signature"`
	ParameterTypes []string `json:"parameterTypes,omitempty"`
	ParameterNames []string `json:"parameterNames,omitempty"`
}

// ListProperties enumerates every property declared on obj, with its
// current value (best-effort: unreadable properties omit Value).
func ListProperties(obj fw.Object) []PropertyInfo {
	mo := obj.MetaObject()
	descs := mo.Properties()
	out := make([]PropertyInfo, 0, len(descs))
	for _, d := range descs {
		info := PropertyInfo{Name: d.Name, TypeName: d.TypeName, Readable: d.Readable, Writable: d.Writable}
		if d.Readable {
			if v, err := mo.GetProperty(d.Name); err == nil {
				info.Value = ToJSON(v)
			}
		}
		out = append(out, info)
	}
	return out
}

// ListMethods enumerates obj's invokable methods.
func ListMethods(obj fw.Object) []MethodInfo {
	descs := obj.MetaObject().Methods()
	out := make([]MethodInfo, 0, len(descs))
	for _, d := range descs {
		out = append(out, MethodInfo{
			Name: d.Name, Signature: d.Signature, ReturnType: d.ReturnType,
			ParameterTypes: d.ParameterTypes, ParameterNames: d.ParameterNames, Access: d.Access,
		})
	}
	return out
}

// ListSignals enumerates obj's signals.
func ListSignals(obj fw.Object) []SignalInfo {
	descs := obj.MetaObject().Signals()
	out := make([]SignalInfo, 0, len(descs))
	for _, d := range descs {
		out = append(out, SignalInfo{
			Name: d.Name, Signature: d.Signature,
			ParameterTypes: d.ParameterTypes, ParameterNames: d.ParameterNames,
		})
	}
	return out
}

// MaxInvokeArgs bounds invokeMethod's positional argument count.
const MaxInvokeArgs = 10

// GetProperty reads a declared property as JSON, or returns a domain error
// tag ("PropertyNotFound"/"NotReadable") as err's type via the caller's
// fault wrapping — inspect stays RPC-agnostic and returns plain errors;
// internal/surfaces/native maps them to rpc.Fault.
func GetProperty(obj fw.Object, name string) (any, error) {
	mo := obj.MetaObject()
	desc, ok := mo.Property(name)
	if !ok {
		return nil, fmt.Errorf("PropertyNotFound: %s", name)
	}
	if !desc.Readable {
		return nil, fmt.Errorf("NotReadable: %s", name)
	}
	v, err := mo.GetProperty(name)
	if err != nil {
		return nil, fmt.Errorf("NotReadable: %s: %w", name, err)
	}
	return ToJSON(v), nil
}

// SetProperty converts jsonValue to the property's declared type and
// writes it. If the property is undeclared, it writes a dynamic attribute
// and verifies by reading it back.
func SetProperty(obj fw.Object, name string, jsonValue any) error {
	mo := obj.MetaObject()
	desc, ok := mo.Property(name)
	if !ok {
		v, err := FromJSONHint(jsonValue, "")
		if err != nil {
			return fmt.Errorf("ConversionFailed: %s: %w", name, err)
		}
		if err := mo.SetDynamicProperty(name, v); err != nil {
			return fmt.Errorf("ConversionFailed: %s: %w", name, err)
		}
		if _, err := mo.GetProperty(name); err != nil {
			return fmt.Errorf("ConversionFailed: dynamic property %s failed read-back: %w", name, err)
		}
		return nil
	}
	if !desc.Writable {
		return fmt.Errorf("ReadOnly: %s", name)
	}
	v, err := FromJSONHint(jsonValue, desc.TypeName)
	if err != nil {
		return fmt.Errorf("ConversionFailed: %s: %w", name, err)
	}
	if err := mo.SetProperty(name, v); err != nil {
		return fmt.Errorf("ConversionFailed: %s: %w", name, err)
	}
	return nil
}

// InvokeMethod locates the first method whose simple name and arity match
// args, converts arguments by the method's declared parameter types, and
// returns the converted JSON result (nil for void).
func InvokeMethod(obj fw.Object, name string, argsJSON []any) (any, error) {
	if len(argsJSON) > MaxInvokeArgs {
		return nil, fmt.Errorf("InvocationFailed: too many arguments (max %d)", MaxInvokeArgs)
	}
	mo := obj.MetaObject()
	var match *fw.MethodDescriptor
	for _, d := range mo.Methods() {
		if d.Name == name && len(d.ParameterTypes) == len(argsJSON) {
			dd := d
			match = &dd
			break
		}
	}
	if match == nil {
		return nil, fmt.Errorf("MethodNotFound: %s/%d", name, len(argsJSON))
	}
	args := make([]fw.Variant, len(argsJSON))
	for i, raw := range argsJSON {
		typeHint := ""
		if i < len(match.ParameterTypes) {
			typeHint = match.ParameterTypes[i]
		}
		v, err := FromJSONHint(raw, typeHint)
		if err != nil {
			return nil, fmt.Errorf("InvocationFailed: argument %d: %w", i, err)
		}
		args[i] = v
	}
	result, err := mo.Invoke(name, args)
	if err != nil {
		return nil, fmt.Errorf("InvocationFailed: %w", err)
	}
	if match.ReturnType == "" || match.ReturnType == "void" {
		return nil, nil
	}
	return ToJSON(result), nil
}

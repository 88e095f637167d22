package config

import (
	"math/big"

	"github.com/zclconf/go-cty/cty"
)

// NativeParams converts a cty parameter bag into plain Go values, suitable
// for decoding into typed structs. Unknown or null values become nil.
func NativeParams(params map[string]cty.Value) map[string]any {
	out := make(map[string]any, len(params))
	for name, val := range params {
		out[name] = nativeValue(val)
	}
	return out
}

func nativeValue(val cty.Value) any {
	if val.IsNull() || !val.IsKnown() {
		return nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return val.AsString()
	case ty == cty.Bool:
		return val.True()
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return i
		}
		f, _ := bf.Float64()
		return f
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var items []any
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			items = append(items, nativeValue(ev))
		}
		return items
	case ty.IsObjectType() || ty.IsMapType():
		obj := make(map[string]any)
		for it := val.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			obj[kv.AsString()] = nativeValue(ev)
		}
		return obj
	}
	return nil
}

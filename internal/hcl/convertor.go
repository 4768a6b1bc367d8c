package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/specialistvlad/carpdriver/internal/config"
)

// decodeOptions evaluates an options expression (an object or map of
// primitive values) into ordered solver options. A null expression yields
// no options.
func decodeOptions(expr hcl.Expression) ([]config.Option, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsKnown() {
		return nil, fmt.Errorf("options must be known at load time")
	}

	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("options must be an object, got %s", ty.FriendlyName())
	}

	// Element iteration over objects and maps is ordered by key, which keeps
	// the resulting command line stable between runs.
	var opts []config.Option
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		name := k.AsString()
		goVal, err := ToGoValue(v)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", name, err)
		}
		opts = append(opts, config.Option{Name: name, Value: goVal})
	}
	return opts, nil
}

// ToGoValue converts a primitive cty.Value into string, int64, float64 or
// bool. Whole numbers become int64 so they render without a fraction.
func ToGoValue(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, fmt.Errorf("value must not be null")
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Bool:
		return v.True(), nil
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			var i int64
			if err := gocty.FromCtyValue(v, &i); err == nil {
				return i, nil
			}
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", v.Type().FriendlyName())
	}
}

package glint

import (
	"errors"

	"github.com/glint-lang/glint/engine"
	"github.com/glint-lang/glint/schema"
)

// DictFromPropertyArray converts a positional engine array into a fresh
// engine dictionary object keyed by s's property names, pairing elements with
// properties by position and assigning them in schema order. The array length
// must match the schema exactly; an engine exception raised while reading an
// element or writing a property rethrows as *Exception.
func DictFromPropertyArray(ctx *engine.Context, s *schema.ObjectSchema, array engine.Object) (engine.Object, error) {
	length, err := ListLength(ctx, array)
	if err != nil {
		return engine.Object{}, err
	}
	if length != len(s.Properties) {
		return engine.Object{}, errors.New("Array must contain values for all object properties")
	}
	dict := ctx.NewObject(nil, nil)
	for i, p := range s.Properties {
		v, err := PropertyAtIndex(ctx, array, i)
		if err != nil {
			return engine.Object{}, err
		}
		if err := SetProperty(ctx, dict, p.Name, v); err != nil {
			return engine.Object{}, err
		}
	}
	return dict, nil
}

package template

import "reflect"

// skipMergeFields never come from a template spread: they are identity or
// bookkeeping, not directive-shaped data.
var skipMergeFields = map[string]bool{
	"Name":         true,
	"Loc":          true,
	"TemplateRefs": true,
	"LoopVar":      true,
	"LoopValue":    true,
}

// mergeUnset copies every field from src into dst where dst's own field is
// still the zero value, recursing into embedded/nested structs (e.g.
// ProxyCommon). Map-valued fields merge key-by-key instead of wholesale,
// so a dst map that already has some keys still picks up new ones from
// src. dst must be an addressable struct value (e.g. reflect.ValueOf(p).Elem());
// src is a struct value of the same type (spec.md §4.4 "template values are applied only where the entity
// field is unset/default").
func mergeUnset(dst reflect.Value, src reflect.Value) {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if skipMergeFields[f.Name] {
			continue
		}
		df := dst.Field(i)
		sf := src.Field(i)
		if !df.CanSet() {
			continue
		}
		switch df.Kind() {
		case reflect.Struct:
			mergeUnset(df, sf)
		case reflect.Map:
			if sf.IsNil() {
				continue
			}
			if df.IsNil() {
				df.Set(reflect.MakeMap(df.Type()))
			}
			iter := sf.MapRange()
			for iter.Next() {
				k := iter.Key()
				if df.MapIndex(k).IsValid() {
					continue // entity's own key wins
				}
				df.SetMapIndex(k, iter.Value())
			}
		default:
			if isZero(df) && !isZero(sf) {
				df.Set(sf)
			}
		}
	}
}

func isZero(v reflect.Value) bool {
	return v.IsZero()
}

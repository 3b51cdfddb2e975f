package config

import (
	"encoding/json"
	"fmt"
	"math"
)

// MergeDefaults overlays partial onto defaults category by category. Fields
// missing from partial keep their default, unknown keys are ignored, and
// fields whose type does not match the default are skipped. Neither argument
// is modified.
func MergeDefaults(defaults Settings, partial map[string]any) Settings {
	s, err := merge(defaults, partial, false)
	if err != nil {
		return defaults
	}
	return s
}

// MergeDefaultsStrict is MergeDefaults but fails on the first category that
// is not an object or field whose type does not match the default.
func MergeDefaultsStrict(defaults Settings, partial map[string]any) (Settings, error) {
	return merge(defaults, partial, true)
}

func merge(defaults Settings, partial map[string]any, strict bool) (Settings, error) {
	base, err := toObject(defaults)
	if err != nil {
		return defaults, err
	}
	// Round trip so numbers from Go callers compare like decoded JSON.
	overlay, err := toObject(partial)
	if err != nil {
		return defaults, err
	}

	for _, cat := range Categories {
		pv, ok := overlay[cat]
		if !ok || pv == nil {
			continue
		}
		pm, ok := pv.(map[string]any)
		if !ok {
			if strict {
				return defaults, fmt.Errorf("%s: expected object, got %s", cat, jsonKind(pv))
			}
			continue
		}
		dm := base[cat].(map[string]any)
		for key, dv := range dm {
			v, ok := pm[key]
			if !ok {
				continue
			}
			if !sameKind(dv, v) {
				if strict {
					return defaults, fmt.Errorf("%s.%s: expected %s, got %s", cat, key, expectedKind(dv), jsonKind(v))
				}
				continue
			}
			dm[key] = v
		}
	}

	if v, ok := overlay["version"]; ok && v != nil {
		str, isStr := v.(string)
		switch {
		case isStr && str != "":
			base["version"] = str
		case !isStr && strict:
			return defaults, fmt.Errorf("version: expected string, got %s", jsonKind(v))
		}
	}
	if v, ok := overlay["lastModified"]; ok && v != nil {
		switch {
		case sameKind(base["lastModified"], v) && v.(float64) > 0:
			base["lastModified"] = v
		case strict && !sameKind(base["lastModified"], v):
			return defaults, fmt.Errorf("lastModified: expected number, got %s", jsonKind(v))
		}
	}

	data, err := json.Marshal(base)
	if err != nil {
		return defaults, err
	}
	var out Settings
	if err := json.Unmarshal(data, &out); err != nil {
		return defaults, err
	}
	return out, nil
}

func toObject(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := map[string]any{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func expectedKind(def any) string {
	if _, ok := def.(float64); ok {
		return "integer"
	}
	return jsonKind(def)
}

// sameKind reports whether v can replace def. Every numeric setting is an
// integer, so fractional numbers are rejected.
func sameKind(def, v any) bool {
	switch def.(type) {
	case string:
		_, ok := v.(string)
		return ok
	case bool:
		_, ok := v.(bool)
		return ok
	case float64:
		f, ok := v.(float64)
		return ok && f == math.Trunc(f) && math.Abs(f) < 1<<53
	}
	return false
}

package config

import "fmt"

// DecodePartial converts a setup table received from Lua into a Partial.
// Unknown keys are ignored; a key with the wrong type is an error.
func DecodePartial(v any) (Partial, error) {
	var p Partial
	fields, err := asTable(v, "setup")
	if err != nil || fields == nil {
		return p, err
	}

	for key, dst := range map[string]**string{
		"shell":         &p.Shell,
		"binary":        &p.Binary,
		"log_file":      &p.LogFile,
		"otel_endpoint": &p.OTELEndpoint,
		"otel_headers":  &p.OTELHeaders,
	} {
		if *dst, err = optString(fields, key); err != nil {
			return Partial{}, err
		}
	}
	if p.Debug, err = optBool(fields, "debug"); err != nil {
		return Partial{}, err
	}

	if raw, ok := fields["defaults"]; ok && raw != nil {
		sub, err := asTable(raw, "defaults")
		if err != nil {
			return Partial{}, err
		}
		var d PartialDefaults
		for key, dst := range map[string]**bool{
			"floating":        &d.Floating,
			"close_on_exit":   &d.CloseOnExit,
			"start_suspended": &d.StartSuspended,
		} {
			if *dst, err = optBool(sub, key); err != nil {
				return Partial{}, fmt.Errorf("defaults: %w", err)
			}
		}
		p.Defaults = &d
	}

	if raw, ok := fields["notifications"]; ok && raw != nil {
		sub, err := asTable(raw, "notifications")
		if err != nil {
			return Partial{}, err
		}
		var n PartialNotifications
		for key, dst := range map[string]**bool{
			"enabled":    &n.Enabled,
			"on_success": &n.OnSuccess,
			"on_error":   &n.OnError,
		} {
			if *dst, err = optBool(sub, key); err != nil {
				return Partial{}, fmt.Errorf("notifications: %w", err)
			}
		}
		p.Notifications = &n
	}
	return p, nil
}

// asTable returns nil fields for a nil value. An empty Lua table arrives
// as an empty list.
func asTable(v any, what string) (map[string]any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return t, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%s: non-string key %v", what, k)
			}
			out[key] = val
		}
		return out, nil
	case []any:
		if len(t) == 0 {
			return map[string]any{}, nil
		}
	}
	return nil, fmt.Errorf("%s: expected a table, got %T", what, v)
}

func optString(fields map[string]any, key string) (*string, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("field %q: expected string, got %T", key, v)
	}
	return &s, nil
}

func optBool(fields map[string]any, key string) (*bool, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("field %q: expected boolean, got %T", key, v)
	}
	return &b, nil
}

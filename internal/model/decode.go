package model

import (
	"fmt"
	"math"
)

// DecodePaneInput converts a dynamically typed value, as received from a Lua
// caller over msgpack-RPC, into the PaneInput union. Strings become a
// RawCommand and tables become RawOptions; anything else is an
// InvalidInputKindError naming the received type.
func DecodePaneInput(v any) (PaneInput, error) {
	switch in := v.(type) {
	case string:
		return RawCommand{Text: in}, nil
	case map[string]any, map[any]any, []any:
		fields, err := table(in)
		if err != nil {
			return nil, err
		}
		return decodeRawOptions(fields)
	default:
		return nil, &InvalidInputKindError{Got: kindOf(v)}
	}
}

// DecodeRunInput decodes the optional options table of a run call.
func DecodeRunInput(v any) (RunInput, error) {
	if v == nil {
		return RunInput{}, nil
	}
	fields, err := table(v)
	if err != nil {
		return RunInput{}, err
	}
	return decodeRawOptions(fields)
}

// DecodeEditInput decodes the optional options table of an edit call.
func DecodeEditInput(v any) (EditInput, error) {
	var in EditInput
	if v == nil {
		return in, nil
	}
	fields, err := table(v)
	if err != nil {
		return in, err
	}
	if in.Line, err = intField(fields, "line"); err != nil {
		return in, err
	}
	if in.Floating, err = boolField(fields, "floating"); err != nil {
		return in, err
	}
	if in.Direction, err = stringField(fields, "direction"); err != nil {
		return in, err
	}
	if in.Cwd, err = stringField(fields, "cwd"); err != nil {
		return in, err
	}
	if in.Session, err = stringField(fields, "session"); err != nil {
		return in, err
	}
	return in, nil
}

// DecodeTabInput decodes the optional options table of a new-tab call.
func DecodeTabInput(v any) (TabInput, error) {
	var in TabInput
	if v == nil {
		return in, nil
	}
	fields, err := table(v)
	if err != nil {
		return in, err
	}
	for key, dst := range map[string]*string{
		"layout":     &in.Layout,
		"layout_url": &in.LayoutURL,
		"name":       &in.Name,
		"cwd":        &in.Cwd,
		"session":    &in.Session,
	} {
		if *dst, err = stringField(fields, key); err != nil {
			return in, err
		}
	}
	return in, nil
}

func decodeRawOptions(fields map[string]any) (RawOptions, error) {
	var (
		o   RawOptions
		err error
	)
	for key, dst := range map[string]*string{
		"cmd":       &o.Cmd,
		"direction": &o.Direction,
		"cwd":       &o.Cwd,
		"name":      &o.Name,
		"session":   &o.Session,
	} {
		if *dst, err = stringField(fields, key); err != nil {
			return o, err
		}
	}
	for key, dst := range map[string]**bool{
		"floating":        &o.Floating,
		"close_on_exit":   &o.CloseOnExit,
		"start_suspended": &o.StartSuspended,
	} {
		if *dst, err = boolField(fields, key); err != nil {
			return o, err
		}
	}
	return o, nil
}

// table accepts a Lua table. Neovim sends an empty Lua table as an empty
// array, which is treated as an empty record.
func table(v any) (map[string]any, error) {
	switch t := v.(type) {
	case map[string]any:
		return t, nil
	case map[any]any:
		fields := make(map[string]any, len(t))
		for k, v := range t {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("table key %v: expected string, got %s", k, kindOf(k))
			}
			fields[key] = v
		}
		return fields, nil
	case []any:
		if len(t) == 0 {
			return map[string]any{}, nil
		}
		return nil, &InvalidInputKindError{Got: "list"}
	default:
		return nil, &InvalidInputKindError{Got: kindOf(v)}
	}
}

func stringField(fields map[string]any, key string) (string, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q: expected string, got %s", key, kindOf(v))
	}
	return s, nil
}

func boolField(fields map[string]any, key string) (*bool, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return nil, nil
	}
	b, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("field %q: expected boolean, got %s", key, kindOf(v))
	}
	return &b, nil
}

func intField(fields map[string]any, key string) (int, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		if n > math.MaxInt32 {
			return 0, fmt.Errorf("field %q: %d out of range", key, n)
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("field %q: expected integer, got %v", key, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("field %q: expected number, got %s", key, kindOf(v))
	}
}

// kindOf names a value in the vocabulary of the Lua caller.
func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case bool:
		return "boolean"
	case string:
		return "string"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case map[string]any, map[any]any:
		return "table"
	case []any:
		return "list"
	default:
		return fmt.Sprintf("%T", v)
	}
}

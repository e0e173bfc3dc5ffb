package alacs

import "sort"

// ToPlain lowers file to a plain Go value: Text becomes its normalized
// string, List becomes []any, and Dict/File become map[string]any. The plain
// form is an interchange shape (mirroring encoding/json's any-tree), so it
// does not carry comments, blank-line flags, or insertion order — callers
// that need those round-tripped must keep the *File instead.
func (e *Engine) ToPlain(file *File) (any, error) {
	e.errors = e.errors[:0]
	e.indent = newIndentRoot()
	result := e.valueToPlain(&file.Dict)
	if e.hasErrors() {
		return nil, e.raise("illegal non-`Value` data")
	}
	return result, nil
}

func (e *Engine) valueToPlain(v Value) any {
	switch val := v.(type) {
	case nil:
		e.addError(0, "missing value")
		return nil
	case *Text:
		return val.Lines.String()
	case *List:
		out := make([]any, len(val.Items))
		for i, item := range val.Items {
			out[i] = e.valueToPlain(item)
		}
		return out
	case *Dict:
		out := make(map[string]any, val.Len())
		for _, entry := range val.Entries() {
			out[entry.Key.Text] = e.valueToPlain(entry.Value)
		}
		return out
	default:
		e.addError(0, "value of unrecognized kind")
		return nil
	}
}

// FromPlain lifts a plain Go value back into a File: a top-level
// map[string]any becomes the root dict; nested map[string]any becomes Dict,
// []any becomes List, string or []byte becomes Text, nil becomes empty Text.
// Map keys are visited in sorted order so the resulting insertion order is
// deterministic despite Go's unordered map iteration.
func (e *Engine) FromPlain(data any) (*File, error) {
	e.errors = e.errors[:0]
	e.indent = newIndentRoot()

	file := NewFile()
	m, ok := data.(map[string]any)
	if !ok {
		e.addError(0, "top-level plain data must be a mapping")
		return nil, e.raise("illegal non-`Value` data")
	}
	for _, k := range sortedKeys(m) {
		key, err := NewKey(k)
		if err != nil {
			e.addErrorf(0, "%s", err)
			continue
		}
		e.indent.setDictKey(k)
		file.Dict.Set(key, e.plainToValue(m[k]))
		e.indent.clearKey()
	}

	if e.hasErrors() {
		return nil, e.raise("illegal non-`Value` data")
	}
	return file, nil
}

func (e *Engine) plainToValue(v any) Value {
	switch val := v.(type) {
	case nil:
		return &Text{}
	case string:
		t := &Text{Lines: UTF8{[]byte(val)}}
		t.Lines.Normalize(&e.scratch)
		return t
	case []byte:
		t := &Text{Lines: UTF8{val}}
		t.Lines.Normalize(&e.scratch)
		return t
	case []any:
		items := make([]Value, len(val))
		for i, item := range val {
			items[i] = e.plainToValue(item)
		}
		return &List{Items: items}
	case map[string]any:
		d := NewDict()
		for _, k := range sortedKeys(val) {
			key, err := NewKey(k)
			if err != nil {
				e.addErrorf(0, "%s", err)
				continue
			}
			d.Set(key, e.plainToValue(val[k]))
		}
		return d
	default:
		e.addErrorf(0, "plain value of unsupported type %T", val)
		return &Text{}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package callz

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultTruncate is the default maximum number of characters kept from a
// formatted argument or return value.
const DefaultTruncate = 200

// Unreprable replaces a value whose formatting panicked.
const Unreprable = "<unrepr-able value>"

// FormatValue renders v for a log line, keeping at most limit characters of
// its representation. Strings are quoted. A value whose representation is
// longer than limit is cut and annotated with its original length:
//
//	"aaaa"... (1000 chars)
//
// FormatValue never panics. A limit <= 0 disables truncation.
func FormatValue(v any, limit int) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = Unreprable
		}
	}()
	return render(v, limit)
}

// formatter renders arguments and results for one wrapped function.
type formatter struct {
	repr    func(any) string
	onPanic func(r any)
	limit   int
}

func (f formatter) value(v any) (out string) {
	if f.repr == nil {
		return FormatValue(v, f.limit)
	}
	defer func() {
		if r := recover(); r != nil {
			notify(f.onPanic, r)
			out = Unreprable
		}
	}()
	return truncate(f.repr(v), f.limit, false)
}

func (f formatter) args(args []any) string {
	if len(args) == 0 {
		return ""
	}
	var b strings.Builder
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.value(a))
	}
	return b.String()
}

func render(v any, limit int) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return renderNilPointer(v, limit)
		}
	case reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return "nil"
		}
	}

	switch x := v.(type) {
	case string:
		return truncate(x, limit, true)
	case []byte:
		return truncate(string(x), limit, true)
	case error:
		return truncate(x.Error(), limit, true)
	case fmt.Stringer:
		return truncate(x.String(), limit, false)
	}

	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	case reflect.Complex64:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, 64)
	case reflect.Complex128:
		return strconv.FormatComplex(rv.Complex(), 'g', -1, 128)
	case reflect.String:
		return truncate(rv.String(), limit, true)
	case reflect.Func, reflect.Chan:
		return rv.Type().String()
	}

	if nested(rv, 0, make(map[visit]bool)) {
		return truncate("<"+rv.Type().String()+" nested too deeply>", limit, false)
	}
	return truncate(fmt.Sprintf("%+v", v), limit, false)
}

// renderNilPointer gives methods with nil-safe pointer receivers a chance to
// describe the value.
func renderNilPointer(v any, limit int) string {
	switch x := v.(type) {
	case error:
		if s, ok := tryString(func() string { return x.Error() }); ok {
			return truncate(s, limit, true)
		}
	case fmt.Stringer:
		if s, ok := tryString(func() string { return x.String() }); ok {
			return truncate(s, limit, false)
		}
	}
	return "nil"
}

func tryString(fn func() string) (s string, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return fn(), true
}

// maxDepth bounds how deep a composite value may nest before it is printed
// as a placeholder.
const maxDepth = 32

// visit identifies a slice or map on the current path.
type visit struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// nested reports whether printing v with fmt would descend more than maxDepth
// levels or never finish because a slice or map contains itself.
// It follows the same path fmt does: pointers only at the top level, and no
// further than values that print themselves through Error or String.
func nested(v reflect.Value, depth int, path map[visit]bool) bool {
	if depth > maxDepth {
		return true
	}
	if depth > 0 && v.CanInterface() {
		switch v.Interface().(type) {
		case error, fmt.Stringer:
			return false
		}
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return false
		}
		return nested(v.Elem(), depth+1, path)
	case reflect.Pointer:
		if depth > 0 || v.IsNil() {
			return false
		}
		switch v.Elem().Kind() {
		case reflect.Array, reflect.Slice, reflect.Struct, reflect.Map:
			return nested(v.Elem(), depth+1, path)
		}
	case reflect.Struct:
		for i := range v.NumField() {
			if nested(v.Field(i), depth+1, path) {
				return true
			}
		}
	case reflect.Array:
		if scalar(v.Type().Elem().Kind()) {
			return false
		}
		for i := range v.Len() {
			if nested(v.Index(i), depth+1, path) {
				return true
			}
		}
	case reflect.Slice:
		if v.Len() == 0 || scalar(v.Type().Elem().Kind()) {
			return false
		}
		key := visit{typ: v.Type(), ptr: v.Pointer(), len: v.Len()}
		if path[key] {
			return true
		}
		path[key] = true
		defer delete(path, key)
		for i := range v.Len() {
			if nested(v.Index(i), depth+1, path) {
				return true
			}
		}
	case reflect.Map:
		if v.Len() == 0 {
			return false
		}
		key := visit{typ: v.Type(), ptr: v.Pointer()}
		if path[key] {
			return true
		}
		path[key] = true
		defer delete(path, key)
		iter := v.MapRange()
		for iter.Next() {
			if nested(iter.Key(), depth+1, path) || nested(iter.Value(), depth+1, path) {
				return true
			}
		}
	}
	return false
}

func scalar(k reflect.Kind) bool {
	switch k {
	case reflect.Interface, reflect.Pointer, reflect.Struct, reflect.Array, reflect.Slice, reflect.Map:
		return false
	}
	return true
}

// truncate cuts s to limit characters of its printed form. A quoted string
// is cut after quoting, so escape sequences count toward the limit and are
// never split. A cut representation is followed by an ellipsis and the
// original length in characters.
func truncate(s string, limit int, quote bool) string {
	n := utf8.RuneCountInString(s)
	if !quote {
		if limit <= 0 || n <= limit {
			return s
		}
		return cutRunes(s, limit) + "... (" + strconv.Itoa(n) + " chars)"
	}

	q := strconv.Quote(s)
	body := q[1 : len(q)-1]
	if limit <= 0 || utf8.RuneCountInString(body) <= limit {
		return q
	}
	return `"` + cutEscaped(body, limit) + `"... (` + strconv.Itoa(n) + " chars)"
}

func cutRunes(s string, limit int) string {
	for i := range s {
		if limit == 0 {
			return s[:i]
		}
		limit--
	}
	return s
}

// cutEscaped cuts a quoted body to at most limit runes without splitting an
// escape sequence produced by strconv.Quote.
func cutEscaped(body string, limit int) string {
	end := 0
	for end < len(body) {
		size := 1
		if body[end] == '\\' && end+1 < len(body) {
			switch body[end+1] {
			case 'x':
				size = 4
			case 'u':
				size = 6
			case 'U':
				size = 10
			default:
				size = 2
			}
		} else {
			_, size = utf8.DecodeRuneInString(body[end:])
		}

		width := 1
		if body[end] == '\\' {
			width = size
		}
		if limit < width {
			break
		}
		limit -= width
		end += size
	}
	return body[:end]
}

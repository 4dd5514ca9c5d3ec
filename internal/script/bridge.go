// bridge.go converts values crossing between Go and Lua.
//
// Design: Lua tables and functions stay opaque (*lua.LTable,
// *lua.LFunction) while they travel through the registry, so a filter chain
// written in Lua sees the same table it returned, not a copy. Export turns
// them into plain Go values once a result leaves the runtime.

package script

import (
	"fmt"
	"reflect"

	lua "github.com/yuin/gopher-lua"
)

// toGo converts a Lua value for use as a hook argument.
func toGo(lv lua.LValue) any {
	switch v := lv.(type) {
	case nil, *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LUserData:
		return v.Value
	default:
		// tables, functions, coroutines
		return v
	}
}

// toLua converts a Go value for use inside Lua.
func toLua(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case lua.LValue:
		return val
	case bool:
		return lua.LBool(val)
	case string:
		return lua.LString(val)
	case []byte:
		return lua.LString(val)
	case int:
		return lua.LNumber(val)
	case int32:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case uint:
		return lua.LNumber(val)
	case uint64:
		return lua.LNumber(val)
	case float32:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case []any:
		t := L.NewTable()
		for i, e := range val {
			t.RawSetInt(i+1, toLua(L, e))
		}
		return t
	case []string:
		t := L.NewTable()
		for i, e := range val {
			t.RawSetInt(i+1, lua.LString(e))
		}
		return t
	case map[string]any:
		t := L.NewTable()
		for k, e := range val {
			t.RawSetString(k, toLua(L, e))
		}
		return t
	default:
		return reflectToLua(L, v)
	}
}

// reflectToLua handles slices and maps of other element types. Anything else
// becomes userdata, which Lua can pass along but not inspect.
func reflectToLua(L *lua.LState, v any) lua.LValue {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		t := L.NewTable()
		for i := range rv.Len() {
			t.RawSetInt(i+1, toLua(L, rv.Index(i).Interface()))
		}
		return t
	case reflect.Map:
		t := L.NewTable()
		iter := rv.MapRange()
		for iter.Next() {
			t.RawSet(toLua(L, iter.Key().Interface()), toLua(L, iter.Value().Interface()))
		}
		return t
	default:
		ud := L.NewUserData()
		ud.Value = v
		return ud
	}
}

// Export converts a dispatch result into plain Go values: Lua tables become
// []any (sequences) or map[string]any, functions become a placeholder
// string. Values that are already plain are returned unchanged.
func Export(v any) any {
	return export(v, make(map[*lua.LTable]bool))
}

func export(v any, seen map[*lua.LTable]bool) any {
	switch val := v.(type) {
	case *lua.LTable:
		if seen[val] {
			return nil
		}
		seen[val] = true
		defer delete(seen, val)
		return exportTable(val, seen)
	case *lua.LFunction:
		return "<function>"
	case lua.LValue:
		g := toGo(val)
		if lv, ok := g.(lua.LValue); ok {
			return lv.String()
		}
		return export(g, seen)
	default:
		return v
	}
}

func exportTable(t *lua.LTable, seen map[*lua.LTable]bool) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && n == count {
		arr := make([]any, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = export(t.RawGetInt(i), seen)
		}
		return arr
	}

	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = fmt.Sprint(toGo(kv))
		default:
			key = k.String()
		}
		m[key] = export(v, seen)
	})
	return m
}

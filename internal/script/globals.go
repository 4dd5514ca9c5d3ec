// globals.go installs the wpbones_* functions scripts use to reach the
// registry.
//
// Separated from runtime.go to keep the Lua-facing surface in one place.
//
// Design: Argument handling mirrors what page scripts were written against.
// A missing, nil, zero, NaN or non-numeric priority means 10; any other
// number is kept as is, fractions and infinities included. A callback that is
// not a function is still registered, and dispatch skips it, so a script
// that passes the wrong thing fails quietly rather than aborting the load.

package script

import (
	"fmt"
	"math"

	"github.com/jpl-au/wphooks/hook"
	lua "github.com/yuin/gopher-lua"
)

func (rt *Runtime) installGlobals() {
	funcs := map[string]lua.LGFunction{
		"wpbones_add_filter":    rt.luaAddFilter,
		"wpbones_add_action":    rt.luaAddAction,
		"wpbones_apply_filters": rt.luaApplyFilters,
		"wpbones_do_action":     rt.luaDoAction,
		"wpbones_did_action":    rt.luaDidAction,
		"wpbones_has_filter":    rt.luaHas(hook.NamespaceFilter),
		"wpbones_has_action":    rt.luaHas(hook.NamespaceAction),
		"print":                 rt.luaPrint,
	}
	for name, fn := range funcs {
		rt.L.SetGlobal(name, rt.L.NewFunction(fn))
	}
}

// priorityArg reads an optional priority at stack index n.
func priorityArg(L *lua.LState, n int) hook.Priority {
	p, ok := L.Get(n).(lua.LNumber)
	if !ok || p == 0 || math.IsNaN(float64(p)) {
		return hook.DefaultPriority
	}
	return hook.Priority(p)
}

// varargs collects stack values from index n to the top as Go values.
func varargs(L *lua.LState, n int) []any {
	top := L.GetTop()
	if top < n {
		return nil
	}
	args := make([]any, 0, top-n+1)
	for i := n; i <= top; i++ {
		args = append(args, toGo(L.Get(i)))
	}
	return args
}

func (rt *Runtime) luaAddFilter(L *lua.LState) int {
	tag := L.CheckString(1)
	var cb hook.FilterFunc
	if fn, ok := L.Get(2).(*lua.LFunction); ok {
		cb = rt.filterFunc(tag, fn)
	}
	rt.reg.AddFilter(tag, cb, priorityArg(L, 3))
	return 0
}

func (rt *Runtime) luaAddAction(L *lua.LState) int {
	tag := L.CheckString(1)
	var cb hook.ActionFunc
	if fn, ok := L.Get(2).(*lua.LFunction); ok {
		cb = rt.actionFunc(tag, fn)
	}
	rt.reg.AddAction(tag, cb, priorityArg(L, 3))
	return 0
}

func (rt *Runtime) luaApplyFilters(L *lua.LState) int {
	tag := L.CheckString(1)
	value := toGo(L.Get(2))
	out := rt.reg.ApplyFilters(tag, value, varargs(L, 3)...)
	L.Push(toLua(L, out))
	return 1
}

func (rt *Runtime) luaDoAction(L *lua.LState) int {
	tag := L.CheckString(1)
	rt.reg.DoAction(tag, varargs(L, 2)...)
	return 0
}

func (rt *Runtime) luaDidAction(L *lua.LState) int {
	L.Push(lua.LNumber(rt.reg.DidAction(L.CheckString(1))))
	return 1
}

func (rt *Runtime) luaHas(ns hook.Namespace) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(lua.LBool(rt.reg.Has(ns, L.CheckString(1))))
		return 1
	}
}

func (rt *Runtime) luaPrint(L *lua.LState) int {
	top := L.GetTop()
	for i := 1; i <= top; i++ {
		if i > 1 {
			fmt.Fprint(rt.out, "\t")
		}
		fmt.Fprint(rt.out, L.ToStringMeta(L.Get(i)).String())
	}
	fmt.Fprintln(rt.out)
	return 0
}

// filterFunc adapts a Lua function to a hook.FilterFunc. Lua errors are
// raised as Go panics so they abort the dispatch like any other failing
// callback; Run turns them back into errors.
func (rt *Runtime) filterFunc(tag string, fn *lua.LFunction) hook.FilterFunc {
	return func(value any, args ...any) any {
		L := rt.L
		params := make([]lua.LValue, 0, len(args)+1)
		params = append(params, toLua(L, value))
		for _, a := range args {
			params = append(params, toLua(L, a))
		}
		if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, params...); err != nil {
			panic(fmt.Errorf("filter %q: %w", tag, err))
		}
		ret := L.Get(-1)
		L.Pop(1)
		return toGo(ret)
	}
}

// actionFunc adapts a Lua function to a hook.ActionFunc. Return values are
// discarded.
func (rt *Runtime) actionFunc(tag string, fn *lua.LFunction) hook.ActionFunc {
	return func(args ...any) {
		L := rt.L
		params := make([]lua.LValue, 0, len(args))
		for _, a := range args {
			params = append(params, toLua(L, a))
		}
		if err := L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, params...); err != nil {
			panic(fmt.Errorf("action %q: %w", tag, err))
		}
	}
}

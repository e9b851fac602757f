package config

import (
	lua "github.com/yuin/gopher-lua"
)

// sandboxLibs are the only standard libraries a config can use.
var sandboxLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.TabLibName, lua.OpenTable},
	{lua.StringLibName, lua.OpenString},
	{lua.MathLibName, lua.OpenMath},
}

// blockedBaseFuncs load code from outside the config string.
var blockedBaseFuncs = []string{"require", "module", "dofile", "loadfile", "load", "loadstring"}

// newSandboxedVM returns a Lua VM with only the base, table, string and
// math libraries. os, io, package and debug are never opened.
func newSandboxedVM() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range sandboxLibs {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
	for _, name := range blockedBaseFuncs {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

package luaabi

import (
	"fmt"

	"github.com/ebitengine/purego"

	"github.com/wayfinder-dap/wayfinder/internal/wferr"
)

// Open probes Discover's candidate paths for version, loads the first one
// found, and resolves every symbol the wrapper layer needs. It returns
// *wferr.InterpreterLoadError if no candidate exists, the library fails to
// load, or a required symbol cannot be resolved.
func Open(version HostVersion) (*Binding, error) {
	candidates, err := Discover(version)
	if err != nil {
		return nil, &wferr.InterpreterLoadError{Version: version.String(), Cause: err}
	}

	path, ok := firstExisting(candidates)
	if !ok {
		return nil, &wferr.InterpreterLoadError{
			Version: version.String(),
			Cause:   fmt.Errorf("no candidate library found, probed: %v", candidates),
		}
	}
	return OpenPath(version, path)
}

// OpenPath loads a specific shared library path for version, bypassing
// Discover. Used by tests and by operators pinning an exact library file.
func OpenPath(version HostVersion, path string) (*Binding, error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, &wferr.InterpreterLoadError{Version: version.String(), Cause: err}
	}

	b := &Binding{Version: version, handle: handle, libraryPath: path}
	syms := symbolsFor(version)

	type requiredSym struct {
		name string
		fptr interface{}
	}
	required := []requiredSym{
		{"lua_close", &b.Close},
		{"lua_newthread", &b.NewThread},
		{"lua_gettop", &b.GetTop},
		{"lua_settop", &b.SetTop},
		{"lua_pushvalue", &b.PushValue},
		{"lua_pop", &b.Pop},
		{"lua_remove", &b.Remove},
		{"lua_insert", &b.Insert},
		{"lua_replace", &b.Replace},
		{"lua_type", &b.Type},
		{"lua_typename", &b.TypeName},
		{"lua_tonumber", &b.ToNumber},
		{"lua_tointeger", &b.ToInteger},
		{"lua_toboolean", &b.ToBoolean},
		{"lua_tolstring", &b.ToLString},
		{"lua_topointer", &b.ToPointer},
		{"lua_pushnil", &b.PushNil},
		{"lua_pushnumber", &b.PushNumber},
		{"lua_pushinteger", &b.PushInteger},
		{"lua_pushstring", &b.PushString},
		{"lua_pushboolean", &b.PushBoolean},
		{"lua_pushlightuserdata", &b.PushLightUserdata},
		{"lua_getglobal", &b.GetGlobal},
		{"lua_setglobal", &b.SetGlobal},
		{"lua_getfield", &b.GetField},
		{"lua_setfield", &b.SetField},
		{"lua_gettable", &b.GetTable},
		{"lua_settable", &b.SetTable},
		{"lua_rawgeti", &b.RawGetI},
		{"lua_rawseti", &b.RawSetI},
		{"lua_createtable", &b.CreateTable},
		{"lua_next", &b.Next},
		{"lua_error", &b.Error},
		{"luaL_ref", &b.Ref},
		{"luaL_unref", &b.Unref},
		{"lua_getstack", &b.getStackRaw},
		{"lua_getinfo", &b.getInfoRaw},
		{"lua_getlocal", &b.getLocalRaw},
		{"lua_setlocal", &b.setLocalRaw},
		{"lua_getupvalue", &b.getUpvalueRaw},
		{"lua_setupvalue", &b.setUpvalueRaw},
		{"lua_sethook", &b.setHookRaw},
		{"luaL_openlibs", &b.OpenLibs},
		{"luaL_newstate", &b.NewState},
		{syms.pcallSymbol, &b.PCall},
		{syms.loadBufferSymbol, &b.LoadBuffer},
	}

	for _, sym := range required {
		if err := registerRequired(handle, sym.name, sym.fptr); err != nil {
			return nil, &wferr.InterpreterLoadError{Version: version.String(), Symbol: sym.name, Cause: err}
		}
	}

	b.Capabilities.HasPushGlobalTable = registerOptional(handle, "lua_pushglobaltable", &b.pushGlobalTable)
	b.Capabilities.HasRawLen = syms.rawLenIsReal && registerOptional(handle, syms.rawLenOrObjLen, &b.rawLen)
	if !b.Capabilities.HasRawLen {
		registerOptional(handle, syms.rawLenOrObjLen, &b.objLen)
	}
	b.Capabilities.HasPCallK = syms.pcallHasCont
	b.Capabilities.HasLoadBufferX = syms.loadBufferHasMode
	b.Capabilities.HasResetThread = syms.hasResetThread && registerOptional(handle, "lua_resetthread", &b.resetThread)

	return b, nil
}

// registerRequired resolves and binds a required symbol, converting the
// panic purego.RegisterLibFunc raises on an unresolved symbol into a
// regular error so a malformed/foreign shared library never crashes the
// debug adapter process outright.
func registerRequired(handle uintptr, name string, fptr interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	purego.RegisterLibFunc(fptr, handle, name)
	return nil
}

// registerOptional resolves and binds a symbol that may legitimately be
// absent, returning whether it was found.
func registerOptional(handle uintptr, name string, fptr interface{}) bool {
	addr, err := purego.Dlsym(handle, name)
	if err != nil {
		return false
	}
	purego.RegisterFunc(fptr, addr)
	return true
}

package luaabi

// versionSymbols names the C symbols whose presence or naming differs
// between host versions (spec §4.1's "version compatibility shims"). Every
// other symbol this package resolves (lua_gettop, lua_pushnil,
// lua_getglobal, ...) keeps the same C name across V51..V54 and is listed
// directly in load.go instead of here. Each version's table lives in its
// own symbols_v5N.go file.
type versionSymbols struct {
	// length: "lua_objlen" (5.1) vs "lua_rawlen" (5.2+)
	rawLenOrObjLen string
	rawLenIsReal   bool // true if rawLenOrObjLen is lua_rawlen

	// protected call: "lua_pcall" (5.1, no continuation) vs
	// "lua_pcallk" (5.2+, continuation-capable; lua_pcall is a macro over
	// it and not an exported symbol in the real shared library).
	pcallSymbol  string
	pcallHasCont bool

	// chunk load: "luaL_loadbuffer" (5.1) vs "luaL_loadbufferx" (5.2+,
	// accepts a text/binary mode string).
	loadBufferSymbol  string
	loadBufferHasMode bool

	// global table: lua_pushglobaltable is a real exported symbol from 5.2
	// onward; absent in 5.1, where the binding emulates it via
	// lua_pushvalue on the LUA_GLOBALSINDEX pseudo-index (see shims.go).
	hasPushGlobalTable bool

	// lua_resetthread was added in 5.4.
	hasResetThread bool
}

func symbolsFor(version HostVersion) versionSymbols {
	switch version {
	case V51:
		return symbolsV51
	case V52:
		return symbolsV52
	case V53:
		return symbolsV53
	case V54:
		return symbolsV54
	default:
		return versionSymbols{}
	}
}

package luaabi

// symbolsV54 adds lua_resetthread over 5.3's surface.
var symbolsV54 = versionSymbols{
	rawLenOrObjLen:     "lua_rawlen",
	rawLenIsReal:       true,
	pcallSymbol:        "lua_pcallk",
	pcallHasCont:       true,
	loadBufferSymbol:   "luaL_loadbufferx",
	loadBufferHasMode:  true,
	hasPushGlobalTable: true,
	hasResetThread:     true,
}

package luaabi

// symbolsV52 captures liblua5.2's ABI surface: the continuation-capable
// call family and the global-table/mode-aware loader primitives arrive
// here and persist through 5.3/5.4.
var symbolsV52 = versionSymbols{
	rawLenOrObjLen:     "lua_rawlen",
	rawLenIsReal:       true,
	pcallSymbol:        "lua_pcallk",
	pcallHasCont:       true,
	loadBufferSymbol:   "luaL_loadbufferx",
	loadBufferHasMode:  true,
	hasPushGlobalTable: true,
	hasResetThread:     false,
}

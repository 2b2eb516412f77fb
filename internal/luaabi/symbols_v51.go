package luaabi

// symbolsV51 captures liblua5.1's ABI surface: no continuation-capable
// pcall, no mode-aware buffer loader, no dedicated global-table primitive.
var symbolsV51 = versionSymbols{
	rawLenOrObjLen:     "lua_objlen",
	rawLenIsReal:       false,
	pcallSymbol:        "lua_pcall",
	pcallHasCont:       false,
	loadBufferSymbol:   "luaL_loadbuffer",
	loadBufferHasMode:  false,
	hasPushGlobalTable: false,
	hasResetThread:     false,
}

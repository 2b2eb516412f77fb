package luaabi

// symbolsV53 is identical to 5.2's relevant surface for this binding's
// purposes; 5.3's additions (integer subtype, bitwise ops) aren't part of
// the symbol set this debugger needs.
var symbolsV53 = versionSymbols{
	rawLenOrObjLen:     "lua_rawlen",
	rawLenIsReal:       true,
	pcallSymbol:        "lua_pcallk",
	pcallHasCont:       true,
	loadBufferSymbol:   "luaL_loadbufferx",
	loadBufferHasMode:  true,
	hasPushGlobalTable: true,
	hasResetThread:     false,
}

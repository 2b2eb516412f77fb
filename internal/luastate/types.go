package luastate

// Native type tags returned by lua_type, stable across V51..V54.
const (
	tagNil           int32 = 0
	tagBoolean       int32 = 1
	tagLightUserdata int32 = 2
	tagNumber        int32 = 3
	tagString        int32 = 4
	tagTable         int32 = 5
	tagFunction      int32 = 6
	tagUserdata      int32 = 7
	tagThread        int32 = 8
)

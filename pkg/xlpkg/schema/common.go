package schema

// Records shared by many part types.
var (
	// Extension is an opaque future-extension block. Only its uri is kept.
	Extension = MustDefine("ext",
		String("uri", Optional()),
	)
	ExtensionList = MustDefine("extLst",
		Sequence("ext", Extension),
	)
)

package cnst

const (
	// LangEN is the English language code
	LangEN = "en"
	// LangPTBR is the Brazilian Portuguese language code
	LangPTBR = "pt-BR"
	// LangDefault is the default language for API responses
	LangDefault = LangPTBR
)

const (
	// XLang is the header used to select the response language
	XLang = "X-Lang"
	// CtxKeyTranslator is the gin context key holding the request translator
	CtxKeyTranslator = "translator"
)

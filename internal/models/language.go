package models

// Language is an enumerated presentation label for a paste. It carries
// no execution semantics.
type Language string

const (
	LangText       Language = "text"
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
	LangPython     Language = "python"
	LangJava       Language = "java"
	LangGo         Language = "go"
	LangRust       Language = "rust"
	LangPHP        Language = "php"
	LangRuby       Language = "ruby"
	LangHTML       Language = "html"
	LangCSS        Language = "css"
	LangC          Language = "c"
	LangCPP        Language = "cpp"
	LangCSharp     Language = "csharp"
	LangSwift      Language = "swift"
	LangKotlin     Language = "kotlin"
	LangScala      Language = "scala"
	LangHaskell    Language = "haskell"
	LangLua        Language = "lua"
	LangPerl       Language = "perl"
)

// SupportedLanguages is the fixed catalog in declaration order. The
// order is part of the detector's contract: score ties resolve to the
// earliest entry. "text" is the catch-all default and scores nothing.
var SupportedLanguages = []Language{
	LangText,
	LangTypeScript,
	LangJavaScript,
	LangPython,
	LangJava,
	LangGo,
	LangRust,
	LangPHP,
	LangRuby,
	LangHTML,
	LangCSS,
	LangC,
	LangCPP,
	LangCSharp,
	LangSwift,
	LangKotlin,
	LangScala,
	LangHaskell,
	LangLua,
	LangPerl,
}

var languageLabels = map[Language]string{
	LangText:       "Plain Text",
	LangTypeScript: "TypeScript",
	LangJavaScript: "JavaScript",
	LangPython:     "Python",
	LangJava:       "Java",
	LangGo:         "Go",
	LangRust:       "Rust",
	LangPHP:        "PHP",
	LangRuby:       "Ruby",
	LangHTML:       "HTML",
	LangCSS:        "CSS",
	LangC:          "C",
	LangCPP:        "C++",
	LangCSharp:     "C#",
	LangSwift:      "Swift",
	LangKotlin:     "Kotlin",
	LangScala:      "Scala",
	LangHaskell:    "Haskell",
	LangLua:        "Lua",
	LangPerl:       "Perl",
}

// SupportedLanguage reports whether l is in the catalog.
func SupportedLanguage(l Language) bool {
	_, ok := languageLabels[l]
	return ok
}

// LanguageLabel returns the display name for a language, falling back
// to the raw value for anything outside the catalog.
func LanguageLabel(l Language) string {
	if label, ok := languageLabels[l]; ok {
		return label
	}
	return string(l)
}

// LanguageOption pairs a language value with its display label for
// catalog listings.
type LanguageOption struct {
	Value Language `json:"value"`
	Label string   `json:"label"`
}

// LanguageScore pairs a language with its detection evidence tally.
type LanguageScore struct {
	Language Language `json:"language"`
	Score    int      `json:"score"`
}

// LanguageOptions returns the catalog in declaration order.
func LanguageOptions() []LanguageOption {
	options := make([]LanguageOption, 0, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		options = append(options, LanguageOption{Value: lang, Label: languageLabels[lang]})
	}
	return options
}

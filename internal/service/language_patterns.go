package service

import (
	"regexp"

	"github.com/ivdepaste/ivdepaste-api/internal/models"
)

// languagePattern holds three tiers of evidence for one language, from
// weakest to strongest: bare keywords are ambiguous across languages,
// structural fragments less so, idiomatic features almost not at all.
type languagePattern struct {
	keywords []*regexp.Regexp
	patterns []*regexp.Regexp
	unique   []*regexp.Regexp
}

func keywordSet(words ...string) []*regexp.Regexp {
	set := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		set[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return set
}

func regexSet(exprs ...string) []*regexp.Regexp {
	set := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		set[i] = regexp.MustCompile(e)
	}
	return set
}

// languagePatterns is keyed by catalog entry. "text" is the catch-all:
// it carries no evidence and can only win by every other score being zero.
var languagePatterns = map[models.Language]languagePattern{
	models.LangText: {},
	models.LangTypeScript: {
		keywords: keywordSet("function", "const", "let", "var", "import", "export", "class", "extends", "async", "interface", "type", "namespace", "enum", "as", "implements"),
		patterns: regexSet(
			`:\s*(string|number|boolean|any)\b`,
			`<[A-Z]\w+>`,
			`interface\s+\w+`,
			`type\s+\w+\s*=`,
		),
		unique: regexSet(
			`:\s*(string|number|boolean|any)\[\]`,
			`as\s+(const|string|number|boolean|any)`,
			`<T.*?>`,
			`keyof\s+\w+`,
			`readonly\s+\w+:`,
		),
	},
	models.LangJavaScript: {
		keywords: keywordSet("function", "const", "let", "var", "import", "export", "class", "extends", "async", "await"),
		patterns: regexSet(
			`\b(function|class)\s+\w+`,
			`\b(const|let|var)\s+\w+\s*=`,
			`=>\s*{`,
			`import\s+.*\s+from`,
			`export\s+(default\s+)?(function|class|const|let|var)`,
		),
		unique: regexSet(
			`console\.log\(`,
			`document\.querySelector\(`,
			`window\.`,
			`setTimeout\(`,
			`Promise\.resolve\(`,
		),
	},
	models.LangPython: {
		keywords: keywordSet("def", "class", "import", "from", "if", "elif", "else", "try", "except", "finally", "with"),
		patterns: regexSet(
			`def\s+\w+\s*\(`,
			`class\s+\w+(\s*\(.*\))?:`,
			`import\s+\w+(\s*,\s*\w+)*(\s+as\s+\w+)?`,
			`from\s+\w+\s+import`,
			`if\s+.*:`,
		),
		unique: regexSet(
			`(?m):\s*$`,
			`print\(`,
			`__init__\(`,
			`self\.`,
			`lambda\s+`,
		),
	},
	models.LangJava: {
		keywords: keywordSet("public", "private", "protected", "class", "interface", "extends", "implements", "static", "final"),
		patterns: regexSet(
			`public\s+class\s+\w+`,
			`(public|private|protected)\s+\w+\s+\w+\s*\(`,
			`import\s+[\w.]+;`,
			`@\w+`,
		),
		unique: regexSet(
			`System\.out\.println\(`,
			`new\s+\w+\(`,
			`throws\s+\w+`,
			`@Override`,
			`super\(`,
		),
	},
	models.LangGo: {
		keywords: keywordSet("func", "package", "import", "var", "const", "type", "struct", "interface", "defer", "go"),
		patterns: regexSet(
			`func\s+\w+\s*\(`,
			`package\s+\w+`,
			`import\s+(\([\s\S]*?\)|\S+)`,
			`type\s+\w+\s+(struct|interface)`,
		),
		unique: regexSet(
			`fmt\.Println\(`,
			`:=`,
			`make\(`,
			`go\s+func\(`,
			`defer\s+`,
		),
	},
	models.LangRust: {
		keywords: keywordSet("fn", "let", "mut", "impl", "struct", "enum", "trait", "use", "pub", "mod"),
		patterns: regexSet(
			`fn\s+\w+`,
			`let\s+mut\s+\w+`,
			`impl\s+\w+(\s+for\s+\w+)?`,
			`(struct|enum|trait)\s+\w+`,
			`use\s+[\w:]+;`,
		),
		unique: regexSet(
			`println!\(`,
			`->\s*\w+`,
			`&mut\s+`,
			`#\[derive\(`,
			`Result<.*>`,
		),
	},
	models.LangPHP: {
		keywords: keywordSet("function", "class", "public", "private", "protected", "echo", "print", "require", "include"),
		patterns: regexSet(
			`<\?php`,
			`function\s+\w+\s*\(`,
			`class\s+\w+(\s+extends\s+\w+)?(\s+implements\s+\w+)?`,
			`\$\w+\s*=`,
		),
		unique: regexSet(
			`\$_GET\[`,
			`\$_POST\[`,
			`\$_SESSION\[`,
			`mysqli_`,
			`->query\(`,
		),
	},
	models.LangRuby: {
		keywords: keywordSet("def", "class", "module", "attr_", "require", "include", "extend", "puts", "yield"),
		patterns: regexSet(
			`def\s+\w+`,
			`class\s+\w+(\s*<\s*\w+)?`,
			`module\s+\w+`,
			`attr_(reader|writer|accessor)`,
			`require\s+['"][\w/]+['"]`,
		),
		unique: regexSet(
			`puts\s+`,
			`\w+\.each\s+do\s+\|`,
			`\bdo\b.*\|.*\|`,
			`@\w+\s*=`,
			`:\w+\s*=>`,
		),
	},
	models.LangHTML: {
		keywords: keywordSet("html", "head", "body", "div", "span", "script", "style", "link", "meta"),
		patterns: regexSet(
			`(?i)<!DOCTYPE\s+html>`,
			`(?i)<html.*?>`,
			`(?i)<(head|body|div|span|script|style|link|meta)[\s>]`,
		),
		unique: regexSet(
			`</\w+>`,
			`<img\s+.*?src=`,
			`<a\s+.*?href=`,
			`<input\s+.*?type=`,
			`<form\s+.*?action=`,
		),
	},
	models.LangCSS: {
		keywords: keywordSet("body", "div", "class", "id", "margin", "padding", "color", "background", "font"),
		patterns: regexSet(
			`[\w-]+\s*:\s*[^;]+;`,
			`@media\s+`,
			`\.[.\w-]+\s*{`,
			`#[\w-]+\s*{`,
		),
		unique: regexSet(
			`!important`,
			`@keyframes`,
			`display:\s*flex`,
			`:\s*hover`,
			`rgba\(`,
		),
	},
	models.LangC: {
		keywords: keywordSet("int", "char", "float", "double", "void", "struct", "union", "typedef", "enum", "const"),
		patterns: regexSet(
			`#include\s+<[\w.]+>`,
			`\b(int|char|float|double)\s+\w+\s*\(`,
			`struct\s+\w+\s*{`,
			`typedef\s+struct`,
		),
		unique: regexSet(
			`printf\(`,
			`scanf\(`,
			`malloc\(`,
			`free\(`,
			`\*\w+\s*=`,
		),
	},
	models.LangCPP: {
		keywords: keywordSet("class", "template", "namespace", "public", "private", "protected", "virtual", "inline", "const"),
		patterns: regexSet(
			`#include\s+<[\w.]+>`,
			`class\s+\w+`,
			`template\s*<.*>`,
			`namespace\s+\w+`,
			`std::\w+`,
		),
		unique: regexSet(
			`cout\s*<<`,
			`cin\s*>>`,
			`new\s+\w+`,
			`delete\s+`,
			`std::vector<`,
		),
	},
	models.LangCSharp: {
		keywords: keywordSet("using", "namespace", "class", "public", "private", "protected", "static", "async", "await", "var"),
		patterns: regexSet(
			`using\s+[\w.]+;`,
			`namespace\s+[\w.]+`,
			`class\s+\w+(\s*:\s*\w+)?`,
			`\basync\s+\w+`,
		),
		unique: regexSet(
			`Console\.WriteLine\(`,
			`\bvar\s+\w+\s*=`,
			`\bList<\w+>`,
			`\bTask\.Run\(`,
			`\[Attribute\]`,
		),
	},
	models.LangSwift: {
		keywords: keywordSet("func", "var", "let", "class", "struct", "enum", "protocol", "extension", "guard", "if let"),
		patterns: regexSet(
			`func\s+\w+\s*\(`,
			`(var|let)\s+\w+\s*:`,
			`class\s+\w+(\s*:\s*\w+)?`,
			`struct\s+\w+`,
			`enum\s+\w+`,
		),
		unique: regexSet(
			`print\(`,
			`\?\.`,
			`guard\s+let`,
			`\$\d+`,
			`@objc`,
		),
	},
	models.LangKotlin: {
		keywords: keywordSet("fun", "val", "var", "class", "object", "interface", "when", "is", "in", "companion"),
		patterns: regexSet(
			`fun\s+\w+\s*\(`,
			`(val|var)\s+\w+\s*:`,
			`class\s+\w+(\s*:\s*\w+)?`,
			`object\s+\w+`,
			`companion\s+object`,
		),
		unique: regexSet(
			`println\(`,
			`\?:`,
			`\w+\?\.`,
			`\w+::class`,
			`@JvmStatic`,
		),
	},
	models.LangScala: {
		keywords: keywordSet("def", "val", "var", "class", "object", "trait", "extends", "with", "case class", "implicit"),
		patterns: regexSet(
			`def\s+\w+\s*\(`,
			`(val|var)\s+\w+\s*:`,
			`class\s+\w+(\s*\(.*\))?(\s+extends\s+\w+)?`,
			`object\s+\w+`,
			`trait\s+\w+`,
		),
		unique: regexSet(
			`println\(`,
			`=>`,
			`\w+:\s*_\s*=`,
			`implicit\s+`,
			`case\s+\w+\s*=>`,
		),
	},
	models.LangHaskell: {
		keywords: keywordSet("module", "import", "data", "type", "newtype", "class", "instance", "where", "let", "in"),
		patterns: regexSet(
			`module\s+\w+`,
			`import\s+(qualified\s+)?\w+`,
			`data\s+\w+`,
			`type\s+\w+`,
			`\w+\s+::\s+`,
		),
		unique: regexSet(
			`->`,
			`=>`,
			`\$\s*\w+`,
			`\w+\s+<-\s+`,
			`\|\|\s+`,
		),
	},
	models.LangLua: {
		keywords: keywordSet("function", "local", "if", "then", "else", "elseif", "for", "while", "repeat", "until"),
		patterns: regexSet(
			`function\s+\w+\s*\(`,
			`local\s+\w+\s*=`,
			`if\s+.*\s+then`,
			`for\s+\w+\s*=.*do`,
			`while\s+.*\s+do`,
		),
		unique: regexSet(
			`print\(`,
			`\.\.`,
			`#\w+`,
			`\[=*\[`,
			`\]=*\]`,
		),
	},
	models.LangPerl: {
		keywords: keywordSet("sub", "my", "use", "package", "if", "else", "elsif", "for", "foreach", "while"),
		patterns: regexSet(
			`sub\s+\w+`,
			`my\s+\$\w+`,
			`use\s+\w+`,
			`package\s+\w+`,
			`\$\w+\s*=>`,
		),
		unique: regexSet(
			`print\s+`,
			`\$_`,
			`=~`,
			`\w+::\w+`,
			`qw\(`,
		),
	},
}

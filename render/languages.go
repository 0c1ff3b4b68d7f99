package render

// languageNames maps the document service's numeric language codes to fence
// labels. Unknown codes fall back to plaintext.
var languageNames = map[int]string{
	1:  "plaintext",
	2:  "python",
	3:  "javascript",
	4:  "java",
	5:  "cpp",
	6:  "c",
	7:  "csharp",
	8:  "php",
	9:  "ruby",
	10: "go",
	11: "rust",
	12: "swift",
	13: "kotlin",
	14: "typescript",
	15: "html",
	16: "css",
	17: "sql",
	18: "shell",
	19: "bash",
	20: "powershell",
	21: "json",
	22: "xml",
	23: "yaml",
	24: "markdown",
}

const defaultLanguageName = "plaintext"

// languageName resolves a numeric language code, honouring per-conversion
// overrides before the builtin table.
func languageName(code int, overrides map[int]string) string {
	if name, ok := overrides[code]; ok && name != "" {
		return name
	}
	if name, ok := languageNames[code]; ok {
		return name
	}
	return defaultLanguageName
}

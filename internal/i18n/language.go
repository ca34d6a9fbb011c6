// Package i18n holds the storefront's language selection and static
// message catalog for Arabic, French and English.
package i18n

// Language is a supported storefront language code.
type Language string

const (
	Arabic  Language = "ar"
	French  Language = "fr"
	English Language = "en"
)

// Default is the language used before the customer picks one.
const Default = English

// Direction is a document-level text direction flag.
type Direction string

const (
	RTL Direction = "rtl"
	LTR Direction = "ltr"
)

// Parse returns the Language for code, or Default and false when the code
// is not one of the supported languages.
func Parse(code string) (Language, bool) {
	switch Language(code) {
	case Arabic, French, English:
		return Language(code), true
	}
	return Default, false
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	_, ok := Parse(string(l))
	return ok
}

// Dir returns the text direction for the language: RTL for Arabic,
// LTR otherwise.
func (l Language) Dir() Direction {
	if l == Arabic {
		return RTL
	}
	return LTR
}

package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	for _, code := range []string{"ar", "fr", "en"} {
		lang, ok := Parse(code)
		assert.True(t, ok)
		assert.Equal(t, Language(code), lang)
	}

	lang, ok := Parse("de")
	assert.False(t, ok)
	assert.Equal(t, Default, lang)

	_, ok = Parse("")
	assert.False(t, ok)
}

func TestDir(t *testing.T) {
	assert.Equal(t, RTL, Arabic.Dir())
	assert.Equal(t, LTR, French.Dir())
	assert.Equal(t, LTR, English.Dir())
}

func TestT_KnownKey(t *testing.T) {
	assert.Equal(t, "Your Cart", T("cart.title", English))
	assert.Equal(t, "Votre Panier", T("cart.title", French))
	assert.Equal(t, "عربة التسوق", T("cart.title", Arabic))
}

func TestT_MissingKeyFallsBackToKey(t *testing.T) {
	assert.Equal(t, "cart.doesNotExist", T("cart.doesNotExist", English))
	assert.Equal(t, "cart.doesNotExist", T("cart.doesNotExist", Arabic))
}

func TestMessages_CoversEveryKeyPerLanguage(t *testing.T) {
	en := Messages(English)
	assert.Equal(t, len(messages), len(en))
	assert.Equal(t, "Your Cart", en["cart.title"])

	ar := Messages(Arabic)
	assert.Equal(t, len(messages), len(ar))
	assert.Equal(t, "عربة التسوق", ar["cart.title"])
	for key, v := range ar {
		assert.NotEmpty(t, v, "key %s", key)
	}
}

func TestText_In_UnknownLanguageDefaultsToEnglish(t *testing.T) {
	txt := Text{AR: "a", FR: "f", EN: "e"}
	assert.Equal(t, "e", txt.In(Language("xx")))
}

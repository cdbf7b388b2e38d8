package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLang(t *testing.T) {
	assert.Equal(t, LangKO, ParseLang("ko"))
	assert.Equal(t, LangKO, ParseLang("korean"))
	assert.Equal(t, LangEN, ParseLang("en"))
	assert.Equal(t, LangEN, ParseLang(""))
	assert.Equal(t, LangEN, ParseLang("fr"))
}

func TestT_LocalizedAndFallback(t *testing.T) {
	assert.Equal(t, "Committed.", T(LangEN, "committed"))
	assert.Equal(t, "커밋했습니다.", T(LangKO, "committed"))

	// Unknown language falls back to English.
	assert.Equal(t, "Committed.", T(Lang("de"), "committed"))
}

func TestT_EveryKeyHasKorean(t *testing.T) {
	for key := range tables[LangEN] {
		assert.NotEmpty(t, tables[LangKO][key], "missing ko translation for %s", key)
	}
}

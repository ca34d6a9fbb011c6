package handler

import (
	"net/http"

	"github.com/xenking/atlas-parfum/internal/i18n"
)

type translationsPayload struct {
	Language  string            `json:"language"`
	Direction string            `json:"direction"`
	Messages  map[string]string `json:"messages"`
}

// listTranslations handles GET /translations. The lang query parameter
// selects the language; absent means the default, unknown codes are 400.
func (h *Handler) listTranslations(w http.ResponseWriter, r *http.Request) {
	lang := i18n.Default
	if code := r.URL.Query().Get("lang"); code != "" {
		parsed, ok := i18n.Parse(code)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown language")
			return
		}
		lang = parsed
	}

	writeJSON(w, http.StatusOK, translationsPayload{
		Language:  string(lang),
		Direction: string(lang.Dir()),
		Messages:  i18n.Messages(lang),
	})
}

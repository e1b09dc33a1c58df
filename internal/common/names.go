package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DeriveDisplayName turns a bare user id into something presentable:
// for emails the local part without trailing digits, capitalised; long ids
// are cut to 8 characters; an empty id becomes "Utente".
func DeriveDisplayName(userID string) string {
	if userID == "" {
		return "Utente"
	}

	if at := strings.Index(userID, "@"); at >= 0 {
		local := strings.TrimRightFunc(userID[:at], unicode.IsDigit)
		r, size := utf8.DecodeRuneInString(local)
		if size == 0 {
			return ""
		}
		return string(unicode.ToUpper(r)) + local[size:]
	}

	if utf8.RuneCountInString(userID) > 8 {
		return string([]rune(userID)[:8])
	}
	return userID
}

package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// SlugPlaceholder replaces a name that has nothing left after slugging.
const SlugPlaceholder = "wine"

var cyrillic = map[rune]string{
	'а': "a", 'б': "b", 'в': "v", 'г': "g", 'д': "d", 'е': "e", 'ё': "e",
	'ж': "zh", 'з': "z", 'и': "i", 'й': "y", 'к': "k", 'л': "l", 'м': "m",
	'н': "n", 'о': "o", 'п': "p", 'р': "r", 'с': "s", 'т': "t", 'у': "u",
	'ф': "f", 'х': "kh", 'ц': "ts", 'ч': "ch", 'ш': "sh", 'щ': "shch",
	'ъ': "", 'ы': "y", 'ь': "", 'э': "e", 'ю': "yu", 'я': "ya",
}

// Slugify lowercases name, folds accents and Cyrillic to ASCII and keeps
// only [a-z0-9_-]. Runs of separators collapse into one and are trimmed
// from both ends.
func Slugify(name string) string {
	folded, _, err := transform.String(
		transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		strings.ToLower(name),
	)
	if err != nil {
		folded = strings.ToLower(name)
	}

	var b strings.Builder
	pendingSep := byte(0)
	flush := func() {
		if pendingSep != 0 && b.Len() > 0 {
			b.WriteByte(pendingSep)
		}
		pendingSep = 0
	}

	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			flush()
			b.WriteRune(r)
		case r == '-':
			if pendingSep == 0 {
				pendingSep = '-'
			}
		case r == '_' || unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r):
			if pendingSep == 0 {
				pendingSep = '_'
			}
		default:
			if t, ok := cyrillic[r]; ok {
				if t != "" {
					flush()
					b.WriteString(t)
				}
			}
		}
	}

	if b.Len() == 0 {
		return SlugPlaceholder
	}
	return b.String()
}

// NewRecordSlug is Slugify plus "_" and six random hex characters.
func NewRecordSlug(name string) string {
	return Slugify(name) + "_" + generateSecureRandomString(6)
}

func generateSecureRandomString(length int) string {
	bytes := make([]byte, (length+1)/2)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("%0*x", length, time.Now().UnixNano())[:length]
	}
	return hex.EncodeToString(bytes)[:length]
}

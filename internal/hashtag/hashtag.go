// Package hashtag извлекает и нормализует хэштеги из текста инцидентов
package hashtag

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shenikar/incident_map/internal/apperr"
)

// MaxLength - максимальная длина тега в символах (без #)
const MaxLength = 50

var (
	inlineTag = regexp.MustCompile(fmt.Sprintf(`#([\p{L}\p{N}_]{1,%d})`, MaxLength))
	validTag  = regexp.MustCompile(fmt.Sprintf(`^[\p{L}\p{N}_]{1,%d}$`, MaxLength))
)

// Extract возвращает уникальные хэштеги в порядке появления, в нижнем регистре
func Extract(texts ...string) []string {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, text := range texts {
		for _, m := range inlineTag.FindAllStringSubmatch(text, -1) {
			tag := strings.ToLower(m[1])
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}

// Normalize приводит введенный пользователем тег ("#Flood") к виду "flood"
func Normalize(raw string) (string, error) {
	tag := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "#"))
	if !validTag.MatchString(tag) {
		return "", apperr.Validation("invalid hashtag %q", raw)
	}
	return tag, nil
}

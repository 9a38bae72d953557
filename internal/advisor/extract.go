package advisor

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSONArray ответ модели не содержит разбираемого JSON-массива
var ErrNoJSONArray = errors.New("no JSON array in model response")

var arrayPattern = regexp.MustCompile(`\[[\s\S]*?\]`)

// ExtractJSONArray разбирает ответ целиком, иначе: первый нежадный фрагмент [...]
func ExtractJSONArray(text string, out any) error {
	text = strings.TrimSpace(text)
	if err := json.Unmarshal([]byte(text), out); err == nil {
		return nil
	}

	for _, match := range arrayPattern.FindAllString(text, -1) {
		if err := json.Unmarshal([]byte(match), out); err == nil {
			return nil
		}
	}
	return ErrNoJSONArray
}

// OuterJSONArray берёт текст от первой '[' до последней ']'
func OuterJSONArray(text string) (string, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return "", ErrNoJSONArray
	}
	return text[start : end+1], nil
}

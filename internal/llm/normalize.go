package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// extractionStrategy pulls review text out of one known response shape.
type extractionStrategy struct {
	name    string
	extract func(doc gjson.Result) (string, bool)
}

// extractionStrategies are tried in order; the first match wins. When none
// matches, the serialized response is returned.
var extractionStrategies = []extractionStrategy{
	{name: "candidates", extract: candidateParts},
	{name: "text", extract: stringField("text")},
	{name: "response.text", extract: stringField("response.text")},
}

func candidateParts(doc gjson.Result) (string, bool) {
	candidates := doc.Get("candidates")
	if !candidates.IsArray() {
		return "", false
	}
	list := candidates.Array()
	if len(list) == 0 {
		return "", false
	}
	parts := list[0].Get("content.parts")
	if !parts.IsArray() {
		return "", false
	}
	texts := make([]string, 0, len(parts.Array()))
	for _, p := range parts.Array() {
		texts = append(texts, p.Get("text").String())
	}
	return strings.Join(texts, "\n"), true
}

func stringField(path string) func(gjson.Result) (string, bool) {
	return func(doc gjson.Result) (string, bool) {
		v := doc.Get(path)
		if v.Type != gjson.String {
			return "", false
		}
		return v.String(), true
	}
}

// ExtractText normalizes a raw model response into a single string. It never
// fails: unknown shapes and extraction errors yield the serialized response.
func ExtractText(raw any) (text string) {
	payload := serialize(raw)
	defer func() {
		if r := recover(); r != nil {
			text = string(payload)
		}
	}()

	if !gjson.ValidBytes(payload) {
		return string(payload)
	}
	doc := gjson.ParseBytes(payload)
	for _, s := range extractionStrategies {
		if out, ok := s.extract(doc); ok {
			return out
		}
	}
	return string(payload)
}

func serialize(raw any) (out []byte) {
	switch v := raw.(type) {
	case json.RawMessage:
		return v
	case []byte:
		return v
	}

	defer func() {
		if r := recover(); r != nil {
			out = []byte(fmt.Sprintf("%v", raw))
		}
	}()
	b, err := json.Marshal(raw)
	if err != nil {
		return []byte(fmt.Sprintf("%v", raw))
	}
	return b
}

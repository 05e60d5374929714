package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "kind"); placeholders are written as {name}.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dict = map[string]map[string]string{
	"en": {
		"empty_name":        "record type name must not be empty",
		"unknown_parent":    "parent type {parent} is not declared",
		"unknown_type":      "field {field} has unknown type {type}",
		"duplicate_field":   "field {field} is declared twice",
		"invalid_default":   "default value of {field} cannot be coerced to {type}",
		"unknown_rule":      "unknown validation kind {kind}",
		"undeclared_field":  "validation refers to undeclared field {field}",
		"incompatible_rule": "{kind} validation cannot apply to {type} field {field}",
		"invalid_pattern":   "format pattern for {field} does not compile",
		"invalid_bounds":    "length bounds for {field} are invalid",
		"invalid_member":    "list member of {field} cannot be coerced to {type}",
	},
	"ja": {
		"empty_name":        "レコード型名が空です",
		"unknown_parent":    "親の型 {parent} が宣言されていません",
		"unknown_type":      "フィールド {field} の型 {type} は不明です",
		"duplicate_field":   "フィールド {field} が重複しています",
		"invalid_default":   "{field} の既定値を {type} に変換できません",
		"unknown_rule":      "不明な検証種別 {kind} です",
		"undeclared_field":  "検証が未宣言のフィールド {field} を参照しています",
		"incompatible_rule": "{kind} 検証は {type} 型のフィールド {field} に適用できません",
		"invalid_pattern":   "{field} の書式パターンが不正です",
		"invalid_bounds":    "{field} の長さの範囲が不正です",
		"invalid_member":    "{field} のリスト要素を {type} に変換できません",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dict[t.lang][code]
	if !ok {
		return code
	}
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}

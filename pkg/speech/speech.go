// Package speech describes how the browser should configure its speech
// recognizer and synthesizer. No audio is processed server side.
package speech

import (
	"fmt"

	"golang.org/x/text/language"
)

// DefaultLocale 识别与朗读统一使用印度英语
var DefaultLocale = language.MustParse("en-IN")

type Options struct {
	Locale         string `json:"locale"`
	Continuous     bool   `json:"continuous"`
	InterimResults bool   `json:"interimResults"`
	// 朗读参数
	Rate  float64 `json:"rate"`
	Pitch float64 `json:"pitch"`
}

// NewOptions returns single-shot recognition settings for locale.
// An empty locale falls back to DefaultLocale.
func NewOptions(locale string) (Options, error) {
	tag := DefaultLocale
	if locale != "" {
		t, err := language.Parse(locale)
		if err != nil {
			return Options{}, fmt.Errorf("speech locale %q: %w", locale, err)
		}
		tag = t
	}
	return Options{
		Locale:         tag.String(),
		Continuous:     false,
		InterimResults: false,
		Rate:           1,
		Pitch:          1,
	}, nil
}

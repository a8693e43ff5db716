package scene

import "strings"

// CustomPrefix marks a selection key that carries user-written scene text.
const CustomPrefix = "custom:"

// DefaultID is the preset used when a key is unknown.
const DefaultID = "white-studio"

// Preset - 미리 정의된 배경 씬
type Preset struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prompt string `json:"backgroundPrompt"`
}

// 순서 유지 (첫 번째가 기본값)
var presets = []Preset{
	{
		ID:     "white-studio",
		Name:   "White Studio",
		Prompt: "a clean white studio background with soft professional lighting and subtle shadows, minimalist product photography",
	},
	{
		ID:     "kitchen-counter",
		Name:   "Kitchen",
		Prompt: "a modern marble kitchen counter with warm ambient lighting, blurred kitchen background",
	},
	{
		ID:     "living-room",
		Name:   "Living Room",
		Prompt: "a stylish bright living room setting with natural daylight, cozy and inviting scandinavian style",
	},
	{
		ID:     "outdoor-garden",
		Name:   "Garden",
		Prompt: "a lush green garden background with soft natural sunlight filtering through leaves, shallow depth of field",
	},
	{
		ID:     "office-desk",
		Name:   "Office",
		Prompt: "a professional minimal office desk setup with modern decor, workspace photography",
	},
	{
		ID:     "marble-surface",
		Name:   "Marble",
		Prompt: "an elegant white carrara marble surface with luxury reflections and bright lighting",
	},
	{
		ID:     "beach-sunset",
		Name:   "Beach",
		Prompt: "a golden hour beach setting with warm sunlight and soft sand, lifestyle photography",
	},
	{
		ID:     "modern-minimal",
		Name:   "Minimal",
		Prompt: "a modern minimalist abstract geometric background with soft pastel colors",
	},
}

var presetIndex = func() map[string]int {
	m := make(map[string]int, len(presets))
	for i, p := range presets {
		m[p.ID] = i
	}
	return m
}()

// Presets returns the preset table in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// Default returns the fallback preset.
func Default() Preset {
	return presets[presetIndex[DefaultID]]
}

// Lookup - ID로 프리셋 조회
func Lookup(id string) (Preset, bool) {
	i, ok := presetIndex[id]
	if !ok {
		return Preset{}, false
	}
	return presets[i], true
}

// IsCustom reports whether key carries the custom-scene tag.
func IsCustom(key string) bool {
	return strings.HasPrefix(key, CustomPrefix)
}

// CustomKey - 사용자 입력 텍스트로 custom 키 생성 (빈 텍스트면 false)
func CustomKey(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return CustomPrefix + text, true
}

// Resolve maps a selection key to a background description. It never fails:
// custom keys yield their trimmed text, anything else is looked up in the
// preset table and falls back to the default preset. A custom key whose text
// is blank also falls back to the default.
func Resolve(key string) string {
	if IsCustom(key) {
		if text := strings.TrimSpace(strings.TrimPrefix(key, CustomPrefix)); text != "" {
			return text
		}
		return Default().Prompt
	}
	if p, ok := Lookup(key); ok {
		return p.Prompt
	}
	return Default().Prompt
}

// Label - 통계용 라벨 (프리셋 문구와 일치하면 ID, 아니면 "custom")
func Label(backgroundPrompt string) string {
	for _, p := range presets {
		if p.Prompt == backgroundPrompt {
			return p.ID
		}
	}
	return "custom"
}

package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/review-relay/internal/core"
)

func TestPromptManager_RenderCodeReview(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	out, err := pm.Render(CodeReviewPrompt, GeminiProvider, core.PromptData{Language: "go", Code: "func main() { fmt.Println(\"{{ .Code }}\") }"})
	require.NoError(t, err)

	for _, section := range []string{
		"1. One-line summary.",
		"2. Key issues",
		"3. Reproduction & assumptions.",
		"4. Corrected code",
		"5. Minimal patch/diff.",
		"6. Explanation of changes.",
		"7. Tests & validation example.",
		"8. Edge cases & further improvements.",
		"9. Final verdict and recommended next steps.",
	} {
		assert.Contains(t, out, section)
	}
	assert.Contains(t, out, "```go\nfunc main()")
	assert.Contains(t, out, `{{ .Code }}`, "submitted code is data, never template input")
}

func TestPromptManager_UnknownKey(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	_, err = pm.Render(PromptKey("missing"), DefaultProvider, nil)
	assert.Error(t, err)
}

func TestParsePromptFileName(t *testing.T) {
	tests := []struct {
		file         string
		wantKey      PromptKey
		wantProvider ModelProvider
		wantErr      bool
	}{
		{file: "code_review_default.prompt", wantKey: "code_review", wantProvider: "default"},
		{file: "code_review_gemini.prompt", wantKey: "code_review", wantProvider: "gemini"},
		{file: "noprovider.prompt", wantErr: true},
		{file: "_default.prompt", wantErr: true},
		{file: "code_.prompt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			key, provider, err := parsePromptFileName(tt.file)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantProvider, provider)
		})
	}
}

func TestLanguageForPath(t *testing.T) {
	assert.Equal(t, "go", LanguageForPath("cmd/main.go"))
	assert.Equal(t, "typescript", LanguageForPath("App.TSX"))
	assert.Equal(t, "python", LanguageForPath("script.py"))
	assert.Equal(t, core.DefaultLanguage, LanguageForPath("Makefile"))
	assert.Equal(t, core.DefaultLanguage, LanguageForPath("-"))
}

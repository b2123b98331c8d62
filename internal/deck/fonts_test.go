package deck

import "testing"

func TestFontConfig_ResolveDirect(t *testing.T) {
	fc := FontConfig{Default: "Arial", Code: "Courier", Math: "Cambria", Fallback: "Helvetica"}
	if got := fc.Resolve("code"); got != "Courier" {
		t.Fatalf("expected Courier, got %q", got)
	}
	if got := fc.Resolve("math"); got != "Cambria" {
		t.Fatalf("expected Cambria, got %q", got)
	}
}

func TestFontConfig_UnsetRoleFallsBack(t *testing.T) {
	fc := FontConfig{Fallback: "Times"}
	if got := fc.Resolve("code"); got != "Times" {
		t.Fatalf("expected fallback Times, got %q", got)
	}
}

func TestFontConfig_EmptyConfigUsesSystemDefault(t *testing.T) {
	var fc FontConfig
	if got := fc.Resolve("default"); got != systemDefaultFont {
		t.Fatalf("expected system default, got %q", got)
	}
	if got := fc.Resolve("unknown-role"); got != systemDefaultFont {
		t.Fatalf("unknown role should hit system default, got %q", got)
	}
}

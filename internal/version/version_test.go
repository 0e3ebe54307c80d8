package version

import "testing"

func TestString(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.2.3"
	if got := Get().Version; got != "1.2.3" {
		t.Errorf("Get().Version = %q, want 1.2.3", got)
	}
	want := "formcheck 1.2.3 (" + GitSHA + ", built " + BuildTime + ")"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

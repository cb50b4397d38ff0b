package util

import "testing"

func TestHashBytes(t *testing.T) {
	got := HashBytes([]byte("resume body"))
	if got != HashBytes([]byte("resume body")) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
	if HashBytes(nil) != "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855" {
		t.Fatalf("unexpected digest for empty input")
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		" resume.pdf ":        "resume.pdf",
		"dir/resume.pdf":      "dir_resume.pdf",
		`C:\Users\me\cv.docx`: "C:_Users_me_cv.docx",
	}
	for in, want := range cases {
		got, err := SanitizeFileName(in)
		if err != nil {
			t.Fatalf("SanitizeFileName(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
	for _, bad := range []string{"", "   ", "../etc/passwd"} {
		if _, err := SanitizeFileName(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

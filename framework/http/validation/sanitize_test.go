package validation_test

import (
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-nutrition/framework/http/validation"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips tags", "<b>hi</b>", "hi"},
		{"strips script", `<script>alert("x")</script>ok`, `alert("x")ok`},
		{"trims", "  padded  ", "padded"},
		{"drops control chars", "a\x00b\tc\n", "abc"},
		{"drops non-ascii", "café ☕", "caf"},
		{"keeps printable punctuation", "!@#$%^&*()", "!@#$%^&*()"},
		{"unterminated tag kept", "a < b", "a < b"},
		{"nested brackets", "<<b>>x", ">x"},
		{"empty", "", ""},
		{"invalid utf8", "ok\xff", "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.Sanitize(tt.in))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	idempotent := func(s string) bool {
		once := validation.Sanitize(s)
		return validation.Sanitize(once) == once
	}
	if err := quick.Check(idempotent, &quick.Config{MaxCount: 2000}); err != nil {
		t.Error(err)
	}

	for _, s := range []string{"<b>hi</b>", "<<b>b>", "< <x> >", " \x01<i>\x02 ", "<a\x00>b<", "a>b<c"} {
		once := validation.Sanitize(s)
		assert.Equal(t, once, validation.Sanitize(once), "input %q", s)
	}
}

func FuzzSanitize(f *testing.F) {
	for _, seed := range []string{"<b>hi</b>", "  x  ", "<<>>", "\x00<\x7f>", "é<é>é"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		once := validation.Sanitize(s)
		if twice := validation.Sanitize(once); twice != once {
			t.Fatalf("not idempotent: %q -> %q -> %q", s, once, twice)
		}
		for _, r := range once {
			if r < 0x20 || r > 0x7e {
				t.Fatalf("non-printable %q survived in %q", r, once)
			}
		}
	})
}

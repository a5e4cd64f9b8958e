package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-nutrition/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func defaultRules(t *testing.T) *validation.Rules {
	t.Helper()
	r, err := validation.NewRules(validation.DefaultConfig())
	require.NoError(t, err)
	return r
}

// valid asserts the validator accepts value.
func valid(t *testing.T, label string, check func(string) validation.Result, value string) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		res := check(value)
		assert.True(t, res.Valid, "expected PASS for %q, got %v", value, res.Messages)
		assert.Empty(t, res.Messages)
	})
}

// invalid asserts the validator rejects value with at least one message.
func invalid(t *testing.T, label string, check func(string) validation.Result, value string) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		res := check(value)
		assert.False(t, res.Valid, "expected FAIL for %q", value)
		assert.NotEmpty(t, res.Messages)
	})
}

// ── username ─────────────────────────────────────────────────────────────────

func TestRules_Username(t *testing.T) {
	r := defaultRules(t)

	invalid(t, "too short", r.Username, "ab")
	valid(t, "minimum length", r.Username, "abc")
	valid(t, "maximum length", r.Username, strings.Repeat("a", 64))
	invalid(t, "too long", r.Username, strings.Repeat("a", 65))
	invalid(t, "space", r.Username, "bad name")
	valid(t, "underscore and hyphen", r.Username, "jane_doe-42")
	invalid(t, "dot", r.Username, "jane.doe")
	valid(t, "sanitized before matching", r.Username, "  <b>alice</b> ")
	invalid(t, "empty", r.Username, "")
}

func TestRules_Username_SingleMessage(t *testing.T) {
	r := defaultRules(t)
	res := r.Username("a b")
	assert.Len(t, res.Messages, 1)
}

// ── email ────────────────────────────────────────────────────────────────────

func TestRules_Email(t *testing.T) {
	r := defaultRules(t)

	valid(t, "upper case", r.Email, "A@B.COM")
	invalid(t, "no at sign", r.Email, "not-an-email")
	valid(t, "plus and dots", r.Email, "first.last+tag@mail.example.co.uk")
	invalid(t, "short tld", r.Email, "user@example.c")
	invalid(t, "no domain", r.Email, "user@")
	invalid(t, "too long", r.Email, strings.Repeat("a", 115)+"@b.com")
}

func TestRules_Email_Normalize(t *testing.T) {
	r := defaultRules(t)
	assert.Equal(t, "a@b.com", r.Normalize(validation.KindEmail, "A@B.COM"))

	clean, res := r.Check(validation.KindEmail, "  A@B.COM ")
	assert.Equal(t, "a@b.com", clean)
	assert.True(t, res.Valid)
}

func TestRules_Email_LengthMessageFirst(t *testing.T) {
	r := defaultRules(t)
	res := r.Email(strings.Repeat("x", 121))
	require.Len(t, res.Messages, 1)
	assert.Equal(t, "Email must not exceed 120 characters.", res.Messages[0])
}

// ── password ─────────────────────────────────────────────────────────────────

func TestRules_Password_Weak(t *testing.T) {
	r := defaultRules(t)
	res := r.Password("weak")

	assert.False(t, res.Valid)
	assert.Equal(t, []string{
		"Password must be at least 8 characters long.",
		"Password must contain at least one uppercase letter.",
		"Password must contain at least one number.",
		"Password must contain at least one special character (!@#$%^&*()_+-=[]{}|;:,.<>?).",
	}, res.Messages)
}

func TestRules_Password_Strong(t *testing.T) {
	r := defaultRules(t)
	res := r.Password("Str0ng!Pass")

	assert.True(t, res.Valid)
	assert.Empty(t, res.Messages)
}

func TestRules_Password_Order(t *testing.T) {
	r := defaultRules(t)

	res := r.Password(strings.Repeat("!", 129))
	assert.Equal(t, []string{
		"Password must not exceed 128 characters.",
		"Password must contain at least one uppercase letter.",
		"Password must contain at least one lowercase letter.",
		"Password must contain at least one number.",
	}, res.Messages)
}

func TestRules_Password_CommonPattern(t *testing.T) {
	r := defaultRules(t)

	res := r.Password("MyPassword1!")
	require.False(t, res.Valid)
	assert.Equal(t, []string{"Password contains a common pattern that is too easy to guess."}, res.Messages)

	cfg := validation.DefaultConfig()
	cfg.Password.CommonPatterns = nil
	lenient := validation.MustRules(cfg)
	assert.True(t, lenient.Password("MyPassword1!").Valid)
}

// The blacklist is on by default, so passwords that satisfy every
// character-class rule can still be rejected for it alone.
func TestRules_Password_BlacklistRejectsClassValidPasswords(t *testing.T) {
	r := defaultRules(t)
	cfg := validation.DefaultConfig()
	cfg.Password.CommonPatterns = nil
	classOnly := validation.MustRules(cfg)

	for _, pw := range []string{"Admin123!", "Welcome1!", "Qwerty12#"} {
		t.Run(pw, func(t *testing.T) {
			res := r.Password(pw)
			assert.Equal(t, []string{"Password contains a common pattern that is too easy to guess."}, res.Messages)
			assert.True(t, classOnly.Password(pw).Valid)
		})
	}
}

func TestRules_Password_SanitizedFirst(t *testing.T) {
	r := defaultRules(t)
	// the tag is stripped, leaving a 6 character password
	res := r.Password("<i>Ab1!xy</i>")
	assert.Equal(t, []string{"Password must be at least 8 characters long."}, res.Messages)
}

// ── text / search ────────────────────────────────────────────────────────────

func TestRules_Text(t *testing.T) {
	r := defaultRules(t)

	valid(t, "short", r.Text, "Had oatmeal with berries.")
	valid(t, "at limit", r.Text, strings.Repeat("a", 1000))
	invalid(t, "over limit", r.Text, strings.Repeat("a", 1001))
}

func TestRules_Search(t *testing.T) {
	r := defaultRules(t)

	valid(t, "plain", r.Search, "high protein breakfast")
	invalid(t, "too long", r.Search, strings.Repeat("q", 101))
	invalid(t, "comment", r.Search, "eggs -- drop")
	invalid(t, "keyword", r.Search, "x UNION y")
}

// ── config ───────────────────────────────────────────────────────────────────

func TestNewRules_BadPattern(t *testing.T) {
	cfg := validation.DefaultConfig()
	cfg.Username.Pattern = "("
	_, err := validation.NewRules(cfg)
	assert.Error(t, err)
}

func TestNewRules_MinAboveMax(t *testing.T) {
	cfg := validation.DefaultConfig()
	cfg.Password.MinLength = 20
	cfg.Password.MaxLength = 10
	_, err := validation.NewRules(cfg)
	assert.Error(t, err)
}

func TestNewRules_ZeroValueFallsBack(t *testing.T) {
	r, err := validation.NewRules(validation.Config{})
	require.NoError(t, err)

	assert.True(t, r.Username("abc").Valid)
	assert.Equal(t, "Looks good!", r.ValidMessage())
	assert.Equal(t, "Passwords do not match.", r.MismatchMessage())
}

func TestRules_Check_UnknownKind(t *testing.T) {
	r := defaultRules(t)
	clean, res := r.Check("nickname", " <b>x</b> ")
	assert.Equal(t, " <b>x</b> ", clean)
	assert.True(t, res.Valid)
}

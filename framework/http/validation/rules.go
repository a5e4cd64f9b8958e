package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ── Kinds ────────────────────────────────────────────────────────────────────

// Kind names the pattern rule applied to a field.
type Kind string

const (
	KindUsername Kind = "username"
	KindEmail    Kind = "email"
	KindPassword Kind = "password"
	KindText     Kind = "text"
	KindSearch   Kind = "search"
)

// ── Result ───────────────────────────────────────────────────────────────────

// Result is the outcome of validating one value.
// Messages keep the order the checks ran in.
type Result struct {
	Valid    bool     `json:"valid"`
	Messages []string `json:"messages,omitempty"`
}

// Message joins all messages into one feedback line.
func (r Result) Message() string { return strings.Join(r.Messages, " ") }

func passed() Result { return Result{Valid: true} }

func failed(msgs ...string) Result { return Result{Valid: false, Messages: msgs} }

// ── Config ───────────────────────────────────────────────────────────────────

// Config is the declarative form of the rule table. It is what the rules file
// and RULES_* environment variables populate.
type Config struct {
	Username UsernameConfig `koanf:"username"`
	Email    EmailConfig    `koanf:"email"`
	Password PasswordConfig `koanf:"password"`
	Text     TextConfig     `koanf:"text"`
	Search   SearchConfig   `koanf:"search"`
	Messages MessagesConfig `koanf:"messages"`
}

type UsernameConfig struct {
	Pattern string `koanf:"pattern"`
	Message string `koanf:"message"`
}

type EmailConfig struct {
	Pattern   string `koanf:"pattern"`
	MaxLength int    `koanf:"max_length"`
	Message   string `koanf:"message"`
}

type PasswordConfig struct {
	MinLength      int      `koanf:"min_length"`
	MaxLength      int      `koanf:"max_length"`
	Specials       string   `koanf:"specials"`
	CommonPatterns []string `koanf:"common_patterns"`
}

type TextConfig struct {
	MaxLength int `koanf:"max_length"`
}

type SearchConfig struct {
	MaxLength int      `koanf:"max_length"`
	Forbidden []string `koanf:"forbidden"`
}

// MessagesConfig holds the feedback lines shared by every field.
type MessagesConfig struct {
	Valid    string `koanf:"valid"`
	Mismatch string `koanf:"mismatch"`
}

// DefaultConfig returns the stock rule table.
func DefaultConfig() Config {
	return Config{
		Username: UsernameConfig{
			Pattern: `^[A-Za-z0-9_-]{3,64}$`,
			Message: "Username must be 3-64 characters: letters, numbers, underscores or hyphens.",
		},
		Email: EmailConfig{
			Pattern:   `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`,
			MaxLength: 120,
			Message:   "Please enter a valid email address.",
		},
		Password: PasswordConfig{
			MinLength:      8,
			MaxLength:      128,
			Specials:       "!@#$%^&*()_+-=[]{}|;:,.<>?",
			CommonPatterns: []string{"password", "12345", "qwerty", "admin", "letmein", "welcome"},
		},
		Text: TextConfig{MaxLength: 1000},
		Search: SearchConfig{
			MaxLength: 100,
			Forbidden: []string{"--", ";", "drop", "delete", "update", "insert", "select", "union", "where"},
		},
		Messages: MessagesConfig{
			Valid:    "Looks good!",
			Mismatch: "Passwords do not match.",
		},
	}
}

// ── Rules ────────────────────────────────────────────────────────────────────

// Rules is the compiled, read-only rule table. Safe for concurrent use.
type Rules struct {
	username    *regexp.Regexp
	usernameMsg string

	email       *regexp.Regexp
	emailMax    int
	emailMsg    string
	emailMaxMsg string

	pwMin      int
	pwMax      int
	pwSpecials string
	pwCommon   []string

	textMax int

	searchMax       int
	searchForbidden []string

	validMsg    string
	mismatchMsg string
}

// NewRules compiles cfg. Empty strings and zero limits fall back to the
// defaults; lists are taken as given.
func NewRules(cfg Config) (*Rules, error) {
	def := DefaultConfig()

	username, err := regexp.Compile(fallback(cfg.Username.Pattern, def.Username.Pattern))
	if err != nil {
		return nil, fmt.Errorf("validation: username pattern: %w", err)
	}
	email, err := regexp.Compile(fallback(cfg.Email.Pattern, def.Email.Pattern))
	if err != nil {
		return nil, fmt.Errorf("validation: email pattern: %w", err)
	}

	r := &Rules{
		username:    username,
		usernameMsg: fallback(cfg.Username.Message, def.Username.Message),
		email:       email,
		emailMax:    positive(cfg.Email.MaxLength, def.Email.MaxLength),
		emailMsg:    fallback(cfg.Email.Message, def.Email.Message),
		pwMin:       positive(cfg.Password.MinLength, def.Password.MinLength),
		pwMax:       positive(cfg.Password.MaxLength, def.Password.MaxLength),
		pwSpecials:  fallback(cfg.Password.Specials, def.Password.Specials),
		pwCommon:    lowerAll(cfg.Password.CommonPatterns),
		textMax:     positive(cfg.Text.MaxLength, def.Text.MaxLength),
		searchMax:   positive(cfg.Search.MaxLength, def.Search.MaxLength),
		validMsg:    fallback(cfg.Messages.Valid, def.Messages.Valid),
		mismatchMsg: fallback(cfg.Messages.Mismatch, def.Messages.Mismatch),
	}
	r.searchForbidden = lowerAll(cfg.Search.Forbidden)
	r.emailMaxMsg = fmt.Sprintf("Email must not exceed %d characters.", r.emailMax)

	if r.pwMin > r.pwMax {
		return nil, fmt.Errorf("validation: password min_length %d exceeds max_length %d", r.pwMin, r.pwMax)
	}
	return r, nil
}

// MustRules is like NewRules but panics on an invalid config.
func MustRules(cfg Config) *Rules {
	r, err := NewRules(cfg)
	if err != nil {
		panic(err)
	}
	return r
}

// ValidMessage is the feedback shown on a field that passed.
func (r *Rules) ValidMessage() string { return r.validMsg }

// MismatchMessage is the feedback shown on a confirmation field that differs
// from its password.
func (r *Rules) MismatchMessage() string { return r.mismatchMsg }

// Normalize returns the value the field should hold after sanitizing.
// Emails are lower-cased first.
func (r *Rules) Normalize(kind Kind, raw string) string {
	if kind == KindEmail {
		raw = strings.ToLower(raw)
	}
	return Sanitize(raw)
}

// Check normalizes raw for kind and validates it.
// Unknown kinds pass unchanged.
func (r *Rules) Check(kind Kind, raw string) (string, Result) {
	switch kind {
	case KindUsername:
		return r.Normalize(kind, raw), r.Username(raw)
	case KindEmail:
		return r.Normalize(kind, raw), r.Email(raw)
	case KindPassword:
		return r.Normalize(kind, raw), r.Password(raw)
	case KindText:
		return r.Normalize(kind, raw), r.Text(raw)
	case KindSearch:
		return r.Normalize(kind, raw), r.Search(raw)
	}
	return raw, passed()
}

// ── Field validators ─────────────────────────────────────────────────────────

// Username validates the sanitized value against the username pattern.
func (r *Rules) Username(raw string) Result {
	if !r.username.MatchString(Sanitize(raw)) {
		return failed(r.usernameMsg)
	}
	return passed()
}

// Email lower-cases and sanitizes raw, then checks length and shape.
func (r *Rules) Email(raw string) Result {
	v := r.Normalize(KindEmail, raw)
	if len(v) > r.emailMax {
		return failed(r.emailMaxMsg)
	}
	if !r.email.MatchString(v) {
		return failed(r.emailMsg)
	}
	return passed()
}

// Password reports every rule the sanitized value breaks.
func (r *Rules) Password(raw string) Result {
	v := Sanitize(raw)
	var msgs []string

	n := utf8.RuneCountInString(v)
	if n < r.pwMin {
		msgs = append(msgs, fmt.Sprintf("Password must be at least %d characters long.", r.pwMin))
	}
	if n > r.pwMax {
		msgs = append(msgs, fmt.Sprintf("Password must not exceed %d characters.", r.pwMax))
	}

	var upper, lower, digit, special bool
	for _, c := range v {
		switch {
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsLower(c):
			lower = true
		case unicode.IsDigit(c):
			digit = true
		}
		if strings.ContainsRune(r.pwSpecials, c) {
			special = true
		}
	}
	if !upper {
		msgs = append(msgs, "Password must contain at least one uppercase letter.")
	}
	if !lower {
		msgs = append(msgs, "Password must contain at least one lowercase letter.")
	}
	if !digit {
		msgs = append(msgs, "Password must contain at least one number.")
	}
	if !special {
		msgs = append(msgs, fmt.Sprintf("Password must contain at least one special character (%s).", r.pwSpecials))
	}

	lv := strings.ToLower(v)
	for _, p := range r.pwCommon {
		if strings.Contains(lv, p) {
			msgs = append(msgs, "Password contains a common pattern that is too easy to guess.")
			break
		}
	}

	if len(msgs) > 0 {
		return failed(msgs...)
	}
	return passed()
}

// Text bounds free-form text.
func (r *Rules) Text(raw string) Result {
	if utf8.RuneCountInString(Sanitize(raw)) > r.textMax {
		return failed(fmt.Sprintf("Text is too long (maximum is %d characters).", r.textMax))
	}
	return passed()
}

// Search bounds a search query and rejects SQL-looking input.
func (r *Rules) Search(raw string) Result {
	v := Sanitize(raw)
	if utf8.RuneCountInString(v) > r.searchMax {
		return failed(fmt.Sprintf("Search query is too long (maximum is %d characters).", r.searchMax))
	}
	lv := strings.ToLower(v)
	for _, p := range r.searchForbidden {
		if strings.Contains(lv, p) {
			return failed("Invalid search query.")
		}
	}
	return passed()
}

// ── Helpers ──────────────────────────────────────────────────────────────────

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func positive(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

func lowerAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

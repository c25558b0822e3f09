// internal/platform/validator/validator_test.go
package validator

import (
	"testing"

	"phoneprobe/internal/testutil"
)

func TestIsDomain(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"valid domain", "example.com", true},
		{"valid subdomain", "test.example.com", true},
		{"hyphenated", "leak-lookup.com", true},
		{"empty string", "", false},
		{"too long", string(make([]byte, 300)), false},
		{"ip address", "192.168.1.1", false},
		{"invalid chars", "exam ple.com", false},
		{"starts with hyphen", "-example.com", false},
		{"single label", "localhost", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, IsDomain(tt.input), tt.expected, "domain validation")
		})
	}
}

func TestValidateTemplate(t *testing.T) {
	const ph = "{phone}"

	tests := []struct {
		name     string
		template string
		wantErr  error
	}{
		{"query placeholder", "https://www.facebook.com/search/top/?q={phone}", nil},
		{"path placeholder", "https://www.kijiji.ca/b-all/canada/{phone}/k0l0", nil},
		{"brackets in query", "https://vk.com/search?c[q]={phone}&c[section]=people", nil},
		{"custom scheme", "viber://chat?number={phone}", nil},
		{"opaque scheme", "skype:{phone}?call", nil},
		{"ip host", "http://127.0.0.1:8080/{phone}", nil},
		{"empty", "  ", ErrEmptyTemplate},
		{"no placeholder", "https://example.com/search", ErrPlaceholderCount},
		{"two placeholders", "https://example.com/{phone}/{phone}", ErrPlaceholderCount},
		{"no scheme", "example.com/{phone}", ErrTemplateNoScheme},
		{"no host", "https:///{phone}", ErrTemplateNoHost},
		{"bad host", "https://exa mple.com/{phone}", ErrTemplateParse},
		{"missing scheme", "://{phone}", ErrTemplateParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTemplate(tt.template, ph)
			if tt.wantErr == nil {
				testutil.AssertNoError(t, err, "template should be valid")
				return
			}
			testutil.AssertErrorIs(t, err, tt.wantErr, "template error")
		})
	}
}

func TestIsCategoryKey(t *testing.T) {
	testutil.AssertTrue(t, IsCategoryKey("social_networks"), "snake case")
	testutil.AssertTrue(t, IsCategoryKey("tech-resources2"), "hyphen and digits")
	testutil.AssertFalse(t, IsCategoryKey("Social"), "upper case")
	testutil.AssertFalse(t, IsCategoryKey("_leading"), "leading underscore")
	testutil.AssertFalse(t, IsCategoryKey(""), "empty")
}

func TestIsDisplayName(t *testing.T) {
	testutil.AssertTrue(t, IsDisplayName("HaveIBeenPwned"), "plain")
	testutil.AssertTrue(t, IsDisplayName("411"), "digits")
	testutil.AssertFalse(t, IsDisplayName("  "), "blank")
	testutil.AssertFalse(t, IsDisplayName("bad\nname"), "control char")
}

func TestNormalizePhone(t *testing.T) {
	for raw, want := range testutil.FixtureRawPhones {
		t.Run(raw, func(t *testing.T) {
			testutil.AssertEqual(t, NormalizePhone(raw), want, "normalized phone")
		})
	}
}

func TestIsPhoneLike(t *testing.T) {
	testutil.AssertTrue(t, IsPhoneLike("+15551234567"), "e164")
	testutil.AssertTrue(t, IsPhoneLike("79001234567"), "no plus")
	testutil.AssertFalse(t, IsPhoneLike("john.doe"), "not a phone")
	testutil.AssertFalse(t, IsPhoneLike("+12"), "too short")
}

// internal/catalog/catalog_test.go
package catalog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"phoneprobe/internal/core/domain"
	"phoneprobe/internal/testutil"
)

func TestDefault(t *testing.T) {
	c := Default()

	testutil.AssertEqual(t, c.Categories(), []string{
		SocialNetworks, MessagingApps, ProfessionalNetworks, LeakDatabases,
		PublicRecords, BusinessDirectories, TechResources, JobSites, Classifieds,
	}, "catalog order")
	testutil.AssertEqual(t, c.Len(), 9, "categories")
	testutil.AssertEqual(t, c.TargetCount(), 91, "total targets")
	testutil.AssertLen(t, c.Targets(SocialNetworks), 15, "social networks")
	testutil.AssertLen(t, c.Targets(Classifieds), 7, "classifieds")
	testutil.AssertEqual(t, c.Title(LeakDatabases), "Leak Databases", "humanized title")
	testutil.AssertTrue(t, Default() == c, "default is shared")
}

func TestDefault_TargetOrderAndResolve(t *testing.T) {
	targets := Default().Targets(SocialNetworks)

	testutil.AssertEqual(t, targets[0].Source, "Facebook", "first source")
	testutil.AssertEqual(t, targets[14].Source, "Twitch", "last source")
	testutil.AssertEqual(t, targets[0].Resolve("+15551234567"), "https://www.facebook.com/search/top/?q=+15551234567", "resolved url")
	testutil.AssertEqual(t, targets[0].Category, SocialNetworks, "target category")
}

func TestDefault_DuplicateAcrossCategories(t *testing.T) {
	c := Default()
	_, inSocial := findSource(c.Targets(SocialNetworks), "LinkedIn")
	_, inPro := findSource(c.Targets(ProfessionalNetworks), "LinkedIn")

	testutil.AssertTrue(t, inSocial && inPro, "LinkedIn is kept in both categories")
}

func TestTargets_ReturnsCopy(t *testing.T) {
	c := Default()
	a := c.Targets(JobSites)
	a[0].Source = "mutated"

	testutil.AssertEqual(t, c.Targets(JobSites)[0].Source, "Indeed", "catalog not mutated")
	testutil.AssertTrue(t, c.Targets("nope") == nil, "unknown category")
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   []Category
		wantErr error
	}{
		{"empty", nil, domain.ErrEmptyCatalog},
		{"duplicate category", []Category{
			{Name: "a", Sources: []Source{{"X", "https://x.test/{phone}"}}},
			{Name: "a", Sources: []Source{{"Y", "https://y.test/{phone}"}}},
		}, domain.ErrDuplicateCategory},
		{"duplicate source", []Category{
			{Name: "a", Sources: []Source{{"X", "https://x.test/{phone}"}, {"X", "https://y.test/{phone}"}}},
		}, domain.ErrDuplicateSource},
		{"missing placeholder", []Category{
			{Name: "a", Sources: []Source{{"X", "https://x.test/search"}}},
		}, domain.ErrMissingPlaceholder},
		{"two placeholders", []Category{
			{Name: "a", Sources: []Source{{"X", "https://x.test/{phone}/{phone}"}}},
		}, domain.ErrMissingPlaceholder},
		{"bad scheme", []Category{
			{Name: "a", Sources: []Source{{"X", "nope/{phone}"}}},
		}, domain.ErrInvalidTemplate},
		{"no host", []Category{
			{Name: "a", Sources: []Source{{"X", "https:///{phone}"}}},
		}, domain.ErrInvalidTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.input)
			testutil.AssertErrorIs(t, err, domain.ErrInvalidCatalog, "wrapped as invalid catalog")
			testutil.AssertErrorIs(t, err, tt.wantErr, "specific cause")
		})
	}
}

func TestNew_RejectsInvalidFixtures(t *testing.T) {
	for _, tmpl := range testutil.FixtureInvalidTemplates {
		_, err := New([]Category{{Name: "a", Sources: []Source{{"X", tmpl}}}})
		testutil.AssertError(t, err, "template "+tmpl)
	}
	for _, tmpl := range testutil.FixtureValidTemplates {
		_, err := New([]Category{{Name: "a", Sources: []Source{{"X", tmpl}}}})
		testutil.AssertNoError(t, err, "template "+tmpl)
	}
}

func TestNew_ReportsEveryProblem(t *testing.T) {
	_, err := New([]Category{
		{Name: "a", Sources: []Source{{"X", "https://x.test/nope"}, {"Y", "nope/{phone}"}}},
	})
	testutil.AssertError(t, err, "invalid catalog")
	testutil.AssertContains(t, err.Error(), `"X"`, "first problem")
	testutil.AssertContains(t, err.Error(), `"Y"`, "second problem")
}

func TestMerge(t *testing.T) {
	base := MustNew([]Category{
		{Name: "a", Sources: []Source{{"A1", "https://a1.test/{phone}"}}},
	})

	merged, err := base.Merge([]Category{
		{Name: "a", Sources: []Source{{"A1", "https://a1-new.test/{phone}"}, {"A2", "https://a2.test/{phone}"}}},
		{Name: "b", Title: "Bee", Sources: []Source{{"B1", "https://b1.test/{phone}"}}},
	})
	testutil.AssertNoError(t, err, "merge")

	testutil.AssertEqual(t, merged.Categories(), []string{"a", "b"}, "new category appended")
	a := merged.Targets("a")
	testutil.AssertLen(t, a, 2, "source appended")
	testutil.AssertEqual(t, a[0].Template, "https://a1-new.test/{phone}", "same name replaced in place")
	testutil.AssertEqual(t, merged.Title("b"), "Bee", "explicit title")
	testutil.AssertLen(t, base.Targets("a"), 1, "base untouched")
}

func TestMerge_InvalidExtension(t *testing.T) {
	_, err := Default().Merge([]Category{{Name: "x", Sources: []Source{{"Bad", "https://bad.test/"}}}})
	testutil.AssertErrorIs(t, err, domain.ErrInvalidCatalog, "invalid extension")
}

func TestFilter(t *testing.T) {
	c, err := Default().Filter([]string{Classifieds, SocialNetworks})
	testutil.AssertNoError(t, err, "filter")
	testutil.AssertEqual(t, c.Categories(), []string{SocialNetworks, Classifieds}, "catalog order kept")

	same, err := Default().Filter(nil)
	testutil.AssertNoError(t, err, "empty filter")
	testutil.AssertTrue(t, same == Default(), "empty filter returns catalog")

	_, err = Default().Filter([]string{"nope"})
	testutil.AssertErrorIs(t, err, domain.ErrUnknownCategory, "unknown category")
}

func TestLoad(t *testing.T) {
	cats, err := Load(strings.NewReader(`
categories:
  - name: forums
    title: Forums
    sources:
      - name: ExampleForum
        url: https://forum.example.com/search?q={phone}
`))
	testutil.AssertNoError(t, err, "load")
	testutil.AssertLen(t, cats, 1, "one category")
	testutil.AssertEqual(t, cats[0].Sources[0].Name, "ExampleForum", "source name")

	_, err = Load(strings.NewReader("categories:\n  - name: x\n    srcs: []\n"))
	testutil.AssertError(t, err, "unknown field rejected")

	cats, err = Load(strings.NewReader(""))
	testutil.AssertNoError(t, err, "empty file")
	testutil.AssertLen(t, cats, 0, "no categories")
}

func TestFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yaml")
	err := os.WriteFile(path, []byte(`
categories:
  - name: forums
    sources:
      - name: ExampleForum
        url: https://forum.example.com/search?q={phone}
`), 0o644)
	testutil.AssertNoError(t, err, "write extension")

	c, err := FromConfig(path, []string{"forums", MessagingApps})
	testutil.AssertNoError(t, err, "from config")
	testutil.AssertEqual(t, c.Categories(), []string{MessagingApps, "forums"}, "merged then filtered")

	_, err = FromConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	testutil.AssertError(t, err, "missing extension file")
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	testutil.AssertNoError(t, Default().WriteYAML(&buf), "write yaml")

	cats, err := Load(&buf)
	testutil.AssertNoError(t, err, "reload yaml")

	c, err := New(cats)
	testutil.AssertNoError(t, err, "rebuild catalog")
	testutil.AssertEqual(t, c.Len(), Default().Len(), "same categories")
	testutil.AssertEqual(t, c.TargetCount(), Default().TargetCount(), "same targets")
}

func TestHumanize(t *testing.T) {
	testutil.AssertEqual(t, Humanize("social_networks"), "Social Networks", "snake case")
	testutil.AssertEqual(t, Humanize("tech-resources"), "Tech Resources", "kebab case")
}

func findSource(targets []domain.Target, name string) (domain.Target, bool) {
	for _, t := range targets {
		if t.Source == name {
			return t, true
		}
	}
	return domain.Target{}, false
}

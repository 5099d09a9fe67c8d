package pkgbuild

import (
	"errors"
	"strings"
	"testing"

	"github.com/ralt/cargo-aur/internal/models"
)

const testSHA = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func testRecipe() *Recipe {
	return &Recipe{
		Manifest: &models.Manifest{
			Package: models.Package{
				Name:        "foo",
				Version:     "1.2.0",
				Authors:     []string{"Jane Doe <jane@example.com>"},
				Description: "A foo tool",
				Repository:  "https://github.com/a/foo",
				License:     "MIT",
			},
		},
		Source:   "https://github.com/a/foo/releases/download/$pkgver/foo-$pkgver-x86_64.tar.gz",
		SHA256:   testSHA,
		Licenses: []string{"LICENSE"},
	}
}

func render(t *testing.T, r *Recipe) string {
	t.Helper()
	var b strings.Builder
	if err := Render(&b, r); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return b.String()
}

func TestRenderFull(t *testing.T) {
	want := `# Maintainer: Jane Doe <jane@example.com>
#
# This PKGBUILD was generated by ` + "`cargo aur`" + `: https://crates.io/crates/cargo-aur

pkgname=foo
pkgver=1.2.0
pkgrel=1
pkgdesc='A foo tool'
url="https://github.com/a/foo"
license=("MIT")
arch=('x86_64')
source=("https://github.com/a/foo/releases/download/$pkgver/foo-$pkgver-x86_64.tar.gz")
sha256sums=("` + testSHA + `")

package() {
    install -Dm755 foo -t "$pkgdir/usr/bin"
    install -Dm644 "LICENSE" "$pkgdir/usr/share/licenses/$pkgname/LICENSE"
}
`
	if got := render(t, testRecipe()); got != want {
		t.Errorf("unexpected PKGBUILD:\n--- got ---\n%s\n--- want ---\n%s", got, want)
	}
}

func TestDependencyArrays(t *testing.T) {
	tests := []struct {
		name string
		deps models.Dependencies
		want string
	}{
		{
			name: "depends only",
			deps: models.Dependencies{Depends: []string{"a", "b"}},
			want: `depends=("a" "b")`,
		},
		{
			name: "optdepends only",
			deps: models.Dependencies{Optdepends: []string{"c: extra"}},
			want: `optdepends=("c: extra")`,
		},
		{
			name: "both",
			deps: models.Dependencies{Depends: []string{"a"}, Optdepends: []string{"b"}},
			want: "depends=(\"a\")\noptdepends=(\"b\")",
		},
		{
			name: "none",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dependencyArrays(tt.deps); got != tt.want {
				t.Errorf("dependencyArrays() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderDependencies(t *testing.T) {
	r := testRecipe()
	r.Manifest.Package.Metadata = &models.Metadata{
		AUR: &models.AURMetadata{Depends: []string{"a", "b"}},
	}
	out := render(t, r)
	if !strings.Contains(out, "arch=('x86_64')\ndepends=(\"a\" \"b\")\nsource=(") {
		t.Errorf("depends not rendered in place:\n%s", out)
	}
	if strings.Contains(out, "optdepends") {
		t.Error("empty optdepends must be omitted")
	}

	r.Manifest.Package.Metadata.AUR.Optdepends = []string{"c"}
	out = render(t, r)
	if !strings.Contains(out, "depends=(\"a\" \"b\")\noptdepends=(\"c\")\nsource=(") {
		t.Errorf("expected exactly one newline between arrays:\n%s", out)
	}

	r.Manifest.Package.Metadata = &models.Metadata{}
	out = render(t, r)
	if strings.Contains(out, "depends") {
		t.Error("no dependency field should be rendered for empty lists")
	}
	if !strings.Contains(out, "arch=('x86_64')\nsource=(") {
		t.Errorf("no blank line expected without dependencies:\n%s", out)
	}
}

func TestRenderLegacyDependencies(t *testing.T) {
	r := testRecipe()
	r.Manifest.Package.Metadata = &models.Metadata{Optdepends: []string{"legacy"}}
	if out := render(t, r); !strings.Contains(out, "optdepends=(\"legacy\")\n") {
		t.Errorf("legacy optdepends not rendered:\n%s", out)
	}
}

func TestRenderBinaries(t *testing.T) {
	r := testRecipe()
	r.Manifest.Bin = []models.Binary{{Name: "foo-cli"}, {Name: "foo-helper"}}
	out := render(t, r)

	for _, line := range []string{
		"    install -Dm755 foo-cli -t \"$pkgdir/usr/bin\"\n",
		"    install -Dm755 foo-helper -t \"$pkgdir/usr/bin\"\n",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("missing install line %q", line)
		}
	}
	if strings.Contains(out, "install -Dm755 foo -t") {
		t.Error("package name should not be installed when [[bin]] targets exist")
	}
}

func TestRenderNoLicenseFiles(t *testing.T) {
	r := testRecipe()
	r.Licenses = nil
	if out := render(t, r); strings.Contains(out, "usr/share/licenses") {
		t.Error("no license install line expected")
	}
}

func TestRenderMultipleLicenses(t *testing.T) {
	r := testRecipe()
	r.Licenses = []string{"LICENSE-APACHE", "LICENSE-MIT"}
	out := render(t, r)
	apache := strings.Index(out, "\"LICENSE-APACHE\" \"$pkgdir/usr/share/licenses/$pkgname/LICENSE-APACHE\"")
	mit := strings.Index(out, "\"LICENSE-MIT\" \"$pkgdir/usr/share/licenses/$pkgname/LICENSE-MIT\"")
	if apache < 0 || mit < 0 || apache > mit {
		t.Errorf("license lines missing or out of order:\n%s", out)
	}
}

func TestRenderSuffixSignatureAndB2(t *testing.T) {
	r := testRecipe()
	r.PkgnameSuffix = "-bin"
	r.B2 = "b2hash"
	r.Fingerprint = "ABCDEF0123456789ABCDEF0123456789ABCDEF01"
	out := render(t, r)

	for _, want := range []string{
		"pkgname=foo-bin\n",
		"provides=(\"foo\")\n",
		"conflicts=(\"foo\")\n",
		"source=(\"" + r.Source + "\" \"" + r.Source + ".sig\")\n",
		"sha256sums=(\"" + testSHA + "\" \"SKIP\")\n",
		"b2sums=(\"b2hash\" \"SKIP\")\n",
		"validpgpkeys=('ABCDEF0123456789ABCDEF0123456789ABCDEF01')\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderQuoting(t *testing.T) {
	r := testRecipe()
	r.Manifest.Package.Description = "Bob's \"fancy\" tool"
	r.Manifest.Package.Metadata = &models.Metadata{
		AUR: &models.AURMetadata{Optdepends: []string{"sh: runs `$cmd`"}},
	}
	out := render(t, r)

	if !strings.Contains(out, `pkgdesc='Bob'\''s "fancy" tool'`) {
		t.Errorf("description not single-quoted safely:\n%s", out)
	}
	if !strings.Contains(out, "optdepends=(\"sh: runs \\`\\$cmd\\`\")") {
		t.Errorf("optdepends not escaped:\n%s", out)
	}
	if !strings.Contains(out, "/download/$pkgver/") {
		t.Error("$pkgver must stay expandable in the source URL")
	}
}

func TestRenderHomepage(t *testing.T) {
	r := testRecipe()
	r.Manifest.Package.Homepage = "https://foo.example.com"
	if out := render(t, r); !strings.Contains(out, "url=\"https://foo.example.com\"\n") {
		t.Errorf("homepage not used for url:\n%s", out)
	}
}

func TestRenderLicenseNamesQuoted(t *testing.T) {
	r := testRecipe()
	r.Licenses = []string{"LICENSE (MIT).txt", "LICENSE-$weird`"}
	out := render(t, r)

	for _, want := range []string{
		"    install -Dm644 \"LICENSE (MIT).txt\" \"$pkgdir/usr/share/licenses/$pkgname/LICENSE (MIT).txt\"\n",
		"    install -Dm644 \"LICENSE-\\$weird\\`\" \"$pkgdir/usr/share/licenses/$pkgname/LICENSE-\\$weird\\`\"\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderPropagatesWriteError(t *testing.T) {
	if err := Render(failingWriter{}, testRecipe()); err == nil {
		t.Error("expected write error")
	}
}

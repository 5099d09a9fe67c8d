package pkgbuild

import (
	"fmt"
	"io"
	"strings"

	"github.com/ralt/cargo-aur/internal/models"
)

// FileName is the name of the rendered recipe
const FileName = "PKGBUILD"

// Recipe is everything the PKGBUILD is rendered from
type Recipe struct {
	Manifest *models.Manifest
	Source   string // download URL, $pkgver unexpanded
	SHA256   string
	B2       string   // emitted as b2sums when set
	Licenses []string // license files installed by hand

	// PkgnameSuffix is appended to pkgname (e.g. "-bin"); the package then
	// provides and conflicts with the plain name.
	PkgnameSuffix string

	// Fingerprint of the key that signed the tarball. When set, the
	// detached signature is added to the sources.
	Fingerprint string
}

// Render writes the PKGBUILD for r to w
func Render(w io.Writer, r *Recipe) error {
	text := generatePKGBUILD(r)
	_, err := io.WriteString(w, text)
	return err
}

// generatePKGBUILD builds the recipe text
func generatePKGBUILD(r *Recipe) string {
	pkg := &r.Manifest.Package
	var b strings.Builder

	for _, author := range pkg.Authors {
		fmt.Fprintf(&b, "# Maintainer: %s\n", author)
	}
	b.WriteString("#\n")
	b.WriteString("# This PKGBUILD was generated by `cargo aur`: https://crates.io/crates/cargo-aur\n")
	b.WriteString("\n")

	fmt.Fprintf(&b, "pkgname=%s%s\n", pkg.Name, r.PkgnameSuffix)
	fmt.Fprintf(&b, "pkgver=%s\n", pkg.Version)
	b.WriteString("pkgrel=1\n")
	fmt.Fprintf(&b, "pkgdesc=%s\n", singleQuote(pkg.Description))
	fmt.Fprintf(&b, "url=%s\n", doubleQuote(pkg.URL()))
	fmt.Fprintf(&b, "license=(%s)\n", doubleQuote(pkg.License))
	fmt.Fprintf(&b, "arch=('%s')\n", models.Arch)
	if r.PkgnameSuffix != "" {
		fmt.Fprintf(&b, "provides=(%s)\n", doubleQuote(pkg.Name))
		fmt.Fprintf(&b, "conflicts=(%s)\n", doubleQuote(pkg.Name))
	}

	deps, _ := pkg.Dependencies()
	if block := dependencyArrays(deps); block != "" {
		b.WriteString(block)
		b.WriteString("\n")
	}

	// The source URL keeps $pkgver live for makepkg, so it is not escaped.
	sources := []string{`"` + r.Source + `"`}
	sha256sums := []string{doubleQuote(r.SHA256)}
	b2sums := []string{doubleQuote(r.B2)}
	if r.Fingerprint != "" {
		sources = append(sources, `"`+r.Source+`.sig"`)
		sha256sums = append(sha256sums, `"SKIP"`)
		b2sums = append(b2sums, `"SKIP"`)
	}
	fmt.Fprintf(&b, "source=(%s)\n", strings.Join(sources, " "))
	fmt.Fprintf(&b, "sha256sums=(%s)\n", strings.Join(sha256sums, " "))
	if r.B2 != "" {
		fmt.Fprintf(&b, "b2sums=(%s)\n", strings.Join(b2sums, " "))
	}
	if r.Fingerprint != "" {
		fmt.Fprintf(&b, "validpgpkeys=('%s')\n", r.Fingerprint)
	}
	b.WriteString("\n")

	b.WriteString("package() {\n")
	for _, name := range r.Manifest.BinaryNames() {
		fmt.Fprintf(&b, "    install -Dm755 %s -t \"$pkgdir/usr/bin\"\n", name)
	}
	for _, lic := range r.Licenses {
		fmt.Fprintf(&b, "    install -Dm644 %s \"$pkgdir/usr/share/licenses/$pkgname/%s\"\n",
			doubleQuote(lic), doubleQuoteEscaper.Replace(lic))
	}
	b.WriteString("}\n")

	return b.String()
}

// dependencyArrays renders the depends and optdepends arrays. An empty list
// renders nothing; two arrays are separated by a single newline and no
// trailing newline is added.
func dependencyArrays(deps models.Dependencies) string {
	var arrays []string
	if len(deps.Depends) > 0 {
		arrays = append(arrays, bashArray("depends", deps.Depends))
	}
	if len(deps.Optdepends) > 0 {
		arrays = append(arrays, bashArray("optdepends", deps.Optdepends))
	}
	return strings.Join(arrays, "\n")
}

func bashArray(name string, items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = doubleQuote(item)
	}
	return fmt.Sprintf("%s=(%s)", name, strings.Join(quoted, " "))
}

var doubleQuoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")

// doubleQuote quotes s for bash so that it expands to itself
func doubleQuote(s string) string {
	return `"` + doubleQuoteEscaper.Replace(s) + `"`
}

// singleQuote quotes s for bash, closing and reopening around quotes
func singleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/RobinCoderZhao/archtranslator/internal/translated"
	"github.com/RobinCoderZhao/archtranslator/pkg/i18n"
)

func sampleResult() *translated.Result {
	return &translated.Result{
		Language: i18n.MustGet("German"),
		Existing: []string{"Pacman (Deutsch)", "Mirrors (Deutsch)"},
		Redirects: []translated.Redirect{
			{Link: "Makepkg.conf", RedirectsTo: "Makepkg#Configuration", LocalizedRedirectTarget: "Makepkg (Deutsch)", Exists: true},
			{Link: "Pacman.conf", RedirectsTo: "Pacman configuration", LocalizedRedirectTarget: "Pacman configuration (Deutsch)"},
		},
		NotExisting: []string{"Installation guide (Deutsch)"},
	}
}

func TestLinkify(t *testing.T) {
	if got := Linkify("Installation guide", true); got != "/title/Installation_guide" {
		t.Errorf("unexpected link %q", got)
	}
	if got := Linkify("Pacman.conf", false); got != "/index.php?title=Pacman.conf&redirect=no" {
		t.Errorf("unexpected raw link %q", got)
	}
}

func TestHTMLTable(t *testing.T) {
	out, err := HTMLTable(sampleResult())
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		`AT - Localized articles (Deutsch)`,
		`<a href="/title/Pacman_%28Deutsch%29">Pacman (Deutsch)</a>`,
		`<td class="muted-link" rowspan="2">N/A</td>`,
		`<td class="red-link">Pacman configuration (Deutsch)</td>`,
		`<a href="/index.php?title=Makepkg.conf&amp;redirect=no">Makepkg.conf</a> -&gt; `,
		`<td class="muted-link" rowspan="1">N/A</td>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	if strings.Count(out, `rowspan="2"`) != 1 {
		t.Errorf("expected a single N/A cell for existing rows:\n%s", out)
	}
	if strings.Contains(out, "No links were found") {
		t.Error("non-empty result must not show the empty message")
	}
	if strings.Index(out, "Makepkg (Deutsch)") > strings.Index(out, "Pacman configuration (Deutsch)") {
		t.Error("redirect rows must keep their order")
	}
}

func TestHTMLTable_Empty(t *testing.T) {
	out, err := HTMLTable(&translated.Result{Language: i18n.MustGet("Russian")})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "No links were found in the page content") {
		t.Fatalf("expected empty message:\n%s", out)
	}
	if _, err := HTMLTable(nil); err == nil {
		t.Fatal("expected error for nil result")
	}
}

func TestHTMLTable_EscapesTitles(t *testing.T) {
	out, err := HTMLTable(&translated.Result{
		Language:    i18n.MustGet("French"),
		NotExisting: []string{"<script>alert(1)</script> (Français)"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("title was not escaped:\n%s", out)
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, sampleResult()); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"STATUS", "exists", "Pacman (Deutsch)", "redirect (missing)", "Makepkg.conf -> Makepkg#Configuration", "missing"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := Text(&buf, &translated.Result{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "No links were found") {
		t.Fatalf("unexpected empty output %q", buf.String())
	}
}

func TestText_NilResult(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, nil); err == nil {
		t.Fatal("expected error for nil result")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

// Package render formats translated-article results for the edit-form footer
// (HTML) and the terminal (text).
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"text/tabwriter"

	"github.com/RobinCoderZhao/archtranslator/internal/translated"
	"github.com/RobinCoderZhao/archtranslator/pkg/wiki"
)

// Linkify returns the article URL of a title. With followRedirects false the
// URL points at the redirect page itself.
func Linkify(title string, followRedirects bool) string {
	pageName := wiki.TitleToPageName(title)
	if followRedirects {
		return "/title/" + pageName
	}
	return "/index.php?title=" + url.QueryEscape(pageName) + "&redirect=no"
}

var tableTmpl = template.Must(template.New("table").Funcs(template.FuncMap{
	"link":    func(title string) string { return Linkify(title, true) },
	"rawLink": func(title string) string { return Linkify(title, false) },
}).Parse(`<div class="localizedArticlesUi">
<div class="localizedArticlesUi-toggler"><p>AT - Localized articles ({{.Language.LocalizedName}}):</p></div>
<table class="wikitable mw-editfooter-list">
<thead><tr><th>Localized name</th><th>Redirected from</th></tr></thead>
<tbody>
{{- if .Empty}}
<tr><td class="muted-link" colspan="2">No links were found in the page content</td></tr>
{{- end}}
{{- range $i, $title := .Existing}}
<tr class="green-link"><td class="green-link"><a href="{{link $title}}">{{$title}}</a></td>
{{- if eq $i 0}}<td class="muted-link" rowspan="{{len $.Existing}}">N/A</td>{{end}}</tr>
{{- end}}
{{- range .Redirects}}
<tr class="blue-link">
{{- if .Exists}}<td class="green-link"><a href="{{link .LocalizedRedirectTarget}}">{{.LocalizedRedirectTarget}}</a></td>
{{- else}}<td class="red-link">{{.LocalizedRedirectTarget}}</td>{{end}}
<td class="blue-link"><a href="{{rawLink .Link}}">{{.Link}}</a> -&gt; <a href="{{link .RedirectsTo}}">{{.RedirectsTo}}</a></td></tr>
{{- end}}
{{- range $i, $title := .NotExisting}}
<tr class="red-link"><td class="red-link">{{$title}}</td>
{{- if eq $i 0}}<td class="muted-link" rowspan="{{len $.NotExisting}}">N/A</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
</div>
`))

// HTMLTable renders the localized articles table. Existing translations are
// listed first, then redirects, then missing translations.
func HTMLTable(result *translated.Result) (string, error) {
	if result == nil {
		return "", fmt.Errorf("render table: nil result")
	}
	var buf bytes.Buffer
	if err := tableTmpl.Execute(&buf, result); err != nil {
		return "", fmt.Errorf("render table: %w", err)
	}
	return buf.String(), nil
}

// Text writes the result as an aligned plain-text table.
func Text(w io.Writer, result *translated.Result) error {
	if result == nil {
		return fmt.Errorf("render text: nil result")
	}
	if result.Empty() {
		_, err := fmt.Fprintln(w, "No links were found in the page content")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "STATUS\tLOCALIZED NAME\tREDIRECTED FROM\n")
	for _, title := range result.Existing {
		fmt.Fprintf(tw, "exists\t%s\t-\n", title)
	}
	for _, r := range result.Redirects {
		status := "redirect"
		if !r.Exists {
			status = "redirect (missing)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s -> %s\n", status, r.LocalizedRedirectTarget, r.Link, r.RedirectsTo)
	}
	for _, title := range result.NotExisting {
		fmt.Fprintf(tw, "missing\t%s\t-\n", title)
	}
	return tw.Flush()
}

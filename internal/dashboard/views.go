package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"math"
	"net/http"

	"delitrack/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageLanding  = "landing.html"
	pageLogin    = "login.html"
	pageVendor   = "vendor.html"
	pageDelivery = "delivery.html"
	pageTrack    = "track.html"
)

var pages = []string{pageLanding, pageLogin, pageVendor, pageDelivery, pageTrack}

// FormatMoney renders an amount with a dollar sign and two decimals.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"money": FormatMoney,
		"tone": func(status string) string {
			return string(domain.ToneForStatus(status))
		},
		"percent": func(progress float64) int {
			return int(math.Round(progress))
		},
	}
}

// Views holds one parsed template set per page, each sharing the layout and
// the map partial.
type Views struct {
	sets map[string]*template.Template
}

func NewViews() (*Views, error) {
	sets := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New("layout.html").
			Funcs(templateFuncs()).
			ParseFS(templateFS, "templates/layout.html", "templates/map.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		sets[page] = tmpl
	}
	return &Views{sets: sets}, nil
}

// Render executes page into a buffer before writing, so a template failure
// never leaves a half-written response.
func (v *Views) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := v.sets[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("rendering %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	// A failed write means the client went away; nothing left to report.
	_, _ = buf.WriteTo(w)
	return nil
}

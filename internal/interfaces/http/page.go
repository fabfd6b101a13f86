package http

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/jhoicas/optimal-price/internal/application/form"
	"github.com/jhoicas/optimal-price/internal/application/view"
	"github.com/jhoicas/optimal-price/internal/domain/entity"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

// dashboardPage datos de la plantilla del dashboard.
type dashboardPage struct {
	Form    map[string]string
	Pending bool
	View    view.ResultView
}

// renderDashboard genera el HTML completo de la página para una sesión.
func renderDashboard(f form.State, state entity.RequestState) ([]byte, error) {
	var buf bytes.Buffer
	err := dashboardTmpl.Execute(&buf, dashboardPage{
		Form:    f.Values(),
		Pending: state.IsPending(),
		View:    view.Render(state),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

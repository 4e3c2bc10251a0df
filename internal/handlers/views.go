package handlers

import (
	"encoding/json"

	"shortdash/internal/controllers"
	"shortdash/internal/page"
)

// Template view models. Handlers build them from controller snapshots so the
// templates never call back into a controller.

type dashboardView struct {
	controllers.DashboardState
	Chart chartView
}

func newDashboardView(p *page.Page) dashboardView {
	return dashboardView{
		DashboardState: p.Dashboard.State(),
		Chart:          newChartView(p.Dashboard.RenderSeries()),
	}
}

type linkView struct {
	Index        int
	ShortURL     string
	OriginalURL  string
	QualifiedURL string
	DebugURL     string

	// Vals is the hx-vals JSON naming this link. It must be marshalled, never
	// interpolated in the template.
	Vals string
}

type editView struct {
	ShortURL     string
	QualifiedURL string
	Draft        string
}

type recentView struct {
	Loading bool
	Failed  bool
	Links   []linkView
	Edit    *editView
}

func newRecentView(p *page.Page) recentView {
	r := p.Recent
	s := r.State()

	v := recentView{Loading: s.Loading, Failed: s.Failed}
	for i, l := range s.Links {
		v.Links = append(v.Links, linkView{
			Index:        i,
			ShortURL:     l.ShortURL,
			OriginalURL:  l.OriginalURL,
			QualifiedURL: r.QualifiedURL(l.ShortURL),
			DebugURL:     r.DebugURL(l.ShortURL),
			Vals:         linkVals(l.ShortURL),
		})
	}
	if s.EditOpen {
		v.Edit = &editView{
			ShortURL:     s.EditingShortURL,
			QualifiedURL: r.QualifiedURL(s.EditingShortURL),
			Draft:        s.EditingDraft,
		}
	}
	return v
}

func linkVals(shortURL string) string {
	vals, _ := json.Marshal(map[string]string{"short_url": shortURL})
	return string(vals)
}

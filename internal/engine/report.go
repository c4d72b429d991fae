package engine

import (
	"strings"
	"text/template"

	"shoulu/internal/domain"
)

type ReportMode string

const (
	ReportGeneral ReportMode = "general"
	ReportCombat  ReportMode = "combat"
)

// DefaultNamePlaceholder stands in for a blank disciple name.
const DefaultNamePlaceholder = "[姓名]"

// ReportOptions controls how a reporting text is assembled.
type ReportOptions struct {
	Name          string
	Mode          ReportMode
	Placeholder   string
	CleanDuty     bool
	ShortMarshals bool
}

// ModeForVocation picks the script a vocation uses when none is requested.
func ModeForVocation(v domain.Vocation) ReportMode {
	if v == domain.VocationExorcism {
		return ReportCombat
	}
	return ReportGeneral
}

func ParseReportMode(v string) (ReportMode, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "general", "一般", "祈福":
		return ReportGeneral, true
	case "combat", "驅邪", "制煞":
		return ReportCombat, true
	}
	return "", false
}

var closings = map[ReportMode]string{
	ReportGeneral: "茲以此香，啟奏上聖，恭行科事，祈恩賜福。",
	ReportCombat:  "奉道旨令，斬妖除邪，催罡敕法，急急如律令！",
}

var reportTemplates = map[ReportMode]*template.Template{
	ReportGeneral: template.Must(template.New("general").Parse(`伏以
嗣漢天師府門下受籙弟子 {{.Name}}，奏受「{{.Scripture}}」，隸「{{.Department}}」，補「{{.Rank}}」，現授「{{.Title}}」。
職司「{{.Duty}}」，領「{{.Primary}}」、「{{.Secondary}}」及心恩主將「{{.HeartMarshal}}」麾下「{{.Troops}}」兵馬。
{{.Closing}}`)),
	ReportCombat: template.Must(template.New("combat").Parse(`謹召
嗣漢天師府門下受籙弟子 {{.Name}}，佩奉「{{.Scripture}}」，隸「{{.Department}}」，職居「{{.Rank}}」，現授「{{.Title}}」。
職司「{{.Duty}}」，親率「{{.Primary}}」為前鋒，「{{.Secondary}}」為後應，心恩主將「{{.HeartMarshal}}」監壇，麾下「{{.Troops}}」兵馬齊臨。
{{.Closing}}`)),
}

type reportData struct {
	Name         string
	Scripture    string
	Department   string
	Rank         string
	Title        string
	Duty         string
	Primary      string
	Secondary    string
	HeartMarshal string
	Troops       string
	Closing      string
}

// Report assembles the reporting text from an already derived result.
func Report(r domain.Result, opts ReportOptions) string {
	mode := opts.Mode
	tmpl, ok := reportTemplates[mode]
	if !ok {
		mode = ReportGeneral
		tmpl = reportTemplates[mode]
	}
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = opts.Placeholder
		if name == "" {
			name = DefaultNamePlaceholder
		}
	}
	duty := r.OfficeText
	if opts.CleanDuty {
		duty = r.Office.Duty()
	}
	primary, secondary := r.Marshal.FullName, r.SecondaryMarshal.FullName
	if opts.ShortMarshals {
		primary, secondary = r.Marshal.Name, r.SecondaryMarshal.Name
	}
	var b strings.Builder
	_ = tmpl.Execute(&b, reportData{
		Name:         name,
		Scripture:    r.Scripture,
		Department:   string(r.Department),
		Rank:         r.Rank,
		Title:        r.Title,
		Duty:         duty,
		Primary:      primary,
		Secondary:    secondary,
		HeartMarshal: r.HeartMarshal,
		Troops:       r.Troops,
		Closing:      closings[mode],
	})
	return b.String()
}

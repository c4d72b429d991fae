package domain

import "fmt"

// Office is the structured preimage of the three-line office-duty text.
type Office struct {
	Verb      string `json:"verb"`
	Scripture string `json:"scripture"`
	Hall      string `json:"hall"`
	Palace    string `json:"palace"`
	Bureau    string `json:"bureau"`
	Authority string `json:"authority"`
}

// Lines renders the scripture, hall/palace and bureau/authority lines.
func (o Office) Lines() []string {
	return []string{
		fmt.Sprintf("一%s%s", o.Verb, o.Scripture),
		fmt.Sprintf("一執「%s」、掌「%s」", o.Hall, o.Palace),
		fmt.Sprintf("一兼領「%s」及「%s」", o.Bureau, o.Authority),
	}
}

func (o Office) Text() string {
	lines := o.Lines()
	return lines[0] + "\n" + lines[1] + "\n" + lines[2]
}

// Duty is the one-line form used in reporting texts, without list markers or brackets
// around the hall and bureau.
func (o Office) Duty() string {
	return fmt.Sprintf("%s%s，兼領%s及「%s」", o.Hall, o.Palace, o.Bureau, o.Authority)
}

// Marshal is a named general. FullName is Honorific followed by Name.
type Marshal struct {
	Honorific  string `json:"honorific"`
	Name       string `json:"name"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	Invocation string `json:"invocation"`
}

// Result is the complete derived ordination record.
type Result struct {
	Title            string     `json:"title"`
	HonorificTitle   string     `json:"honorific_title"`
	Office           Office     `json:"office"`
	OfficeText       string     `json:"office_text"`
	Altar            string     `json:"altar"`
	Jing             string     `json:"jing"`
	GovernanceSeat   string     `json:"governance_seat"`
	Governance       string     `json:"governance"`
	Element          string     `json:"element"`
	Organ            string     `json:"organ"`
	Deity            string     `json:"deity"`
	Marshal          Marshal    `json:"marshal"`
	SecondaryMarshal Marshal    `json:"secondary_marshal"`
	HeartMarshal     string     `json:"heart_marshal"`
	Troops           string     `json:"troops"`
	Treasury         string     `json:"treasury"`
	Official         string     `json:"official"`
	AuthorityName    string     `json:"authority_name"`
	AuthorityDesc    string     `json:"authority_desc"`
	Department       Department `json:"department"`
	Scripture        string     `json:"scripture"`
	Rank             string     `json:"rank"`
}

// Record is a saved disciple: the derived result plus identity.
type Record struct {
	Result
	ID        string `json:"id"`
	Name      string `json:"name"`
	LunarInfo string `json:"lunar_info"`
	Input     Input  `json:"input"`
	CreatedAt string `json:"created_at" format:"date-time"`
}

package engine

import (
	"fmt"

	"shoulu/internal/domain"
)

// Year 1 of the republic calendar is 壬子: stem index 8, branch index 0.
const (
	stemAnchor   = 8
	branchAnchor = 0
)

// ResolveSexagenary returns the stem-branch pair of a republic-calendar year.
// The mapping is periodic with period 60 over all integers.
func ResolveSexagenary(year int) domain.Sexagenary {
	offset := year - 1
	return domain.Sexagenary{
		Stem:   domain.Stems[mod(stemAnchor+offset, len(domain.Stems))],
		Branch: domain.Branches[mod(branchAnchor+offset, len(domain.Branches))],
	}
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// Resolve turns a raw input into derivation parameters.
func Resolve(in domain.Input) domain.Params {
	in = in.Normalize()
	sx := ResolveSexagenary(in.Year)
	return domain.Params{
		Stem:     sx.Stem,
		Branch:   sx.Branch,
		Month:    in.Month,
		Day:      in.Day,
		Hour:     in.Hour,
		Gender:   in.Gender,
		Level:    in.Level,
		Vocation: in.Vocation,
	}
}

// LunarInfo formats the birth summary stored with a record.
func LunarInfo(in domain.Input) string {
	sx := ResolveSexagenary(in.Year)
	return fmt.Sprintf("民國 %d年 (%s) %d月%d日 %s時", in.Year, sx, in.Month, in.Day, in.Hour)
}

// TitleBase picks the honorific fragment for a birth date.
func TitleBase(month, day int) string {
	v := month*100 + day
	for _, r := range titleRanges {
		if v >= r.From && v <= r.To {
			return r.Base
		}
	}
	return defaultTitleBase
}

// DepartmentFor applies the level rule; only 加授 consults the branch.
func DepartmentFor(level domain.Level, branch domain.Branch) domain.Department {
	switch level {
	case domain.LevelPromoted:
		return domain.DepartmentThunder
	case domain.LevelFirst:
		return domain.DepartmentWindFire
	}
	if branch.Yang() {
		return domain.DepartmentThunder
	}
	return domain.DepartmentWindFire
}

// Invocation returns the eulogy of a marshal by full name.
func Invocation(fullName string) string {
	if text, ok := invocations[fullName]; ok {
		return text
	}
	return genericInvocation
}

func shrineFor(s domain.Stem, b domain.Branch) shrineEntry {
	if e, ok := shrineTable[string(s)+string(b)]; ok {
		return e
	}
	return defaultShrine
}

func branchFor(b domain.Branch) branchEntry {
	if e, ok := branchTable[b]; ok {
		return e
	}
	return defaultBranchEntry
}

func hourFor(b domain.Branch) hourEntry {
	if e, ok := hourTable[b]; ok {
		return e
	}
	return defaultHourEntry
}

func levelFor(l domain.Level) levelEntry {
	if e, ok := levelTable[l]; ok {
		return e
	}
	return defaultLevelEntry
}

func treasuryFor(s domain.Stem) treasuryEntry {
	if e, ok := treasuryTable[s]; ok {
		return e
	}
	return defaultTreasuryEntry
}

func marshal(e marshalEntry, role string) domain.Marshal {
	return domain.Marshal{
		Honorific:  e.Honorific,
		Name:       e.Name,
		FullName:   e.FullName(),
		Role:       role,
		Invocation: Invocation(e.FullName()),
	}
}

// Derive computes the full ordination result. It is pure and does not
// validate ranges.
func Derive(p domain.Params) domain.Result {
	if p.Vocation == "" {
		p.Vocation = domain.VocationGeneral
	}
	shrine := shrineFor(p.Stem, p.Branch)
	branch := branchFor(p.Branch)
	hour := hourFor(p.Hour)
	level := levelFor(p.Level)
	group := elementGroupFor(p.Stem)
	treasury := treasuryFor(p.Stem)

	base := TitleBase(p.Month, p.Day)
	suffix, ok := honorificSuffix[p.Gender]
	if !ok {
		suffix = honorificSuffix[domain.Male]
	}
	noun, ok := rankNoun[p.Gender]
	if !ok {
		noun = rankNoun[domain.Male]
	}

	office := domain.Office{
		Verb:      level.Verb,
		Scripture: level.Scripture,
		Hall:      branch.Hall,
		Palace:    branch.Palace,
		Bureau:    branch.Bureau,
		Authority: hour.Authority,
	}

	dept := DepartmentFor(p.Level, p.Branch)
	stemPrimary, ok := stemMarshals[p.Stem]
	if !ok {
		stemPrimary = group.Primary
	}
	primary := marshal(stemPrimary, group.PrimaryRole)
	secondary := marshal(group.Secondary, group.SecondaryRole)
	if p.Vocation == domain.VocationExorcism || dept == domain.DepartmentWindFire {
		primary, secondary = marshal(investigativeMarshal, investigativeRole), marshal(stemPrimary, demotedRole)
	}

	return domain.Result{
		Title:            base + hour.Role + noun,
		HonorificTitle:   base + suffix,
		Office:           office,
		OfficeText:       office.Text(),
		Altar:            shrine.Altar,
		Jing:             shrine.Jing,
		GovernanceSeat:   shrine.Governance,
		Governance:       shrine.Governance + governanceSuffix,
		Element:          group.Element,
		Organ:            group.Organ,
		Deity:            group.Deity,
		Marshal:          primary,
		SecondaryMarshal: secondary,
		HeartMarshal:     branch.HeartMarshal,
		Troops:           branch.Troops,
		Treasury:         treasury.Treasury,
		Official:         treasury.Official,
		AuthorityName:    hour.Authority,
		AuthorityDesc:    hour.Desc,
		Department:       dept,
		Scripture:        level.Scripture,
		Rank:             level.Rank,
	}
}

// DeriveInput resolves the year and derives in one step.
func DeriveInput(in domain.Input) domain.Result {
	return Derive(Resolve(in))
}

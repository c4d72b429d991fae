package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoulu/internal/domain"
)

func TestResolveSexagenaryAnchors(t *testing.T) {
	cases := map[int]string{
		1:   "壬子",
		13:  "甲子",
		61:  "壬子",
		76:  "丁卯",
		114: "乙巳",
		0:   "辛亥",
		-59: "壬子",
	}
	for year, want := range cases {
		assert.Equal(t, want, ResolveSexagenary(year).String(), "year %d", year)
	}
}

func TestResolveSexagenaryPeriodic(t *testing.T) {
	for year := -200; year <= 200; year++ {
		require.Equal(t, ResolveSexagenary(year), ResolveSexagenary(year+60), "year %d", year)
	}
}

func TestResolveSexagenaryCoversCycle(t *testing.T) {
	seen := map[string]bool{}
	for year := 1; year <= 60; year++ {
		seen[ResolveSexagenary(year).String()] = true
	}
	assert.Len(t, seen, 60)
}

func TestTitleRangesDoNotOverlap(t *testing.T) {
	for i, a := range titleRanges {
		require.LessOrEqual(t, a.From, a.To)
		for j, b := range titleRanges {
			if i == j {
				continue
			}
			assert.False(t, a.From <= b.To && b.From <= a.To, "%v overlaps %v", a, b)
		}
	}
}

func TestTitleBase(t *testing.T) {
	assert.Equal(t, "玄靜", TitleBase(1, 1))
	assert.Equal(t, "玄靜", TitleBase(3, 12))
	assert.Equal(t, "容神", TitleBase(3, 13))
	assert.Equal(t, "暢玄", TitleBase(4, 10))
	assert.Equal(t, "阮道", TitleBase(9, 30))
	assert.Equal(t, "遠遊", TitleBase(12, 12))
	assert.Equal(t, defaultTitleBase, TitleBase(3, 31))
	assert.Equal(t, defaultTitleBase, TitleBase(12, 30))
	for m := 1; m <= 12; m++ {
		for d := 1; d <= 30; d++ {
			assert.NotEmpty(t, TitleBase(m, d))
		}
	}
}

func TestDepartmentFor(t *testing.T) {
	for _, b := range domain.Branches {
		assert.Equal(t, domain.DepartmentThunder, DepartmentFor(domain.LevelPromoted, b), "branch %s", b)
		assert.Equal(t, domain.DepartmentWindFire, DepartmentFor(domain.LevelFirst, b), "branch %s", b)
	}
	assert.Equal(t, domain.DepartmentThunder, DepartmentFor(domain.LevelAugmented, domain.BranchZi))
	assert.Equal(t, domain.DepartmentWindFire, DepartmentFor(domain.LevelAugmented, domain.BranchChou))
	assert.Equal(t, domain.DepartmentThunder, DepartmentFor(domain.LevelAugmented, domain.BranchXu))
	assert.Equal(t, domain.DepartmentWindFire, DepartmentFor(domain.LevelAugmented, domain.BranchHai))
}

func TestSecondaryFollowsGeneratingCycle(t *testing.T) {
	for i, g := range elementGroups {
		next := elementGroups[(i+1)%len(elementGroups)]
		assert.Equal(t, next.Primary, g.Secondary, "group %s", g.Pair)
	}
}

func TestDeriveExample114(t *testing.T) {
	res := DeriveInput(domain.Input{Year: 114, Month: 4, Day: 10, Hour: domain.BranchShen, Gender: domain.Male, Level: domain.LevelFirst})

	assert.Equal(t, domain.DepartmentWindFire, res.Department)
	assert.Equal(t, "太上三五都功經籙", res.Scripture)
	assert.Equal(t, "九品仙官", res.Rank)
	assert.Equal(t, "暢玄五雷法師", res.Title)
	assert.Equal(t, "暢玄先生", res.HonorificTitle)
	assert.Equal(t, defaultShrine.Altar, res.Altar)
	assert.Equal(t, "陽平治左平炁係天師門下", res.Governance)
	assert.Equal(t, "木", res.Element)

	assert.Equal(t, "王元帥", res.Marshal.Name)
	assert.Equal(t, investigativeRole, res.Marshal.Role)
	assert.Equal(t, "溫元帥", res.SecondaryMarshal.Name)
	assert.Equal(t, demotedRole, res.SecondaryMarshal.Role)
	assert.Equal(t, "馬元帥", res.HeartMarshal)
	assert.Equal(t, "七百名", res.Troops)

	assert.Equal(t, "一奏受太上三五都功經籙\n一執「彤華府」、掌「延慶仙宮」\n一兼領「知天曹罰惡司」及「五雷院事」", res.OfficeText)
	assert.Equal(t, "彤華府延慶仙宮，兼領知天曹罰惡司及「五雷院事」", res.Office.Duty())
}

func TestDeriveThunderKeepsStemMarshal(t *testing.T) {
	res := DeriveInput(domain.Input{Year: 1, Month: 1, Day: 1, Hour: domain.BranchZi, Gender: domain.Female, Level: domain.LevelAugmented})

	assert.Equal(t, domain.DepartmentThunder, res.Department)
	assert.Equal(t, "周元帥", res.Marshal.Name)
	assert.Equal(t, "北方水德主將", res.Marshal.Role)
	assert.Equal(t, "溫元帥", res.SecondaryMarshal.Name)
	assert.Equal(t, "東方木德副將", res.SecondaryMarshal.Role)
	assert.Equal(t, "玄靜驅邪仙姑", res.Title)
	assert.Equal(t, "玄靜元君", res.HonorificTitle)
}

func TestDeriveExorcismPromotesInvestigator(t *testing.T) {
	in := domain.Input{Year: 1, Month: 1, Day: 1, Hour: domain.BranchZi, Gender: domain.Male, Level: domain.LevelPromoted, Vocation: domain.VocationExorcism}
	res := DeriveInput(in)

	assert.Equal(t, domain.DepartmentThunder, res.Department)
	assert.Equal(t, investigativeMarshal.FullName(), res.Marshal.FullName)
	assert.Equal(t, "周元帥", res.SecondaryMarshal.Name)
	assert.Equal(t, demotedRole, res.SecondaryMarshal.Role)
	assert.Equal(t, res, DeriveInput(in))
}

func TestDeriveShrineLookup(t *testing.T) {
	res := DeriveInput(domain.Input{Year: 13, Month: 5, Day: 5, Hour: domain.BranchWu, Gender: domain.Male, Level: domain.LevelPromoted})
	assert.Equal(t, "應妙合英壇", res.Altar)
	assert.Equal(t, "陽平治左平炁", res.GovernanceSeat)
}

func TestDeriveTotal(t *testing.T) {
	for year := 1; year <= 60; year++ {
		for _, hour := range domain.Branches {
			for _, g := range domain.Genders {
				for _, l := range domain.Levels {
					for _, v := range domain.Vocations {
						res := DeriveInput(domain.Input{Year: year, Month: 12, Day: 30, Hour: hour, Gender: g, Level: l, Vocation: v})
						require.NotEmpty(t, res.Title)
						require.NotEmpty(t, res.HonorificTitle)
						require.NotEmpty(t, res.Altar)
						require.NotEmpty(t, res.Jing)
						require.NotEmpty(t, res.Governance)
						require.NotEmpty(t, res.Marshal.FullName)
						require.NotEmpty(t, res.Marshal.Invocation)
						require.NotEmpty(t, res.SecondaryMarshal.FullName)
						require.NotEmpty(t, res.HeartMarshal)
						require.NotEmpty(t, res.Troops)
						require.NotEmpty(t, res.Treasury)
						require.NotEmpty(t, res.AuthorityName)
						require.Len(t, strings.Split(res.OfficeText, "\n"), 3)
						require.NotEqual(t, res.Marshal.FullName, res.SecondaryMarshal.FullName)
						if v == domain.VocationExorcism || res.Department == domain.DepartmentWindFire {
							require.Equal(t, investigativeRole, res.Marshal.Role)
						}
					}
				}
			}
		}
	}
}

func TestDeriveUnknownValuesFallBack(t *testing.T) {
	res := Derive(domain.Params{Stem: "?", Branch: "?", Month: 13, Day: 40, Hour: "?", Gender: "?", Level: "?"})
	assert.Equal(t, defaultTitleBase+defaultHourEntry.Role+rankNoun[domain.Male], res.Title)
	assert.Equal(t, defaultShrine.Altar, res.Altar)
	assert.Equal(t, defaultTreasuryEntry.Treasury, res.Treasury)
	assert.Equal(t, defaultLevelEntry.Scripture, res.Scripture)
	assert.NotEmpty(t, res.Marshal.FullName)
}

func TestInvocationFallback(t *testing.T) {
	assert.Equal(t, invocations[marshalZhao.FullName()], Invocation(marshalZhao.FullName()))
	assert.Equal(t, genericInvocation, Invocation("趙元帥"))
	assert.Equal(t, genericInvocation, Invocation(""))
}

func TestLunarInfo(t *testing.T) {
	got := LunarInfo(domain.Input{Year: 114, Month: 4, Day: 10, Hour: domain.BranchShen})
	assert.Equal(t, "民國 114年 (乙巳) 4月10日 申時", got)
}

func TestCelestialGenerals(t *testing.T) {
	assert.Len(t, CelestialGenerals, 36)
}

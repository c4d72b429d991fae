package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"shoulu/internal/domain"
)

func sampleResult() domain.Result {
	return DeriveInput(domain.Input{Year: 114, Month: 4, Day: 10, Hour: domain.BranchShen, Gender: domain.Male, Level: domain.LevelFirst})
}

func TestReportGeneralUsesPlaceholder(t *testing.T) {
	text := Report(sampleResult(), ReportOptions{Mode: ReportGeneral, CleanDuty: true})

	assert.True(t, strings.HasPrefix(text, "伏以\n"))
	assert.Contains(t, text, "弟子 "+DefaultNamePlaceholder+"，")
	assert.Contains(t, text, "職司「彤華府延慶仙宮，兼領知天曹罰惡司及「五雷院事」」")
	assert.Contains(t, text, "都天糾察大靈官王元帥")
	assert.True(t, strings.HasSuffix(text, closings[ReportGeneral]))
}

func TestReportCombat(t *testing.T) {
	text := Report(sampleResult(), ReportOptions{Name: " 張三 ", Mode: ReportCombat, Placeholder: "某某", ShortMarshals: true})

	assert.True(t, strings.HasPrefix(text, "謹召\n"))
	assert.Contains(t, text, "弟子 張三，")
	assert.NotContains(t, text, "某某")
	assert.Contains(t, text, "親率「王元帥」為前鋒，「溫元帥」為後應")
	assert.Contains(t, text, "一兼領「知天曹罰惡司」")
	assert.True(t, strings.HasSuffix(text, closings[ReportCombat]))
}

func TestReportUnknownModeFallsBackToGeneral(t *testing.T) {
	text := Report(sampleResult(), ReportOptions{Mode: "chant", Placeholder: "某某"})
	assert.True(t, strings.HasPrefix(text, "伏以"))
	assert.Contains(t, text, "弟子 某某，")
}

func TestModeForVocation(t *testing.T) {
	assert.Equal(t, ReportCombat, ModeForVocation(domain.VocationExorcism))
	assert.Equal(t, ReportGeneral, ModeForVocation(domain.VocationGeneral))
	assert.Equal(t, ReportGeneral, ModeForVocation(""))
}

func TestParseReportMode(t *testing.T) {
	for in, want := range map[string]ReportMode{"general": ReportGeneral, " Combat ": ReportCombat, "驅邪": ReportCombat, "祈福": ReportGeneral} {
		got, ok := ParseReportMode(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseReportMode("dance")
	assert.False(t, ok)
}

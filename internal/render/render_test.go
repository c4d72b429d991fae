package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"shoulu/internal/domain"
	"shoulu/internal/engine"
)

func TestCertificate(t *testing.T) {
	res := engine.DeriveInput(domain.Input{Year: 114, Month: 4, Day: 10, Hour: domain.BranchShen, Gender: domain.Male, Level: domain.LevelFirst})

	out := Certificate("張三", res)
	assert.Contains(t, out, "張三")
	assert.Contains(t, out, res.Title)
	assert.Contains(t, out, res.Marshal.FullName)
	assert.Contains(t, out, "一執「彤華府」、掌「延慶仙宮」")
	assert.Contains(t, out, engine.CelestialGenerals[35])

	assert.NotContains(t, Certificate("", res), "正一弟子")
}

func TestPersonnelTable(t *testing.T) {
	var buf bytes.Buffer
	PersonnelTable(&buf, nil)
	assert.Equal(t, EmptyRegistry+"\n", buf.String())

	buf.Reset()
	PersonnelTable(&buf, []domain.Record{{
		ID:        "rec-1",
		Name:      "張三",
		LunarInfo: "民國 114年 (乙巳) 4月10日 申時",
		Result:    domain.Result{Title: "暢玄五雷法師", Altar: "玄靈應妙壇", Marshal: domain.Marshal{Name: "王元帥"}},
	}})
	out := buf.String()
	assert.Contains(t, out, "rec-1")
	assert.Contains(t, out, "玄靈應妙壇 / 王元帥")
	assert.True(t, strings.Contains(out, "合計"))
}

func TestEventTable(t *testing.T) {
	var buf bytes.Buffer
	EventTable(&buf, []domain.Event{{ID: 7, Type: "personnel.add", EntityKind: "personnel", EntityID: "rec-1", ActorID: "tester", Payload: "{}"}})
	assert.Contains(t, buf.String(), "personnel:rec-1")
}

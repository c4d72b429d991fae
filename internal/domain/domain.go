package domain

import "strings"

type Stem string

const (
	StemJia  Stem = "甲"
	StemYi   Stem = "乙"
	StemBing Stem = "丙"
	StemDing Stem = "丁"
	StemWu   Stem = "戊"
	StemJi   Stem = "己"
	StemGeng Stem = "庚"
	StemXin  Stem = "辛"
	StemRen  Stem = "壬"
	StemGui  Stem = "癸"
)

// Stems is the ordered ten-term cycle.
var Stems = []Stem{StemJia, StemYi, StemBing, StemDing, StemWu, StemJi, StemGeng, StemXin, StemRen, StemGui}

type Branch string

const (
	BranchZi   Branch = "子"
	BranchChou Branch = "丑"
	BranchYin  Branch = "寅"
	BranchMao  Branch = "卯"
	BranchChen Branch = "辰"
	BranchSi   Branch = "巳"
	BranchWu   Branch = "午"
	BranchWei  Branch = "未"
	BranchShen Branch = "申"
	BranchYou  Branch = "酉"
	BranchXu   Branch = "戌"
	BranchHai  Branch = "亥"
)

// Branches is the ordered twelve-term cycle.
var Branches = []Branch{BranchZi, BranchChou, BranchYin, BranchMao, BranchChen, BranchSi, BranchWu, BranchWei, BranchShen, BranchYou, BranchXu, BranchHai}

// Index returns the position of b in Branches, or -1.
func (b Branch) Index() int {
	for i, v := range Branches {
		if v == b {
			return i
		}
	}
	return -1
}

// Yang reports whether b sits on an even position of the cycle (子寅辰午申戌).
func (b Branch) Yang() bool {
	i := b.Index()
	return i >= 0 && i%2 == 0
}

func (s Stem) Index() int {
	for i, v := range Stems {
		if v == s {
			return i
		}
	}
	return -1
}

type Gender string

const (
	Male   Gender = "男"
	Female Gender = "女"
)

var Genders = []Gender{Male, Female}

type Level string

const (
	LevelFirst     Level = "初授"
	LevelAugmented Level = "加授"
	LevelPromoted  Level = "晉授"
)

var Levels = []Level{LevelFirst, LevelAugmented, LevelPromoted}

type Vocation string

const (
	VocationGeneral  Vocation = "general"
	VocationExorcism Vocation = "exorcism"
)

var Vocations = []Vocation{VocationGeneral, VocationExorcism}

type Department string

const (
	DepartmentThunder  Department = "雷霆都司"
	DepartmentWindFire Department = "風火院"
)

// Sexagenary is one year of the sixty-term cycle.
type Sexagenary struct {
	Stem   Stem   `json:"stem"`
	Branch Branch `json:"branch"`
}

func (s Sexagenary) String() string { return string(s.Stem) + string(s.Branch) }

// ParseBranch accepts the branch character with or without a trailing 時.
func ParseBranch(v string) (Branch, bool) {
	v = strings.TrimSuffix(strings.TrimSpace(v), "時")
	for _, b := range Branches {
		if string(b) == v {
			return b, true
		}
	}
	return "", false
}

func ParseGender(v string) (Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "男", "m", "male", "乾", "乾造":
		return Male, true
	case "女", "f", "female", "坤", "坤造":
		return Female, true
	}
	return "", false
}

func ParseLevel(v string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "初授", "first":
		return LevelFirst, true
	case "加授", "augmented":
		return LevelAugmented, true
	case "晉授", "promoted":
		return LevelPromoted, true
	}
	return "", false
}

func ParseVocation(v string) (Vocation, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "general", "一般", "一般科儀":
		return VocationGeneral, true
	case "exorcism", "combat", "驅邪", "驅邪殺罰":
		return VocationExorcism, true
	}
	return "", false
}

package domain

import (
	"errors"
	"fmt"
)

// Republic-calendar years offered by the input surface.
const (
	MinYear = 1
	MaxYear = 120
)

var ErrInvalidInput = errors.New("invalid input")

// Input is the raw tuple entered for a disciple.
type Input struct {
	Year     int      `json:"year" minimum:"1" maximum:"120" doc:"Republic-calendar (民國) lunar year"`
	Month    int      `json:"month" minimum:"1" maximum:"12"`
	Day      int      `json:"day" minimum:"1" maximum:"30"`
	Hour     Branch   `json:"hour" enum:"子,丑,寅,卯,辰,巳,午,未,申,酉,戌,亥"`
	Gender   Gender   `json:"gender" enum:"男,女"`
	Level    Level    `json:"level" enum:"初授,加授,晉授"`
	Vocation Vocation `json:"vocation,omitempty" enum:"general,exorcism"`
}

// Validate checks every field against its enumeration. Day is not checked
// against the real month length.
func (in Input) Validate() error {
	if in.Year < MinYear || in.Year > MaxYear {
		return fmt.Errorf("%w: year %d outside %d..%d", ErrInvalidInput, in.Year, MinYear, MaxYear)
	}
	if in.Month < 1 || in.Month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidInput, in.Month)
	}
	if in.Day < 1 || in.Day > 30 {
		return fmt.Errorf("%w: day %d", ErrInvalidInput, in.Day)
	}
	if in.Hour.Index() < 0 {
		return fmt.Errorf("%w: hour branch %q", ErrInvalidInput, in.Hour)
	}
	if in.Gender != Male && in.Gender != Female {
		return fmt.Errorf("%w: gender %q", ErrInvalidInput, in.Gender)
	}
	if in.Level != LevelFirst && in.Level != LevelAugmented && in.Level != LevelPromoted {
		return fmt.Errorf("%w: level %q", ErrInvalidInput, in.Level)
	}
	if in.Vocation != VocationGeneral && in.Vocation != VocationExorcism {
		return fmt.Errorf("%w: vocation %q", ErrInvalidInput, in.Vocation)
	}
	return nil
}

// Normalize fills the optional vocation.
func (in Input) Normalize() Input {
	if in.Vocation == "" {
		in.Vocation = VocationGeneral
	}
	return in
}

// Params is the resolved tuple the derivation engine consumes.
type Params struct {
	Stem     Stem
	Branch   Branch
	Month    int
	Day      int
	Hour     Branch
	Gender   Gender
	Level    Level
	Vocation Vocation
}

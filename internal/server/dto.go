package server

import "shoulu/internal/domain"

// Request payloads

type ReportRequest struct {
	Input         domain.Input `json:"input"`
	Name          string       `json:"name,omitempty" doc:"Disciple name; blank uses the placeholder"`
	Mode          string       `json:"mode,omitempty" enum:"general,combat" doc:"Defaults to the configured mode, then to the vocation"`
	CleanDuty     *bool        `json:"clean_duty,omitempty"`
	ShortMarshals *bool        `json:"short_marshals,omitempty"`
}

type SavePersonnelRequest struct {
	Name  string       `json:"name,omitempty"`
	Input domain.Input `json:"input"`
}

// Response payloads

type SexagenaryResponse struct {
	Year   int    `json:"year"`
	Stem   string `json:"stem"`
	Branch string `json:"branch"`
	Name   string `json:"name" example:"乙巳"`
}

type ReportResponse struct {
	Mode string `json:"mode" enum:"general,combat"`
	Text string `json:"text"`
}

type PersonnelListResponse struct {
	Items []domain.Record `json:"items"`
	Count int             `json:"count"`
}

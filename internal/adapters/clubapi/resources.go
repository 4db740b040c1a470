package clubapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Partial API models for the admin surfaces the client consumes. Fields not
// used anywhere in this codebase are omitted.

// PersonSummary is the backend person model.
type PersonSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	CPF      string `json:"cpf,omitempty"`
	Email    string `json:"email,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

// AthleteSummary is the backend athlete model.
type AthleteSummary struct {
	ID                      string `json:"id"`
	PersonID                string `json:"person_id"`
	TeamID                  string `json:"team_id,omitempty"`
	MainDefensivePositionID string `json:"main_defensive_position_id,omitempty"`
	MainOffensivePositionID string `json:"main_offensive_position_id,omitempty"`
}

// TeamSummary is the backend team model.
type TeamSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Category       string `json:"category,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
}

// SeasonSummary is the backend season model.
type SeasonSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// OrganizationSummary is the backend organization model.
type OrganizationSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

// Competition is a scheduled competition entry.
type Competition struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Date     string `json:"date,omitempty"`
	Location string `json:"location,omitempty"`
}

// TrainingSession is one scheduled training.
type TrainingSession struct {
	ID       string `json:"id"`
	TeamID   string `json:"team_id"`
	Date     string `json:"date"`
	Focus    string `json:"focus,omitempty"`
	Duration int    `json:"duration_minutes,omitempty"`
}

// AttendanceRecord marks one athlete at one session.
type AttendanceRecord struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	AthleteID string `json:"athlete_id"`
	Present   bool   `json:"present"`
}

// WellnessEntry is an athlete's self-reported wellness check.
type WellnessEntry struct {
	ID        string `json:"id"`
	AthleteID string `json:"athlete_id"`
	Date      string `json:"date"`
	Sleep     int    `json:"sleep,omitempty"`
	Fatigue   int    `json:"fatigue,omitempty"`
	Soreness  int    `json:"soreness,omitempty"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
}

func list[T any](ctx context.Context, c *Client, resource string, limit, offset int) ([]T, error) {
	var resp listResponse[T]
	err := c.do(ctx, http.MethodGet, "api/"+resource+listQuery(limit, offset), nil, nil, &resp)
	return resp.Items, err
}

// ListPersons returns persons, paginated.
func (c *Client) ListPersons(ctx context.Context, limit, offset int) ([]PersonSummary, error) {
	return list[PersonSummary](ctx, c, "persons", limit, offset)
}

// GetPerson fetches one person by id.
func (c *Client) GetPerson(ctx context.Context, id string) (PersonSummary, error) {
	var p PersonSummary
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("api/persons/%s", url.PathEscape(id)), nil, nil, &p)
	return p, err
}

// SearchPersons finds persons by name fragment. Backs the autocomplete
// fields of the wizard.
func (c *Client) SearchPersons(ctx context.Context, query string, limit int) ([]PersonSummary, error) {
	endpoint := fmt.Sprintf("api/persons/search?q=%s&limit=%d", url.QueryEscape(query), limit)
	var resp listResponse[PersonSummary]
	err := c.do(ctx, http.MethodGet, endpoint, nil, nil, &resp)
	return resp.Items, err
}

// ListAthletes returns athletes, paginated.
func (c *Client) ListAthletes(ctx context.Context, limit, offset int) ([]AthleteSummary, error) {
	return list[AthleteSummary](ctx, c, "athletes", limit, offset)
}

// ListTeams returns teams, paginated.
func (c *Client) ListTeams(ctx context.Context, limit, offset int) ([]TeamSummary, error) {
	return list[TeamSummary](ctx, c, "teams", limit, offset)
}

// ListSeasons returns seasons, paginated.
func (c *Client) ListSeasons(ctx context.Context, limit, offset int) ([]SeasonSummary, error) {
	return list[SeasonSummary](ctx, c, "seasons", limit, offset)
}

// ListOrganizations returns organizations, paginated.
func (c *Client) ListOrganizations(ctx context.Context, limit, offset int) ([]OrganizationSummary, error) {
	return list[OrganizationSummary](ctx, c, "organizations", limit, offset)
}

// ListCompetitions returns competitions, paginated.
func (c *Client) ListCompetitions(ctx context.Context, limit, offset int) ([]Competition, error) {
	return list[Competition](ctx, c, "competitions", limit, offset)
}

// ListTrainingSessions returns a team's training sessions.
func (c *Client) ListTrainingSessions(ctx context.Context, teamID string, limit, offset int) ([]TrainingSession, error) {
	endpoint := fmt.Sprintf("api/teams/%s/training-sessions%s", url.PathEscape(teamID), listQuery(limit, offset))
	var resp listResponse[TrainingSession]
	err := c.do(ctx, http.MethodGet, endpoint, nil, nil, &resp)
	return resp.Items, err
}

// RecordAttendance posts one attendance mark for a session.
func (c *Client) RecordAttendance(ctx context.Context, rec AttendanceRecord) (AttendanceRecord, error) {
	endpoint := fmt.Sprintf("api/training-sessions/%s/attendance", url.PathEscape(rec.SessionID))
	var out AttendanceRecord
	err := c.do(ctx, http.MethodPost, endpoint, nil, rec, &out)
	return out, err
}

// SubmitWellness posts one wellness self-report.
func (c *Client) SubmitWellness(ctx context.Context, entry WellnessEntry) (WellnessEntry, error) {
	var out WellnessEntry
	err := c.do(ctx, http.MethodPost, "api/wellness", nil, entry, &out)
	return out, err
}

package intake

import (
	"errors"
	"strings"
)

// Flow discriminator constants.
const (
	FlowStaff = "staff"
	FlowUser  = "user"
)

// Staff choice constants (which single entity a staff flow creates).
const (
	StaffChoiceSeason       = "season"
	StaffChoiceOrganization = "organization"
	StaffChoiceTeam         = "team"
)

// User role constants. Values are the backend's canonical identifiers.
const (
	RoleAthlete     = "atleta"
	RoleCoach       = "treinador"
	RoleCoordinator = "coordenador"
	RoleDirector    = "dirigente"
)

// Domain errors
var (
	ErrInvalidFlowType    = errors.New("flow type must be 'staff' or 'user'")
	ErrInvalidStaffChoice = errors.New("staff choice must be 'season', 'organization' or 'team'")
	ErrInvalidUserRole    = errors.New("user role is not recognized")
	ErrSectionMismatch    = errors.New("section is not consistent with the selected flow")
)

// FormDocument is the single mutable tree the wizard operates on. Sections
// are nil until the corresponding step has been engaged.
type FormDocument struct {
	FlowType    string `json:"flow_type,omitempty"`
	StaffChoice string `json:"staff_choice,omitempty"`
	UserRole    string `json:"user_role,omitempty"`

	Person       *Person       `json:"person,omitempty"`
	User         *User         `json:"user,omitempty"`
	Season       *Season       `json:"season,omitempty"`
	Organization *Organization `json:"organization,omitempty"`
	Team         *Team         `json:"team,omitempty"`
	Athlete      *Athlete      `json:"athlete,omitempty"`
	Registration *Registration `json:"registration,omitempty"`
}

// Person holds the personal-data section.
type Person struct {
	FullName  string  `json:"full_name,omitempty"`
	BirthDate string  `json:"birth_date,omitempty"`
	CPF       string  `json:"cpf,omitempty"`
	RG        string  `json:"rg,omitempty"`
	Email     string  `json:"email,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Address   Address `json:"address"`
	Media     Media   `json:"media"`
}

// Address holds the postal-code driven address block.
type Address struct {
	CEP          string `json:"cep,omitempty"`
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
}

// Media holds person media references. ProfilePhotoURL may hold an inline
// data URI until the submission pipeline swaps it for a remote URL.
type Media struct {
	ProfilePhotoURL string `json:"profile_photo_url,omitempty"`
}

// User holds the account-creation section of the user flow.
type User struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

// Season holds the staff season-creation section.
type Season struct {
	Name      string `json:"name,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// Organization holds the staff organization-creation section.
type Organization struct {
	Name  string   `json:"name,omitempty"`
	Media OrgMedia `json:"media"`
}

// OrgMedia holds organization media references, same inline-URI convention
// as person media.
type OrgMedia struct {
	LogoURL string `json:"logo_url,omitempty"`
}

// Team holds the staff team-creation section.
type Team struct {
	Name           string `json:"name,omitempty"`
	Category       string `json:"category,omitempty"`
	Gender         string `json:"gender,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
}

// Athlete holds athlete-specific fields of the user flow.
type Athlete struct {
	MainDefensivePositionID      string `json:"main_defensive_position_id,omitempty"`
	MainOffensivePositionID      string `json:"main_offensive_position_id,omitempty"`
	SecondaryOffensivePositionID string `json:"secondary_offensive_position_id,omitempty"`
	JerseyNumber                 string `json:"jersey_number,omitempty"`
}

// Registration ties the person to a season/organization and carries the
// training-focus distribution.
type Registration struct {
	SeasonID       string         `json:"season_id,omitempty"`
	OrganizationID string         `json:"organization_id,omitempty"`
	Focus          map[string]int `json:"focus,omitempty"`
}

// Receipt is the backend's acknowledgement of a persisted submission.
type Receipt struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}

// UploadTicket is a signed, time-limited authorization to upload one file
// directly to the external media host.
type UploadTicket struct {
	UploadURL string `json:"upload_url"`
	APIKey    string `json:"api_key"`
	Timestamp int64  `json:"timestamp"`
	Folder    string `json:"folder"`
	Signature string `json:"signature"`
}

// Validate checks discriminator values and section/discriminator consistency.
// PRE: document may be partially filled
// POST: Returns nil if discriminators are valid and no section contradicts them
func (d *FormDocument) Validate() error {
	switch d.FlowType {
	case "", FlowStaff, FlowUser:
	default:
		return ErrInvalidFlowType
	}
	switch d.StaffChoice {
	case "", StaffChoiceSeason, StaffChoiceOrganization, StaffChoiceTeam:
	default:
		return ErrInvalidStaffChoice
	}
	switch d.UserRole {
	case "", RoleAthlete, RoleCoach, RoleCoordinator, RoleDirector:
	default:
		return ErrInvalidUserRole
	}
	if d.Athlete != nil && !(d.FlowType == FlowUser && d.UserRole == RoleAthlete) {
		return ErrSectionMismatch
	}
	if d.User != nil && d.FlowType == FlowStaff {
		return ErrSectionMismatch
	}
	return nil
}

// Clone returns a deep copy of the document. Hosts receive snapshots, never
// the controller's own tree.
func (d FormDocument) Clone() FormDocument {
	out := d
	if d.Person != nil {
		p := *d.Person
		out.Person = &p
	}
	if d.User != nil {
		u := *d.User
		out.User = &u
	}
	if d.Season != nil {
		s := *d.Season
		out.Season = &s
	}
	if d.Organization != nil {
		o := *d.Organization
		out.Organization = &o
	}
	if d.Team != nil {
		t := *d.Team
		out.Team = &t
	}
	if d.Athlete != nil {
		a := *d.Athlete
		out.Athlete = &a
	}
	if d.Registration != nil {
		r := *d.Registration
		if d.Registration.Focus != nil {
			r.Focus = make(map[string]int, len(d.Registration.Focus))
			for k, v := range d.Registration.Focus {
				r.Focus[k] = v
			}
		}
		out.Registration = &r
	}
	return out
}

// IsInlineImage reports whether a media field value holds inline-encoded
// image bytes rather than a remote URL.
func IsInlineImage(value string) bool {
	return strings.HasPrefix(value, "data:")
}

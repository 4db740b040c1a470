package intake

import (
	"fmt"
	"sort"
)

// Dotted field paths are the document's public addressing scheme: step
// descriptors declare them, validation errors are keyed by them, and hosts
// mutate fields through them.

type fieldAccessor struct {
	get func(*FormDocument) string
	set func(*FormDocument, string)
}

func (d *FormDocument) person() *Person {
	if d.Person == nil {
		d.Person = &Person{}
	}
	return d.Person
}

func (d *FormDocument) user() *User {
	if d.User == nil {
		d.User = &User{}
	}
	return d.User
}

func (d *FormDocument) season() *Season {
	if d.Season == nil {
		d.Season = &Season{}
	}
	return d.Season
}

func (d *FormDocument) organization() *Organization {
	if d.Organization == nil {
		d.Organization = &Organization{}
	}
	return d.Organization
}

func (d *FormDocument) team() *Team {
	if d.Team == nil {
		d.Team = &Team{}
	}
	return d.Team
}

func (d *FormDocument) athlete() *Athlete {
	if d.Athlete == nil {
		d.Athlete = &Athlete{}
	}
	return d.Athlete
}

func (d *FormDocument) registration() *Registration {
	if d.Registration == nil {
		d.Registration = &Registration{}
	}
	return d.Registration
}

// Getters read through nil sections; setters engage the section on first write.
var fieldAccessors = map[string]fieldAccessor{
	"flow_type": {
		get: func(d *FormDocument) string { return d.FlowType },
		set: func(d *FormDocument, v string) { d.FlowType = v },
	},
	"staff_choice": {
		get: func(d *FormDocument) string { return d.StaffChoice },
		set: func(d *FormDocument, v string) { d.StaffChoice = v },
	},
	"user_role": {
		get: func(d *FormDocument) string { return d.UserRole },
		set: func(d *FormDocument, v string) { d.UserRole = v },
	},
	"person.full_name": {
		get: func(d *FormDocument) string {
			if d.Person == nil {
				return ""
			}
			return d.Person.FullName
		},
		set: func(d *FormDocument, v string) { d.person().FullName = v },
	},
	"person.birth_date": {
		get: func(d *FormDocument) string {
			if d.Person == nil {
				return ""
			}
			return d.Person.BirthDate
		},
		set: func(d *FormDocument, v string) { d.person().BirthDate = v },
	},
	"person.cpf": {
		get: func(d *FormDocument) string {
			if d.Person == nil {
				return ""
			}
			return d.Person.CPF
		},
		set: func(d *FormDocument, v string) { d.person().CPF = v },
	},
	"person.rg": {
		get: func(d *FormDocument) string {
			if d.Person == nil {
				return ""
			}
			return d.Person.RG
		},
		set: func(d *FormDocument, v string) { d.person().RG = v },
	},
	"person.email": {
		get: func(d *FormDocument) string {
			if d.Person == nil {
				return ""
			}
			return d.Person.Email
		},
		set: func(d *FormDocument, v string) { d.person().Email = v },
	},
	"person.phone": {
		get: func(d *FormDocument) string {
			if d.Person == nil {
				return ""
			}
			return d.Person.Phone
		},
		set: func(d *FormDocument, v string) { d.person().Phone = v },
	},
	"person.address.cep": {
		get: func(d *FormDocument) string {
			if d.Person == nil {
				return ""
			}
			return d.Person.Address.CEP
		},
		set: func(d *FormDocument, v string) { d.person().Address.CEP = v },
	},
	"person.address.street": {
		get: func(d *FormDocument) string {
			if d.Person == nil {
				return ""
			}
			return d.Person.Address.Street
		},
		set: func(d *FormDocument, v string) { d.person().Address.Street = v },
	},
	"person.address.number": {
		get: func(d *FormDocument) string {
			if d.Person == nil {
				return ""
			}
			return d.Person.Address.Number
		},
		set: func(d *FormDocument, v string) { d.person().Address.Number = v },
	},
	"person.address.neighborhood": {
		get: func(d *FormDocument) string {
			if d.Person == nil {
				return ""
			}
			return d.Person.Address.Neighborhood
		},
		set: func(d *FormDocument, v string) { d.person().Address.Neighborhood = v },
	},
	"person.address.city": {
		get: func(d *FormDocument) string {
			if d.Person == nil {
				return ""
			}
			return d.Person.Address.City
		},
		set: func(d *FormDocument, v string) { d.person().Address.City = v },
	},
	"person.address.state": {
		get: func(d *FormDocument) string {
			if d.Person == nil {
				return ""
			}
			return d.Person.Address.State
		},
		set: func(d *FormDocument, v string) { d.person().Address.State = v },
	},
	"person.media.profile_photo_url": {
		get: func(d *FormDocument) string {
			if d.Person == nil {
				return ""
			}
			return d.Person.Media.ProfilePhotoURL
		},
		set: func(d *FormDocument, v string) { d.person().Media.ProfilePhotoURL = v },
	},
	"user.email": {
		get: func(d *FormDocument) string {
			if d.User == nil {
				return ""
			}
			return d.User.Email
		},
		set: func(d *FormDocument, v string) { d.user().Email = v },
	},
	"user.password": {
		get: func(d *FormDocument) string {
			if d.User == nil {
				return ""
			}
			return d.User.Password
		},
		set: func(d *FormDocument, v string) { d.user().Password = v },
	},
	"season.name": {
		get: func(d *FormDocument) string {
			if d.Season == nil {
				return ""
			}
			return d.Season.Name
		},
		set: func(d *FormDocument, v string) { d.season().Name = v },
	},
	"season.start_date": {
		get: func(d *FormDocument) string {
			if d.Season == nil {
				return ""
			}
			return d.Season.StartDate
		},
		set: func(d *FormDocument, v string) { d.season().StartDate = v },
	},
	"season.end_date": {
		get: func(d *FormDocument) string {
			if d.Season == nil {
				return ""
			}
			return d.Season.EndDate
		},
		set: func(d *FormDocument, v string) { d.season().EndDate = v },
	},
	"organization.name": {
		get: func(d *FormDocument) string {
			if d.Organization == nil {
				return ""
			}
			return d.Organization.Name
		},
		set: func(d *FormDocument, v string) { d.organization().Name = v },
	},
	"organization.media.logo_url": {
		get: func(d *FormDocument) string {
			if d.Organization == nil {
				return ""
			}
			return d.Organization.Media.LogoURL
		},
		set: func(d *FormDocument, v string) { d.organization().Media.LogoURL = v },
	},
	"team.name": {
		get: func(d *FormDocument) string {
			if d.Team == nil {
				return ""
			}
			return d.Team.Name
		},
		set: func(d *FormDocument, v string) { d.team().Name = v },
	},
	"team.category": {
		get: func(d *FormDocument) string {
			if d.Team == nil {
				return ""
			}
			return d.Team.Category
		},
		set: func(d *FormDocument, v string) { d.team().Category = v },
	},
	"team.gender": {
		get: func(d *FormDocument) string {
			if d.Team == nil {
				return ""
			}
			return d.Team.Gender
		},
		set: func(d *FormDocument, v string) { d.team().Gender = v },
	},
	"team.organization_id": {
		get: func(d *FormDocument) string {
			if d.Team == nil {
				return ""
			}
			return d.Team.OrganizationID
		},
		set: func(d *FormDocument, v string) { d.team().OrganizationID = v },
	},
	"athlete.main_defensive_position_id": {
		get: func(d *FormDocument) string {
			if d.Athlete == nil {
				return ""
			}
			return d.Athlete.MainDefensivePositionID
		},
		set: func(d *FormDocument, v string) { d.athlete().MainDefensivePositionID = v },
	},
	"athlete.main_offensive_position_id": {
		get: func(d *FormDocument) string {
			if d.Athlete == nil {
				return ""
			}
			return d.Athlete.MainOffensivePositionID
		},
		set: func(d *FormDocument, v string) { d.athlete().MainOffensivePositionID = v },
	},
	"athlete.secondary_offensive_position_id": {
		get: func(d *FormDocument) string {
			if d.Athlete == nil {
				return ""
			}
			return d.Athlete.SecondaryOffensivePositionID
		},
		set: func(d *FormDocument, v string) { d.athlete().SecondaryOffensivePositionID = v },
	},
	"athlete.jersey_number": {
		get: func(d *FormDocument) string {
			if d.Athlete == nil {
				return ""
			}
			return d.Athlete.JerseyNumber
		},
		set: func(d *FormDocument, v string) { d.athlete().JerseyNumber = v },
	},
	"registration.season_id": {
		get: func(d *FormDocument) string {
			if d.Registration == nil {
				return ""
			}
			return d.Registration.SeasonID
		},
		set: func(d *FormDocument, v string) { d.registration().SeasonID = v },
	},
	"registration.organization_id": {
		get: func(d *FormDocument) string {
			if d.Registration == nil {
				return ""
			}
			return d.Registration.OrganizationID
		},
		set: func(d *FormDocument, v string) { d.registration().OrganizationID = v },
	},
}

// Field reads the value at a dotted path.
// PRE: path is one of KnownPaths
// POST: Returns "" for an engaged-but-empty or not-yet-engaged section field
func (d *FormDocument) Field(path string) (string, error) {
	acc, ok := fieldAccessors[path]
	if !ok {
		return "", fmt.Errorf("unknown field path %q", path)
	}
	return acc.get(d), nil
}

// SetField writes the value at a dotted path, engaging the owning section.
// PRE: path is one of KnownPaths
// POST: Field holds value; the owning section is non-nil
func (d *FormDocument) SetField(path, value string) error {
	acc, ok := fieldAccessors[path]
	if !ok {
		return fmt.Errorf("unknown field path %q", path)
	}
	acc.set(d, value)
	return nil
}

// KnownPaths returns every addressable field path, sorted.
func KnownPaths() []string {
	paths := make([]string, 0, len(fieldAccessors))
	for p := range fieldAccessors {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

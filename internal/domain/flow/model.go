// Package flow declares the wizard's step descriptors and resolves which
// ordered step list is active for a given document.
package flow

// Step ids. One id per logical wizard page; ids are stable across variants.
const (
	StepFlowChooser  = "flow"
	StepStaffChoice  = "staff-choice"
	StepRole         = "role"
	StepAffiliation  = "affiliation"
	StepPersonalData = "personal"
	StepAthlete      = "athlete"
	StepAccount      = "account"
	StepSeason       = "season"
	StepOrganization = "organization"
	StepTeam         = "team"
	StepReview       = "review"
)

// StepDescriptor declares one wizard page: which document paths must
// validate before the wizard may advance past it. Immutable once defined.
type StepDescriptor struct {
	ID          string
	Label       string
	Description string // markdown, rendered by DescriptionHTML for hosts
	Fields      []string
}

var stepCatalog = map[string]StepDescriptor{
	StepFlowChooser: {
		ID:          StepFlowChooser,
		Label:       "Tipo de cadastro",
		Description: "Escolha **como** você quer começar: acesso de equipe (staff) ou cadastro individual.",
		Fields:      []string{"flow_type"},
	},
	StepStaffChoice: {
		ID:          StepStaffChoice,
		Label:       "O que criar",
		Description: "Selecione o que a equipe vai criar: **temporada**, **organização** ou **time**.",
		Fields:      []string{"staff_choice"},
	},
	StepRole: {
		ID:          StepRole,
		Label:       "Seu papel",
		Description: "Informe seu papel no clube: *atleta*, *treinador*, *coordenador* ou *dirigente*.",
		Fields:      []string{"user_role"},
	},
	StepAffiliation: {
		ID:          StepAffiliation,
		Label:       "Temporada e organização",
		Description: "Vincule o cadastro a uma temporada e a uma organização existentes.",
		Fields: []string{
			"registration.season_id",
			"registration.organization_id",
		},
	},
	StepPersonalData: {
		ID:          StepPersonalData,
		Label:       "Dados pessoais",
		Description: "Preencha os dados pessoais. O CEP busca o endereço automaticamente.",
		Fields: []string{
			"person.full_name",
			"person.birth_date",
			"person.cpf",
			"person.rg",
			"person.email",
			"person.phone",
			"person.address.cep",
			"person.address.street",
			"person.address.city",
			"person.address.state",
		},
	},
	StepAthlete: {
		ID:          StepAthlete,
		Label:       "Posições",
		Description: "Posições em quadra. **Goleiros** não informam posição ofensiva.",
		Fields: []string{
			"athlete.main_defensive_position_id",
			"athlete.main_offensive_position_id",
			"athlete.secondary_offensive_position_id",
		},
	},
	StepAccount: {
		ID:          StepAccount,
		Label:       "Conta de acesso",
		Description: "Crie a conta de acesso ao sistema.",
		Fields: []string{
			"user.email",
			"user.password",
		},
	},
	StepSeason: {
		ID:          StepSeason,
		Label:       "Nova temporada",
		Description: "Dados da temporada a criar.",
		Fields: []string{
			"season.name",
			"season.start_date",
			"season.end_date",
		},
	},
	StepOrganization: {
		ID:          StepOrganization,
		Label:       "Nova organização",
		Description: "Dados da organização a criar.",
		Fields:      []string{"organization.name"},
	},
	StepTeam: {
		ID:          StepTeam,
		Label:       "Novo time",
		Description: "Dados do time a criar.",
		Fields: []string{
			"team.name",
			"team.category",
		},
	},
	StepReview: {
		ID:          StepReview,
		Label:       "Revisão",
		Description: "Confira tudo antes de enviar. Cada seção pode ser editada daqui.",
		Fields:      []string{},
	},
}

// Step returns the catalog descriptor for an id.
func Step(id string) (StepDescriptor, bool) {
	s, ok := stepCatalog[id]
	return s, ok
}

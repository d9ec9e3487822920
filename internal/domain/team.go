package domain

// Team is one project team reference.
type Team struct {
	ID          string
	Name        string
	Description string
	ProjectName string
	ProjectID   string
	URL         string
}

// TeamQuery captures one team-listing request for a project.
type TeamQuery struct {
	Project string
	Mine    bool
	Top     int
	Skip    int
}

// MemberQuery captures one team-member listing request.
type MemberQuery struct {
	Project string
	Team    string
	Top     int
	Skip    int
}

// Package domain defines the organization directory types shared by the
// service layer and its adapters.
package domain

import "time"

// Project is one organization project reference.
type Project struct {
	ID             string
	Name           string
	Description    string
	State          string
	Visibility     string
	LastUpdateTime time.Time
	URL            string
}

// ProjectQuery captures one project-listing request.
//
// NameFilter is applied client-side by the service after the fetch; the
// remaining fields map onto the backing API's server-side paging.
type ProjectQuery struct {
	NameFilter        string
	StateFilter       string
	Top               int
	Skip              int
	ContinuationToken string
}

// ProjectPage is one page of project references plus the continuation token
// for the next page, when the backing API reports one.
type ProjectPage struct {
	Projects          []Project
	ContinuationToken string
}

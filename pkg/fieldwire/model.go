package fieldwire

import "time"

// Project is one project visible to the account.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// apiTask is the wire shape of a task row.
type apiTask struct {
	ID             string    `json:"id"`
	SequenceNumber int       `json:"sequence_number"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"created_at"`
	StatusID       string    `json:"status_id"`
	TeamID         string    `json:"team_id"`
}

// apiTeam is the wire shape of a team (category) row.
type apiTeam struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Handle string `json:"handle"`
}

// apiStatus is the wire shape of a task status attribute.
type apiStatus struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// projectAttributes is the subset of the project attributes payload we use.
type projectAttributes struct {
	Statuses []apiStatus `json:"statuses"`
}

// tokenResponse is the JWT exchange response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

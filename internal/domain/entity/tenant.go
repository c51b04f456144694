package entity

import "time"

// Tenant is a company account sharing the deployment. Each tenant isolates
// its users, challenges and analytics from every other tenant.
// Tenants are created out-of-band (cmd/seed); there is no API to mutate them.
type Tenant struct {
	ID        string
	Domain    string // unique, matched case-sensitively
	Name      string
	CreatedAt time.Time
}

package model

// Environment identifies the deployment environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentStaging     Environment = "staging"
	EnvironmentProduction  Environment = "production"
)

// Scope carries the identity of the user a request acts on behalf of.
type Scope struct {
	UserID   string
	Username string
}

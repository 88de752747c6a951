package types

const (
	GraphQLPath = "/graphql"
	APIPrefix   = "/api"
	HealthPath  = "/health"
	MetricsPath = "/metrics"
)

var (
	// CORS allows any origin; these are the methods and headers a GraphQL
	// client sends.
	AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	AllowedHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
)

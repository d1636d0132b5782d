package platform

// Config holds configuration for the destination platform API.
type Config struct {
	// BaseURL is the root URL of the platform's REST API.
	BaseURL string `mapstructure:"base_url" default:"http://localhost:8090/api/v2"`
	// AccessToken is the bearer token used for authentication.
	AccessToken string `mapstructure:"access_token" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

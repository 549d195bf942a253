package cms

// Config holds the headless CMS connection settings.
type Config struct {
	ProjectID  string `env:"CMS_PROJECT_ID,required"`
	Dataset    string `env:"CMS_DATASET" envDefault:"production"`
	APIVersion string `env:"CMS_API_VERSION" envDefault:"2025-06-13"`
	Token      string `env:"CMS_TOKEN"`
	// UseCDN switches reads to the CDN-backed API host. Keep it off when
	// drafts must be visible immediately after publishing.
	UseCDN bool `env:"CMS_USE_CDN" envDefault:"false"`
}

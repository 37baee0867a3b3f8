package company

// Info describes the company running the portal. It is read from
// configuration at startup.
type Info struct {
	Name         string
	Description  string
	Email        string
	Phone        string
	Address      string
	LogoURL      string
	BannerURL    string
	FacebookURL  string
	LinkedInURL  string
	TwitterURL   string
	InstagramURL string
}

package dto

type ApplicantDashboardResponse struct {
	Applications        []ApplicationResponse  `json:"applications"`
	TotalApplications   int                    `json:"total_applications"`
	InterviewCount      int                    `json:"interview_count"`
	UnreadNotifications []NotificationResponse `json:"unread_notifications"`
}

type PosterDashboardResponse struct {
	Jobs               []JobResponse `json:"jobs"`
	TotalJobs          int           `json:"total_jobs"`
	TotalApplications  int           `json:"total_applications"`
	RecentApplications int           `json:"recent_applications"`
}

type CompanyResponse struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	LogoURL      string `json:"logo_url"`
	BannerURL    string `json:"banner_url"`
	FacebookURL  string `json:"facebook_url"`
	LinkedInURL  string `json:"linkedin_url"`
	TwitterURL   string `json:"twitter_url"`
	InstagramURL string `json:"instagram_url"`
}

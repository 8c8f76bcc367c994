package classify

// Capture payloads. These are the logical contracts of the capture entry
// points; the HTTP layer decodes request bodies straight into them.

// WebsiteVisit is one page view on the marketing or product site.
type WebsiteVisit struct {
	PageURL           string            `json:"page_url"`
	TimeOnPageSeconds float64           `json:"time_on_page_seconds"`
	Interactions      []string          `json:"interactions"`
	Referrer          string            `json:"referrer,omitempty"`
	UTM               map[string]string `json:"utm,omitempty"`
}

// RepositoryActivity is a batch of code-repository interactions for one
// account handle.
type RepositoryActivity struct {
	AccountHandle string   `json:"account_handle"`
	Starred       []string `json:"starred"`
	Forked        []string `json:"forked"`
	Commits       int      `json:"commits"`
	IssuesOpened  []string `json:"issues_opened"`
	PullRequests  []string `json:"pull_requests"`
	Organizations []string `json:"organizations"`
}

// DocumentationView is one documentation page view.
type DocumentationView struct {
	DocPath          string   `json:"doc_path"`
	TimeSpentSeconds float64  `json:"time_spent_seconds"`
	ScrollDepth      float64  `json:"scroll_depth"`
	SearchQueries    []string `json:"search_queries"`
	DownloadedAssets []string `json:"downloaded_assets"`
}

// CommunityActivity is a batch of forum/chat/event activity.
type CommunityActivity struct {
	ForumPosts      int      `json:"forum_posts"`
	QuestionsAsked  []string `json:"questions_asked"`
	AnswersProvided []string `json:"answers_provided"`
	ChatMessages    int      `json:"chat_messages"`
	Discussions     []string `json:"discussions"`
	EventsAttended  []string `json:"events_attended"`
	HelpRequests    []string `json:"help_requests"`
}

// ContentEngagement is a batch of marketing-content touches.
type ContentEngagement struct {
	BlogPostsRead         []string           `json:"blog_posts_read"`
	CaseStudiesViewed     []string           `json:"case_studies_viewed"`
	WhitepapersDownloaded []string           `json:"whitepapers_downloaded"`
	WebinarsAttended      []string           `json:"webinars_attended"`
	VideoWatchTime        map[string]float64 `json:"video_watch_time"`
	EmailOpens            []string           `json:"email_opens"`
	EmailClicks           []string           `json:"email_clicks"`
}

// CompetitiveActivity is a batch of competitor-related research behavior.
type CompetitiveActivity struct {
	CompetitorSitesVisited    []string `json:"competitor_sites_visited"`
	CompetitorContentConsumed []string `json:"competitor_content_consumed"`
	ComparisonSearches        []string `json:"comparison_searches"`
	VendorEvalContent         []string `json:"vendor_eval_content"`
	RFPSignals                []string `json:"rfp_signals"`
}

// Package models defines the typed views over a tenant's key/value settings.
package models

// Alias mapping modes for the URL mapping settings.
const (
	MappingCanonicalURL = "CANONICALURL"
	MappingRedirect     = "REDIRECT"
	MappingNone         = "NONE"
)

// ValidMappingMode reports whether mode is one of the supported alias
// mapping modes.
func ValidMappingMode(mode string) bool {
	switch mode {
	case MappingCanonicalURL, MappingRedirect, MappingNone:
		return true
	}
	return false
}

// Site holds the basic site metadata settings.
type Site struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
	FooterText  string `json:"footer_text"`
	TimeZone    string `json:"time_zone"`
	LogoFile    string `json:"logo_file"`
	FaviconFile string `json:"favicon_file"`
	IconSet     string `json:"icon_set"`
}

// DefaultPages binds the tenant's well-known pages.
type DefaultPages struct {
	SplashPageID    int    `json:"splash_page_id"`
	HomePageID      int    `json:"home_page_id"`
	LoginPageID     int    `json:"login_page_id"`
	RegisterPageID  int    `json:"register_page_id"`
	UserPageID      int    `json:"user_page_id"`
	SearchPageID    int    `json:"search_page_id"`
	Custom404PageID int    `json:"custom_404_page_id"`
	Custom500PageID int    `json:"custom_500_page_id"`
	PageHeadText    string `json:"page_head_text"`
}

// Messaging holds the private-messaging toggles.
type Messaging struct {
	DisablePrivateMessage bool `json:"disable_private_message"`
	ThrottlingInterval    int  `json:"throttling_interval"`
	RecipientLimit        int  `json:"recipient_limit"`
	AllowAttachments      bool `json:"allow_attachments"`
	IncludeAttachments    bool `json:"include_attachments"`
	ProfanityFilters      bool `json:"profanity_filters"`
	SendEmail             bool `json:"send_email"`
}

// Profile holds the profile-surface settings distinct from the field
// registry.
type Profile struct {
	RedirectOldProfileURL bool   `json:"redirect_old_profile_url"`
	VanityURLPrefix       string `json:"vanity_url_prefix"`
	DefaultVisibility     int    `json:"default_visibility"`
	DisplayVisibility     bool   `json:"display_visibility"`
}

// URLMapping controls how secondary aliases are treated by the request
// pipeline. Altering it is a privileged operation.
type URLMapping struct {
	AliasMappingMode string `json:"alias_mapping_mode"`
	AutoAddAlias     bool   `json:"auto_add_alias"`
}

// Search exposes the basic search tuning values.
type Search struct {
	MinWordLength        int  `json:"min_word_length"`
	MaxWordLength        int  `json:"max_word_length"`
	AllowLeadingWildcard bool `json:"allow_leading_wildcard"`
	TitleBoost           int  `json:"title_boost"`
	TagBoost             int  `json:"tag_boost"`
	ContentBoost         int  `json:"content_boost"`
	DescriptionBoost     int  `json:"description_boost"`
	AuthorBoost          int  `json:"author_boost"`
}

// DefaultSearch returns the stock search tuning values.
func DefaultSearch() Search {
	return Search{
		MinWordLength:    3,
		MaxWordLength:    255,
		TitleBoost:       50,
		TagBoost:         40,
		ContentBoost:     35,
		DescriptionBoost: 20,
		AuthorBoost:      15,
	}
}

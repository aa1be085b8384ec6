// Package service exposes typed accessors over the per-tenant key/value
// settings bag. Reads fill missing keys with defaults; writes persist only
// the section's keys and invalidate the downstream settings cache.
package service

import (
	"context"
	"log/slog"
	"strconv"

	"siteadmin/internal/platform/metrics"
	"siteadmin/internal/settings/cache"
	"siteadmin/internal/settings/models"
	id "siteadmin/pkg/domain"
	dErrors "siteadmin/pkg/domain-errors"
	"siteadmin/pkg/requestcontext"
)

// Store is the durable settings bag. GetAll returns an empty bag for an
// unknown tenant; Save upserts a batch atomically.
type Store interface {
	GetAll(ctx context.Context, tenantID id.TenantID) (map[string]string, error)
	Save(ctx context.Context, tenantID id.TenantID, values map[string]string) error
}

type Service struct {
	store   Store
	cache   cache.Invalidator
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithCache sets the downstream cache invalidator.
func WithCache(c cache.Invalidator) Option {
	return func(s *Service) { s.cache = c }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		cache:  cache.Noop{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Site(ctx context.Context, tenantID id.TenantID) (models.Site, error) {
	b, err := s.load(ctx, tenantID)
	if err != nil {
		return models.Site{}, err
	}
	return models.Site{
		Name:        b.str("site.name", ""),
		Description: b.str("site.description", ""),
		Keywords:    b.str("site.keywords", ""),
		FooterText:  b.str("site.footer_text", ""),
		TimeZone:    b.str("site.time_zone", "UTC"),
		LogoFile:    b.str("site.logo_file", ""),
		FaviconFile: b.str("site.favicon_file", ""),
		IconSet:     b.str("site.icon_set", "Sigma"),
	}, nil
}

func (s *Service) SaveSite(ctx context.Context, tenantID id.TenantID, in models.Site) error {
	return s.save(ctx, tenantID, "site", map[string]string{
		"site.name":         in.Name,
		"site.description":  in.Description,
		"site.keywords":     in.Keywords,
		"site.footer_text":  in.FooterText,
		"site.time_zone":    in.TimeZone,
		"site.logo_file":    in.LogoFile,
		"site.favicon_file": in.FaviconFile,
		"site.icon_set":     in.IconSet,
	})
}

func (s *Service) DefaultPages(ctx context.Context, tenantID id.TenantID) (models.DefaultPages, error) {
	b, err := s.load(ctx, tenantID)
	if err != nil {
		return models.DefaultPages{}, err
	}
	return models.DefaultPages{
		SplashPageID:    b.num("pages.splash", 0),
		HomePageID:      b.num("pages.home", 0),
		LoginPageID:     b.num("pages.login", 0),
		RegisterPageID:  b.num("pages.register", 0),
		UserPageID:      b.num("pages.user", 0),
		SearchPageID:    b.num("pages.search", 0),
		Custom404PageID: b.num("pages.custom_404", 0),
		Custom500PageID: b.num("pages.custom_500", 0),
		PageHeadText:    b.str("pages.head_text", ""),
	}, nil
}

func (s *Service) SaveDefaultPages(ctx context.Context, tenantID id.TenantID, in models.DefaultPages) error {
	return s.save(ctx, tenantID, "default_pages", map[string]string{
		"pages.splash":     strconv.Itoa(in.SplashPageID),
		"pages.home":       strconv.Itoa(in.HomePageID),
		"pages.login":      strconv.Itoa(in.LoginPageID),
		"pages.register":   strconv.Itoa(in.RegisterPageID),
		"pages.user":       strconv.Itoa(in.UserPageID),
		"pages.search":     strconv.Itoa(in.SearchPageID),
		"pages.custom_404": strconv.Itoa(in.Custom404PageID),
		"pages.custom_500": strconv.Itoa(in.Custom500PageID),
		"pages.head_text":  in.PageHeadText,
	})
}

func (s *Service) Messaging(ctx context.Context, tenantID id.TenantID) (models.Messaging, error) {
	b, err := s.load(ctx, tenantID)
	if err != nil {
		return models.Messaging{}, err
	}
	return models.Messaging{
		DisablePrivateMessage: b.flag("messaging.disable_private_message", false),
		ThrottlingInterval:    b.num("messaging.throttling_interval", 0),
		RecipientLimit:        b.num("messaging.recipient_limit", 5),
		AllowAttachments:      b.flag("messaging.allow_attachments", false),
		IncludeAttachments:    b.flag("messaging.include_attachments", false),
		ProfanityFilters:      b.flag("messaging.profanity_filters", false),
		SendEmail:             b.flag("messaging.send_email", true),
	}, nil
}

func (s *Service) SaveMessaging(ctx context.Context, tenantID id.TenantID, in models.Messaging) error {
	return s.save(ctx, tenantID, "messaging", map[string]string{
		"messaging.disable_private_message": strconv.FormatBool(in.DisablePrivateMessage),
		"messaging.throttling_interval":     strconv.Itoa(in.ThrottlingInterval),
		"messaging.recipient_limit":         strconv.Itoa(in.RecipientLimit),
		"messaging.allow_attachments":       strconv.FormatBool(in.AllowAttachments),
		"messaging.include_attachments":     strconv.FormatBool(in.IncludeAttachments),
		"messaging.profanity_filters":       strconv.FormatBool(in.ProfanityFilters),
		"messaging.send_email":              strconv.FormatBool(in.SendEmail),
	})
}

func (s *Service) Profile(ctx context.Context, tenantID id.TenantID) (models.Profile, error) {
	b, err := s.load(ctx, tenantID)
	if err != nil {
		return models.Profile{}, err
	}
	return models.Profile{
		RedirectOldProfileURL: b.flag("profile.redirect_old_url", false),
		VanityURLPrefix:       b.str("profile.vanity_url_prefix", "users"),
		DefaultVisibility:     b.num("profile.default_visibility", 2),
		DisplayVisibility:     b.flag("profile.display_visibility", true),
	}, nil
}

func (s *Service) SaveProfile(ctx context.Context, tenantID id.TenantID, in models.Profile) error {
	return s.save(ctx, tenantID, "profile", map[string]string{
		"profile.redirect_old_url":   strconv.FormatBool(in.RedirectOldProfileURL),
		"profile.vanity_url_prefix":  in.VanityURLPrefix,
		"profile.default_visibility": strconv.Itoa(in.DefaultVisibility),
		"profile.display_visibility": strconv.FormatBool(in.DisplayVisibility),
	})
}

func (s *Service) URLMapping(ctx context.Context, tenantID id.TenantID) (models.URLMapping, error) {
	b, err := s.load(ctx, tenantID)
	if err != nil {
		return models.URLMapping{}, err
	}
	return models.URLMapping{
		AliasMappingMode: b.str("url.alias_mapping_mode", models.MappingCanonicalURL),
		AutoAddAlias:     b.flag("url.auto_add_alias", false),
	}, nil
}

func (s *Service) SaveURLMapping(ctx context.Context, tenantID id.TenantID, in models.URLMapping) error {
	if !models.ValidMappingMode(in.AliasMappingMode) {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid alias mapping mode")
	}
	return s.save(ctx, tenantID, "url_mapping", map[string]string{
		"url.alias_mapping_mode": in.AliasMappingMode,
		"url.auto_add_alias":     strconv.FormatBool(in.AutoAddAlias),
	})
}

func (s *Service) Search(ctx context.Context, tenantID id.TenantID) (models.Search, error) {
	b, err := s.load(ctx, tenantID)
	if err != nil {
		return models.Search{}, err
	}
	def := models.DefaultSearch()
	return models.Search{
		MinWordLength:        b.num("search.min_word_length", def.MinWordLength),
		MaxWordLength:        b.num("search.max_word_length", def.MaxWordLength),
		AllowLeadingWildcard: b.flag("search.allow_leading_wildcard", def.AllowLeadingWildcard),
		TitleBoost:           b.num("search.title_boost", def.TitleBoost),
		TagBoost:             b.num("search.tag_boost", def.TagBoost),
		ContentBoost:         b.num("search.content_boost", def.ContentBoost),
		DescriptionBoost:     b.num("search.description_boost", def.DescriptionBoost),
		AuthorBoost:          b.num("search.author_boost", def.AuthorBoost),
	}, nil
}

func (s *Service) load(ctx context.Context, tenantID id.TenantID) (bag, error) {
	if tenantID.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "tenant id is required")
	}
	values, err := s.store.GetAll(ctx, tenantID)
	if err != nil {
		return nil, s.internal(ctx, err, "failed to load settings")
	}
	return bag(values), nil
}

func (s *Service) save(ctx context.Context, tenantID id.TenantID, section string, values map[string]string) error {
	if tenantID.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "tenant id is required")
	}
	if err := s.store.Save(ctx, tenantID, values); err != nil {
		return s.internal(ctx, err, "failed to save settings")
	}
	if s.metrics != nil {
		s.metrics.IncrementSettingsSaved(section)
	}

	// The serving path caches whole-tenant settings; a stale entry after a
	// failed invalidation is logged, not retried.
	if err := s.cache.Invalidate(ctx, tenantID); err != nil {
		s.logger.WarnContext(ctx, "settings cache invalidation failed",
			"tenant_id", tenantID.String(),
			"section", section,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return nil
}

func (s *Service) internal(ctx context.Context, err error, msg string) error {
	s.logger.ErrorContext(ctx, msg,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

// bag wraps the raw key/value settings with typed lookups. Unparseable
// stored values fall back to the default rather than failing the read.
type bag map[string]string

func (b bag) str(key, def string) string {
	if v, ok := b[key]; ok {
		return v
	}
	return def
}

func (b bag) num(key string, def int) int {
	if v, ok := b[key]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func (b bag) flag(key string, def bool) bool {
	if v, ok := b[key]; ok {
		if f, err := strconv.ParseBool(v); err == nil {
			return f
		}
	}
	return def
}

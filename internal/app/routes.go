package app

import (
	"time"

	"github.com/gin-gonic/gin"

	authDomain "github.com/rmarques/marketgate/internal/auth/domain"
	authHTTP "github.com/rmarques/marketgate/internal/auth/http"
	eventsDomain "github.com/rmarques/marketgate/internal/events/domain"
	eventsHTTP "github.com/rmarques/marketgate/internal/events/http"
	"github.com/rmarques/marketgate/internal/http"
	inquiriesHTTP "github.com/rmarques/marketgate/internal/inquiries/http"
	listingsHTTP "github.com/rmarques/marketgate/internal/listings/http"
	outboundHTTP "github.com/rmarques/marketgate/internal/outbound/http"
	"github.com/rmarques/marketgate/internal/ratelimit"
	statsHTTP "github.com/rmarques/marketgate/internal/stats/http"
)

// registerRoutes mounts the authenticated API surface and the internal
// endpoints on the server router.
func (c *Container) registerRoutes(server *http.Server) error {
	logger := c.Logger()

	credentialUseCase, err := c.CredentialUseCase()
	if err != nil {
		return err
	}
	listingUseCase, err := c.ListingUseCase()
	if err != nil {
		return err
	}
	inquiryUseCase, err := c.InquiryUseCase()
	if err != nil {
		return err
	}
	statsUC, err := c.StatsUseCase()
	if err != nil {
		return err
	}
	dispatchUseCase, err := c.DispatchUseCase()
	if err != nil {
		return err
	}
	trackUseCase, err := c.TrackUseCase()
	if err != nil {
		return err
	}
	visitorHasher, err := c.VisitorHasher()
	if err != nil {
		return err
	}

	router := server.Router()

	v1 := router.Group("/v1")
	v1.Use(authHTTP.AuthenticationMiddleware(credentialUseCase, logger))

	var trackLimit gin.HandlerFunc
	if c.config.RateLimitEnabled {
		limiter, err := c.Limiter()
		if err != nil {
			return err
		}
		v1.Use(ratelimit.APIMiddleware(limiter, ratelimit.Policy{
			Bucket: ratelimit.BucketAPI,
			Limit:  c.config.APIRateLimit,
			Window: c.config.APIRateWindow,
		}, logger))

		// Anonymous traffic is keyed by the anonymized visitor hash so
		// the raw client IP never reaches the counter store.
		trackKey := func(gc *gin.Context) string {
			day := time.Now().UTC().Format(eventsDomain.DayFormat)
			return visitorHasher.Hash(gc.ClientIP(), day)
		}
		trackLimit = ratelimit.TrackMiddleware(limiter, ratelimit.Policy{
			Bucket: ratelimit.BucketTrack,
			Limit:  c.config.TrackRateLimit,
			Window: c.config.TrackRateWindow,
		}, trackKey, logger)
	}

	listingHandler := listingsHTTP.NewListingHandler(listingUseCase, logger)
	v1.GET("/listings", authHTTP.RequireScope(authDomain.ScopeListingsRead, logger), listingHandler.ListHandler)
	v1.POST("/listings", authHTTP.RequireScope(authDomain.ScopeListingsWrite, logger), listingHandler.CreateHandler)
	v1.GET("/listings/:id", authHTTP.RequireScope(authDomain.ScopeListingsRead, logger), listingHandler.GetHandler)
	v1.PATCH("/listings/:id", authHTTP.RequireScope(authDomain.ScopeListingsWrite, logger), listingHandler.UpdateHandler)
	v1.DELETE("/listings/:id", authHTTP.RequireScope(authDomain.ScopeListingsWrite, logger), listingHandler.DeleteHandler)

	inquiryHandler := inquiriesHTTP.NewInquiryHandler(inquiryUseCase, logger)
	v1.GET("/inquiries", authHTTP.RequireScope(authDomain.ScopeInquiriesRead, logger), inquiryHandler.ListHandler)
	v1.GET("/inquiries/:id", authHTTP.RequireScope(authDomain.ScopeInquiriesRead, logger), inquiryHandler.GetHandler)
	v1.PATCH("/inquiries/:id", authHTTP.RequireScope(authDomain.ScopeInquiriesWrite, logger), inquiryHandler.UpdateHandler)

	statsHandler := statsHTTP.NewStatsHandler(statsUC, logger)
	v1.GET("/stats", authHTTP.RequireScope(authDomain.ScopeStatsRead, logger), statsHandler.GetHandler)

	internal := router.Group("/internal")

	trackHandler := eventsHTTP.NewTrackHandler(trackUseCase, logger)
	if trackLimit != nil {
		internal.POST("/track-event", trackLimit, trackHandler.TrackHandler)
	} else {
		internal.POST("/track-event", trackHandler.TrackHandler)
	}

	dispatchHandler := outboundHTTP.NewDispatchHandler(
		dispatchUseCase,
		c.SecretService(),
		c.config.DispatchSecretHash,
		logger,
	)
	internal.GET("/dispatch-outbound", dispatchHandler.DispatchHandler)
	internal.POST("/dispatch-outbound", dispatchHandler.DispatchHandler)

	return nil
}

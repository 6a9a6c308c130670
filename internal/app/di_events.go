package app

import (
	"fmt"

	eventsRepository "github.com/rmarques/marketgate/internal/events/repository"
	eventsService "github.com/rmarques/marketgate/internal/events/service"
	eventsUseCase "github.com/rmarques/marketgate/internal/events/usecase"
)

// EventRepository returns the view event repository based on database driver.
func (c *Container) EventRepository() (eventsUseCase.EventRepository, error) {
	c.eventRepositoryInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["eventRepository"] = fmt.Errorf("failed to get database for event repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.eventRepository = eventsRepository.NewMySQLEventRepository(db)
		case "postgres":
			c.eventRepository = eventsRepository.NewPostgreSQLEventRepository(db)
		default:
			c.initErrors["eventRepository"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["eventRepository"]; exists {
		return nil, storedErr
	}
	return c.eventRepository, nil
}

// BotDetector returns the user-agent bot detector.
func (c *Container) BotDetector() *eventsService.BotDetector {
	c.botDetectorInit.Do(func() {
		c.botDetector = eventsService.NewBotDetector()
	})
	return c.botDetector
}

// VisitorHasher returns the salted visitor hasher.
func (c *Container) VisitorHasher() (*eventsService.VisitorHasher, error) {
	c.visitorHasherInit.Do(func() {
		if c.config.TrackingSecret == "" {
			c.initErrors["visitorHasher"] = fmt.Errorf("tracking secret must be configured")
			return
		}
		c.visitorHasher = eventsService.NewVisitorHasher(c.config.TrackingSecret)
	})
	if storedErr, exists := c.initErrors["visitorHasher"]; exists {
		return nil, storedErr
	}
	return c.visitorHasher, nil
}

// TrackUseCase returns the view tracking use case.
func (c *Container) TrackUseCase() (eventsUseCase.TrackUseCase, error) {
	c.trackUseCaseInit.Do(func() {
		eventRepo, err := c.EventRepository()
		if err != nil {
			c.initErrors["trackUseCase"] = err
			return
		}
		hasher, err := c.VisitorHasher()
		if err != nil {
			c.initErrors["trackUseCase"] = err
			return
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["trackUseCase"] = err
			return
		}
		baseUseCase := eventsUseCase.NewTrackUseCase(eventRepo, c.BotDetector(), hasher, c.Logger())
		c.trackUseCase = eventsUseCase.NewTrackUseCaseWithMetrics(baseUseCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["trackUseCase"]; exists {
		return nil, storedErr
	}
	return c.trackUseCase, nil
}

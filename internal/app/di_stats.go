package app

import (
	"fmt"

	statsRepository "github.com/rmarques/marketgate/internal/stats/repository"
	statsUseCase "github.com/rmarques/marketgate/internal/stats/usecase"
)

// StatsRepository returns the stats repository based on database driver.
func (c *Container) StatsRepository() (statsUseCase.StatsRepository, error) {
	c.statsRepositoryInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["statsRepository"] = fmt.Errorf("failed to get database for stats repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.statsRepository = statsRepository.NewMySQLStatsRepository(db)
		case "postgres":
			c.statsRepository = statsRepository.NewPostgreSQLStatsRepository(db)
		default:
			c.initErrors["statsRepository"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["statsRepository"]; exists {
		return nil, storedErr
	}
	return c.statsRepository, nil
}

// StatsUseCase returns the stats use case.
func (c *Container) StatsUseCase() (statsUseCase.StatsUseCase, error) {
	c.statsUseCaseInit.Do(func() {
		statsRepo, err := c.StatsRepository()
		if err != nil {
			c.initErrors["statsUseCase"] = err
			return
		}
		c.statsUseCase = statsUseCase.NewStatsUseCase(statsRepo, c.Logger())
	})
	if storedErr, exists := c.initErrors["statsUseCase"]; exists {
		return nil, storedErr
	}
	return c.statsUseCase, nil
}

package app

import (
	"fmt"

	listingsRepository "github.com/rmarques/marketgate/internal/listings/repository"
	listingsUseCase "github.com/rmarques/marketgate/internal/listings/usecase"
)

// ListingRepository returns the listing repository based on database driver.
func (c *Container) ListingRepository() (listingsUseCase.ListingRepository, error) {
	c.listingRepositoryInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["listingRepository"] = fmt.Errorf("failed to get database for listing repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.listingRepository = listingsRepository.NewMySQLListingRepository(db)
		case "postgres":
			c.listingRepository = listingsRepository.NewPostgreSQLListingRepository(db)
		default:
			c.initErrors["listingRepository"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["listingRepository"]; exists {
		return nil, storedErr
	}
	return c.listingRepository, nil
}

// ListingUseCase returns the listing use case.
func (c *Container) ListingUseCase() (listingsUseCase.ListingUseCase, error) {
	c.listingUseCaseInit.Do(func() {
		listingRepo, err := c.ListingRepository()
		if err != nil {
			c.initErrors["listingUseCase"] = err
			return
		}
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["listingUseCase"] = err
			return
		}
		c.listingUseCase = listingsUseCase.NewListingUseCase(listingRepo, txManager)
	})
	if storedErr, exists := c.initErrors["listingUseCase"]; exists {
		return nil, storedErr
	}
	return c.listingUseCase, nil
}

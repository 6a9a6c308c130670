package app

import (
	"fmt"

	inquiriesRepository "github.com/rmarques/marketgate/internal/inquiries/repository"
	inquiriesUseCase "github.com/rmarques/marketgate/internal/inquiries/usecase"
)

// InquiryRepository returns the inquiry repository based on database driver.
func (c *Container) InquiryRepository() (inquiriesUseCase.InquiryRepository, error) {
	c.inquiryRepositoryInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["inquiryRepository"] = fmt.Errorf("failed to get database for inquiry repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.inquiryRepository = inquiriesRepository.NewMySQLInquiryRepository(db)
		case "postgres":
			c.inquiryRepository = inquiriesRepository.NewPostgreSQLInquiryRepository(db)
		default:
			c.initErrors["inquiryRepository"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["inquiryRepository"]; exists {
		return nil, storedErr
	}
	return c.inquiryRepository, nil
}

// InquiryUseCase returns the inquiry use case. Replying to an inquiry
// enqueues the outbound auto-reply, so the message repository doubles as
// the enqueuer dependency.
func (c *Container) InquiryUseCase() (inquiriesUseCase.InquiryUseCase, error) {
	c.inquiryUseCaseInit.Do(func() {
		inquiryRepo, err := c.InquiryRepository()
		if err != nil {
			c.initErrors["inquiryUseCase"] = err
			return
		}
		messageRepo, err := c.MessageRepository()
		if err != nil {
			c.initErrors["inquiryUseCase"] = err
			return
		}
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["inquiryUseCase"] = err
			return
		}
		c.inquiryUseCase = inquiriesUseCase.NewInquiryUseCase(inquiryRepo, messageRepo, txManager)
	})
	if storedErr, exists := c.initErrors["inquiryUseCase"]; exists {
		return nil, storedErr
	}
	return c.inquiryUseCase, nil
}

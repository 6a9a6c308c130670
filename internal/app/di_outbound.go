package app

import (
	"fmt"

	"github.com/rmarques/marketgate/internal/outbound/mailer"
	outboundRepository "github.com/rmarques/marketgate/internal/outbound/repository"
	outboundService "github.com/rmarques/marketgate/internal/outbound/service"
	outboundUseCase "github.com/rmarques/marketgate/internal/outbound/usecase"
)

// MessageRepository returns the outbound message repository based on
// database driver.
func (c *Container) MessageRepository() (outboundUseCase.MessageRepository, error) {
	c.messageRepositoryInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["messageRepository"] = fmt.Errorf("failed to get database for message repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.messageRepository = outboundRepository.NewMySQLMessageRepository(db)
		case "postgres":
			c.messageRepository = outboundRepository.NewPostgreSQLMessageRepository(db)
		default:
			c.initErrors["messageRepository"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["messageRepository"]; exists {
		return nil, storedErr
	}
	return c.messageRepository, nil
}

// Mailer returns the mail transport.
func (c *Container) Mailer() (outboundUseCase.Mailer, error) {
	c.mailerInit.Do(func() {
		if c.config.MailgunDomain == "" || c.config.MailgunAPIKey == "" {
			c.initErrors["mailer"] = fmt.Errorf("mailgun domain and api key must be configured")
			return
		}
		c.mailer = mailer.NewMailgunMailer(c.config.MailgunDomain, c.config.MailgunAPIKey)
	})
	if storedErr, exists := c.initErrors["mailer"]; exists {
		return nil, storedErr
	}
	return c.mailer, nil
}

// SecretService returns the dispatch secret hashing service.
func (c *Container) SecretService() outboundService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = outboundService.NewSecretService()
	})
	return c.secretService
}

// DispatchUseCase returns the outbound dispatch use case.
func (c *Container) DispatchUseCase() (outboundUseCase.DispatchUseCase, error) {
	c.dispatchUseCaseInit.Do(func() {
		messageRepo, err := c.MessageRepository()
		if err != nil {
			c.initErrors["dispatchUseCase"] = err
			return
		}
		mailTransport, err := c.Mailer()
		if err != nil {
			c.initErrors["dispatchUseCase"] = err
			return
		}
		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["dispatchUseCase"] = err
			return
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["dispatchUseCase"] = err
			return
		}
		baseUseCase := outboundUseCase.NewDispatchUseCase(
			messageRepo,
			mailTransport,
			txManager,
			outboundUseCase.DispatchConfig{
				BatchSize:       c.config.DispatchBatchSize,
				DispatchTimeout: c.config.DispatchTimeout,
				DeliveryTimeout: c.config.DeliveryTimeout,
				RatePerSec:      c.config.DeliveryRatePerSec,
				FromAddress:     c.config.MailFromAddress,
				FromName:        c.config.MailFromName,
			},
			c.Logger(),
		)
		c.dispatchUseCase = outboundUseCase.NewDispatchUseCaseWithMetrics(baseUseCase, businessMetrics)
	})
	if storedErr, exists := c.initErrors["dispatchUseCase"]; exists {
		return nil, storedErr
	}
	return c.dispatchUseCase, nil
}

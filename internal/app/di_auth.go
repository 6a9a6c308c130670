package app

import (
	"fmt"

	authRepository "github.com/rmarques/marketgate/internal/auth/repository"
	authService "github.com/rmarques/marketgate/internal/auth/service"
	authUseCase "github.com/rmarques/marketgate/internal/auth/usecase"
)

// KeyService returns the API key generation service.
func (c *Container) KeyService() authService.KeyService {
	c.keyServiceInit.Do(func() {
		c.keyService = authService.NewKeyService()
	})
	return c.keyService
}

// AccountRepository returns the account repository based on database driver.
func (c *Container) AccountRepository() (authUseCase.AccountRepository, error) {
	c.accountRepositoryInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["accountRepository"] = fmt.Errorf("failed to get database for account repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.accountRepository = authRepository.NewMySQLAccountRepository(db)
		case "postgres":
			c.accountRepository = authRepository.NewPostgreSQLAccountRepository(db)
		default:
			c.initErrors["accountRepository"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["accountRepository"]; exists {
		return nil, storedErr
	}
	return c.accountRepository, nil
}

// CredentialRepository returns the credential repository based on database driver.
func (c *Container) CredentialRepository() (authUseCase.CredentialRepository, error) {
	c.credentialRepositoryInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["credentialRepository"] = fmt.Errorf("failed to get database for credential repository: %w", err)
			return
		}
		switch c.config.DBDriver {
		case "mysql":
			c.credentialRepository = authRepository.NewMySQLCredentialRepository(db)
		case "postgres":
			c.credentialRepository = authRepository.NewPostgreSQLCredentialRepository(db)
		default:
			c.initErrors["credentialRepository"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["credentialRepository"]; exists {
		return nil, storedErr
	}
	return c.credentialRepository, nil
}

// AccountUseCase returns the account use case.
func (c *Container) AccountUseCase() (authUseCase.AccountUseCase, error) {
	c.accountUseCaseInit.Do(func() {
		accountRepo, err := c.AccountRepository()
		if err != nil {
			c.initErrors["accountUseCase"] = err
			return
		}
		c.accountUseCase = authUseCase.NewAccountUseCase(accountRepo)
	})
	if storedErr, exists := c.initErrors["accountUseCase"]; exists {
		return nil, storedErr
	}
	return c.accountUseCase, nil
}

// CredentialUseCase returns the credential use case.
func (c *Container) CredentialUseCase() (authUseCase.CredentialUseCase, error) {
	c.credentialUseCaseInit.Do(func() {
		accountRepo, err := c.AccountRepository()
		if err != nil {
			c.initErrors["credentialUseCase"] = err
			return
		}
		credentialRepo, err := c.CredentialRepository()
		if err != nil {
			c.initErrors["credentialUseCase"] = err
			return
		}
		c.credentialUseCase = authUseCase.NewCredentialUseCase(
			accountRepo,
			credentialRepo,
			c.KeyService(),
			c.Logger(),
		)
	})
	if storedErr, exists := c.initErrors["credentialUseCase"]; exists {
		return nil, storedErr
	}
	return c.credentialUseCase, nil
}

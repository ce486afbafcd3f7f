package repositories

import "errors"

// RepositoryContainer groups the repositories and the unit of work built on
// one database session
type RepositoryContainer struct {
	ProfileRepo ProfileRepository
	TxManager   TransactionManager
}

// Validate checks that every member is set
func (c *RepositoryContainer) Validate() error {
	if c.ProfileRepo == nil {
		return errors.New("profile repository is required")
	}
	if c.TxManager == nil {
		return errors.New("transaction manager is required")
	}
	return nil
}

package gormrepo

import (
	"profile-api/internal/repositories"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NewRepositoryContainer wires every gorm repository onto db
func NewRepositoryContainer(db *gorm.DB, logger *logrus.Logger) *repositories.RepositoryContainer {
	if logger == nil {
		logger = logrus.New()
	}
	return &repositories.RepositoryContainer{
		ProfileRepo: NewProfileRepository(db, logger),
		TxManager:   NewTransactionManager(db, logger),
	}
}

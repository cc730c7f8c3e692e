//go:build wireinject

package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewUsers,
	NewRecordDAO,
	NewRedemptionDAO,
	NewProfileDAO,
	NewGuestDao,
)

package dao

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewBusiness,
	NewCustomerClass,
	NewMembership,
	NewTransaction,
	NewReferral,
	NewReferralLink,
	NewClassMigration,
	NewMigrationTrigger,
)

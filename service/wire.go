package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(BusinessService), "*"),
	wire.Bind(new(IBusinessService), new(*BusinessService)),

	NewClassService,
	wire.Bind(new(IClassService), new(*ClassService)),

	wire.Struct(new(MembershipService), "*"),
	wire.Bind(new(IMembershipService), new(*MembershipService)),

	wire.Struct(new(TransactionService), "*"),
	wire.Bind(new(ITransactionService), new(*TransactionService)),

	wire.Struct(new(ReferralService), "*"),
	wire.Bind(new(IReferralService), new(*ReferralService)),

	wire.Struct(new(LinkService), "*"),
	wire.Bind(new(ILinkService), new(*LinkService)),

	wire.Struct(new(MigrationService), "*"),
	wire.Bind(new(IMigrationService), new(*MigrationService)),

	wire.Struct(new(SyncService), "*"),
	wire.Bind(new(ISyncService), new(*SyncService)),
)

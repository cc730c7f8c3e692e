package service

import (
	"Tally/dao"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),

	wire.Struct(new(ProfileService), "*"),
	wire.Bind(new(IProfileService), new(*ProfileService)),

	NewLeaderboardService,
	wire.Bind(new(ILeaderboardService), new(*LeaderboardService)),

	NewLocalSource,
	NewRemoteSource,
	wire.Struct(new(SourceResolver), "*"),

	wire.Bind(new(RecordStore), new(*dao.RecordDAO)),
	wire.Bind(new(RedemptionStore), new(*dao.RedemptionDAO)),
	wire.Bind(new(ProfileStore), new(*dao.ProfileDAO)),
)

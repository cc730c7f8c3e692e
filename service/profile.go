package service

import (
	"Tally/models"
	"Tally/pkg/gateway"
	"Tally/types"
	"context"
	"time"
)

type IProfileService interface {
	GetProfile(ctx context.Context, uid uint64) (*types.ProfileResponse, error)
	UpdateProfile(ctx context.Context, uid uint64, req *types.UpdateProfileRequest) (*types.ProfileResponse, error)
}

var _ IProfileService = (*ProfileService)(nil)

type ProfileService struct {
	Gateway  *gateway.Gateway
	Profiles ProfileStore
}

// GetProfile 首次认证访问时档案不存在就懒创建
func (p *ProfileService) GetProfile(ctx context.Context, uid uint64) (*types.ProfileResponse, error) {
	var profile *models.UserProfile
	err := p.Gateway.Execute(ctx, "get_profile", 0, func(ctx context.Context) error {
		var e error
		profile, e = p.Profiles.GetOrCreate(ctx, uid)
		return e
	})
	if err != nil {
		return nil, err
	}
	return profileResponse(profile), nil
}

func (p *ProfileService) UpdateProfile(ctx context.Context, uid uint64, req *types.UpdateProfileRequest) (*types.ProfileResponse, error) {
	err := p.Gateway.Execute(ctx, "update_profile", 0, func(ctx context.Context) error {
		if _, e := p.Profiles.GetOrCreate(ctx, uid); e != nil {
			return e
		}
		return p.Profiles.UpdateByUserID(ctx, uid, map[string]any{
			"display_name": req.DisplayName,
			"tier_level":   req.TierLevel,
			"monthly_goal": req.MonthlyGoal,
			"updated_at":   time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	return &types.ProfileResponse{
		UserID:      uid,
		DisplayName: req.DisplayName,
		TierLevel:   req.TierLevel,
		TierLabel:   models.TierLabel(req.TierLevel),
		MonthlyGoal: req.MonthlyGoal,
	}, nil
}

func profileResponse(m *models.UserProfile) *types.ProfileResponse {
	return &types.ProfileResponse{
		UserID:      m.UserID,
		DisplayName: m.DisplayName,
		TierLevel:   m.TierLevel,
		TierLabel:   models.TierLabel(m.TierLevel),
		MonthlyGoal: m.MonthlyGoal,
	}
}

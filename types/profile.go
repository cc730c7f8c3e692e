package types

type ProfileResponse struct {
	UserID      uint64 `json:"user_id"`
	DisplayName string `json:"display_name"`
	TierLevel   int    `json:"tier_level"`
	TierLabel   string `json:"tier_label"`
	MonthlyGoal int    `json:"monthly_goal"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required,max=64"`
	TierLevel   int    `json:"tier_level" binding:"required,oneof=1 2"`
	MonthlyGoal int    `json:"monthly_goal" binding:"gte=0"`
}

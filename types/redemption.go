package types

// CreateRedemptionRequest 用积分兑换一件等价物
type CreateRedemptionRequest struct {
	UserKey       string  `json:"user_key" binding:"required"`
	Date          string  `json:"date" binding:"required"` // 2006-01-02
	ItemLabel     string  `json:"item_label" binding:"required"`
	PointsSpent   int     `json:"points_spent" binding:"required,gt=0"`
	MonetaryValue float64 `json:"monetary_value" binding:"required,gt=0"`
}

type RedemptionItem struct {
	ID            uint64  `json:"id"`
	Date          string  `json:"date"`
	ItemLabel     string  `json:"item_label"`
	PointsSpent   int     `json:"points_spent"`
	MonetaryValue float64 `json:"monetary_value"`
	// 每单位货币花掉的积分，创建时算好
	EffectiveRate int `json:"effective_rate"`
}

type ListRedemptionsResponse struct {
	Redemptions []RedemptionItem `json:"redemptions"`
	Total       int              `json:"total"`
}

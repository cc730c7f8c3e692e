package service

import (
	"Tally/models"
	"Tally/pkg/snowflake"
	"Tally/pkg/xerr"
	"Tally/types"
	"time"

	"gorm.io/datatypes"
)

// 校验都在发起任何远端调用之前做完，校验失败从不重试

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, xerr.Validationf("日期格式应为 2006-01-02: %q", s)
	}
	return dateOnly(d), nil
}

// buildRecord 组装一条活动记录：
// 类目分不可为负、不可超当前等级的单日上限，total 由类目求和得出。
// 主键此刻就生成，网关重试补发同一行时主键不变。
func buildRecord(userID uint64, tierLevel int, req *types.CreateRecordRequest) (*models.ActivityRecord, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	c := req.Category
	if c.Exercise < 0 || c.Reading < 0 || c.Chores < 0 || c.Study < 0 {
		return nil, xerr.Validationf("类目积分不能为负")
	}
	ceiling := models.DailyCeiling(tierLevel)
	if c.Exercise > ceiling.Exercise || c.Reading > ceiling.Reading ||
		c.Chores > ceiling.Chores || c.Study > ceiling.Study {
		return nil, xerr.Validationf("类目积分超出 %s 等级单日上限", models.TierLabel(tierLevel))
	}

	return &models.ActivityRecord{
		ID:             uint64(snowflake.GenRecordID()),
		UserID:         userID,
		Date:           date,
		ActivityLabel:  req.ActivityLabel,
		CategoryPoints: datatypes.NewJSONType(c),
		TotalPoints:    c.Sum(),
		GoalMet:        req.GoalMet,
		Notes:          req.Notes,
	}, nil
}

func buildRedemption(userID uint64, req *types.CreateRedemptionRequest) (*models.RedemptionRecord, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.PointsSpent <= 0 {
		return nil, xerr.Validationf("points_spent 必须大于 0")
	}
	if req.MonetaryValue <= 0 {
		return nil, xerr.Validationf("monetary_value 必须大于 0")
	}

	return &models.RedemptionRecord{
		ID:            uint64(snowflake.GenRecordID()),
		UserID:        userID,
		Date:          date,
		ItemLabel:     req.ItemLabel,
		PointsSpent:   req.PointsSpent,
		MonetaryValue: req.MonetaryValue,
		EffectiveRate: models.ComputeEffectiveRate(req.PointsSpent, req.MonetaryValue),
	}, nil
}

func recordItem(m *models.ActivityRecord) types.RecordItem {
	return types.RecordItem{
		ID:             m.ID,
		Date:           m.Date.Format("2006-01-02"),
		ActivityLabel:  m.ActivityLabel,
		CategoryPoints: m.CategoryPoints.Data(),
		TotalPoints:    m.TotalPoints,
		GoalMet:        m.GoalMet,
		Notes:          m.Notes,
	}
}

func redemptionItem(m *models.RedemptionRecord) types.RedemptionItem {
	return types.RedemptionItem{
		ID:            m.ID,
		Date:          m.Date.Format("2006-01-02"),
		ItemLabel:     m.ItemLabel,
		PointsSpent:   m.PointsSpent,
		MonetaryValue: m.MonetaryValue,
		EffectiveRate: m.EffectiveRate,
	}
}

func recordItems(ms []models.ActivityRecord) []types.RecordItem {
	items := make([]types.RecordItem, 0, len(ms))
	for i := range ms {
		items = append(items, recordItem(&ms[i]))
	}
	return items
}

func redemptionItems(ms []models.RedemptionRecord) []types.RedemptionItem {
	items := make([]types.RedemptionItem, 0, len(ms))
	for i := range ms {
		items = append(items, redemptionItem(&ms[i]))
	}
	return items
}

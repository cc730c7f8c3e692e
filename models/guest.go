package models

// GuestDataset 游客模式的全量数据。
// 一个 guest key 对应一个 JSON 文件，整读整写，从不做局部修补。
type GuestDataset struct {
	Records     []ActivityRecord   `json:"records"`
	Redemptions []RedemptionRecord `json:"redemptions"`
	Profile     UserProfile        `json:"profile"`
}

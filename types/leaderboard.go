package types

// LeaderboardEntry 排行榜单行
type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	Name          string `json:"name"`
	Points        int    `json:"points"`
	Tier          string `json:"tier"`
	IsCurrentUser bool   `json:"is_current_user"`
}

type LeaderboardResponse struct {
	WindowDays int                `json:"window_days"`
	Entries    []LeaderboardEntry `json:"entries"`
}

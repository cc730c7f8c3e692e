package dao

import (
	"Tally/config"
	"Tally/models"
	"Tally/pkg/xerr"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"github.com/tidwall/gjson"
)

// 防止 guest key 里混入路径分隔符
var guestKeyPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

// GuestDao 游客数据落盘：每个 guest key 一个 JSON 文件，整读整写
type GuestDao struct {
	dataDir string
}

func NewGuestDao(conf *config.Config) *GuestDao {
	dir := "data/guest"
	if conf.Guest != nil && conf.Guest.DataDir != "" {
		dir = conf.Guest.DataDir
	}
	return &GuestDao{dataDir: dir}
}

// Load 读取某个游客的全量数据，文件不存在视为空数据集
func (g *GuestDao) Load(key string) (*models.GuestDataset, error) {
	if !guestKeyPattern.MatchString(key) {
		return nil, xerr.Validationf("非法的 guest key: %q", key)
	}

	data, err := os.ReadFile(g.path(key))
	if os.IsNotExist(err) {
		return &models.GuestDataset{
			Records:     []models.ActivityRecord{},
			Redemptions: []models.RedemptionRecord{},
		}, nil
	}
	if err != nil {
		return nil, err
	}

	// 先做形状检查，坏文件直接报出来而不是静默当空处理
	if !gjson.ValidBytes(data) {
		return nil, xerr.Validationf("游客数据文件损坏: %s", key)
	}
	parsed := gjson.ParseBytes(data)
	for _, field := range []string{"records", "redemptions"} {
		if v := parsed.Get(field); v.Exists() && !v.IsArray() {
			return nil, xerr.Validationf("游客数据字段 %s 形状不对", field)
		}
	}

	var ds models.GuestDataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, err
	}
	if ds.Records == nil {
		ds.Records = []models.ActivityRecord{}
	}
	if ds.Redemptions == nil {
		ds.Redemptions = []models.RedemptionRecord{}
	}
	return &ds, nil
}

// Save 整体覆盖写回，不做局部修补
func (g *GuestDao) Save(key string, ds *models.GuestDataset) error {
	if !guestKeyPattern.MatchString(key) {
		return xerr.Validationf("非法的 guest key: %q", key)
	}
	if err := os.MkdirAll(g.dataDir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(ds)
	if err != nil {
		return err
	}
	return os.WriteFile(g.path(key), data, 0o644)
}

func (g *GuestDao) path(key string) string {
	return filepath.Join(g.dataDir, key+".json")
}

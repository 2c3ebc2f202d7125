package model

// DragonTiger 龙虎榜数据，(ts_code, trade_date) 唯一
type DragonTiger struct {
	ID         uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	TsCode     string  `gorm:"column:ts_code;type:varchar(20);not null;uniqueIndex:idx_dt_code_date" json:"ts_code"`
	TradeDate  string  `gorm:"column:trade_date;type:varchar(8);not null;uniqueIndex:idx_dt_code_date;index" json:"trade_date"`
	Reason     string  `gorm:"column:reason;type:varchar(200)" json:"reason"`
	BuyAmount  float64 `gorm:"column:buy_amount" json:"buy_amount"`
	SellAmount float64 `gorm:"column:sell_amount" json:"sell_amount"`
	NetAmount  float64 `gorm:"column:net_amount" json:"net_amount"`
	TopBuyers  string  `gorm:"column:top_buyers;type:text" json:"top_buyers"`
	TopSellers string  `gorm:"column:top_sellers;type:text" json:"top_sellers"`
}

func (DragonTiger) TableName() string {
	return "dragon_tiger"
}

// MarginData 融资融券数据，(ts_code, trade_date) 唯一
// 字段沿用交易所口径：rzye融资余额 rzmre融资买入 rzche融资偿还
// rqye融券余额 rqmcl融券卖出量 rzrqye融资融券余额
type MarginData struct {
	ID        uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	TsCode    string  `gorm:"column:ts_code;type:varchar(20);not null;uniqueIndex:idx_margin_code_date" json:"ts_code"`
	TradeDate string  `gorm:"column:trade_date;type:varchar(8);not null;uniqueIndex:idx_margin_code_date" json:"trade_date"`
	Rzye      float64 `gorm:"column:rzye" json:"rzye"`
	Rzmre     float64 `gorm:"column:rzmre" json:"rzmre"`
	Rzche     float64 `gorm:"column:rzche" json:"rzche"`
	Rqye      float64 `gorm:"column:rqye" json:"rqye"`
	Rqmcl     float64 `gorm:"column:rqmcl" json:"rqmcl"`
	Rzrqye    float64 `gorm:"column:rzrqye" json:"rzrqye"`
}

func (MarginData) TableName() string {
	return "margin_data"
}

// SectorLinkage 板块联动数据，(sector_name, trade_date) 唯一
type SectorLinkage struct {
	ID            uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	TradeDate     string  `gorm:"column:trade_date;type:varchar(8);not null;uniqueIndex:idx_sector_name_date;index" json:"trade_date"`
	SectorName    string  `gorm:"column:sector_name;type:varchar(50);not null;uniqueIndex:idx_sector_name_date" json:"sector_name"`
	SectorPct     float64 `gorm:"column:sector_pct" json:"sector_pct"`
	LeaderCode    string  `gorm:"column:leader_code;type:varchar(20)" json:"leader_code"`
	LeaderName    string  `gorm:"column:leader_name;type:varchar(50)" json:"leader_name"`
	LeaderPct     float64 `gorm:"column:leader_pct" json:"leader_pct"`
	FollowerCount int     `gorm:"column:follower_count" json:"follower_count"`
}

func (SectorLinkage) TableName() string {
	return "sector_linkage"
}

package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"StockSentinel/pkg/model"
)

// RecommendationDB 推荐台账仓库，status与验证字段只由这里迁移
type RecommendationDB struct {
	db *gorm.DB
}

// VerifyOutcome 验证结果
type VerifyOutcome struct {
	Status      model.RecommendStatus `json:"status"`
	ProfitPct   decimal.Decimal       `json:"profit_pct"`
	VerifyDate  string                `json:"verify_date"`
	VerifyPrice decimal.Decimal       `json:"verify_price"`
}

// Create 保存推荐，同一股票同一天只记第一条
// 返回是否真正新增；当日已推荐过返回 (false, nil)，不覆盖
// 推荐价必须为正，否则验证时收益率无法定义
func (r *RecommendationDB) Create(rec *model.Recommendation) (bool, error) {
	if !rec.RecommendPrice.IsPositive() {
		return false, fmt.Errorf("推荐价格必须为正: %s", rec.RecommendPrice)
	}
	rec.Status = model.RecommendPending
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ts_code"}, {Name: "recommend_date"}},
		DoNothing: true,
	}).Create(rec)
	if res.Error != nil {
		return false, fmt.Errorf("保存推荐记录失败: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// ByID 按ID查推荐
func (r *RecommendationDB) ByID(id uint64) (*model.Recommendation, error) {
	var rec model.Recommendation
	err := r.db.First(&rec, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("查询推荐记录失败: %w", err)
	}
	return &rec, nil
}

// PendingOlderThan 推荐日不晚于date的待验证记录，供验证任务扫描
func (r *RecommendationDB) PendingOlderThan(date string) ([]*model.Recommendation, error) {
	var recs []*model.Recommendation
	err := r.db.Where("status = ? AND recommend_date <= ?", model.RecommendPending, date).
		Order("recommend_date ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("查询待验证推荐失败: %w", err)
	}
	return recs, nil
}

// Verify 验证推荐，pending -> win|lose|flat 只迁移一次
// 已终态的记录不重算，原样返回首次结论并伴随ErrAlreadyResolved，
// 调用方据此识别重复处理；未知ID返回ErrNotFound。
func (r *RecommendationDB) Verify(id uint64, verifyDate string, verifyPrice decimal.Decimal, policy model.VerifyPolicy) (*VerifyOutcome, error) {
	var out *VerifyOutcome
	resolved := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var rec model.Recommendation
		err := lockForUpdate(tx).First(&rec, "id = ?", id).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return fmt.Errorf("查询推荐记录失败: %w", err)
		}

		if rec.Resolved() {
			resolved = true
			out = &VerifyOutcome{
				Status:      rec.Status,
				ProfitPct:   rec.ProfitPct.Decimal,
				VerifyDate:  rec.VerifyDate,
				VerifyPrice: rec.VerifyPrice.Decimal,
			}
			return nil
		}

		profitPct := model.ProfitPctAt(rec.RecommendType, rec.RecommendPrice, verifyPrice)
		status := policy.Classify(profitPct)

		res := tx.Model(&model.Recommendation{}).
			Where("id = ? AND status = ?", id, model.RecommendPending).
			Updates(map[string]interface{}{
				"status":       status,
				"verify_date":  verifyDate,
				"verify_price": verifyPrice,
				"profit_pct":   profitPct,
			})
		if res.Error != nil {
			return fmt.Errorf("更新推荐验证结果失败: %w", res.Error)
		}

		out = &VerifyOutcome{
			Status:      status,
			ProfitPct:   profitPct,
			VerifyDate:  verifyDate,
			VerifyPrice: verifyPrice,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if resolved {
		return out, ErrAlreadyResolved
	}
	return out, nil
}

// TypeStats 单个推荐类别的命中统计
type TypeStats struct {
	RecommendType model.RecommendType `json:"recommend_type"`
	Total         int64               `json:"total"`
	Wins          int64               `json:"wins"`
	Loses         int64               `json:"loses"`
	AvgProfit     float64             `json:"avg_profit"`
}

// AccuracyStats 汇总命中统计
type AccuracyStats struct {
	Total     int64       `json:"total"`
	Wins      int64       `json:"wins"`
	Loses     int64       `json:"loses"`
	Pending   int64       `json:"pending"`
	WinRate   float64     `json:"win_rate"`
	AvgProfit float64     `json:"avg_profit"`
	ByType    []TypeStats `json:"by_type"`
}

// Stats 统计sinceDate以来的推荐命中率，按类别细分
func (r *RecommendationDB) Stats(sinceDate string) (*AccuracyStats, error) {
	stats := &AccuracyStats{}

	row := r.db.Model(&model.Recommendation{}).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'win') AS wins,
			COUNT(*) FILTER (WHERE status = 'lose') AS loses,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COALESCE(AVG(profit_pct) FILTER (WHERE status <> 'pending'), 0) AS avg_profit`).
		Where("recommend_date >= ?", sinceDate).
		Row()
	if err := row.Scan(&stats.Total, &stats.Wins, &stats.Loses, &stats.Pending, &stats.AvgProfit); err != nil {
		return nil, fmt.Errorf("统计推荐命中率失败: %w", err)
	}
	if resolved := stats.Wins + stats.Loses; resolved > 0 {
		stats.WinRate = float64(stats.Wins) / float64(resolved) * 100
	}

	err := r.db.Model(&model.Recommendation{}).
		Select(`recommend_type,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'win') AS wins,
			COUNT(*) FILTER (WHERE status = 'lose') AS loses,
			COALESCE(AVG(profit_pct), 0) AS avg_profit`).
		Where("recommend_date >= ? AND status <> ?", sinceDate, model.RecommendPending).
		Group("recommend_type").
		Scan(&stats.ByType).Error
	if err != nil {
		return nil, fmt.Errorf("统计分类命中率失败: %w", err)
	}

	return stats, nil
}

// ResolvedSince 验证日不早于date的已终态推荐，供外部通知方轮询
func (r *RecommendationDB) ResolvedSince(date string) ([]*model.Recommendation, error) {
	var recs []*model.Recommendation
	err := r.db.Where("status <> ? AND verify_date >= ?", model.RecommendPending, date).
		Order("verify_date DESC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("查询已验证推荐失败: %w", err)
	}
	return recs, nil
}

// CreatedOn 某日新建的推荐
func (r *RecommendationDB) CreatedOn(date string) ([]*model.Recommendation, error) {
	var recs []*model.Recommendation
	err := r.db.Where("recommend_date = ?", date).
		Order("recommend_score DESC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("查询当日推荐失败: %w", err)
	}
	return recs, nil
}

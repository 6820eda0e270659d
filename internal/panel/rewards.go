package panel

import (
	"math"
	"sync"

	"HealthPortal/internal/models"
	"HealthPortal/pkg/errors"
	"HealthPortal/pkg/store"
)

type Rewards struct {
	achievements store.Repository[models.Achievement]
	catalog      []models.Reward
	opts         Options

	mu     sync.Mutex
	points int
}

// NewRewards 载入时把成就进度截断到合法范围
func NewRewards(achievements []models.Achievement, catalog []models.Reward, points int, opts Options) *Rewards {
	normalized := make([]models.Achievement, len(achievements))
	for i, a := range achievements {
		normalized[i] = a.Normalize()
	}
	return &Rewards{
		achievements: store.NewMemory(store.Append, normalized...),
		catalog:      catalog,
		opts:         opts.withDefaults(),
		points:       points,
	}
}

func (r *Rewards) Achievements() []models.Achievement { return r.achievements.List() }

func (r *Rewards) Catalog() []models.Reward {
	return append([]models.Reward(nil), r.catalog...)
}

func (r *Rewards) Summary() models.RewardsSummary {
	r.mu.Lock()
	points := r.points
	r.mu.Unlock()

	unlocked := store.Count(r.achievements, func(a models.Achievement) bool { return a.IsCompleted })
	return models.RewardsSummary{
		Points:            points,
		Level:             models.SeedLevel,
		PointsToNextLevel: models.SeedPointsToNextLevel,
		LevelProgress:     levelProgress(points, models.SeedLevel, models.SeedPointsToNextLevel),
		Unlocked:          unlocked,
		DayStreak:         models.SeedDayStreak,
	}
}

func levelProgress(points, level, toNext int) float64 {
	if toNext <= 0 {
		return 100
	}
	p := float64(points-(level-1)*models.PointsPerLevel) / float64(toNext) * 100
	p = math.Max(0, math.Min(100, p))
	return math.Round(p*100) / 100
}

// Redeem 积分不足时返回 CodeConflict，积分不变
func (r *Rewards) Redeem(id string) (models.RewardsSummary, error) {
	var reward *models.Reward
	for i := range r.catalog {
		if r.catalog[i].ID == id {
			reward = &r.catalog[i]
			break
		}
	}
	if reward == nil {
		return models.RewardsSummary{}, errors.NotFound("reward", id)
	}

	r.mu.Lock()
	if r.points < reward.Cost {
		r.mu.Unlock()
		return models.RewardsSummary{}, errors.WithCode(errors.CodeConflict, "not enough points").WithContext("reward", id)
	}
	r.points -= reward.Cost
	r.mu.Unlock()

	s := r.Summary()
	r.opts.emit(PanelRewards, "redeemed", map[string]interface{}{"reward": *reward, "summary": s})
	return s, nil
}

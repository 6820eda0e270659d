package panel

import (
	"sync"

	"HealthPortal/internal/models"
)

// Navigator 当前选中的面板
type Navigator struct {
	mu      sync.RWMutex
	current models.View
}

func NewNavigator(initial string) *Navigator {
	return &Navigator{current: models.ParseView(initial)}
}

func (n *Navigator) Current() models.View {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

// Select 未知视图按 dashboard 处理，返回实际选中的视图
func (n *Navigator) Select(view string) models.View {
	v := models.ParseView(view)
	n.mu.Lock()
	n.current = v
	n.mu.Unlock()
	return v
}

func (n *Navigator) Menu() []models.MenuItem {
	out := make([]models.MenuItem, len(models.Menu))
	copy(out, models.Menu)
	return out
}

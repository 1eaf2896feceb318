package core

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/automoto/doomerang-crypt/sim"
	"github.com/quasilyte/gdata"
)

// LevelTotals are the persisted run totals for one level.
type LevelTotals struct {
	Runs           int     `json:"runs"`
	Clears         int     `json:"clears"`
	BestClear      float64 `json:"bestClear"` // seconds, 0 when never cleared
	Kills          int     `json:"kills"`
	ShotsFired     int     `json:"shotsFired"`
	ProjectileHits int     `json:"projectileHits"`
	PlayerDamage   float64 `json:"playerDamage"`
	AgentDamage    float64 `json:"agentDamage"`
}

// itemStore is the subset of gdata.Manager the stats need.
type itemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// StatsStore accumulates simulation totals per level and persists them.
type StatsStore struct {
	store  itemStore
	totals map[string]*LevelTotals

	level    string
	base     sim.Stats // stats at the last flush
	runStart float64
}

// OpenStatsStore opens the gdata storage for appName.
func OpenStatsStore(appName string) (*StatsStore, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("open stats storage: %w", err)
	}
	return newStatsStore(m), nil
}

func newStatsStore(store itemStore) *StatsStore {
	return &StatsStore{
		store:  store,
		totals: make(map[string]*LevelTotals),
	}
}

func statsKey(level string) string {
	return "stats_" + level
}

// Totals returns the stored totals for level, loading them on first use.
func (st *StatsStore) Totals(level string) LevelTotals {
	return *st.get(level)
}

func (st *StatsStore) get(level string) *LevelTotals {
	if t, ok := st.totals[level]; ok {
		return t
	}
	t := &LevelTotals{}
	data, err := st.store.LoadItem(statsKey(level))
	if err != nil {
		log.Printf("Warning: Could not load stats for %s: %v", level, err)
	} else if data != nil {
		if err := json.Unmarshal(data, t); err != nil {
			log.Printf("Warning: Could not parse stats for %s: %v", level, err)
			t = &LevelTotals{}
		}
	}
	st.totals[level] = t
	return t
}

// BeginRun starts counting a new run of level from the current stats.
func (st *StatsStore) BeginRun(level string, now sim.Stats) {
	st.level = level
	st.base = now
	st.runStart = now.Now
	st.get(level).Runs++
}

// Record folds everything since the last Record or BeginRun into the
// running level's totals.
func (st *StatsStore) Record(now sim.Stats) {
	if st.level == "" {
		return
	}
	t := st.get(st.level)
	t.Kills += now.Kills - st.base.Kills
	t.ShotsFired += now.ShotsFired - st.base.ShotsFired
	t.ProjectileHits += now.ProjectileHits - st.base.ProjectileHits
	t.PlayerDamage += now.PlayerDamage - st.base.PlayerDamage
	t.AgentDamage += now.AgentDamage - st.base.AgentDamage
	st.base = now
}

// Clear marks the running level as cleared at time now.
func (st *StatsStore) Clear(now float64) {
	if st.level == "" {
		return
	}
	t := st.get(st.level)
	t.Clears++
	d := now - st.runStart
	if t.BestClear == 0 || d < t.BestClear {
		t.BestClear = d
	}
}

// Save writes the running level's totals.
func (st *StatsStore) Save() error {
	if st.level == "" {
		return nil
	}
	data, err := json.Marshal(st.get(st.level))
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	if err := st.store.SaveItem(statsKey(st.level), data); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}

func (s *Server) saveStats() {
	if s.stats == nil {
		return
	}
	s.stats.Record(s.sim.Stats())
	if err := s.stats.Save(); err != nil {
		log.Printf("Warning: %v", err)
	}
}

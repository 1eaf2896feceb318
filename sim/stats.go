package sim

// Stats is a snapshot of cumulative simulation totals and current pool use.
type Stats struct {
	Tick uint64
	Now  float64

	ShotsFired         int
	ProjectileHits     int
	ProjectilesExpired int

	Attacks      int
	Kills        int
	DroppedHits  int
	PlayerDamage float64
	AgentDamage  float64

	Agents            int
	ActiveProjectiles int
	ActiveBursts      int
	PendingHits       int
}

func (s *Simulation) Stats() Stats {
	pc := s.env.Projectiles.Counters()
	counters := s.env.Counters
	agents := 0
	s.eachEnemy(func(AgentView) { agents++ })

	return Stats{
		Tick: s.tick,
		Now:  s.now,

		ShotsFired:         pc.Fired,
		ProjectileHits:     pc.Hits,
		ProjectilesExpired: pc.Expired,

		Attacks:      counters.Attacks,
		Kills:        counters.AgentKills,
		DroppedHits:  counters.DroppedHits,
		PlayerDamage: counters.PlayerDamage,
		AgentDamage:  counters.AgentDamage,

		Agents:            agents,
		ActiveProjectiles: s.env.Projectiles.Active(),
		ActiveBursts:      s.env.Effects.Active(),
		PendingHits:       s.env.Attacks.Len(),
	}
}

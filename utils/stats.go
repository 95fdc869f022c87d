package utils

import "time"

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	lastUpdate           time.Time
}

func NewStats() *Stats {
	now := time.Now()
	return &Stats{StartTime: now, lastUpdate: now}
}

// Record notes that generation was reached with the given population
func (s *Stats) Record(generation int, population int) {
	now := time.Now()
	s.Update(generation, population, now.Sub(s.lastUpdate))
	s.lastUpdate = now
}

func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.TotalGenerations = generation
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Runtime returns the time elapsed since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}

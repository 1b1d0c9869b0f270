package crm

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go-estimate-ws/internal/model"
)

// SeedCatalog returns the demo product library served by the simulator.
func SeedCatalog() []model.Product {
	return []model.Product{
		{ID: "p1", Name: "Website Design (Basic)", Category: "Web", DefaultHours: 40},
		{ID: "p2", Name: "Website Design (Advanced)", Category: "Web", DefaultHours: 80},
		{ID: "p3", Name: "Logo Design", Category: "Branding", DefaultHours: 15},
		{ID: "p4", Name: "Brand Guidelines", Category: "Branding", DefaultHours: 25},
		{ID: "p5", Name: "SEO Optimization", Category: "Marketing", DefaultHours: 30},
		{ID: "p6", Name: "Content Creation (Blog Post)", Category: "Marketing", DefaultHours: 10},
		{ID: "p7", Name: "Social Media Management", Category: "Marketing", DefaultHours: 20},
		{ID: "p8", Name: "E-commerce Development", Category: "Web", DefaultHours: 120},
	}
}

// Simulator is the demo CRM backend: a fixed seed catalog served after a
// short delay and a submission call that fails roughly one time in ten. Used
// when CRM_MODE=mock so the service runs end to end without credentials.
type Simulator struct {
	fetchDelay  time.Duration
	submitDelay time.Duration
	failureRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulator() *Simulator {
	return NewSimulatorWithConfig(1500*time.Millisecond, 2*time.Second, 0.1)
}

// NewSimulatorWithConfig builds a simulator with explicit delays and failure
// rate. Tests use zero delays and a rate of 0 or 1 for determinism.
func NewSimulatorWithConfig(fetchDelay, submitDelay time.Duration, failureRate float64) *Simulator {
	return &Simulator{
		fetchDelay:  fetchDelay,
		submitDelay: submitDelay,
		failureRate: failureRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Simulator) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Simulator) FetchCatalog(ctx context.Context) ([]model.Product, error) {
	if err := s.wait(ctx, s.fetchDelay); err != nil {
		return nil, err
	}
	return SeedCatalog(), nil
}

func (s *Simulator) SubmitEstimate(ctx context.Context, items []model.EstimateItem) (SubmissionResult, error) {
	if err := s.wait(ctx, s.submitDelay); err != nil {
		return SubmissionResult{}, err
	}

	s.mu.Lock()
	roll := s.rng.Float64()
	s.mu.Unlock()

	if roll < s.failureRate {
		return SubmissionResult{
			Success: false,
			Message: "Failed to send estimate to HubSpot. Please try again.",
		}, nil
	}
	return SubmissionResult{
		Success: true,
		Message: "Estimate successfully sent to HubSpot!",
	}, nil
}

package availability

import (
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultUnavailableProbability доля недоступных слотов в демо-режиме
const DefaultUnavailableProbability = 0.3

// Random каждый слот независимо недоступен с вероятностью probability.
// Два вызова с одинаковыми данными могут дать разный результат, политика только для демо.
type Random struct {
	mu          sync.Mutex
	rnd         *rand.Rand
	probability float64
}

// NewRandom создает политику. Если src == nil, источник инициализируется текущим временем.
func NewRandom(probability float64, src rand.Source) *Random {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>1)
	}
	return &Random{
		rnd:         rand.New(src),
		probability: probability,
	}
}

func (r *Random) IsAvailable(in Input) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rnd.Float64() >= r.probability
}

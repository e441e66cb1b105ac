package timekeeper

import (
	"sync"
	"time"
)

// NewTickerSource returns a TickSource backed by time.Ticker.
// Each Start spawns one goroutine that lives until its cancel is called.
func NewTickerSource() TickSource {
	return tickerSource{}
}

type tickerSource struct{}

func (tickerSource) Start(interval time.Duration, tick func(time.Time)) func() {
	ticker := time.NewTicker(interval)
	stopCh := make(chan struct{})
	var once sync.Once

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case tickTime := <-ticker.C:
				tick(tickTime)
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(stopCh)
		})
	}
}

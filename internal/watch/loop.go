package watch

import (
	"context"
	"time"
)

// Handler hazır dosya grubunu işler.
type Handler func(ctx context.Context, files []string)

// Run ctx iptal edilene kadar motoru tarar. Tarama hem ticker ile hem de
// motorun olay kanalıyla tetiklenir; hatalar onErr'e iletilir ve döngü sürer.
func Run(ctx context.Context, e Engine, interval time.Duration, handle Handler, onErr func(error)) error {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := e.Events()
	poll := func() {
		files, err := e.Poll(time.Now())
		if err != nil {
			if onErr != nil {
				onErr(err)
			}
			return
		}
		if len(files) > 0 {
			handle(ctx, files)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			poll()
		case _, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			poll()
		}
	}
}

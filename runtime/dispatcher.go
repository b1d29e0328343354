// Copyright (c) 2026 The think2earn developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"golang.org/x/sync/errgroup"

	"github.com/rainbowpuffpuff/stakebonus/log"
	"github.com/rainbowpuffpuff/stakebonus/metrics"
	"github.com/rainbowpuffpuff/stakebonus/xenv"
)

var (
	logger          = log.WithContext("pkg", "runtime")
	transferCounter = metrics.LazyLoadCounterVec("ledger_transfer_count", []string{"status"})
)

// TransferFunc moves value out of the contract account. It is invoked after
// the originating call has committed, so a failure here must not be reported
// back to the caller.
type TransferFunc func(transfer xenv.Transfer) error

// Dispatcher delivers scheduled transfers asynchronously, one at a time and
// in enqueue order. A failed delivery is logged and dropped; the committed
// ledger state is never compensated.
type Dispatcher struct {
	fn    TransferFunc
	queue chan xenv.Transfer
	goes  errgroup.Group
}

// NewDispatcher creates a dispatcher delivering through fn and starts its
// delivery loop.
func NewDispatcher(fn TransferFunc) *Dispatcher {
	d := &Dispatcher{
		fn:    fn,
		queue: make(chan xenv.Transfer, 256),
	}
	d.goes.Go(d.loop)
	return d
}

// Enqueue schedules one transfer for delivery. It must not be called after
// Stop.
func (d *Dispatcher) Enqueue(transfer xenv.Transfer) {
	d.queue <- transfer
}

// Stop drains the queue, delivers what remains and waits for the loop to
// exit.
func (d *Dispatcher) Stop() error {
	close(d.queue)
	return d.goes.Wait()
}

func (d *Dispatcher) loop() error {
	for transfer := range d.queue {
		if err := d.fn(transfer); err != nil {
			logger.Warn("transfer delivery failed",
				"to", transfer.To,
				"amount", transfer.Amount,
				"err", err)
			transferCounter().AddWithLabel(1, map[string]string{"status": "failed"})
			continue
		}
		transferCounter().AddWithLabel(1, map[string]string{"status": "delivered"})
	}
	return nil
}

package metrics

import (
	"time"

	"github.com/skytable/skyd/pkg/auth"
	"github.com/skytable/skyd/pkg/model"
)

// Collector polls the live memstore and auth provider on a fixed
// interval and republishes their shape as gauges, the same
// ticker-plus-stop-channel shape used elsewhere for background loops.
type Collector struct {
	memstore *model.Memstore
	auth     *auth.Provider
	stopCh   chan struct{}
}

// NewCollector creates a new metrics collector.
func NewCollector(ms *model.Memstore, provider *auth.Provider) *Collector {
	return &Collector{
		memstore: ms,
		auth:     provider,
		stopCh:   make(chan struct{}),
	}
}

// Start begins collecting metrics.
func (c *Collector) Start() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// Stop stops the collector.
func (c *Collector) Stop() {
	close(c.stopCh)
}

func (c *Collector) collect() {
	c.collectKeyspaceMetrics()
	c.collectAuthMetrics()
}

func (c *Collector) collectKeyspaceMetrics() {
	keyspaceCount := 0
	tableCount := 0
	keyCounts := make(map[[2]string]int)

	c.memstore.Range(func(ksID string, ksRef *model.KeyspaceRef) bool {
		keyspaceCount++
		ksRef.Keyspace.Range(func(tblID string, tblRef *model.TableRef) bool {
			tableCount++
			keyCounts[[2]string{ksID, tblID}] = tblRef.Table.Len()
			return true
		})
		return true
	})

	KeyspacesTotal.Set(float64(keyspaceCount))
	TablesTotal.Set(float64(tableCount))
	for kt, n := range keyCounts {
		KeysTotal.WithLabelValues(kt[0], kt[1]).Set(float64(n))
	}
}

func (c *Collector) collectAuthMetrics() {
	UsersTotal.Set(float64(len(c.auth.ListUsers())))
}

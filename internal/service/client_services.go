package service

import (
	"fmt"

	"github.com/marketforge/marketsync/internal/adapter"
	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/internal/store"
	"github.com/marketforge/marketsync/models"
)

// ClientServices bundles every client-side service of one execution context:
// the auth boundary, one replicated store per collection, the sync
// coordinator, and its background job.
type ClientServices struct {
	AuthService  ClientAuthService
	Cart         CollectionService
	Wishlist     CollectionService
	SyncService  ClientSyncService
	SyncJob      ClientSyncJob
	Connectivity *ConnectivityTracker
}

// NewClientServices wires the client service graph: a shared connectivity
// tracker, a replicated store per collection over the common backing store,
// and the sync coordinator on top.
func NewClientServices(kv store.KeyValue, serverAdapter adapter.ServerAdapter, log *logger.Logger) (*ClientServices, error) {
	connectivity := NewConnectivityTracker()

	cart, err := NewCollectionService(models.CollectionCart, kv, serverAdapter, connectivity, log)
	if err != nil {
		return nil, fmt.Errorf("cart store: %w", err)
	}
	wishlist, err := NewCollectionService(models.CollectionWishlist, kv, serverAdapter, connectivity, log)
	if err != nil {
		return nil, fmt.Errorf("wishlist store: %w", err)
	}

	syncSvc := NewClientSyncService([]CollectionService{cart, wishlist}, connectivity, log)

	return &ClientServices{
		AuthService:  NewClientAuthService(serverAdapter, log),
		Cart:         cart,
		Wishlist:     wishlist,
		SyncService:  syncSvc,
		SyncJob:      NewClientSyncJob(syncSvc),
		Connectivity: connectivity,
	}, nil
}

// Close detaches the collection stores from the backing store change feed.
func (c *ClientServices) Close() {
	c.SyncJob.Stop()
	c.Cart.Close()
	c.Wishlist.Close()
}

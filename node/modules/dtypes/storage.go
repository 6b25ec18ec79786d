package dtypes

import (
	"github.com/ipfs/go-datastore"
)

// MetadataDS stores the ledger state tree
// by default it's namespaced under /metadata in main repo datastore
type MetadataDS datastore.Batching

package domain

// Stock statuses
const (
	StockStatusInStock    = "in_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// DefaultCategory is assigned to catalog records that arrive without a category label.
const DefaultCategory = "Uncategorized"

// Snapshot storage drivers
const (
	StorageDriverMemory   = "memory"
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
	StorageDriverS3       = "s3"
	StorageDriverMongo    = "mongo"
)

var StorageDrivers = []string{
	StorageDriverMemory,
	StorageDriverFile,
	StorageDriverPostgres,
	StorageDriverS3,
	StorageDriverMongo,
}

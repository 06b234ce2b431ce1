package shared

// SeedLockKey is the Postgres advisory lock taken while the tables are rebuilt,
// so replicas starting together do not reseed concurrently.
const SeedLockKey int64 = 0x63617374

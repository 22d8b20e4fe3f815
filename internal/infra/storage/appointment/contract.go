package appointment

import (
	"github.com/janjikita/booking-service/pkg/dbmetrics"
)

// Reuse the dbmetrics executor interfaces so the repository works both
// with a plain *sql.DB wrapper and inside a transaction.
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

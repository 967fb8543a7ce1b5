package booking

import "github.com/m04kA/RIH-BookingService/pkg/txmanager"

// DBExecutor интерфейс исполнителя запросов (*sql.DB или активная транзакция)
type DBExecutor = txmanager.DBExecutor

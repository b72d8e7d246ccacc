package db

import (
	"github.com/cockroachdb/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ConfirmedSlotIndex garante no máximo um agendamento confirmado por
// barbeiro, data e horário. Pendentes não entram no índice.
const ConfirmedSlotIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS uniq_appointments_confirmed_slot
	ON appointments (barber_id, appointment_date, appointment_time)
	WHERE status = 'confirmed'
`

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Barber{},
		&models.Service{},
		&models.Appointment{},
		&models.Review{},
		&models.Favorite{},
		&models.AuditLog{},
	); err != nil {
		return errors.Wrap(err, "migrate")
	}

	if err := db.Exec(ConfirmedSlotIndex).Error; err != nil {
		return errors.Wrap(err, "create confirmed slot index")
	}

	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Package audit records moderation actions taken through the console. The
// trail is the console's only local persistence; derived views are never
// written anywhere.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Entry is one moderation action: who did what to which record.
type Entry struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Operator   string    `json:"operator" gorm:"not null"`
	Action     string    `json:"action" gorm:"not null"` // block, unblock, delete_user, update_user, create_user, report_status
	TargetType string    `json:"target_type" gorm:"not null"`
	TargetID   uint      `json:"target_id" gorm:"not null"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Entry) TableName() string {
	return "audit_entries"
}

// Recorder accepts entries without returning errors to the caller: a failed
// audit write must not fail the moderation action it describes.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

type gormRecorder struct {
	db  *gorm.DB
	log *logrus.Logger
}

// Initialize connects to the audit database and migrates the entries table.
func Initialize(databaseURL string, log *logrus.Logger) (Recorder, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &gormRecorder{db: db, log: log}, nil
}

func (r *gormRecorder) Record(ctx context.Context, entry Entry) {
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{
			"action":    entry.Action,
			"target_id": entry.TargetID,
		}).Warn("failed to record audit entry")
	}
}

type logRecorder struct {
	log *logrus.Logger
}

// NewLogRecorder returns a recorder that only logs, for deployments without
// an audit database.
func NewLogRecorder(log *logrus.Logger) Recorder {
	return &logRecorder{log: log}
}

func (r *logRecorder) Record(_ context.Context, entry Entry) {
	r.log.WithFields(logrus.Fields{
		"operator":    entry.Operator,
		"action":      entry.Action,
		"target_type": entry.TargetType,
		"target_id":   entry.TargetID,
		"detail":      entry.Detail,
	}).Info("moderation action")
}

package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	DB "Backend-ShiftFilter/src/database"
	"Backend-ShiftFilter/src/models"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// AuditWriter คือส่วนของ *mongo.Collection ที่ handler ใช้
type AuditWriter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// NewRecordUploadHandler stores one upload audit document per task.
func NewRecordUploadHandler(w AuditWriter) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p UploadAuditPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			zap.L().Error("❌ Payload decode error", zap.Error(err))
			// payload เสีย retry ไปก็ไม่หาย
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}

		doc := models.UploadAudit{
			BatchID:    p.BatchID,
			UserEmail:  p.UserEmail,
			FileNames:  p.FileNames,
			InputRows:  p.InputRows,
			OutputRows: p.OutputRows,
			Employees:  p.Employees,
			CreatedAt:  p.At,
		}
		if _, err := w.InsertOne(ctx, doc); err != nil {
			zap.L().Error("❌ Failed to store upload audit", zap.String("batchId", p.BatchID), zap.Error(err))
			return err
		}

		zap.L().Info("✅ Upload audit recorded", zap.String("batchId", p.BatchID))
		return nil
	}
}

// NewServer สร้าง asynq worker สำหรับงานเบื้องหลังของระบบ
func NewServer(redisAddr string) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: redisAddr}, asynq.Config{
		Concurrency: 2,
		Logger:      zap.S(),
	})
	mux := asynq.NewServeMux()
	mux.Handle(TypeRecordUpload, NewRecordUploadHandler(DB.UploadAuditCollection))
	return srv, mux
}

// Enqueuer ส่วนของ *asynq.Client ที่ใช้ส่งงาน
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// EnqueueUploadAudit schedules the audit record. A nil client means Redis is
// not configured and the audit is skipped.
func EnqueueUploadAudit(client Enqueuer, p UploadAuditPayload) error {
	if client == nil {
		zap.L().Debug("asynq client not initialized, skip upload audit", zap.String("batchId", p.BatchID))
		return nil
	}
	task, err := NewRecordUploadTask(p)
	if err != nil {
		return err
	}
	_, err = client.Enqueue(task, asynq.TaskID("upload-"+p.BatchID))
	return err
}

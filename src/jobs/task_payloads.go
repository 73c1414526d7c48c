package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeRecordUpload = "upload:record"

// UploadAuditPayload ข้อมูลสรุปของการอัปโหลดหนึ่งครั้ง
type UploadAuditPayload struct {
	BatchID    string    `json:"batch_id"`
	UserEmail  string    `json:"user_email"`
	FileNames  []string  `json:"file_names"`
	InputRows  int       `json:"input_rows"`
	OutputRows int       `json:"output_rows"`
	Employees  int       `json:"employees"`
	At         time.Time `json:"at"`
}

func NewRecordUploadTask(p UploadAuditPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRecordUpload, payload, asynq.MaxRetry(3)), nil
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UploadAudit บันทึกการอัปโหลดไฟล์ตอกบัตร (ไม่เก็บผลลัพธ์กะ)
type UploadAudit struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BatchID    string             `bson:"batchId" json:"batchId"`
	UserEmail  string             `bson:"userEmail" json:"userEmail"`
	FileNames  []string           `bson:"fileNames" json:"fileNames"`
	InputRows  int                `bson:"inputRows" json:"inputRows"`
	OutputRows int                `bson:"outputRows" json:"outputRows"`
	Employees  int                `bson:"employees" json:"employees"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

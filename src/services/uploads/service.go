package uploads

import (
	"context"
	"time"

	DB "Backend-ShiftFilter/src/database"
	"Backend-ShiftFilter/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListRecentAudits ดึงประวัติการอัปโหลดล่าสุด (ใหม่สุดก่อน)
func ListRecentAudits(ctx context.Context, limit int64) ([]models.UploadAudit, error) {
	out := []models.UploadAudit{}
	if DB.UploadAuditCollection == nil {
		return out, nil
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := DB.UploadAuditCollection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

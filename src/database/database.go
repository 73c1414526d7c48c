package database

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

var (
	client     *mongo.Client
	once       sync.Once // ✅ ป้องกันการรัน ConnectMongoDB() ซ้ำ
	connectErr error

	UserCollection        *mongo.Collection
	UploadAuditCollection *mongo.Collection
)

// ConnectMongoDB เชื่อมต่อกับ MongoDB แค่ครั้งเดียว
func ConnectMongoDB(uri, dbName string) error {
	if uri == "" {
		return errors.New("MONGO_URI environment variable not set")
	}

	once.Do(func() { // ✅ Run only once
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, connectErr = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if connectErr != nil {
			return
		}

		// ตรวจสอบการเชื่อมต่อ
		if connectErr = client.Ping(ctx, readpref.Primary()); connectErr != nil {
			return
		}

		db := client.Database(dbName)
		UserCollection = db.Collection("users")
		UploadAuditCollection = db.Collection("upload_audits")

		connectErr = ensureIndexes(ctx)
		if connectErr == nil {
			zap.L().Info("✅ MongoDB connected successfully", zap.String("database", dbName))
		}
	})

	return connectErr
}

// AdminIndexName partial unique index ที่ทำให้มี admin ได้คนเดียว
const AdminIndexName = "one_admin"

// ensureIndexes สร้าง index ที่จำเป็น (email ต้องไม่ซ้ำ, admin มีคนเดียว)
func ensureIndexes(ctx context.Context) error {
	_, err := UserCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "isAdmin", Value: 1}},
			Options: options.Index().
				SetName(AdminIndexName).
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"isAdmin": true}),
		},
	})
	if err != nil {
		return err
	}
	_, err = UploadAuditCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	return err
}

// DisconnectMongoDB ปิดการเชื่อมต่อตอน shutdown
func DisconnectMongoDB(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

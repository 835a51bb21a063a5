package repository

import (
	"context"
	"time"

	"github.com/staffdesk/staffdesk-backend/internal/leave"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements a MongoDB-backed repository for leave requests.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(col *mongo.Collection) *MongoRepo {
	// owner listing is always ordered newest-first
	idxModel := mongo.IndexModel{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}}
	col.Indexes().CreateOne(context.Background(), idxModel)
	return &MongoRepo{col: col}
}

func (m *MongoRepo) Create(ctx context.Context, lr *leave.LeaveRequest) error {
	_, err := m.col.InsertOne(ctx, lr)
	return err
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&lr)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &lr, nil
}

func (m *MongoRepo) ListByUser(ctx context.Context, userID string) ([]*leave.LeaveRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := m.col.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*leave.LeaveRequest{}
	for cur.Next(ctx) {
		var lr leave.LeaveRequest
		if err := cur.Decode(&lr); err != nil {
			return nil, err
		}
		out = append(out, &lr)
	}
	return out, cur.Err()
}

func (m *MongoRepo) TransitionFromPending(ctx context.Context, id string, to leave.Status, at time.Time) (*leave.LeaveRequest, error) {
	filter := bson.M{"_id": id, "status": leave.StatusPending}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated leave.LeaveRequest
	err := m.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	// condition failed: either the request is unknown or already resolved
	current, gerr := m.Get(ctx, id)
	if gerr != nil {
		return nil, gerr
	}
	return current, ErrStatusConflict
}
